package vrtmax

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// obfuscate mirrors the player bundle's encoding: base64, reversed.
func obfuscate(value string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(value))
	runes := []byte(encoded)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return `atob("` + string(runes) + `"`
}

func TestBuildPlayerInfo(t *testing.T) {
	keys := &PlayerKeys{KeyID: "kid1", Secret: "s3cr3t", Version: "2.4.1"}
	frozen := time.Unix(1_700_000_000, 0)

	token, err := BuildPlayerInfo(keys, frozen)
	if err != nil {
		t.Fatalf("BuildPlayerInfo returned error: %v", err)
	}

	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(segments))
	}
	for i, segment := range segments {
		if strings.ContainsAny(segment, "=+/") {
			t.Errorf("segment %d is not unpadded base64url: %q", i, segment)
		}
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(segments[0])
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}
	var header struct {
		Alg string `json:"alg"`
		Kid string `json:"kid"`
	}
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if header.Alg != "HS256" || header.Kid != "kid1" {
		t.Errorf("unexpected header: %+v", header)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(keys.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return frozen }))
	if err != nil {
		t.Fatalf("signature verification failed: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if exp, _ := claims["exp"].(float64); int64(exp) != frozen.Add(playerTokenHorizon).Unix() {
		t.Errorf("unexpected exp claim %v", claims["exp"])
	}
	if claims["platform"] != "desktop" {
		t.Errorf("unexpected platform claim %v", claims["platform"])
	}
}

func TestBuildPlayerInfoTamperedPayload(t *testing.T) {
	keys := &PlayerKeys{KeyID: "kid1", Secret: "s3cr3t", Version: "2.4.1"}
	token, err := BuildPlayerInfo(keys, time.Unix(1_700_000_000, 0))
	if err != nil {
		t.Fatalf("BuildPlayerInfo returned error: %v", err)
	}

	segments := strings.Split(token, ".")
	payload := []byte(segments[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := segments[0] + "." + string(payload) + "." + segments[2]

	_, err = jwt.Parse(tampered, func(*jwt.Token) (any, error) {
		return []byte(keys.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err == nil {
		t.Fatal("expected tampered token to fail verification")
	}
}

func TestParsePlayerKeys(t *testing.T) {
	source := "var a=" + obfuscate("dec0") + ");" +
		"var k=" + obfuscate("kid1") + ");" +
		`var v={playerVersion:"3.1.0"};` +
		"var s=" + obfuscate("secret1") + ");"

	keys, err := parsePlayerKeys(source)
	if err != nil {
		t.Fatalf("parsePlayerKeys returned error: %v", err)
	}
	if keys.KeyID != "kid1" {
		t.Errorf("KeyID = %q, want kid1", keys.KeyID)
	}
	if keys.Secret != "secret1" {
		t.Errorf("Secret = %q, want secret1", keys.Secret)
	}
	if keys.Version != "3.1.0" {
		t.Errorf("Version = %q, want 3.1.0", keys.Version)
	}
}

func TestParsePlayerKeysVersionFallback(t *testing.T) {
	source := obfuscate("dec0") + ");" + obfuscate("kid1") + ");" + obfuscate("secret1") + ")"
	keys, err := parsePlayerKeys(source)
	if err != nil {
		t.Fatalf("parsePlayerKeys returned error: %v", err)
	}
	if keys.Version != fallbackPlayerVersion {
		t.Errorf("Version = %q, want fallback %q", keys.Version, fallbackPlayerVersion)
	}
}

func TestParsePlayerKeysNoMaterial(t *testing.T) {
	if _, err := parsePlayerKeys("nothing to see here"); err == nil {
		t.Fatal("expected error on source without key material")
	}
}
