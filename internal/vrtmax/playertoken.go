package vrtmax

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// fallbackPlayerVersion is used when the player bundle does not declare
// its version.
const fallbackPlayerVersion = "2.4.1"

// playerTokenHorizon is the validity window embedded in a derived token.
const playerTokenHorizon = 1000 * time.Second

var (
	obfuscatedKey = regexp.MustCompile(`atob\("(==[A-Za-z0-9+/]*)"`)
	playerVersion = regexp.MustCompile(`playerVersion:"(\S*)"`)
)

// PlayerKeys are the signing inputs recovered from the platform's player
// bundle.
type PlayerKeys struct {
	KeyID   string
	Secret  string
	Version string
}

// RecoverPlayerKeys fetches the player bundle and extracts the JWT key
// id, signing secret, and player version from it.
func (c *Client) RecoverPlayerKeys(ctx context.Context) (*PlayerKeys, error) {
	if c.playerJSURL == "" {
		return nil, errors.New("player bundle url not configured")
	}
	source, err := c.FetchBody(ctx, c.playerJSURL)
	if err != nil {
		return nil, fmt.Errorf("fetch player bundle: %w", err)
	}
	return parsePlayerKeys(source)
}

// parsePlayerKeys pulls the obfuscated key material out of player
// source. The bundle embeds both values as reversed base64 literals; the
// second occurrence is the key id and the last one the secret.
func parsePlayerKeys(source string) (*PlayerKeys, error) {
	matches := obfuscatedKey.FindAllStringSubmatch(source, -1)
	if len(matches) < 2 {
		return nil, errors.New("player bundle carries no obfuscated key material")
	}

	keyID, err := decodeReversed(matches[1][1])
	if err != nil {
		return nil, fmt.Errorf("decode key id: %w", err)
	}
	secret, err := decodeReversed(matches[len(matches)-1][1])
	if err != nil {
		return nil, fmt.Errorf("decode secret: %w", err)
	}

	version := fallbackPlayerVersion
	if m := playerVersion.FindStringSubmatch(source); m != nil {
		version = m[1]
	}
	return &PlayerKeys{KeyID: keyID, Secret: secret, Version: version}, nil
}

func decodeReversed(encoded string) (string, error) {
	runes := []byte(encoded)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	decoded, err := base64.StdEncoding.DecodeString(string(runes))
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// BuildPlayerInfo constructs the signed player descriptor token: an
// HS256 JWT with the recovered key id in the header and fixed device and
// app claims, expiring a fixed horizon past now.
func BuildPlayerInfo(keys *PlayerKeys, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"exp":      now.Add(playerTokenHorizon).Unix(),
		"platform": "desktop",
		"app": map[string]string{
			"type":    "browser",
			"name":    "Firefox",
			"version": "102.0",
		},
		"device": "undefined (undefined)",
		"os": map[string]string{
			"name":    "Linux",
			"version": "x86_64",
		},
		"player": map[string]string{
			"name":    "VRT web player",
			"version": keys.Version,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = keys.KeyID

	signed, err := token.SignedString([]byte(keys.Secret))
	if err != nil {
		return "", fmt.Errorf("sign player info: %w", err)
	}
	return signed, nil
}

// PlayerInfo derives the player descriptor best-effort. Secret recovery
// failing is not fatal: an empty descriptor still resolves most content,
// possibly at reduced quality for older assets.
func (c *Client) PlayerInfo(ctx context.Context) string {
	keys, err := c.RecoverPlayerKeys(ctx)
	if err != nil {
		c.logger.Info("player secret recovery failed, continuing without player info",
			slog.String("error", err.Error()))
		return ""
	}
	info, err := BuildPlayerInfo(keys, time.Now())
	if err != nil {
		c.logger.Info("player info signing failed, continuing without player info",
			slog.String("error", err.Error()))
		return ""
	}
	return info
}
