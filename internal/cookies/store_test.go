package cookies_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"zender/internal/cookies"
)

func TestLoadMissingFileReturnsNotFound(t *testing.T) {
	store := cookies.NewStore(t.TempDir())

	session, err := store.Load("vrtmax")
	if !errors.Is(err, cookies.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(session.Cookies) != 0 {
		t.Fatalf("expected empty session, got %d cookies", len(session.Cookies))
	}
}

func TestLoadCorruptFileReturnsNotFound(t *testing.T) {
	dir := t.TempDir()
	store := cookies.NewStore(dir)
	if err := os.WriteFile(store.Path("vrtmax"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := store.Load("vrtmax"); !errors.Is(err, cookies.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := cookies.NewStore(t.TempDir())
	session := cookies.Session{
		Platform: "vrtmax",
		Cookies: []cookies.Cookie{
			{Name: "vrtnu-site_profile_vt", Value: "tok", Domain: ".vrt.be", Path: "/", Expires: 1893456000, Secure: true, HTTPOnly: true},
			{Name: "consentDate", Value: "2024-01-01", Domain: "www.vrt.be"},
		},
	}

	if err := store.Save("vrtmax", session); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := store.Load("vrtmax")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(loaded.Cookies, session.Cookies) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", loaded.Cookies, session.Cookies)
	}

	// Saving again after loading must yield the same set.
	if err := store.Save("vrtmax", loaded); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}
	again, err := store.Load("vrtmax")
	if err != nil {
		t.Fatalf("second Load returned error: %v", err)
	}
	if !reflect.DeepEqual(again.Cookies, session.Cookies) {
		t.Fatal("second round trip mismatch")
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	store := cookies.NewStore(dir)

	if err := store.Save("vrtmax", cookies.Session{Cookies: []cookies.Cookie{{Name: "a", Value: "1"}}}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Save("vrtmax", cookies.Session{Cookies: []cookies.Cookie{{Name: "b", Value: "2"}}}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := os.ReadFile(store.Path("vrtmax"))
	if err != nil {
		t.Fatalf("read cookie file: %v", err)
	}
	var list []cookies.Cookie
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("cookie file not valid JSON: %v", err)
	}
	if len(list) != 1 || list[0].Name != "b" {
		t.Fatalf("unexpected contents: %#v", list)
	}

	// No stray temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single file in store dir, got %d", len(entries))
	}
	if entries[0].Name() != filepath.Base(store.Path("vrtmax")) {
		t.Fatalf("unexpected file: %s", entries[0].Name())
	}
}

func TestSessionValue(t *testing.T) {
	session := cookies.Session{Cookies: []cookies.Cookie{{Name: "k", Value: "v"}}}
	if v, ok := session.Value("k"); !ok || v != "v" {
		t.Fatalf("Value(k) = %q, %v", v, ok)
	}
	if _, ok := session.Value("missing"); ok {
		t.Fatal("expected missing cookie to report ok=false")
	}
}
