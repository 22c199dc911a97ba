package vrtmax

import (
	"context"
	"errors"
	"testing"

	"zender/internal/cookies"
	"zender/internal/platform"
	"zender/internal/testsupport"
)

type staticJar []cookies.Cookie

func (j staticJar) Cookies() ([]cookies.Cookie, error) {
	return j, nil
}

type failingJar struct{}

func (failingJar) Cookies() ([]cookies.Cookie, error) {
	return nil, errors.New("jar unavailable")
}

func testProvider(t *testing.T, opts ...testsupport.ConfigOption) *SessionProvider {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	return NewSessionProvider(cfg, cookies.NewStore(cfg.Paths.CookieDir), nil)
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"no email", "", "hunter2"},
		{"no password", "tester@example.test", ""},
		{"neither", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := testProvider(t, testsupport.WithCredentials(tc.email, tc.password))

			_, _, err := provider.Authenticate(context.Background())
			if !errors.Is(err, ErrMissingCredentials) {
				t.Fatalf("Authenticate error = %v, want ErrMissingCredentials", err)
			}
		})
	}
}

func TestPersistSessionExtractsIdentityToken(t *testing.T) {
	provider := testProvider(t)
	jar := staticJar{
		{Name: "other", Value: "x", Domain: ".vrt.be"},
		{Name: identityCookieName, Value: "idtok", Domain: ".vrt.be"},
	}

	session, token, err := provider.persistSession(jar)
	if err != nil {
		t.Fatalf("persistSession returned error: %v", err)
	}
	if token != "idtok" {
		t.Fatalf("identity token = %q, want idtok", token)
	}
	if len(session.Cookies) != 2 {
		t.Fatalf("session carries %d cookies, want 2", len(session.Cookies))
	}

	saved, err := provider.store.Load(string(platform.VRTMax))
	if err != nil {
		t.Fatalf("reload saved session: %v", err)
	}
	if got, ok := saved.Value(identityCookieName); !ok || got != "idtok" {
		t.Fatalf("saved identity cookie = %q (present=%v), want idtok", got, ok)
	}
}

func TestPersistSessionMissingIdentityCookie(t *testing.T) {
	provider := testProvider(t)
	jar := staticJar{{Name: "other", Value: "x", Domain: ".vrt.be"}}

	_, _, err := provider.persistSession(jar)
	if !errors.Is(err, ErrIdentityCookie) {
		t.Fatalf("persistSession error = %v, want ErrIdentityCookie", err)
	}

	// Cookies are still saved: they may carry refreshed values even when
	// the round-trip failed to produce an identity token.
	saved, loadErr := provider.store.Load(string(platform.VRTMax))
	if loadErr != nil {
		t.Fatalf("reload saved session: %v", loadErr)
	}
	if len(saved.Cookies) != 1 {
		t.Fatalf("saved %d cookies, want 1", len(saved.Cookies))
	}
}

func TestPersistSessionJarFailure(t *testing.T) {
	provider := testProvider(t)

	_, _, err := provider.persistSession(failingJar{})
	if err == nil {
		t.Fatal("expected error from failing cookie source")
	}
}
