// Package testsupport provides helpers shared by package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"zender/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CookieDir = filepath.Join(base, "cookies")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.VRTMax.Email = "tester@example.test"
	cfg.VRTMax.Password = "hunter2"
	cfg.Queue.URL = "http://127.0.0.1:0/queue"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithCredentials sets the platform credentials on the test config.
func WithCredentials(email, password string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.VRTMax.Email = email
		cfg.VRTMax.Password = password
	}
}

// WithEndpoints points the platform URLs at a test server.
func WithEndpoints(baseURL string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.VRTMax.BaseURL = baseURL
		cfg.VRTMax.MediaBaseURL = baseURL
		cfg.VRTMax.PlayerJSURL = baseURL + "/player.js"
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CookieDir)
}
