package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zender/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.VRTMax.BaseURL != "https://www.vrt.be" {
		t.Fatalf("unexpected default base url: %q", cfg.VRTMax.BaseURL)
	}
	if !cfg.Browser.Headless {
		t.Fatal("expected headless default to be true")
	}
	if cfg.Browser.ProbeTimeoutSeconds != 2 {
		t.Fatalf("probe timeout default = %d, want 2", cfg.Browser.ProbeTimeoutSeconds)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
cookie_dir = "` + filepath.Join(dir, "cookies") + `"

[vrtmax]
email = "  user@example.com  "
base_url = "https://www.vrt.be/"

[queue]
url = "https://queue.example/api/"

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.VRTMax.Email != "user@example.com" {
		t.Fatalf("email not trimmed: %q", cfg.VRTMax.Email)
	}
	if strings.HasSuffix(cfg.VRTMax.BaseURL, "/") {
		t.Fatalf("base url not trimmed: %q", cfg.VRTMax.BaseURL)
	}
	if cfg.Queue.URL != "https://queue.example/api" {
		t.Fatalf("queue url = %q", cfg.Queue.URL)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestLoadRejectsRelativeQueueURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[queue]\nurl = \"queue.example\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for relative queue url")
	}
}

func TestCredentialEnvOverrides(t *testing.T) {
	t.Setenv("ZENDER_VRTMAX_EMAIL", "env@example.com")
	t.Setenv("ZENDER_VRTMAX_PASSWORD", "hunter2")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[vrtmax]\nemail = \"file@example.com\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.VRTMax.Email != "env@example.com" {
		t.Fatalf("email = %q, want env override", cfg.VRTMax.Email)
	}
	if cfg.VRTMax.Password != "hunter2" {
		t.Fatalf("password not taken from env")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[vrtmax]") {
		t.Fatal("sample config missing vrtmax section")
	}
}
