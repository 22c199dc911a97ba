package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	CookieDir string `toml:"cookie_dir"`
	StateDir  string `toml:"state_dir"`
	LogDir    string `toml:"log_dir"`
}

// VRTMax contains credentials and endpoints for the VRT MAX platform.
type VRTMax struct {
	Email    string `toml:"email"`
	Password string `toml:"password"`
	// BaseURL is the site root the GraphQL API hangs off.
	BaseURL string `toml:"base_url"`
	// MediaBaseURL hosts the token-issuing and media-aggregator endpoints.
	MediaBaseURL string `toml:"media_base_url"`
	// PlayerJSURL is the player bundle the signing secret is recovered from.
	PlayerJSURL string `toml:"player_js_url"`
	// SeriesListID is the list identifier of the series search facet.
	SeriesListID   string `toml:"series_list_id"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Browser contains headless browser settings shared by platform drivers.
type Browser struct {
	Headless  bool   `toml:"headless"`
	ExecPath  string `toml:"exec_path"`
	UserAgent string `toml:"user_agent"`
	Locale    string `toml:"locale"`
	// ProbeTimeoutSeconds bounds DOM-presence probes (consent popup, login marker).
	ProbeTimeoutSeconds int `toml:"probe_timeout_seconds"`
}

// Queue contains configuration for the download-queue service boundary.
type Queue struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Zender.
//
// Configuration sections by subsystem:
//   - Paths: cookie store, state (catalog database), and log directories
//   - VRTMax: platform credentials and API endpoints
//   - Browser: headless browser used for authenticated sessions
//   - Queue: download-queue service the resolver can feed
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	VRTMax  VRTMax  `toml:"vrtmax"`
	Browser Browser `toml:"browser"`
	Queue   Queue   `toml:"queue"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/zender/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("zender.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the CLI needs before it can run.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CookieDir, c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CatalogDBPath returns the SQLite catalog database location inside the state directory.
func (c *Config) CatalogDBPath() string {
	return filepath.Join(c.Paths.StateDir, "catalog.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
