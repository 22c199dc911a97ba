package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVRTMax()
	c.normalizeBrowser()
	c.normalizeQueue()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CookieDir) == "" {
		c.Paths.CookieDir = defaultCookieDir
	}
	if c.Paths.CookieDir, err = expandPath(c.Paths.CookieDir); err != nil {
		return fmt.Errorf("paths.cookie_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVRTMax() {
	if value, ok := os.LookupEnv("ZENDER_VRTMAX_EMAIL"); ok && strings.TrimSpace(value) != "" {
		c.VRTMax.Email = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("ZENDER_VRTMAX_PASSWORD"); ok && value != "" {
		c.VRTMax.Password = value
	}
	c.VRTMax.Email = strings.TrimSpace(c.VRTMax.Email)
	c.VRTMax.BaseURL = strings.TrimRight(strings.TrimSpace(c.VRTMax.BaseURL), "/")
	if c.VRTMax.BaseURL == "" {
		c.VRTMax.BaseURL = defaultVRTBaseURL
	}
	c.VRTMax.MediaBaseURL = strings.TrimRight(strings.TrimSpace(c.VRTMax.MediaBaseURL), "/")
	if c.VRTMax.MediaBaseURL == "" {
		c.VRTMax.MediaBaseURL = defaultVRTMediaBaseURL
	}
	c.VRTMax.PlayerJSURL = strings.TrimSpace(c.VRTMax.PlayerJSURL)
	if c.VRTMax.PlayerJSURL == "" {
		c.VRTMax.PlayerJSURL = defaultVRTPlayerJSURL
	}
	c.VRTMax.SeriesListID = strings.TrimSpace(c.VRTMax.SeriesListID)
	if c.VRTMax.SeriesListID == "" {
		c.VRTMax.SeriesListID = defaultVRTSeriesListID
	}
	if c.VRTMax.TimeoutSeconds <= 0 {
		c.VRTMax.TimeoutSeconds = defaultVRTTimeoutSeconds
	}
}

func (c *Config) normalizeBrowser() {
	c.Browser.ExecPath = strings.TrimSpace(c.Browser.ExecPath)
	c.Browser.UserAgent = strings.TrimSpace(c.Browser.UserAgent)
	if c.Browser.UserAgent == "" {
		c.Browser.UserAgent = defaultBrowserUserAgent
	}
	c.Browser.Locale = strings.TrimSpace(c.Browser.Locale)
	if c.Browser.Locale == "" {
		c.Browser.Locale = defaultBrowserLocale
	}
	if c.Browser.ProbeTimeoutSeconds <= 0 {
		c.Browser.ProbeTimeoutSeconds = defaultProbeTimeoutSeconds
	}
}

func (c *Config) normalizeQueue() {
	c.Queue.URL = strings.TrimRight(strings.TrimSpace(c.Queue.URL), "/")
	if c.Queue.TimeoutSeconds <= 0 {
		c.Queue.TimeoutSeconds = defaultQueueTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
