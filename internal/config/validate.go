package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
//
// Platform credentials are deliberately not validated here: they are only
// required once a login flow actually needs to submit them, and the session
// provider checks for them before touching the network.
func (c *Config) Validate() error {
	if err := c.validateVRTMax(); err != nil {
		return err
	}
	if err := c.validateQueue(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVRTMax() error {
	for field, value := range map[string]string{
		"vrtmax.base_url":       c.VRTMax.BaseURL,
		"vrtmax.media_base_url": c.VRTMax.MediaBaseURL,
		"vrtmax.player_js_url":  c.VRTMax.PlayerJSURL,
	} {
		parsed, err := url.Parse(value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", field, value)
		}
	}
	return nil
}

func (c *Config) validateQueue() error {
	if strings.TrimSpace(c.Queue.URL) == "" {
		return nil
	}
	parsed, err := url.Parse(c.Queue.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("queue.url must be an absolute URL, got %q", c.Queue.URL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug/info/warn/error, got %q", c.Logging.Level)
	}
	return nil
}
