package config

const (
	defaultCookieDir           = "~/.local/share/zender/cookies"
	defaultStateDir            = "~/.local/share/zender/state"
	defaultLogDir              = "~/.local/share/zender/logs"
	defaultVRTBaseURL          = "https://www.vrt.be"
	defaultVRTMediaBaseURL     = "https://media-services-public.vrt.be"
	defaultVRTPlayerJSURL      = "https://player.vrt.be/vrtnu/js/main.js"
	defaultVRTSeriesListID     = "dynamic:/vrtnu/a-z.model.json@az-tile-list"
	defaultVRTTimeoutSeconds   = 30
	defaultBrowserHeadless     = true
	defaultBrowserLocale       = "nl-BE"
	defaultBrowserUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36 OPR/107.0.0.0"
	defaultProbeTimeoutSeconds = 2
	defaultQueueTimeoutSeconds = 15
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CookieDir: defaultCookieDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		VRTMax: VRTMax{
			BaseURL:        defaultVRTBaseURL,
			MediaBaseURL:   defaultVRTMediaBaseURL,
			PlayerJSURL:    defaultVRTPlayerJSURL,
			SeriesListID:   defaultVRTSeriesListID,
			TimeoutSeconds: defaultVRTTimeoutSeconds,
		},
		Browser: Browser{
			Headless:            defaultBrowserHeadless,
			UserAgent:           defaultBrowserUserAgent,
			Locale:              defaultBrowserLocale,
			ProbeTimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		Queue: Queue{
			TimeoutSeconds: defaultQueueTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
