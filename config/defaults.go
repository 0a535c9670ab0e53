package config

const (
	defaultConfigPath       = "~/.config/jukestrip/config.toml"
	projectConfigName       = "jukestrip.toml"
	defaultDiscogsBaseURL   = "https://api.discogs.com"
	defaultDiscogsUserAgent = "jukestrip/1.0"
	defaultDiscogsTimeout   = 30
	defaultConcurrency      = 4
	maxConcurrency          = 16
	defaultCachePath        = "~/.cache/jukestrip/catalog.db"
	defaultCacheMaxAgeHours = 24 * 30
	defaultOutputPath       = "jukebox_labels.pdf"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	discogsTokenEnv         = "DISCOGS_USER_TOKEN"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Discogs: Discogs{
			UserAgent:      defaultDiscogsUserAgent,
			BaseURL:        defaultDiscogsBaseURL,
			TimeoutSeconds: defaultDiscogsTimeout,
		},
		Catalog: Catalog{
			Concurrency: defaultConcurrency,
		},
		Cache: Cache{
			Enabled:     true,
			Path:        defaultCachePath,
			MaxAgeHours: defaultCacheMaxAgeHours,
		},
		Layout: Layout{
			StripBrackets: true,
		},
		Output: Output{
			Path: defaultOutputPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
