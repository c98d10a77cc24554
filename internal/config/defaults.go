package config

const (
	defaultConfigPath      = "~/.config/vnrename/config.toml"
	projectConfigName      = "vnrename.toml"
	defaultStateDir        = "~/.local/share/vnrename"
	defaultLogDir          = "~/.local/share/vnrename/logs"
	defaultVNDBBaseURL     = "https://api.vndb.org/kana"
	defaultVNDBTimeout     = 10
	defaultVNDBUserAgent   = "vnrename/dev"
	defaultCandidateLimit  = 5
	minCandidateLimit      = 1
	maxCandidateLimit      = 20
	defaultLogFormat       = "console"
	defaultLogLevel        = "warn"
	defaultNarrowOnEmpty   = true
	defaultSanitizeNames   = true
	defaultCreateShortcuts = false
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		VNDB: VNDB{
			BaseURL:        defaultVNDBBaseURL,
			TimeoutSeconds: defaultVNDBTimeout,
			UserAgent:      defaultVNDBUserAgent,
		},
		Search: Search{
			CandidateLimit: defaultCandidateLimit,
			NarrowOnEmpty:  defaultNarrowOnEmpty,
		},
		Naming: Naming{
			Sanitize:       defaultSanitizeNames,
			CreateShortcut: defaultCreateShortcuts,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
