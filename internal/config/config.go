// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and WCDASH_ env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address.
	Addr string `koanf:"addr"`

	// SourceURL is the document holding the finals table.
	SourceURL string `koanf:"source_url"`

	// TableMarker is matched against header cells to pick the finals table.
	TableMarker string `koanf:"table_marker"`

	// FetchTimeoutMS bounds the source fetch. Zero disables the timeout.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// UserAgent is sent with the source request.
	UserAgent string `koanf:"user_agent"`

	// LegacyNames maps historical country names to their current spelling.
	LegacyNames map[string]string `koanf:"legacy_names"`

	// DuplicateYears selects how repeated years are handled: first or reject.
	DuplicateYears string `koanf:"duplicate_years"`
}

// Defaults.
const (
	DefaultAddr        = "0.0.0.0:8080"
	DefaultSourceURL   = "https://en.wikipedia.org/wiki/List_of_FIFA_World_Cup_finals"
	DefaultTableMarker = "Year"
	DefaultUserAgent   = "wcdash/1.0 (+https://github.com/okian/wcdash)"
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           DefaultAddr,
		SourceURL:      DefaultSourceURL,
		TableMarker:    DefaultTableMarker,
		FetchTimeoutMS: 0,
		UserAgent:      DefaultUserAgent,
		LegacyNames: map[string]string{
			"West Germany": "Germany",
		},
		DuplicateYears: "first",
	}
}
