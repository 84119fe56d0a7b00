package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. WCDASH_ADDR.
const EnvPrefix = "WCDASH_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if WCDASH_CONFIG is set
//  3. env (prefix WCDASH_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// WCDASH_SOURCE_URL -> source_url. Keys stay flat so underscores match
	// the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	// A file-provided map replaces the default one instead of merging into it.
	if k.Exists("legacy_names") {
		cfg.LegacyNames = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the service cannot start without.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.SourceURL == "" {
		return fmt.Errorf("%w: source_url must not be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(c.SourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: source_url must be an absolute http(s) URL", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.TableMarker) == "" {
		return fmt.Errorf("%w: table_marker must not be empty", ErrInvalidConfig)
	}
	if c.FetchTimeoutMS < 0 {
		return fmt.Errorf("%w: fetch_timeout_ms must not be negative", ErrInvalidConfig)
	}
	switch c.DuplicateYears {
	case "first", "reject":
	default:
		return fmt.Errorf("%w: duplicate_years must be first or reject, got %q", ErrInvalidConfig, c.DuplicateYears)
	}
	for from, to := range c.LegacyNames {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("%w: legacy_names entries must not be empty", ErrInvalidConfig)
		}
	}
	return nil
}
