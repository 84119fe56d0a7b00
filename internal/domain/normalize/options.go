package normalize

import (
	"github.com/okian/wcdash/internal/domain/dedupe"
	"github.com/okian/wcdash/pkg/logger"
)

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithLegacyNames replaces the legacy name mapping. A nil map disables rewrites.
func WithLegacyNames(names map[string]string) Option {
	return func(n *Normalizer) {
		n.legacy = LegacyNames(names).Clone()
	}
}

// WithDuplicatePolicy sets how repeated years are handled.
func WithDuplicatePolicy(p dedupe.Policy) Option {
	return func(n *Normalizer) {
		if p != "" {
			n.policy = p
		}
	}
}

// WithLogger sets the logger used for dropped-row diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}
