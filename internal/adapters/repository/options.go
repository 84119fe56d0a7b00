package repository

import "time"

// Option applies a configuration option to the Dataset.
type Option func(*Dataset)

// WithLoadedAt overrides the build timestamp.
func WithLoadedAt(t time.Time) Option {
	return func(d *Dataset) {
		if !t.IsZero() {
			d.loadedAt = t
		}
	}
}
