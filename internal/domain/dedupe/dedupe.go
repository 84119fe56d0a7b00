// Package dedupe tracks which final years have been seen and decides what
// happens to repeats.
package dedupe

import (
	"context"
	"fmt"
)

// Policy selects how a repeated year is handled.
type Policy string

const (
	// PolicyFirst keeps the first occurrence and drops later ones.
	PolicyFirst Policy = "first"
	// PolicyReject fails normalization on the first repeat.
	PolicyReject Policy = "reject"
)

// ParsePolicy converts a configuration value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyFirst, PolicyReject:
		return Policy(s), nil
	case "":
		return PolicyFirst, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Deduper records seen years.
type Deduper interface {
	// SeenAndRecord reports whether year was already seen and records it if not.
	SeenAndRecord(ctx context.Context, year int) bool

	// Size returns the number of distinct years recorded.
	Size() int
}

// yearSet implements Deduper for a single normalization pass. It is not
// safe for concurrent use; normalization runs once on the startup goroutine.
type yearSet struct {
	seen map[int]struct{}
}

// NewYearSet creates an empty Deduper.
func NewYearSet(opts ...Option) Deduper {
	d := &yearSet{}
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	d.seen = make(map[int]struct{}, cfg.capacity)
	return d
}

func (d *yearSet) SeenAndRecord(_ context.Context, year int) bool {
	if _, ok := d.seen[year]; ok {
		return true
	}
	d.seen[year] = struct{}{}
	return false
}

func (d *yearSet) Size() int {
	return len(d.seen)
}
