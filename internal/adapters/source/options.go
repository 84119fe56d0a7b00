package source

import (
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/okian/wcdash/pkg/logger"
)

// Option applies a configuration option to the Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each fetch. Zero leaves the request unbounded.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with the request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithClient replaces the underlying resty client.
func WithClient(c *resty.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}
