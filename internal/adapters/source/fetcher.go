// Package source retrieves the finals table from a remote HTML document.
package source

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/okian/wcdash/internal/domain/types"
	"github.com/okian/wcdash/pkg/logger"
)

const defaultUserAgent = "wcdash/1.0"

// Fetcher downloads a document and extracts a table from it. Requests are
// never retried.
type Fetcher struct {
	client    *resty.Client
	timeout   time.Duration
	userAgent string
	logger    logger.Logger
}

// New creates a Fetcher with no timeout.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    resty.New(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client.
		SetRetryCount(0).
		SetTimeout(f.timeout).
		SetHeader("User-Agent", f.userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")
	return f
}

// Fetch returns the first table in the document at url whose header row
// contains marker.
func (f *Fetcher) Fetch(ctx context.Context, url, marker string) (types.RawTable, error) {
	if f.logger != nil {
		f.logger.Info(ctx, "fetching source document", logger.String("url", url))
	}

	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return types.RawTable{}, &FetchError{URL: url, Err: err}
	}
	if res.IsError() {
		return types.RawTable{}, &FetchError{URL: url, Status: res.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return types.RawTable{}, &FetchError{URL: url, Err: err}
	}

	table, ok := FindTable(doc, marker)
	if !ok {
		return types.RawTable{}, &NotFoundError{URL: url, Marker: marker}
	}

	if f.logger != nil {
		f.logger.Info(ctx, "source table located",
			logger.Int("columns", table.Columns()),
			logger.Int("rows", len(table.Rows)),
		)
	}
	return table, nil
}
