// Package service runs the startup pipeline (fetch, normalize, aggregate)
// and serves read-only lookups over the resulting dataset.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	repository "github.com/okian/wcdash/internal/adapters/repository"
	"github.com/okian/wcdash/internal/adapters/source"
	"github.com/okian/wcdash/internal/domain/aggregate"
	"github.com/okian/wcdash/internal/domain/dedupe"
	"github.com/okian/wcdash/internal/domain/normalize"
	"github.com/okian/wcdash/internal/domain/query"
	"github.com/okian/wcdash/internal/domain/types"
	"github.com/okian/wcdash/pkg/logger"
	"github.com/okian/wcdash/pkg/metrics"
)

// TableFetcher retrieves the raw finals table.
type TableFetcher interface {
	Fetch(ctx context.Context, url, marker string) (types.RawTable, error)
}

// Service owns the dataset and answers the dashboard's queries.
type Service struct {
	mu sync.RWMutex

	// Pipeline
	fetcher TableFetcher

	// Configuration
	sourceURL   string
	marker      string
	legacyNames map[string]string
	policy      dedupe.Policy

	// State
	dataset *repository.Dataset
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher replaces the source fetcher.
func WithFetcher(f TableFetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithSource sets the document URL and the header marker of the finals table.
func WithSource(url, marker string) Option {
	return func(s *Service) {
		if url != "" {
			s.sourceURL = url
		}
		if marker != "" {
			s.marker = marker
		}
	}
}

// WithLegacyNames sets the historical to current country name mapping.
func WithLegacyNames(names map[string]string) Option {
	return func(s *Service) {
		if names != nil {
			s.legacyNames = names
		}
	}
}

// WithDuplicatePolicy sets how repeated years in the source are handled.
func WithDuplicatePolicy(p dedupe.Policy) Option {
	return func(s *Service) {
		if p != "" {
			s.policy = p
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sourceURL:   "https://en.wikipedia.org/wiki/List_of_FIFA_World_Cup_finals",
		marker:      "Year",
		legacyNames: normalize.DefaultLegacyNames(),
		policy:      dedupe.PolicyFirst,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fetcher == nil {
		s.fetcher = source.New(source.WithLogger(s.logger))
	}
	return s
}

// Start fetches the source table and builds the dataset. Any failure is
// returned unchanged; the caller must not serve requests in that case.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "loading finals dataset",
		logger.String("url", s.sourceURL),
		logger.String("marker", s.marker),
	)

	start := time.Now()
	raw, err := s.fetcher.Fetch(ctx, s.sourceURL, s.marker)
	metrics.RecordFetchDuration(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordStartupError(startupErrorKind(err))
		return err
	}

	n := normalize.New(
		normalize.WithLegacyNames(s.legacyNames),
		normalize.WithDuplicatePolicy(s.policy),
		normalize.WithLogger(s.logger),
	)
	records, err := n.Normalize(ctx, raw)
	if err != nil {
		metrics.RecordStartupError(startupErrorKind(err))
		return err
	}

	ds := repository.NewDataset(records)
	standings := ds.Standings(ctx)
	if total := aggregate.Total(standings); total != ds.Count(ctx) {
		// WinCounts attributes exactly one win per record.
		s.logger.Warn(ctx, "win total does not match finals",
			logger.Int("wins", total),
			logger.Int("finals", ds.Count(ctx)),
		)
	}

	s.dataset = ds
	s.started = true
	metrics.UpdateDataset(ds.Count(ctx), len(standings), ds.LoadedAt().Unix())

	s.logger.Info(ctx, "finals dataset ready",
		logger.Int("sourceRows", len(raw.Rows)),
		logger.Int("finals", ds.Count(ctx)),
		logger.Int("countries", len(standings)),
		logger.Float64("elapsedMs", float64(time.Since(start).Milliseconds())),
	)
	return nil
}

// Stop releases the dataset.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.dataset = nil
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Dataset returns the loaded dataset or repository.ErrNotLoaded.
func (s *Service) Dataset() (*repository.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, repository.ErrNotLoaded
	}
	return s.dataset, nil
}

// Standings returns the map feed: every country with its win count.
func (s *Service) Standings(ctx context.Context) ([]types.CountryWinCount, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return ds.Standings(ctx), nil
}

// Countries returns the country selector values.
func (s *Service) Countries(ctx context.Context) ([]string, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return ds.Countries(ctx), nil
}

// Years returns the year selector values, ascending.
func (s *Service) Years(ctx context.Context) ([]int, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return ds.Years(ctx), nil
}

// Finals returns the normalized finals table.
func (s *Service) Finals(ctx context.Context) ([]types.MatchRecord, error) {
	ds, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return ds.Finals(ctx), nil
}

// CountryStats answers the country selector.
func (s *Service) CountryStats(_ context.Context, country string) (query.CountryResult, error) {
	ds, err := s.Dataset()
	if err != nil {
		return query.CountryResult{}, err
	}
	res := query.Country(ds, country)
	metrics.RecordQuery("country", string(res.Status))
	return res, nil
}

// YearStats answers the year selector. A nil year means nothing is selected.
func (s *Service) YearStats(_ context.Context, year *int) (query.YearResult, error) {
	ds, err := s.Dataset()
	if err != nil {
		return query.YearResult{}, err
	}
	res := query.Year(ds, year)
	metrics.RecordQuery("year", string(res.Status))
	return res, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":   s.started,
		"sourceURL": s.sourceURL,
		"marker":    s.marker,
		"policy":    string(s.policy),
	}
	if s.dataset != nil {
		ctx := context.Background()
		years := s.dataset.Years(ctx)
		stats["finals"] = s.dataset.Count(ctx)
		stats["countries"] = len(s.dataset.Countries(ctx))
		stats["loadedAt"] = s.dataset.LoadedAt().UTC().Format(time.RFC3339)
		if len(years) > 0 {
			stats["firstYear"] = years[0]
			stats["lastYear"] = years[len(years)-1]
		}
	}
	return stats
}

// startupErrorKind labels a startup failure for metrics.
func startupErrorKind(err error) string {
	switch {
	case errors.Is(err, source.ErrFetch):
		return "fetch"
	case errors.Is(err, source.ErrTableNotFound):
		return "not_found"
	case errors.Is(err, normalize.ErrSchema):
		return "schema"
	case errors.Is(err, normalize.ErrDuplicateYear):
		return "duplicate_year"
	default:
		return "other"
	}
}
