package probe

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	"github.com/okian/wcdash/internal/domain/query"
	"github.com/okian/wcdash/pkg/logger"
)

// Client talks to a running dashboard.
type Client struct {
	rc *resty.Client
}

// NewClient creates a client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		rc: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// getJSON decodes the body as JSON whatever Content-Type the server sent;
// resty would otherwise leave out untouched and report no error.
func (c *Client) getJSON(ctx context.Context, path string, params map[string]string, out any) error {
	res, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(params).
		ForceContentType("application/json").
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if res.IsError() {
		return fmt.Errorf("GET %s: status %d", path, res.StatusCode())
	}
	return nil
}

// Health checks the metrics endpoint answers 200.
func (c *Client) Health(ctx context.Context) error {
	res, err := c.rc.R().SetContext(ctx).Get("/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if res.StatusCode() != StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, res.StatusCode())
	}
	return nil
}

// Snapshot reads the map feed, both selector value sets and the finals
// table concurrently. The first failure cancels the rest.
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	s := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.getJSON(gctx, "/api/wins", nil, &s.Wins) })
	g.Go(func() error { return c.getJSON(gctx, "/api/countries", nil, &s.Countries) })
	g.Go(func() error { return c.getJSON(gctx, "/api/years", nil, &s.Years) })
	g.Go(func() error { return c.getJSON(gctx, "/api/finals", nil, &s.Finals) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}

// Country performs a country lookup. An empty name is sent as no parameter.
func (c *Client) Country(ctx context.Context, name string) (Lookup, error) {
	var out Lookup
	params := map[string]string{}
	if name != "" {
		params["name"] = name
	}
	err := c.getJSON(ctx, "/api/country", params, &out)
	return out, err
}

// Year performs a year lookup. Zero is sent as no parameter.
func (c *Client) Year(ctx context.Context, year int) (Lookup, error) {
	var out Lookup
	params := map[string]string{}
	if year != 0 {
		params["year"] = strconv.Itoa(year)
	}
	err := c.getJSON(ctx, "/api/year", params, &out)
	return out, err
}

// lookupJob is one selector value to query.
type lookupJob struct {
	country string
	year    int
}

// runLookups queries every country and year concurrently and checks each
// answer against the snapshot. It returns one failure line per mismatch.
func runLookups(ctx context.Context, cfg *Config, c *Client, snap *Snapshot, stats *Stats) []string {
	wins := make(map[string]int, len(snap.Wins))
	for _, w := range snap.Wins {
		wins[w.Country] = w.Wins
	}
	finals := make(map[int]Final, len(snap.Finals))
	for _, f := range snap.Finals {
		if _, ok := finals[f.Year]; !ok {
			finals[f.Year] = f
		}
	}

	var (
		sent, found, mismatch, failed int64
		mu                            sync.Mutex
		failures                      []string
	)
	fail := func(format string, args ...any) {
		mu.Lock()
		failures = append(failures, fmt.Sprintf(format, args...))
		mu.Unlock()
	}

	jobs := make(chan lookupJob, cfg.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				atomic.AddInt64(&sent, 1)
				var (
					res Lookup
					err error
				)
				if job.country != "" {
					res, err = c.Country(ctx, job.country)
				} else {
					res, err = c.Year(ctx, job.year)
				}
				if err != nil {
					atomic.AddInt64(&failed, 1)
					fail("%v", err)
					continue
				}
				if cfg.Verbose {
					logger.Get().Info(ctx, "lookup", logger.String("country", job.country), logger.Int("year", job.year), logger.String("text", res.Text))
				}
				if res.Status != query.StatusFound {
					atomic.AddInt64(&mismatch, 1)
					fail("lookup %q/%d: status %s", job.country, job.year, res.Status)
					continue
				}
				if job.country != "" && res.Wins != wins[job.country] {
					atomic.AddInt64(&mismatch, 1)
					fail("country %s: lookup says %d wins, map feed says %d", job.country, res.Wins, wins[job.country])
					continue
				}
				if job.year != 0 && (res.Final == nil || *res.Final != finals[job.year]) {
					atomic.AddInt64(&mismatch, 1)
					fail("year %d: lookup does not match the finals table", job.year)
					continue
				}
				atomic.AddInt64(&found, 1)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, name := range snap.Countries {
			select {
			case <-ctx.Done():
				return
			case jobs <- lookupJob{country: name}:
			}
		}
		for _, y := range snap.Years {
			select {
			case <-ctx.Done():
				return
			case jobs <- lookupJob{year: y}:
			}
		}
	}()
	wg.Wait()

	stats.LookupsSent = int(atomic.LoadInt64(&sent))
	stats.LookupsFound = int(atomic.LoadInt64(&found))
	stats.LookupsMismatch = int(atomic.LoadInt64(&mismatch))
	stats.LookupsFailed = int(atomic.LoadInt64(&failed))
	return failures
}
