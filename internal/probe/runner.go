// Package probe checks a running dashboard end to end: it reads every feed,
// queries every selector value and verifies the answers agree.
package probe

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/okian/wcdash/internal/domain/query"
	"github.com/okian/wcdash/pkg/logger"
)

// Run executes the complete probe and writes the standings table to out.
func Run(ctx context.Context, config *Config, out io.Writer) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	if config.Workers < 1 {
		config.Workers = 1
	}

	logger.Get().Info(ctx, "starting dashboard probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Bool("verbose", config.Verbose))

	client := NewClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.Health(ctx); err != nil {
		return stats, err
	}

	// Step 2: Read the feeds
	snap, err := client.Snapshot(ctx)
	if err != nil {
		return stats, fmt.Errorf("snapshot failed: %w", err)
	}
	logger.Get().Info(ctx, "snapshot read",
		logger.Int("finals", len(snap.Finals)),
		logger.Int("countries", len(snap.Countries)),
		logger.Int("years", len(snap.Years)))

	// Step 3: Verify invariants
	failures := verifySnapshot(snap, config, stats)

	// Step 4: Empty and unknown selections
	failures = append(failures, checkEmptySelections(ctx, client)...)

	// Step 5: Query every selector value concurrently
	failures = append(failures, runLookups(ctx, config, client, snap, stats)...)

	// Step 6: Report
	if out != nil {
		if err := WriteStandings(out, snap.Wins); err != nil {
			logger.Get().Warn(ctx, "failed to write standings", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if len(failures) > 0 {
		for _, f := range failures {
			logger.Get().Error(ctx, "check failed", logger.String("detail", f))
		}
		return stats, &VerificationError{Failures: failures}
	}
	logger.Get().Info(ctx, "probe completed successfully")
	return stats, nil
}

// checkEmptySelections confirms unset selections display nothing and
// unknown ones display the no-data text.
func checkEmptySelections(ctx context.Context, c *Client) []string {
	var failures []string
	expect := func(what string, res Lookup, err error, status query.Status, text string) {
		switch {
		case err != nil:
			failures = append(failures, fmt.Sprintf("%s: %v", what, err))
		case res.Status != status || res.Text != text:
			failures = append(failures, fmt.Sprintf("%s: got %s %q", what, res.Status, res.Text))
		}
	}

	res, err := c.Country(ctx, "")
	expect("empty country", res, err, query.StatusEmpty, "")
	res, err = c.Year(ctx, 0)
	expect("empty year", res, err, query.StatusEmpty, "")
	res, err = c.Country(ctx, probeMissingCountry)
	expect("unknown country", res, err, query.StatusNoData, query.NoCountryData)
	res, err = c.Year(ctx, probeMissingYear)
	expect("unknown year", res, err, query.StatusNoData, query.NoYearData)
	return failures
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("lookupsSent", stats.LookupsSent),
		logger.Int("lookupsFound", stats.LookupsFound),
		logger.Int("lookupsMismatch", stats.LookupsMismatch),
		logger.Int("lookupsFailed", stats.LookupsFailed),
		logger.Int("invariantsPassed", stats.InvariantsPassed),
		logger.String("duration", stats.Duration.String()))
}
