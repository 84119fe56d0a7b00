// Package normalize reshapes a scraped finals table into MatchRecords.
package normalize

import (
	"context"
	"strconv"
	"strings"

	"github.com/okian/wcdash/internal/domain/dedupe"
	"github.com/okian/wcdash/internal/domain/types"
	"github.com/okian/wcdash/pkg/logger"
	"github.com/okian/wcdash/pkg/metrics"
)

// Schema lists the positional column names applied to the source table.
var Schema = []string{"Year", "Winners", "Score", "Runners-up", "Venue", "Attendance"}

// Positions of the projected columns within Schema.
const (
	colYear     = 0
	colWinner   = 1
	colRunnerUp = 3
)

// Dropped-row reasons, also used as metric labels.
const (
	ReasonInvalidYear   = "invalid_year"
	ReasonMissingWinner = "missing_winner"
	ReasonDuplicateYear = "duplicate_year"
)

// Normalizer turns a RawTable into MatchRecords.
type Normalizer struct {
	legacy LegacyNames
	policy dedupe.Policy
	logger logger.Logger
}

// New creates a Normalizer with the default legacy names and first-wins
// duplicate policy.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		legacy: DefaultLegacyNames(),
		policy: dedupe.PolicyFirst,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize projects the table to {Year, Winners, Runners-up}, drops rows
// whose year is not a 4-digit integer and rewrites legacy country names.
// Output order follows the source rows.
func (n *Normalizer) Normalize(ctx context.Context, raw types.RawTable) ([]types.MatchRecord, error) {
	if cols := raw.Columns(); cols < len(Schema) {
		return nil, &SchemaError{Columns: cols, Want: len(Schema)}
	}

	years := dedupe.NewYearSet(dedupe.WithCapacity(len(raw.Rows)))
	records := make([]types.MatchRecord, 0, len(raw.Rows))

	for i, row := range raw.Rows {
		year, ok := ParseYear(cell(row, colYear))
		if !ok {
			n.drop(ctx, i, ReasonInvalidYear, row)
			continue
		}
		winner := strings.TrimSpace(cell(row, colWinner))
		if winner == "" {
			n.drop(ctx, i, ReasonMissingWinner, row)
			continue
		}
		if years.SeenAndRecord(ctx, year) {
			if n.policy == dedupe.PolicyReject {
				return nil, &DuplicateYearError{Year: year}
			}
			n.drop(ctx, i, ReasonDuplicateYear, row)
			continue
		}

		records = append(records, types.MatchRecord{
			Year:     year,
			Winner:   n.rewrite(winner),
			RunnerUp: n.rewrite(strings.TrimSpace(cell(row, colRunnerUp))),
		})
	}
	return records, nil
}

// Rewrite applies the legacy name mapping to every country field of records,
// returning a new slice.
func (n *Normalizer) Rewrite(records []types.MatchRecord) []types.MatchRecord {
	out := make([]types.MatchRecord, len(records))
	for i, r := range records {
		out[i] = types.MatchRecord{
			Year:     r.Year,
			Winner:   n.rewrite(r.Winner),
			RunnerUp: n.rewrite(r.RunnerUp),
		}
	}
	return out
}

func (n *Normalizer) rewrite(name string) string {
	to, changed := n.legacy.Rewrite(name)
	if changed {
		metrics.RecordLegacyRewrite()
	}
	return to
}

func (n *Normalizer) drop(ctx context.Context, index int, reason string, row []string) {
	metrics.RecordDroppedRow(reason)
	if n.logger != nil {
		n.logger.Debug(ctx, "dropping source row",
			logger.Int("row", index),
			logger.String("reason", reason),
			logger.Any("cells", row),
		)
	}
}

// ParseYear accepts exactly four ASCII digits, ignoring surrounding space.
func ParseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
