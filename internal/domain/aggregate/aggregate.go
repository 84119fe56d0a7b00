// Package aggregate derives per-country win counts from normalized finals.
package aggregate

import (
	"sort"

	"github.com/okian/wcdash/internal/domain/types"
)

// WinCounts returns one entry per distinct winner ordered by descending
// wins. Countries with equal wins keep the order in which they first appear
// in records. An empty input yields an empty, non-nil slice.
func WinCounts(records []types.MatchRecord) []types.CountryWinCount {
	index := make(map[string]int, len(records))
	counts := make([]types.CountryWinCount, 0)

	for _, r := range records {
		if i, ok := index[r.Winner]; ok {
			counts[i].Wins++
			continue
		}
		index[r.Winner] = len(counts)
		counts = append(counts, types.CountryWinCount{Country: r.Winner, Wins: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Wins > counts[j].Wins
	})
	return counts
}

// Total sums the wins of counts.
func Total(counts []types.CountryWinCount) int {
	n := 0
	for _, c := range counts {
		n += c.Wins
	}
	return n
}
