package probe

import (
	"fmt"
	"sort"
)

// check is one named invariant over a snapshot. It returns an empty
// string on success.
type check struct {
	name string
	fn   func(*Snapshot, *Config) string
}

var checks = []check{
	{"wins sum to finals", checkWinTotal},
	{"map feed sorted by wins", checkSorted},
	{"countries follow map feed", checkCountryOrder},
	{"years ascending and distinct", checkYears},
	{"years match finals", checkYearsCoverFinals},
	{"no legacy names", checkLegacyNames},
}

// verifySnapshot runs every invariant and returns the failures.
func verifySnapshot(snap *Snapshot, cfg *Config, stats *Stats) []string {
	var failures []string
	for _, c := range checks {
		if msg := c.fn(snap, cfg); msg != "" {
			failures = append(failures, c.name+": "+msg)
			continue
		}
		stats.InvariantsPassed++
	}
	return failures
}

func checkWinTotal(s *Snapshot, _ *Config) string {
	total := 0
	for _, w := range s.Wins {
		total += w.Wins
	}
	if total != len(s.Finals) {
		return fmt.Sprintf("total %d, finals %d", total, len(s.Finals))
	}
	return ""
}

func checkSorted(s *Snapshot, _ *Config) string {
	for i := 1; i < len(s.Wins); i++ {
		if s.Wins[i].Wins > s.Wins[i-1].Wins {
			return fmt.Sprintf("entry %d (%s) outranks entry %d (%s)", i, s.Wins[i].Country, i-1, s.Wins[i-1].Country)
		}
	}
	return ""
}

func checkCountryOrder(s *Snapshot, _ *Config) string {
	if len(s.Countries) != len(s.Wins) {
		return fmt.Sprintf("%d countries, %d map entries", len(s.Countries), len(s.Wins))
	}
	for i, c := range s.Countries {
		if c != s.Wins[i].Country {
			return fmt.Sprintf("position %d: %s != %s", i, c, s.Wins[i].Country)
		}
	}
	return ""
}

func checkYears(s *Snapshot, _ *Config) string {
	if !sort.IntsAreSorted(s.Years) {
		return "not ascending"
	}
	for i := 1; i < len(s.Years); i++ {
		if s.Years[i] == s.Years[i-1] {
			return fmt.Sprintf("%d repeated", s.Years[i])
		}
	}
	return ""
}

func checkYearsCoverFinals(s *Snapshot, _ *Config) string {
	seen := make(map[int]bool, len(s.Years))
	for _, y := range s.Years {
		seen[y] = true
	}
	distinct := make(map[int]bool, len(s.Finals))
	for _, f := range s.Finals {
		if !seen[f.Year] {
			return fmt.Sprintf("final %d missing from year selector", f.Year)
		}
		distinct[f.Year] = true
	}
	if len(distinct) != len(s.Years) {
		return fmt.Sprintf("%d selector years, %d final years", len(s.Years), len(distinct))
	}
	return ""
}

func checkLegacyNames(s *Snapshot, cfg *Config) string {
	legacy := make(map[string]bool, len(cfg.LegacyNames))
	for _, n := range cfg.LegacyNames {
		legacy[n] = true
	}
	for _, f := range s.Finals {
		if legacy[f.Winner] || legacy[f.RunnerUp] {
			return fmt.Sprintf("%d final still names %s/%s", f.Year, f.Winner, f.RunnerUp)
		}
	}
	return ""
}
