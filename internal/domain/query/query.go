// Package query answers the dashboard's country and year lookups. Both
// lookups are pure functions of the selection and a read-only Source.
package query

import (
	"fmt"

	"github.com/okian/wcdash/internal/domain/types"
)

// Status classifies a lookup outcome.
type Status string

const (
	// StatusEmpty means nothing was selected; nothing is displayed.
	StatusEmpty Status = "empty"
	// StatusNoData means the selection is not in the dataset.
	StatusNoData Status = "no_data"
	// StatusFound means the selection matched.
	StatusFound Status = "found"
)

// Texts shown for selections without data.
const (
	NoCountryData = "No data available."
	NoYearData    = "No data available for this year."
)

// Source is the read-only view of the dataset used by lookups.
type Source interface {
	Wins(country string) (int, bool)
	Final(year int) (types.MatchRecord, bool)
}

// CountryResult is the outcome of a country lookup.
type CountryResult struct {
	Status  Status `json:"status"`
	Text    string `json:"text"`
	Country string `json:"country,omitempty"`
	Wins    int    `json:"wins,omitempty"`
}

// YearResult is the outcome of a year lookup.
type YearResult struct {
	Status Status             `json:"status"`
	Text   string             `json:"text"`
	Final  *types.MatchRecord `json:"final,omitempty"`
}

// Country looks up how many finals country has won. An empty name yields
// StatusEmpty.
func Country(src Source, country string) CountryResult {
	if country == "" {
		return CountryResult{Status: StatusEmpty}
	}
	wins, ok := src.Wins(country)
	if !ok {
		return CountryResult{Status: StatusNoData, Text: NoCountryData, Country: country}
	}
	return CountryResult{
		Status:  StatusFound,
		Text:    fmt.Sprintf("%s has won %d World Cup(s).", country, wins),
		Country: country,
		Wins:    wins,
	}
}

// Year looks up the final played in year. A nil or zero year yields
// StatusEmpty.
func Year(src Source, year *int) YearResult {
	if year == nil || *year == 0 {
		return YearResult{Status: StatusEmpty}
	}
	rec, ok := src.Final(*year)
	if !ok {
		return YearResult{Status: StatusNoData, Text: NoYearData}
	}
	return YearResult{
		Status: StatusFound,
		Text:   fmt.Sprintf("In %d, %s won and %s was the runner-up.", rec.Year, rec.Winner, rec.RunnerUp),
		Final:  &rec,
	}
}
