// Package repository holds the immutable in-memory dataset served by the
// dashboard.
package repository

import (
	"context"
	"sort"
	"time"

	"github.com/okian/wcdash/internal/domain/aggregate"
	"github.com/okian/wcdash/internal/domain/types"
)

// Store provides read access to the loaded finals and win counts.
type Store interface {
	// Finals returns every final in source order.
	Finals(ctx context.Context) []types.MatchRecord

	// Standings returns the win counts ordered by descending wins.
	Standings(ctx context.Context) []types.CountryWinCount

	// Countries returns the distinct winning countries in standings order.
	Countries(ctx context.Context) []string

	// Years returns the distinct final years ascending.
	Years(ctx context.Context) []int

	// Wins returns the win count for country.
	Wins(country string) (int, bool)

	// Final returns the final played in year. With repeated years the
	// first record wins.
	Final(year int) (types.MatchRecord, bool)

	// Count returns the number of finals.
	Count(ctx context.Context) int
}

// Dataset is built once and never mutated, so it is safe for concurrent
// readers without locking. Accessors return copies.
type Dataset struct {
	finals    []types.MatchRecord
	standings []types.CountryWinCount
	years     []int
	byYear    map[int]int
	byCountry map[string]int
	loadedAt  time.Time
}

var _ Store = (*Dataset)(nil)

// NewDataset builds a Dataset from normalized finals, deriving the win
// counts with aggregate.WinCounts.
func NewDataset(finals []types.MatchRecord, opts ...Option) *Dataset {
	d := &Dataset{
		finals:    append([]types.MatchRecord(nil), finals...),
		byYear:    make(map[int]int, len(finals)),
		byCountry: make(map[string]int),
		loadedAt:  time.Now(),
	}
	for _, opt := range opts {
		opt(d)
	}

	for i, f := range d.finals {
		if _, ok := d.byYear[f.Year]; ok {
			continue
		}
		d.byYear[f.Year] = i
		d.years = append(d.years, f.Year)
	}
	sort.Ints(d.years)

	d.standings = aggregate.WinCounts(d.finals)
	for i, s := range d.standings {
		d.byCountry[s.Country] = i
	}
	return d
}

func (d *Dataset) Finals(_ context.Context) []types.MatchRecord {
	return append([]types.MatchRecord{}, d.finals...)
}

func (d *Dataset) Standings(_ context.Context) []types.CountryWinCount {
	return append([]types.CountryWinCount{}, d.standings...)
}

func (d *Dataset) Countries(_ context.Context) []string {
	out := make([]string, len(d.standings))
	for i, s := range d.standings {
		out[i] = s.Country
	}
	return out
}

func (d *Dataset) Years(_ context.Context) []int {
	return append([]int{}, d.years...)
}

func (d *Dataset) Wins(country string) (int, bool) {
	i, ok := d.byCountry[country]
	if !ok {
		return 0, false
	}
	return d.standings[i].Wins, true
}

func (d *Dataset) Final(year int) (types.MatchRecord, bool) {
	i, ok := d.byYear[year]
	if !ok {
		return types.MatchRecord{}, false
	}
	return d.finals[i], true
}

func (d *Dataset) Count(_ context.Context) int {
	return len(d.finals)
}

// LoadedAt reports when the dataset was built.
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}
