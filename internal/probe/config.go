package probe

import (
	"time"

	"github.com/okian/wcdash/internal/domain/query"
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL     string        // Base URL of the dashboard
	Workers     int           // Number of concurrent lookup workers
	Timeout     time.Duration // HTTP request timeout
	LegacyNames []string      // Names that must not survive normalization
	LogFile     string        // Log file for probe output
	Verbose     bool          // Print every lookup
}

// WinCount is one entry of the map feed.
type WinCount struct {
	Country string `json:"country"`
	Wins    int    `json:"wins"`
}

// Final is one normalized final.
type Final struct {
	Year     int    `json:"year"`
	Winner   string `json:"winner"`
	RunnerUp string `json:"runner_up"`
}

// Lookup is the body shared by the country and year endpoints.
type Lookup struct {
	Status query.Status `json:"status"`
	Text   string       `json:"text"`
	Wins   int          `json:"wins,omitempty"`
	Final  *Final       `json:"final,omitempty"`
}

// Snapshot is everything the probe read from the dashboard's feeds.
type Snapshot struct {
	Wins      []WinCount
	Countries []string
	Years     []int
	Finals    []Final
}

// Stats holds probe statistics.
type Stats struct {
	LookupsSent      int
	LookupsFound     int
	LookupsMismatch  int
	LookupsFailed    int
	InvariantsPassed int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
