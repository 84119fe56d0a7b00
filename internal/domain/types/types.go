// Package types contains the data model shared across the application.
package types

// MatchRecord is one World Cup final. Year is the unique key.
type MatchRecord struct {
	Year     int    `json:"year"`
	Winner   string `json:"winner"`
	RunnerUp string `json:"runner_up"`
}

// CountryWinCount is the number of finals a country has won.
type CountryWinCount struct {
	Country string `json:"country"`
	Wins    int    `json:"wins"`
}

// RawTable is a scraped table before normalization. Rows are rectangular
// after span expansion; Header holds the header row cell texts.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Columns returns the table width: the widest of the header and the rows.
func (t RawTable) Columns() int {
	n := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}
