package probe

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const countryColumnMax = 32

// WriteStandings prints the map feed as an aligned table. Widths are
// measured in terminal cells so names like "Côte d'Ivoire" line up.
func WriteStandings(w io.Writer, wins []WinCount) error {
	width := runewidth.StringWidth("Country")
	for _, e := range wins {
		if cw := runewidth.StringWidth(e.Country); cw > width {
			width = cw
		}
	}
	if width > countryColumnMax {
		width = countryColumnMax
	}

	var b strings.Builder
	b.WriteString(runewidth.FillRight("Country", width))
	b.WriteString("  Wins\n")
	b.WriteString(strings.Repeat("-", width))
	b.WriteString("  ----\n")
	for _, e := range wins {
		name := runewidth.Truncate(e.Country, width, "…")
		b.WriteString(runewidth.FillRight(name, width))
		b.WriteString("  ")
		b.WriteString(fmt.Sprintf("%4s", strconv.Itoa(e.Wins)))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
