package source

import (
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/okian/wcdash/internal/domain/types"
)

// footnote matches reference markers such as [1], [n 3] or [a].
var footnote = regexp.MustCompile(`\[[^\]]{1,8}\]`)

// ParseTable reads an HTML document from r and returns the first table
// whose header row contains marker.
func ParseTable(r io.Reader, marker string) (types.RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return types.RawTable{}, &FetchError{URL: "reader", Err: err}
	}
	table, ok := FindTable(doc, marker)
	if !ok {
		return types.RawTable{}, &NotFoundError{URL: "reader", Marker: marker}
	}
	return table, nil
}

// FindTable scans the document's tables in order. The header row is the
// first row made only of <th> cells; rows after it become data rows with
// rowspan and colspan expanded.
func FindTable(doc *goquery.Document, marker string) (types.RawTable, bool) {
	var (
		found types.RawTable
		ok    bool
	)
	doc.Find("table").EachWithBreak(func(_ int, tbl *goquery.Selection) bool {
		grid, headerAt := readGrid(tbl)
		if headerAt < 0 || !containsMarker(grid[headerAt], marker) {
			return true
		}
		found = types.RawTable{Header: grid[headerAt], Rows: grid[headerAt+1:]}
		ok = true
		return false
	})
	return found, ok
}

func containsMarker(header []string, marker string) bool {
	for _, h := range header {
		if strings.Contains(h, marker) {
			return true
		}
	}
	return false
}

// Span limits, as clamped by HTML parsers.
const (
	maxColspan = 1000
	maxRowspan = 65534
)

// span carries a rowspan cell into the rows below it. row is the last grid
// row the span has filled.
type span struct {
	text string
	left int
	row  int
}

// readGrid expands the rows of tbl into a grid and returns the index of the
// header row, or -1 when there is none.
func readGrid(tbl *goquery.Selection) ([][]string, int) {
	rows := tbl.ChildrenFiltered("thead, tbody, tfoot").ChildrenFiltered("tr")

	var grid [][]string
	headerAt := -1
	carry := map[int]*span{}

	rows.Each(func(r int, tr *goquery.Selection) {
		var out []string
		col := 0
		use := func(c int, s *span) {
			s.row = r
			if s.left--; s.left == 0 {
				delete(carry, c)
			}
		}
		place := func() {
			for s, ok := carry[col]; ok; s, ok = carry[col] {
				out = append(out, s.text)
				use(col, s)
				col++
			}
		}

		cells := tr.ChildrenFiltered("th, td")
		allHeader := cells.Length() > 0
		cells.Each(func(_ int, td *goquery.Selection) {
			if goquery.NodeName(td) != "th" {
				allHeader = false
			}
			place()
			text := cellText(td.Get(0))
			colspan := spanAttr(td, "colspan", maxColspan)
			rowspan := spanAttr(td, "rowspan", maxRowspan)
			for k := 0; k < colspan; k++ {
				out = append(out, text)
				if rowspan > 1 {
					carry[col] = &span{text: text, left: rowspan - 1, row: r}
				}
				col++
			}
		})
		place()
		fillCarried(carry, r, &out, use)

		if allHeader && headerAt < 0 {
			headerAt = len(grid)
		}
		grid = append(grid, out)
	})
	return grid, headerAt
}

// fillCarried consumes the spans row r did not reach: a short row still
// occupies the carried slots, padding any gap before them with "". Spans
// overlapped by a colspan are consumed without being written.
func fillCarried(carry map[int]*span, r int, out *[]string, use func(int, *span)) {
	var cols []int
	for c, s := range carry {
		if s.row != r {
			cols = append(cols, c)
		}
	}
	sort.Ints(cols)
	for _, c := range cols {
		s := carry[c]
		if c >= len(*out) {
			for len(*out) < c {
				*out = append(*out, "")
			}
			*out = append(*out, s.text)
		}
		use(c, s)
	}
}

func spanAttr(s *goquery.Selection, name string, limit int) int {
	v, ok := s.Attr(name)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	if n > limit {
		return limit
	}
	return n
}

// cellText returns the visible text of a cell with whitespace collapsed and
// footnote markers removed.
func cellText(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	text := footnote.ReplaceAllString(b.String(), "")
	return strings.Join(strings.Fields(text), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if hidden(n) {
			return
		}
		if n.DataAtom == atom.Br {
			b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// hidden reports nodes that never render: sort keys, reference
// superscripts, styles and scripts.
func hidden(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Style, atom.Script:
		return true
	}
	for _, a := range n.Attr {
		switch a.Key {
		case "style":
			if strings.Contains(strings.ReplaceAll(a.Val, " ", ""), "display:none") {
				return true
			}
		case "class":
			for _, c := range strings.Fields(a.Val) {
				if c == "reference" || c == "sortkey" {
					return true
				}
			}
		}
	}
	return false
}
