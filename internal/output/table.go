package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cell is table output that was sanitized when it was added.
type cell string

type column struct {
	header string
	right  bool
}

func col(header string) column      { return column{header: header} }
func rightCol(header string) column { return column{header: header, right: true} }

type tableRow struct {
	color  ansiString
	values []string
}

// table aligns columns by visible width. Values are sanitized when
// added, empty values are shown as "-".
type table struct {
	pal     palette
	indent  string
	columns []column
	rows    []tableRow
	widths  []int
}

func newTable(pal palette, cols ...column) *table {
	t := &table{
		pal:     pal,
		indent:  "  ",
		columns: cols,
		widths:  make([]int, len(cols)),
	}
	for i, c := range cols {
		t.widths[i] = lipgloss.Width(c.header)
	}
	return t
}

func (t *table) addRow(values ...string) {
	t.addColoredRow("", values...)
}

// addColoredRow adds a row drawn in color.
func (t *table) addColoredRow(color ansiString, values ...string) {
	row := make([]string, len(t.columns))
	for i := range row {
		v := "-"
		if i < len(values) && values[i] != "" {
			v = SanitizeCell(values[i])
		}
		row[i] = v
		if w := lipgloss.Width(v); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, tableRow{color: color, values: row})
}

func (t *table) render(p Printer) {
	p.Printf("%s%s%s%s\n", t.indent, t.pal.dim, cell(t.line(columnHeaders(t.columns))), t.pal.reset)
	for _, r := range t.rows {
		if r.color != "" {
			p.Printf("%s%s%s%s\n", t.indent, r.color, cell(t.line(r.values)), t.pal.reset)
			continue
		}
		p.Printf("%s%s\n", t.indent, cell(t.line(r.values)))
	}
}

func columnHeaders(cols []column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.header
	}
	return out
}

// line joins values, padding every column but the last.
func (t *table) line(values []string) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString("  ")
		}
		pad := t.widths[i] - lipgloss.Width(v)
		if pad < 0 {
			pad = 0
		}
		last := i == len(values)-1
		switch {
		case t.columns[i].right:
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(v)
		case last:
			b.WriteString(v)
		default:
			b.WriteString(v)
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}
