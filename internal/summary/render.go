package summary

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
)

const cellSep = ","

// Row is anything that can present itself as one comma-joined record.
type Row interface {
	CSV() string
}

// Constant is an invariant column and its single value.
type Constant struct {
	Index int
	Name  string
	Value string
}

// ComponentStats holds the statistics of one component position of a
// multi-valued column.
type ComponentStats struct {
	Position int
	Stats    Stats
	// Series is the component's values in row order, nulls included.
	Series []Scalar
}

// ColumnStats holds the statistics of one numeric column. Single-valued
// columns have exactly one component at position 0 and Multi unset.
type ColumnStats struct {
	Index      int
	Name       string
	Multi      bool
	Components []ComponentStats
}

// Summary is the reduced form of a table: the varying columns, the
// constants pulled out of it, and statistics for its numeric columns.
type Summary struct {
	Columns    []string
	Rows       [][]string
	Constants  []Constant
	Statistics []ColumnStats
}

// Options controls rendering.
type Options struct {
	// RowSplits breaks each logical row into this many <tr> chunks.
	RowSplits int
}

// Option configures rendering.
type Option func(*Options)

// WithRowSplits sets how many <tr> chunks each row is broken into.
func WithRowSplits(n int) Option {
	return func(o *Options) {
		o.RowSplits = n
	}
}

func defaultOptions() Options {
	return Options{RowSplits: 1}
}

// RenderHTML splits each row's CSV form on commas and renders the table
// digest. The header is the comma-joined list of column names.
func RenderHTML(header string, rows []Row, opts ...Option) (string, error) {
	return RenderTable(strings.Split(header, cellSep), splitCSV(rows), opts...)
}

// SummariseRows is Summarise over rows given in their CSV form.
func SummariseRows(header string, rows []Row) (*Summary, error) {
	return Summarise(strings.Split(header, cellSep), splitCSV(rows))
}

func splitCSV(rows []Row) [][]string {
	table := make([][]string, len(rows))
	for i, row := range rows {
		table[i] = strings.Split(row.CSV(), cellSep)
	}
	return table
}

// RenderTable renders an already-split table as an HTML fragment: the
// reduced table, then Constants, then Statistics.
func RenderTable(header []string, table [][]string, opts ...Option) (string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.RowSplits < 1 {
		return "", fmt.Errorf("%w: got %d", ErrRowSplits, o.RowSplits)
	}

	s, err := Summarise(header, table)
	if err != nil {
		return "", err
	}
	return s.HTML(o.RowSplits), nil
}

// Summarise classifies the columns of the table and builds its Summary.
func Summarise(header []string, table [][]string) (*Summary, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}
	for i, row := range table {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d",
				ErrRowArity, i, len(row), len(header))
		}
	}

	invariant := InvariantColumns(table)
	numeric := NumericColumns(table)

	s := &Summary{
		Columns: keep(header, invariant),
		Rows:    make([][]string, len(table)),
	}
	for i, row := range table {
		s.Rows[i] = keep(row, invariant)
	}

	for _, idx := range sortedKeys(invariant) {
		s.Constants = append(s.Constants, Constant{Index: idx, Name: header[idx], Value: invariant[idx]})
	}

	for _, idx := range sortedKeys(numeric) {
		if _, ok := invariant[idx]; ok {
			continue
		}
		col := numeric[idx]
		width, err := col.Components()
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", header[idx], err)
		}
		cs := ColumnStats{Index: idx, Name: header[idx], Multi: width > 1}
		for pos, series := range col.Unzip() {
			if stats, ok := Describe(series); ok {
				cs.Components = append(cs.Components, ComponentStats{Position: pos, Stats: stats, Series: series})
			}
		}
		if len(cs.Components) > 0 {
			s.Statistics = append(s.Statistics, cs)
		}
	}
	return s, nil
}

// HTML renders the summary as an HTML fragment with no document wrapper.
func (s *Summary) HTML(rowSplits int) string {
	var b strings.Builder
	width := rowWidth(len(s.Columns), rowSplits)

	b.WriteString("<table>")
	writeRow(&b, s.Columns, width, rowSplits, "th")
	for _, row := range s.Rows {
		writeRow(&b, row, width, rowSplits, "td")
	}
	b.WriteString("\n</table>\n")

	writeConstants(&b, s.Constants)
	writeStatistics(&b, s.Statistics)
	return b.String()
}

// rowWidth is the number of cells per <tr> chunk. Leftover cells join the
// last chunk rather than starting one of their own.
func rowWidth(columns, splits int) int {
	if splits < 1 {
		splits = 1
	}
	w := columns / splits
	if w < 1 {
		w = 1
	}
	return w
}

func writeRow(b *strings.Builder, cells []string, width, splits int, tag string) {
	b.WriteString("\n<tr>\n")
	for i, cell := range cells {
		if i > 0 && i%width == 0 && i/width < splits {
			b.WriteString("\n</tr>\n<tr>")
		}
		fmt.Fprintf(b, "<%s>%s</%s>", tag, html.EscapeString(cell), tag)
	}
	b.WriteString("\n</tr>")
}

func writeConstants(b *strings.Builder, constants []Constant) {
	if len(constants) == 0 {
		return
	}
	b.WriteString("\n<h3>Constants:</h3>\n<ul>")
	for _, c := range constants {
		fmt.Fprintf(b, "\n<li><em>%s</em>: %s</li>\n", html.EscapeString(c.Name), html.EscapeString(c.Value))
	}
	b.WriteString("</ul>\n")
}

func writeStatistics(b *strings.Builder, columns []ColumnStats) {
	if len(columns) == 0 {
		return
	}
	b.WriteString("\n<h3>Statistics:</h3>\n<ul>")
	for _, col := range columns {
		fmt.Fprintf(b, "\n<li><em>%s:</em>\n<ul>\n", html.EscapeString(col.Name))
		if !col.Multi {
			writeStats(b, col.Components[0].Stats)
		} else {
			for _, comp := range col.Components {
				fmt.Fprintf(b, "<li><em>%s:</em>\n<ul>\n", strconv.Itoa(comp.Position))
				writeStats(b, comp.Stats)
				b.WriteString("</ul></li>\n")
			}
		}
		b.WriteString("</ul></li>\n")
	}
	b.WriteString("</ul>\n")
}

func writeStats(b *strings.Builder, stats Stats) {
	for _, st := range stats {
		fmt.Fprintf(b, "<li><em>%s:</em> %s</li>\n", st.Name, st.Value)
	}
}

// keep returns the cells whose index is not in drop, in order.
func keep[V any](cells []string, drop map[int]V) []string {
	out := make([]string, 0, len(cells))
	for i, cell := range cells {
		if _, ok := drop[i]; !ok {
			out = append(out, cell)
		}
	}
	return out
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
