package summary

import "fmt"

// Column is a per-row list of parsed component sequences for one column.
type Column [][]Scalar

// InvariantColumns returns the columns whose cell is identical in every
// row, keyed by column index. A column that differs anywhere is excluded
// even if later rows agree with the first again.
func InvariantColumns(table [][]string) map[int]string {
	if len(table) == 0 {
		return map[int]string{}
	}

	values := append([]string(nil), table[0]...)
	invariant := make([]bool, len(values))
	for i := range invariant {
		invariant[i] = true
	}

	for _, row := range table[1:] {
		for i, cell := range row {
			if i < len(values) && values[i] != cell {
				invariant[i] = false
			}
		}
	}

	out := make(map[int]string)
	for i, ok := range invariant {
		if ok {
			out[i] = values[i]
		}
	}
	return out
}

// NumericColumns returns every column whose cells are all rangeable, with
// each row's parsed components. A column is dropped for good at its first
// non-rangeable cell.
func NumericColumns(table [][]string) map[int]Column {
	if len(table) == 0 {
		return map[int]Column{}
	}

	columns := make(map[int]Column, len(table[0]))
	for i := range table[0] {
		columns[i] = make(Column, 0, len(table))
	}
	rejected := make(map[int]bool)

	for _, row := range table {
		for i, cell := range row {
			if i >= len(table[0]) || rejected[i] {
				continue
			}
			if !IsRangeable(cell) {
				rejected[i] = true
				delete(columns, i)
				continue
			}
			columns[i] = append(columns[i], mustParseCell(cell))
		}
	}
	return columns
}

// Components returns the number of components every row of the column
// carries, or ErrRaggedComponents when rows disagree. A cell that is just
// None stands for a missing value in every position and fits any width.
func (c Column) Components() (int, error) {
	want, first := 0, -1
	for row, values := range c {
		if loneNull(values) {
			continue
		}
		if first < 0 {
			want, first = len(values), row
			continue
		}
		if len(values) != want {
			return 0, fmt.Errorf("%w: row %d has %d, row %d has %d",
				ErrRaggedComponents, first, want, row, len(values))
		}
	}
	if first < 0 && len(c) > 0 {
		return 1, nil
	}
	return want, nil
}

// Unzip transposes the column into one series per component position. Lone
// None cells contribute a null to every series. Rows with fewer components
// than the narrowest other row simply stop contributing; call Components
// first to rule that out.
func (c Column) Unzip() [][]Scalar {
	if len(c) == 0 {
		return nil
	}
	width := -1
	for _, values := range c {
		if loneNull(values) {
			continue
		}
		if width < 0 || len(values) < width {
			width = len(values)
		}
	}
	if width < 0 {
		width = 1
	}

	series := make([][]Scalar, width)
	for pos := range series {
		series[pos] = make([]Scalar, len(c))
		for row, values := range c {
			if loneNull(values) {
				series[pos][row] = Null()
				continue
			}
			series[pos][row] = values[pos]
		}
	}
	return series
}

func loneNull(values []Scalar) bool {
	return len(values) == 1 && values[0].IsNull()
}
