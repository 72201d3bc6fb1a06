package summary

import "errors"

var (
	// ErrEmptyTable is returned when there are no rows to summarise.
	ErrEmptyTable = errors.New("table has no rows")

	// ErrRowArity is returned when a row's cell count differs from the header.
	ErrRowArity = errors.New("row does not match header width")

	// ErrRaggedComponents is returned when rows of a numeric column carry
	// different numbers of "_"-separated components.
	ErrRaggedComponents = errors.New("numeric column has inconsistent component counts")

	// ErrRowSplits is returned for a row split count below one.
	ErrRowSplits = errors.New("row splits must be at least 1")

	// ErrNotNumeric is returned by ParseCell for a piece outside the cell grammar.
	ErrNotNumeric = errors.New("not a numeric cell")
)
