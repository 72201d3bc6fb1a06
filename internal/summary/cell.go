package summary

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// componentSep joins related measurements packed into one cell.
	componentSep = "_"
	// noneToken marks a missing measurement.
	noneToken = "None"
	// unitPowers orders the scale families; index+1 is the power of 1024.
	unitPowers = "KMGT"
)

var piecePattern = regexp.MustCompile(`^([0-9]*\.?[0-9]+)(Ti|T|TB|Gi|G|GB|Mi|M|MB|Ki|K|KB)?$`)

// IsRangeable reports whether every component of the cell is a number,
// optionally unit-suffixed, or the literal None.
func IsRangeable(cell string) bool {
	for _, piece := range strings.Split(cell, componentSep) {
		if piece == noneToken {
			continue
		}
		if !piecePattern.MatchString(piece) {
			return false
		}
	}
	return true
}

// ParseCell converts a rangeable cell into its scaled components, one per
// "_"-separated piece, in order.
func ParseCell(cell string) ([]Scalar, error) {
	pieces := strings.Split(cell, componentSep)
	out := make([]Scalar, 0, len(pieces))
	for _, piece := range pieces {
		if piece == noneToken {
			out = append(out, Null())
			continue
		}
		if !piecePattern.MatchString(piece) {
			return nil, fmt.Errorf("%w: %q", ErrNotNumeric, piece)
		}
		mag, unit := splitMagnitude(piece)
		s, err := scaled(mag, unit)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// mustParseCell is for cells already accepted by IsRangeable.
func mustParseCell(cell string) []Scalar {
	values, err := ParseCell(cell)
	if err != nil {
		panic(fmt.Sprintf("summary: rangeable cell failed to parse: %v", err))
	}
	return values
}

// splitMagnitude separates "1.5Gi" into "1.5" and "Gi". The unit starts at
// the scale letter and runs to the end of the piece.
func splitMagnitude(piece string) (string, string) {
	for _, letter := range unitPowers {
		if i := strings.IndexRune(piece, letter); i >= 0 {
			return piece[:i], piece[i:]
		}
	}
	return piece, ""
}

// scaled parses the magnitude and applies the unit's power of 1024.
func scaled(mag, unit string) (Scalar, error) {
	v, err := strconv.ParseFloat(mag, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Null(), fmt.Errorf("%w: %q", ErrNotNumeric, mag)
	}
	if unit != "" {
		power := strings.IndexByte(unitPowers, unit[0]) + 1
		for i := 0; i < power; i++ {
			v *= 1024
		}
	}
	if strings.Contains(mag, ".") {
		return Float(v), nil
	}
	return Scalar{Value: v, Integral: true, Valid: true}, nil
}
