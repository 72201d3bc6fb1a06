package summary

import (
	"strconv"
	"strings"
)

// Scalar is one numeric component of a cell. The zero value is null.
//
// Integral records whether the source text had no decimal point, which
// decides how derived values are printed later.
type Scalar struct {
	Value    float64
	Integral bool
	Valid    bool
}

// Int returns an integral scalar.
func Int(v int64) Scalar {
	return Scalar{Value: float64(v), Integral: true, Valid: true}
}

// Float returns a floating scalar.
func Float(v float64) Scalar {
	return Scalar{Value: v, Valid: true}
}

// Null returns a missing scalar.
func Null() Scalar {
	return Scalar{}
}

// IsNull reports whether the scalar is missing.
func (s Scalar) IsNull() bool {
	return !s.Valid
}

// String formats the scalar the way it is displayed in a digest: integral
// values without a fraction, floats with at least one fractional digit.
func (s Scalar) String() string {
	if !s.Valid {
		return noneToken
	}
	if s.Integral {
		return strconv.FormatFloat(s.Value, 'f', 0, 64)
	}
	return formatFloat(s.Value)
}

// round2 rounds to two decimal places, keeping integral scalars integral.
// Ties are broken half-to-even on the exact binary value.
func (s Scalar) round2() Scalar {
	if !s.Valid || s.Integral {
		return s
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(s.Value, 'f', 2, 64), 64)
	if err != nil {
		return s
	}
	return Float(r)
}

// formatFloat returns the shortest representation of v that still shows a
// fractional part, e.g. 30 -> "30.0", 0.5 -> "0.5".
func formatFloat(v float64) string {
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}
