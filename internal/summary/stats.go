package summary

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Stat names, in display order.
const (
	StatMean  = "mean"
	StatStdev = "stdev"
	StatMin   = "min"
	StatMax   = "max"
	StatNulls = "nulls"
)

// Stat is one named, display-ready statistic.
type Stat struct {
	Name  string
	Value string
}

// Stats is an ordered set of statistics for one series.
type Stats []Stat

// Get returns the value of the named statistic.
func (s Stats) Get(name string) (string, bool) {
	for _, st := range s {
		if st.Name == name {
			return st.Value, true
		}
	}
	return "", false
}

// Describe summarises a series of optional scalars. It returns false when
// the series has no values at all. A single value yields only its mean; two
// or more add the sample standard deviation, min and max. The null count is
// appended only when some values are missing.
func Describe(series []Scalar) (Stats, bool) {
	present := make([]Scalar, 0, len(series))
	for _, v := range series {
		if v.Valid {
			present = append(present, v)
		}
	}
	nulls := len(series) - len(present)

	var stats Stats
	switch len(present) {
	case 0:
		return nil, false
	case 1:
		stats = Stats{
			{StatMean, Shrink(present[0].round2().String())},
		}
	default:
		lo, hi := extremes(present)
		stats = Stats{
			{StatMean, Shrink(mean(present).round2().String())},
			{StatStdev, Shrink(stdev(present).round2().String())},
			{StatMin, Shrink(lo.round2().String())},
			{StatMax, Shrink(hi.round2().String())},
		}
	}
	if nulls > 0 {
		stats = append(stats, Stat{StatNulls, strconv.Itoa(nulls)})
	}
	return stats, true
}

// Shrink compresses a number above 999 into IEC form with at most three
// significant figures: "1134" -> "1.1Ki", "31000000" -> "30Mi". Smaller
// values, and anything that does not parse, are returned unchanged.
func Shrink(value string) string {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	divisions := 0
	for v > 999 && divisions < len(unitPowers) {
		v /= 1024
		divisions++
	}
	if divisions == 0 {
		return value
	}

	var out string
	if v < 10 {
		out = strconv.FormatFloat(v, 'f', 1, 64)
	} else {
		out = strconv.FormatFloat(math.RoundToEven(v), 'f', 0, 64)
	}
	out = strings.TrimSuffix(out, ".0")
	return out + string(unitPowers[divisions-1]) + "i"
}

// mean is exact over the inputs and integral when every input is integral
// and the division comes out even.
func mean(values []Scalar) Scalar {
	sum := new(big.Rat)
	integral := true
	for _, v := range values {
		sum.Add(sum, exact(v.Value))
		integral = integral && v.Integral
	}
	avg := new(big.Rat).Quo(sum, big.NewRat(int64(len(values)), 1))
	f, _ := avg.Float64()
	if integral && avg.IsInt() {
		return Scalar{Value: f, Integral: true, Valid: true}
	}
	return Float(f)
}

// stdev is the sample standard deviation (n-1 denominator). The sum of
// squared deviations is computed exactly before the square root.
func stdev(values []Scalar) Scalar {
	n := int64(len(values))
	sum := new(big.Rat)
	for _, v := range values {
		sum.Add(sum, exact(v.Value))
	}
	avg := new(big.Rat).Quo(sum, big.NewRat(n, 1))

	ss := new(big.Rat)
	for _, v := range values {
		d := new(big.Rat).Sub(exact(v.Value), avg)
		ss.Add(ss, d.Mul(d, d))
	}
	variance, _ := ss.Quo(ss, big.NewRat(n-1, 1)).Float64()
	return Float(math.Sqrt(variance))
}

// extremes keeps each bound's own kind, so min of {5, 7.5} prints as 5.
func extremes(values []Scalar) (Scalar, Scalar) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v.Value < lo.Value {
			lo = v
		}
		if v.Value > hi.Value {
			hi = v
		}
	}
	return lo, hi
}

func exact(v float64) *big.Rat {
	r := new(big.Rat)
	if r.SetFloat64(v) == nil {
		return new(big.Rat)
	}
	return r
}
