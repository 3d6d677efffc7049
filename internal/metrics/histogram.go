package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram counts values into n equal-width bins between their min and
// max, with the max landing in the last bin. All values land in the first
// bin when they are equal. values is not modified.
func Histogram(values []float64, n int) []float64 {
	bins := make([]float64, n)
	if len(values) == 0 || n == 0 {
		return bins
	}

	x := append([]float64(nil), values...)
	sort.Float64s(x)
	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		bins[0] = float64(len(x))
		return bins
	}

	dividers := floats.Span(make([]float64, n+1), lo, hi)
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	return stat.Histogram(bins, dividers, x, nil)
}
