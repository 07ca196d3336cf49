package chromatogram

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// dropNaN returns xs without NaN entries. The input is not modified.
func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// nanMean is the arithmetic mean ignoring NaN entries, or NaN when nothing
// remains.
func nanMean(xs []float64) float64 {
	clean := dropNaN(xs)
	if len(clean) == 0 {
		return math.NaN()
	}
	return stat.Mean(clean, nil)
}

// nanStd is the population standard deviation ignoring NaN entries.
func nanStd(xs []float64) float64 {
	clean := dropNaN(xs)
	if len(clean) == 0 {
		return math.NaN()
	}
	return stat.PopStdDev(clean, nil)
}

// nanMedian is the median ignoring NaN entries.
func nanMedian(xs []float64) float64 {
	return nanPercentile(xs, 50)
}

// nanPercentile computes the p-th percentile (0-100) ignoring NaN entries,
// with linear interpolation between the closest ranks. gonum's
// stat.Quantile offers only the empirical cumulant kinds, so the
// interpolating variant is computed directly here.
func nanPercentile(xs []float64, p float64) float64 {
	clean := dropNaN(xs)
	if len(clean) == 0 {
		return math.NaN()
	}
	sort.Float64s(clean)
	if p <= 0 {
		return clean[0]
	}
	if p >= 100 {
		return clean[len(clean)-1]
	}
	h := float64(len(clean)-1) * p / 100
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return clean[lo]
	}
	frac := h - float64(lo)
	return clean[lo]*(1-frac) + clean[hi]*frac
}
