// Package stats summarizes a batch of search results.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Summary describes a sample, for example the number of nodes explored by
// each search in a batch.
type Summary struct {
	N      int
	Mean   float64
	Stdev  float64
	Min    float64
	Max    float64
	Median float64
	// CI is the half-width of the confidence interval around Mean.
	CI float64
}

// Summarize computes a Summary of vals. confidenceInterval is a percentage,
// e.g. 95. A sample of one has zero spread.
func Summarize(vals []float64, confidenceInterval float64) Summary {
	if len(vals) == 0 {
		return Summary{}
	}
	sorted := slices.Clone(vals)
	slices.Sort(sorted)

	s := Summary{
		N:      len(sorted),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
		Median: median(sorted),
	}
	if s.N == 1 {
		s.Mean = sorted[0]
		return s
	}
	s.Mean, s.Stdev = stat.MeanStdDev(sorted, nil)
	s.CI = ZVal(confidenceInterval) * s.Stdev / math.Sqrt(float64(s.N))
	return s
}

// median of sorted. An even-sized sample gets the mean of its two middle
// values; stat.Quantile would return the lower one.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return stat.Quantile(0.5, stat.Empirical, sorted, nil)
	}
	return stat.Mean(sorted[n/2-1:n/2+1], nil)
}

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}
