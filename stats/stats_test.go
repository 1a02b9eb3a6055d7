package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestSummarize(t *testing.T) {
	is := is.New(t)
	type tc struct {
		vals   []float64
		mean   float64
		stdev  float64
		median float64
		min    float64
		max    float64
	}
	cases := []tc{
		{[]float64{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 18.5, 10, 23},
		{[]float64{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 34, 10, 124},
		{[]float64{5, 1, 9}, 5, 4, 5, 1, 9},
		{[]float64{1}, 1, 0, 1, 1, 1},
		{[]float64{}, 0, 0, 0, 0, 0},
		{[]float64{1, 1}, 1, 0, 1, 1, 1},
	}
	for _, c := range cases {
		s := Summarize(c.vals, 95)
		is.Equal(s.N, len(c.vals))
		is.True(FuzzyEqual(s.Mean, c.mean))
		is.True(FuzzyEqual(s.Stdev, c.stdev))
		is.True(FuzzyEqual(s.Median, c.median))
		is.True(FuzzyEqual(s.Min, c.min))
		is.True(FuzzyEqual(s.Max, c.max))
	}
}

func TestSummarizeDoesNotSortInput(t *testing.T) {
	is := is.New(t)
	vals := []float64{3, 1, 2}
	Summarize(vals, 95)
	is.Equal(vals, []float64{3, 1, 2})
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(0), 0))
}

func TestConfidenceInterval(t *testing.T) {
	is := is.New(t)
	s := Summarize([]float64{10, 12, 23, 23, 16, 23, 21, 16}, 95)
	// 1.96 * 5.2372 / sqrt(8)
	is.True(FuzzyEqual(s.CI, 1.959963984540054*5.2372293656638/2.8284271247461903))
}
