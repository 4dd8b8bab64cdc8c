// Package stats accumulates running statistics over played games.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's algorithm). It keeps
// every sample so that quantiles can be taken at the end.
type Statistic struct {
	n    int
	mean float64
	m2   float64

	samples []float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
	s.samples = append(s.samples, val)
}

// Merge folds other into s.
func (s *Statistic) Merge(other *Statistic) {
	for _, v := range other.samples {
		s.Push(v)
	}
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

// Variance is the sample variance.
func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError returns the standard error of the mean.
func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

func (s *Statistic) Iterations() int {
	return s.n
}

// Median returns the empirical median of every pushed value.
func (s *Statistic) Median() float64 {
	if s.n == 0 {
		return 0.0
	}
	sorted := append([]float64(nil), s.samples...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// ConfidenceInterval returns the two-sided interval around the mean at the
// given confidence, a percentage from 0 to 100.
func (s *Statistic) ConfidenceInterval(confidence float64) (float64, float64) {
	half := ZVal(confidence) * s.StandardError()
	return s.mean - half, s.mean + half
}
