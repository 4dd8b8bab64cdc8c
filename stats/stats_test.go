package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
		median float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 16},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 33},
		{[]int{1}, 1, 0, 1},
		{[]int{}, 0, 0, 0},
		{[]int{1, 1}, 1, 0, 1},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.True(FuzzyEqual(s.Median(), c.median))
		is.Equal(s.Iterations(), len(c.scores))
	}
}

func TestMerge(t *testing.T) {
	is := is.New(t)
	a, b, all := &Statistic{}, &Statistic{}, &Statistic{}
	for i, v := range []float64{3, -4, 10, 7, 0, 2} {
		if i%2 == 0 {
			a.Push(v)
		} else {
			b.Push(v)
		}
		all.Push(v)
	}
	a.Merge(b)
	is.Equal(a.Iterations(), 6)
	is.True(FuzzyEqual(a.Mean(), all.Mean()))
	is.True(FuzzyEqual(a.Stdev(), all.Stdev()))
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.575829303548900))
}

func TestConfidenceInterval(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		s.Push(v)
	}
	lo, hi := s.ConfidenceInterval(95)
	is.True(lo < 3 && hi > 3)
	is.True(FuzzyEqual(hi-3, 3-lo))
	is.True(FuzzyEqual(hi-lo, 2*ZVal(95)*s.StandardError()))
}
