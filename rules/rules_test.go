package rules

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestDefaultRulesValid(t *testing.T) {
	is := is.New(t)
	r := DefaultRules()
	is.NoErr(r.Validate())
	is.Equal(r.FloorLimit(), 7)
	is.Equal(r.CenterCapacity(), 20)
	is.Equal(r.TilesPerRound(), 20)
}

func TestDefaultRulesDoNotAlias(t *testing.T) {
	is := is.New(t)
	r := DefaultRules()
	r.FloorPenalties[0] = -9
	is.Equal(DefaultFloorPenalties[0], -1)
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"one color", func(r *Rules) { r.NumColors = 1 }},
		{"no factories", func(r *Rules) { r.NumFactories = 0 }},
		{"empty factories", func(r *Rules) { r.FactorySize = 0 }},
		{"no floor", func(r *Rules) { r.FloorPenalties = nil }},
		{"positive penalty", func(r *Rules) { r.FloorPenalties = []int{-1, 1} }},
		{"cheaper later", func(r *Rules) { r.FloorPenalties = []int{-2, -1} }},
	}
	for _, c := range cases {
		r := DefaultRules()
		c.mutate(&r)
		err := r.Validate()
		is.True(errors.Is(err, ErrInvalidRules)) // c.name
	}
}

func TestParsePenalties(t *testing.T) {
	is := is.New(t)
	p, err := ParsePenalties("-1, -1,-2,-2,-2,-3,-3")
	is.NoErr(err)
	is.Equal(p, DefaultFloorPenalties)

	_, err = ParsePenalties("-1,x")
	is.True(errors.Is(err, ErrInvalidRules))

	_, err = ParsePenalties(" , ")
	is.True(errors.Is(err, ErrInvalidRules))
}
