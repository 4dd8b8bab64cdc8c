// Package rules holds the fixed table configuration a game is built from:
// how many colors and factory displays there are, how many tiles each
// display is stocked with, and the floor-line penalty schedule.
package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidRules = errors.New("invalid rules")

// DefaultFloorPenalties is the cost of each successive floor slot.
var DefaultFloorPenalties = []int{-1, -1, -2, -2, -2, -3, -3}

const (
	DefaultNumColors    = 5
	DefaultNumFactories = 5
	DefaultFactorySize  = 4
)

// Rules is fixed at construction time; nothing in the engine mutates it.
type Rules struct {
	NumColors      int
	NumFactories   int
	FactorySize    int
	FloorPenalties []int
}

func DefaultRules() Rules {
	penalties := make([]int, len(DefaultFloorPenalties))
	copy(penalties, DefaultFloorPenalties)
	return Rules{
		NumColors:      DefaultNumColors,
		NumFactories:   DefaultNumFactories,
		FactorySize:    DefaultFactorySize,
		FloorPenalties: penalties,
	}
}

// Validate checks that the rules describe a playable table.
func (r Rules) Validate() error {
	if r.NumColors < 2 {
		return fmt.Errorf("%w: need at least 2 colors, got %d", ErrInvalidRules, r.NumColors)
	}
	if r.NumFactories < 1 {
		return fmt.Errorf("%w: need at least 1 factory, got %d", ErrInvalidRules, r.NumFactories)
	}
	if r.FactorySize < 1 {
		return fmt.Errorf("%w: factory size must be positive, got %d", ErrInvalidRules, r.FactorySize)
	}
	if len(r.FloorPenalties) == 0 {
		return fmt.Errorf("%w: empty floor penalty schedule", ErrInvalidRules)
	}
	for i, p := range r.FloorPenalties {
		if p > 0 {
			return fmt.Errorf("%w: floor penalty %d at slot %d is positive", ErrInvalidRules, p, i+1)
		}
		if i > 0 && p > r.FloorPenalties[i-1] {
			return fmt.Errorf("%w: floor penalty schedule gets cheaper at slot %d", ErrInvalidRules, i+1)
		}
	}
	return nil
}

// FloorLimit is the number of floor slots that carry a penalty.
func (r Rules) FloorLimit() int {
	return len(r.FloorPenalties)
}

// TilesPerRound is the number of tiles dealt onto the factories at the start
// of each round.
func (r Rules) TilesPerRound() int {
	return r.NumFactories * r.FactorySize
}

// CenterCapacity is the most tiles the center pool can ever hold, which is
// everything dealt in the round.
func (r Rules) CenterCapacity() int {
	return r.TilesPerRound()
}

// ParsePenalties parses a comma-separated penalty schedule such as
// "-1,-1,-2,-2,-2,-3,-3".
func ParsePenalties(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	penalties := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		p, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: bad floor penalty %q: %w", ErrInvalidRules, f, err)
		}
		penalties = append(penalties, p)
	}
	if len(penalties) == 0 {
		return nil, fmt.Errorf("%w: empty floor penalty schedule", ErrInvalidRules)
	}
	return penalties, nil
}
