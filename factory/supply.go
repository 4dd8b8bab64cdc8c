// Package factory implements the shared tile supply: the factory displays
// tiles are drafted from, the center pool that collects their leftovers, and
// the first-player token that sits in the center until claimed.
package factory

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/azul/rules"
)

// CenterPool is the index of the shared center pool. Factory displays are
// numbered 1 through NumFactories.
const CenterPool = 0

// TileSupply owns every pool tiles can be drafted from. It is not safe for
// concurrent use; callers serialize turns.
type TileSupply struct {
	numColors    int
	numFactories int
	factorySize  int

	// pools[0] is the center; pools[i] for i >= 1 is factory display i.
	// Each pool maps color index to tile count.
	pools [][]int

	firstPlayerToken bool
	rng              RandSource
}

// NewTileSupply creates a supply for the given rules and stocks it.
func NewTileSupply(r rules.Rules, rng RandSource) *TileSupply {
	s := &TileSupply{
		numColors:    r.NumColors,
		numFactories: r.NumFactories,
		factorySize:  r.FactorySize,
		rng:          rng,
	}
	s.pools = make([][]int, r.NumFactories+1)
	for i := range s.pools {
		s.pools[i] = make([]int, r.NumColors)
	}
	s.Reset()
	return s
}

// Reset restocks every factory display with FactorySize tiles whose colors
// are independent uniform draws, empties the center and puts the
// first-player token back.
func (s *TileSupply) Reset() {
	clear(s.pools[CenterPool])
	for i := 1; i <= s.numFactories; i++ {
		clear(s.pools[i])
		for j := 0; j < s.factorySize; j++ {
			s.pools[i][s.rng.Intn(s.numColors)]++
		}
	}
	s.firstPlayerToken = true
}

// PickTiles takes every tile of color from pool. A zero count means the
// pick was empty and nothing changed. Picking from a display empties it,
// with its other colors sliding into the center; the first pick from the
// center in a round also claims the first-player token.
func (s *TileSupply) PickTiles(pool, color int) (numTaken int, roundEnded bool, firstPlayerToken bool) {
	if pool < 0 || pool > s.numFactories {
		panic(fmt.Sprintf("pool index %d out of range [0, %d]", pool, s.numFactories))
	}
	if color < 0 || color >= s.numColors {
		panic(fmt.Sprintf("color index %d out of range [0, %d)", color, s.numColors))
	}
	numTaken = s.pools[pool][color]
	if numTaken == 0 {
		return 0, false, false
	}
	s.pools[pool][color] = 0
	if pool != CenterPool {
		for c, ct := range s.pools[pool] {
			s.pools[CenterPool][c] += ct
		}
		clear(s.pools[pool])
	} else if s.firstPlayerToken {
		s.firstPlayerToken = false
		firstPlayerToken = true
		log.Debug().Int("color", color).Msg("first-player-token-claimed")
	}
	roundEnded = s.TilesRemaining() == 0
	if roundEnded {
		log.Debug().Msg("supply-exhausted")
	}
	return numTaken, roundEnded, firstPlayerToken
}

// TilesRemaining counts every tile left in every pool.
func (s *TileSupply) TilesRemaining() int {
	return lo.SumBy(s.pools, func(p []int) int { return lo.Sum(p) })
}

// Count returns how many tiles of color sit in pool.
func (s *TileSupply) Count(pool, color int) int {
	return s.pools[pool][color]
}

// FirstPlayerTokenAvailable reports whether the token is still in the center.
func (s *TileSupply) FirstPlayerTokenAvailable() bool {
	return s.firstPlayerToken
}

func (s *TileSupply) NumPools() int {
	return s.numFactories + 1
}

func (s *TileSupply) NumColors() int {
	return s.numColors
}

// Observation flattens the pools center first, each as NumColors counts,
// followed by 1 if the first-player token is still available and 0
// otherwise.
func (s *TileSupply) Observation() []int {
	obs := make([]int, 0, len(s.pools)*s.numColors+1)
	for _, p := range s.pools {
		obs = append(obs, p...)
	}
	if s.firstPlayerToken {
		obs = append(obs, 1)
	} else {
		obs = append(obs, 0)
	}
	return obs
}

// SetPool replaces the contents of one pool. Used to set up positions.
func (s *TileSupply) SetPool(pool int, counts []int) {
	if len(counts) != s.numColors {
		panic(fmt.Sprintf("expected %d color counts, got %d", s.numColors, len(counts)))
	}
	copy(s.pools[pool], counts)
}
