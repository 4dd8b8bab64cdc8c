package game

import (
	"fmt"

	"github.com/samber/lo"
)

// Pick names a pool and a color to draft.
type Pick struct {
	Pool  int
	Color int
}

// Action is a full turn: draft Color from Pool and place it on pattern
// line Row.
type Action struct {
	Pool  int
	Color int
	Row   int
}

func (a Action) String() string {
	return fmt.Sprintf("pool %d color %d row %d", a.Pool, a.Color, a.Row)
}

// TurnResult describes what a successful PlayTurn did.
type TurnResult struct {
	Player           int
	Action           Action
	TilesTaken       int
	FirstPlayerToken bool
	ScoreDelta       int
	RoundEnded       bool
	GameEnded        bool
}

// LegalPicks lists every (pool, color) pair that currently holds tiles.
func (g *Game) LegalPicks() []Pick {
	s := g.supply
	all := make([]Pick, 0, s.NumPools()*s.NumColors())
	for p := 0; p < s.NumPools(); p++ {
		for c := 0; c < s.NumColors(); c++ {
			all = append(all, Pick{Pool: p, Color: c})
		}
	}
	return lo.Filter(all, func(pk Pick, _ int) bool {
		return s.Count(pk.Pool, pk.Color) > 0
	})
}

// LegalActions expands every legal pick across every pattern line. Rows the
// tiles cannot go on are still legal; those tiles just break on the floor.
func (g *Game) LegalActions() []Action {
	return lo.FlatMap(g.LegalPicks(), func(pk Pick, _ int) []Action {
		return lo.Times(g.rules.NumColors, func(row int) Action {
			return Action{Pool: pk.Pool, Color: pk.Color, Row: row}
		})
	})
}
