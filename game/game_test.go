package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/azul/factory"
	"github.com/domino14/azul/rules"
)

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, err := NewGame(rules.DefaultRules(), factory.NewRand(1234), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// setSupply empties every pool and then stocks the ones given.
func setSupply(g *Game, pools map[int][]int) {
	s := g.Supply()
	for p := 0; p < s.NumPools(); p++ {
		counts, ok := pools[p]
		if !ok {
			counts = make([]int, s.NumColors())
		}
		s.SetPool(p, counts)
	}
}

func TestNewGameRejectsBadRules(t *testing.T) {
	is := is.New(t)
	r := rules.DefaultRules()
	r.NumColors = 1
	_, err := NewGame(r, factory.NewRand(1))
	is.True(errors.Is(err, rules.ErrInvalidRules))

	_, err = NewGame(rules.DefaultRules(), factory.NewRand(1), WithMaxRounds(0))
	is.True(err != nil)
}

func TestNewGameState(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, WithNicknames("agent", "adversary"))
	is.True(g.Playing())
	is.Equal(g.Round(), 1)
	is.Equal(g.PlayerOnTurn(), 0)
	is.Equal(g.NickOnTurn(), "agent")
	is.Equal(g.Nickname(1), "adversary")
	is.Equal(g.Supply().TilesRemaining(), 20)
	is.Equal(len(g.Observation(0)), 31+36)
}

func TestEmptyPickChangesNothing(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	setSupply(g, map[int][]int{1: {0, 4, 0, 0, 0}})
	hash := g.StateHash()

	_, err := g.PlayTurn(Action{Pool: 1, Color: 0, Row: 0})
	is.True(errors.Is(err, ErrEmptyPick))
	is.Equal(g.PlayerOnTurn(), 0)
	is.Equal(g.Turn(), 0)
	is.Equal(g.StateHash(), hash)
}

func TestActionOutOfRange(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	for _, a := range []Action{
		{Pool: 6}, {Pool: -1}, {Color: 5}, {Color: -1}, {Row: 5}, {Row: -1},
	} {
		_, err := g.PlayTurn(a)
		is.True(errors.Is(err, ErrActionOutOfRange))
	}
}

func TestTurnPassesAndScores(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	setSupply(g, map[int][]int{
		1: {4, 0, 0, 0, 0},
		2: {0, 2, 2, 0, 0},
	})
	res, err := g.PlayTurn(Action{Pool: 1, Color: 0, Row: 3})
	is.NoErr(err)
	is.Equal(res.TilesTaken, 4)
	is.Equal(res.ScoreDelta, 1)
	is.True(!res.RoundEnded)
	is.Equal(g.PointsFor(0), 1)
	is.Equal(g.PlayerOnTurn(), 1)

	// two tiles exactly fill row 1 and build a lone tile
	res, err = g.PlayTurn(Action{Pool: 2, Color: 1, Row: 1})
	is.NoErr(err)
	is.Equal(res.Player, 1)
	is.Equal(res.ScoreDelta, 1)
	is.Equal(g.Board(1).FloorCount(), 0)
	is.Equal(g.Supply().Count(factory.CenterPool, 2), 2)
	is.Equal(g.PlayerOnTurn(), 0)
}

func TestRoundEndRestocksAndClearsFloors(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	setSupply(g, map[int][]int{1: {1, 1, 0, 0, 0}})

	res, err := g.PlayTurn(Action{Pool: 1, Color: 0, Row: 0})
	is.NoErr(err)
	is.True(!res.RoundEnded)

	// player 2 takes the last tile from the center and the token with it
	res, err = g.PlayTurn(Action{Pool: factory.CenterPool, Color: 1, Row: 0})
	is.NoErr(err)
	is.True(res.FirstPlayerToken)
	is.True(res.RoundEnded)
	is.True(!res.GameEnded)
	is.Equal(res.ScoreDelta, 1-1)

	is.Equal(g.Round(), 2)
	is.Equal(g.Board(1).FloorCount(), 0)
	is.Equal(g.Supply().TilesRemaining(), 20)
	is.True(g.Supply().FirstPlayerTokenAvailable())
	// token holder starts the next round
	is.Equal(g.PlayerOnTurn(), 1)
}

func TestRoundWithoutTokenAlternates(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	setSupply(g, map[int][]int{1: {4, 0, 0, 0, 0}})
	res, err := g.PlayTurn(Action{Pool: 1, Color: 0, Row: 4})
	is.NoErr(err)
	is.True(res.RoundEnded)
	is.Equal(g.PlayerOnTurn(), 1)
}

func TestGameEndsOnFullRow(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	b := g.Board(0)
	for color := 0; color < 4; color++ {
		b.AddTiles(color, 0, 1, false)
	}
	setSupply(g, map[int][]int{3: {0, 0, 0, 0, 1}})

	res, err := g.PlayTurn(Action{Pool: 3, Color: 4, Row: 0})
	is.NoErr(err)
	is.Equal(res.ScoreDelta, 7)
	is.True(res.RoundEnded)
	is.True(res.GameEnded)
	is.True(!g.Playing())
	is.Equal(g.EndReason(), EndReasonWallRow)
	is.Equal(g.Winner(), 0)

	_, err = g.PlayTurn(Action{})
	is.True(errors.Is(err, ErrGameOver))
	is.True(strings.Contains(g.ToDisplayText(), "Game over (wall-row)"))
}

func TestGameEndsAtRoundLimit(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, WithMaxRounds(1))
	for g.Playing() {
		a := g.LegalActions()[4]
		is.Equal(a.Row, 4)
		_, err := g.PlayTurn(a)
		is.NoErr(err)
	}
	is.Equal(g.EndReason(), EndReasonRoundLimit)
	is.Equal(g.Round(), 1)
}

func TestLegalPicks(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	setSupply(g, map[int][]int{
		0: {0, 0, 3, 0, 0},
		2: {1, 0, 0, 3, 0},
	})
	is.Equal(g.LegalPicks(), []Pick{
		{Pool: 0, Color: 2},
		{Pool: 2, Color: 0},
		{Pool: 2, Color: 3},
	})
	is.Equal(len(g.LegalActions()), 15)
}

func TestFullGamesTerminate(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		rng := factory.NewRand(seed)
		g, err := NewGame(rules.DefaultRules(), rng)
		assert.NoError(t, err)
		for g.Playing() {
			before := g.Supply().TilesRemaining()
			actions := g.LegalActions()
			res, err := g.PlayTurn(actions[rng.Intn(len(actions))])
			assert.NoError(t, err)
			if !res.RoundEnded {
				assert.Equal(t, before-res.TilesTaken, g.Supply().TilesRemaining())
			}
		}
		assert.NotEqual(t, EndReasonNone, g.EndReason())
		assert.Greater(t, g.Turn(), 0)
		assert.LessOrEqual(t, g.Round(), DefaultMaxRounds)
	}
}

func TestStateHash(t *testing.T) {
	is := is.New(t)
	a := newTestGame(t)
	b := newTestGame(t)
	is.Equal(a.StateHash(), b.StateHash())
	_, err := a.PlayTurn(a.LegalActions()[0])
	is.NoErr(err)
	is.True(a.StateHash() != b.StateHash())
}

func TestResetStartsOver(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	_, err := g.PlayTurn(g.LegalActions()[0])
	is.NoErr(err)
	g.Reset()
	is.Equal(g.Turn(), 0)
	is.Equal(g.PointsFor(0), 0)
	is.Equal(g.PlayerOnTurn(), 0)
	is.Equal(g.Supply().TilesRemaining(), 20)
}
