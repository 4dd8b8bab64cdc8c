// Package game runs a two-player match on top of the rules engine: it
// alternates turns, hands drafted tiles to the board of the player on turn,
// restocks the factories between rounds and decides when the game is over.
// A Game doesn't care who is choosing the moves; strategies live elsewhere.
package game

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/azul/board"
	"github.com/domino14/azul/factory"
	"github.com/domino14/azul/rules"
)

const (
	NumPlayers = 2

	DefaultMaxRounds = 100
)

var (
	ErrEmptyPick        = errors.New("no tiles of that color in that pool")
	ErrActionOutOfRange = errors.New("action out of range")
	ErrGameOver         = errors.New("game is over")
)

// EndReason says why a game stopped.
type EndReason int

const (
	EndReasonNone EndReason = iota
	// EndReasonWallRow means a player finished a mosaic row.
	EndReasonWallRow
	// EndReasonRoundLimit means the round cap ran out first.
	EndReasonRoundLimit
)

func (r EndReason) String() string {
	switch r {
	case EndReasonWallRow:
		return "wall-row"
	case EndReasonRoundLimit:
		return "round-limit"
	}
	return "none"
}

// Game is the business logic of a match. It is single-writer: turns must be
// played one at a time.
type Game struct {
	rules  rules.Rules
	supply *factory.TileSupply

	players   [NumPlayers]*playerState
	onturn    int
	nextFirst int
	round     int
	turnnum   int
	maxRounds int

	playing   bool
	endReason EndReason
}

// Option configures a Game.
type Option func(*Game)

// WithMaxRounds caps the number of rounds a game may last.
func WithMaxRounds(n int) Option {
	return func(g *Game) {
		g.maxRounds = n
	}
}

// WithNicknames names the two players.
func WithNicknames(p0, p1 string) Option {
	return func(g *Game) {
		g.players[0].nickname = p0
		g.players[1].nickname = p1
	}
}

// NewGame builds a game for r, drawing factory tiles from rng, and starts it.
func NewGame(r rules.Rules, rng factory.RandSource, opts ...Option) (*Game, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		rules:     r,
		supply:    factory.NewTileSupply(r, rng),
		maxRounds: DefaultMaxRounds,
	}
	for i := range g.players {
		g.players[i] = newPlayerState(fmt.Sprintf("p%d", i+1), r)
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.maxRounds < 1 {
		return nil, fmt.Errorf("max rounds must be positive, got %d", g.maxRounds)
	}
	g.Reset()
	return g, nil
}

// Reset starts a new game: fresh factories, empty boards, zero scores, and
// the first player on turn.
func (g *Game) Reset() {
	g.supply.Reset()
	for _, p := range g.players {
		p.reset()
	}
	g.onturn = 0
	g.nextFirst = -1
	g.round = 1
	g.turnnum = 0
	g.playing = true
	g.endReason = EndReasonNone
	log.Debug().Msg("game-reset")
}

// PlayTurn drafts the tiles named by a for the player on turn and places
// them on that player's board. An empty pick returns ErrEmptyPick and
// changes nothing; the same player is still on turn.
func (g *Game) PlayTurn(a Action) (TurnResult, error) {
	if !g.playing {
		return TurnResult{}, ErrGameOver
	}
	if err := g.ValidateAction(a); err != nil {
		return TurnResult{}, err
	}
	numTaken, roundEnded, token := g.supply.PickTiles(a.Pool, a.Color)
	if numTaken == 0 {
		return TurnResult{}, ErrEmptyPick
	}
	cur := g.players[g.onturn]
	delta := cur.board.AddTiles(a.Color, a.Row, numTaken, token)
	cur.points += delta
	cur.turns++
	g.turnnum++

	res := TurnResult{
		Player:           g.onturn,
		Action:           a,
		TilesTaken:       numTaken,
		FirstPlayerToken: token,
		ScoreDelta:       delta,
		RoundEnded:       roundEnded,
	}
	log.Debug().Int("player", g.onturn).Int("pool", a.Pool).Int("color", a.Color).
		Int("row", a.Row).Int("tiles", numTaken).Int("delta", delta).Msg("played-turn")

	if token {
		g.nextFirst = g.onturn
	}
	if roundEnded {
		g.endRound()
		res.GameEnded = !g.playing
	} else {
		g.onturn = g.otherPlayer()
	}
	return res, nil
}

func (g *Game) endRound() {
	for _, p := range g.players {
		p.board.EndRound()
	}
	log.Debug().Int("round", g.round).Int("p1", g.players[0].points).
		Int("p2", g.players[1].points).Msg("round-ended")

	for _, p := range g.players {
		if p.board.Done() {
			g.finish(EndReasonWallRow)
			return
		}
	}
	if g.round >= g.maxRounds {
		g.finish(EndReasonRoundLimit)
		return
	}
	g.round++
	g.supply.Reset()
	if g.nextFirst >= 0 {
		g.onturn = g.nextFirst
	} else {
		g.onturn = g.otherPlayer()
	}
	g.nextFirst = -1
}

func (g *Game) finish(reason EndReason) {
	g.playing = false
	g.endReason = reason
	log.Debug().Str("reason", reason.String()).Int("rounds", g.round).Msg("game-over")
}

func (g *Game) otherPlayer() int {
	return (g.onturn + 1) % NumPlayers
}

// ValidateAction checks that every index in a is in range. It does not
// check that the pick is nonempty.
func (g *Game) ValidateAction(a Action) error {
	if a.Pool < 0 || a.Pool > g.rules.NumFactories {
		return fmt.Errorf("%w: pool %d", ErrActionOutOfRange, a.Pool)
	}
	if a.Color < 0 || a.Color >= g.rules.NumColors {
		return fmt.Errorf("%w: color %d", ErrActionOutOfRange, a.Color)
	}
	if a.Row < 0 || a.Row >= g.rules.NumColors {
		return fmt.Errorf("%w: row %d", ErrActionOutOfRange, a.Row)
	}
	return nil
}

// Observation is the supply view followed by the board view of player.
func (g *Game) Observation(player int) []int {
	return append(g.supply.Observation(), g.players[player].board.Observation()...)
}

// StateHash identifies the full game position: the supply, both boards and
// the side to move.
func (g *Game) StateHash() uint64 {
	buf := make([]byte, 0, 128)
	for _, v := range g.supply.Observation() {
		buf = binary.AppendUvarint(buf, uint64(v))
	}
	for _, p := range g.players {
		for _, v := range p.board.Observation() {
			buf = binary.AppendUvarint(buf, uint64(v))
		}
	}
	buf = append(buf, byte(g.onturn))
	return xxhash.Sum64(buf)
}

func (g *Game) Playing() bool {
	return g.playing
}

func (g *Game) EndReason() EndReason {
	return g.endReason
}

func (g *Game) PlayerOnTurn() int {
	return g.onturn
}

func (g *Game) NickOnTurn() string {
	return g.players[g.onturn].nickname
}

func (g *Game) Nickname(player int) string {
	return g.players[player].nickname
}

func (g *Game) PointsFor(player int) int {
	return g.players[player].points
}

func (g *Game) TurnsFor(player int) int {
	return g.players[player].turns
}

func (g *Game) Board(player int) *board.ScoringBoard {
	return g.players[player].board
}

func (g *Game) Supply() *factory.TileSupply {
	return g.supply
}

func (g *Game) Rules() rules.Rules {
	return g.rules
}

// Round is the 1-based number of the round in progress.
func (g *Game) Round() int {
	return g.round
}

// Turn is the number of successful turns played so far.
func (g *Game) Turn() int {
	return g.turnnum
}

// Winner returns the index of the player with more points, or -1 for a tie.
// It is only meaningful once the game is over.
func (g *Game) Winner() int {
	switch {
	case g.players[0].points > g.players[1].points:
		return 0
	case g.players[1].points > g.players[0].points:
		return 1
	}
	return -1
}
