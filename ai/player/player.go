// Package player holds automatic players. A player only chooses actions;
// the game engine decides what they are worth.
package player

import (
	"errors"
	"fmt"

	"github.com/domino14/azul/factory"
	"github.com/domino14/azul/game"
)

const (
	RandomPlayerName = "random"
	GreedyPlayerName = "greedy"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy picks the next action for the player on turn. It is only asked
// while the game is still being played.
type Strategy interface {
	Name() string
	ChooseAction(g *game.Game) game.Action
}

// NewStrategy creates a strategy by name.
func NewStrategy(name string, rng factory.RandSource) (Strategy, error) {
	switch name {
	case RandomPlayerName:
		return NewRandomPlayer(rng), nil
	case GreedyPlayerName:
		return NewGreedyPlayer(rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// RandomPlayer drafts a uniformly random nonempty (pool, color) and puts it
// on a uniformly random pattern line.
type RandomPlayer struct {
	rng factory.RandSource
}

func NewRandomPlayer(rng factory.RandSource) *RandomPlayer {
	return &RandomPlayer{rng: rng}
}

func (p *RandomPlayer) Name() string {
	return RandomPlayerName
}

func (p *RandomPlayer) ChooseAction(g *game.Game) game.Action {
	picks := g.LegalPicks()
	pk := picks[p.rng.Intn(len(picks))]
	return game.Action{
		Pool:  pk.Pool,
		Color: pk.Color,
		Row:   p.rng.Intn(g.Rules().NumColors),
	}
}
