package player

import (
	"github.com/samber/lo"

	"github.com/domino14/azul/factory"
	"github.com/domino14/azul/game"
)

// GreedyPlayer takes whichever action scores the most points right now,
// breaking ties at random. It does not look ahead.
type GreedyPlayer struct {
	rng factory.RandSource
}

func NewGreedyPlayer(rng factory.RandSource) *GreedyPlayer {
	return &GreedyPlayer{rng: rng}
}

func (p *GreedyPlayer) Name() string {
	return GreedyPlayerName
}

type scoredAction struct {
	action game.Action
	delta  int
}

func (p *GreedyPlayer) ChooseAction(g *game.Game) game.Action {
	scored := lo.Map(g.LegalActions(), func(a game.Action, _ int) scoredAction {
		return scoredAction{action: a, delta: ScoreAction(g, a)}
	})
	best := lo.MaxBy(scored, func(a, b scoredAction) bool {
		return a.delta > b.delta
	})
	ties := lo.Filter(scored, func(s scoredAction, _ int) bool {
		return s.delta == best.delta
	})
	return ties[p.rng.Intn(len(ties))].action
}

// ScoreAction returns the score change a would give the player on turn,
// without playing it.
func ScoreAction(g *game.Game, a game.Action) int {
	s := g.Supply()
	n := s.Count(a.Pool, a.Color)
	if n == 0 {
		return 0
	}
	token := a.Pool == factory.CenterPool && s.FirstPlayerTokenAvailable()
	return g.Board(g.PlayerOnTurn()).Preview(a.Color, a.Row, n, token)
}
