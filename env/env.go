// Package env adapts a game to a reinforcement-learning style step/reset
// loop. The agent always plays seat 0; an automatic adversary plays seat 1
// and moves in between the agent's steps.
package env

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/azul/ai/player"
	"github.com/domino14/azul/game"
)

const (
	agentSeat     = 0
	adversarySeat = 1

	DefaultEmptyPickPenalty = 0.1
)

// RewardType selects what Step rewards.
type RewardType string

const (
	// RewardScore pays out the agent's score change on every step.
	RewardScore RewardType = "score"
	// RewardWin pays +1 for a win, -1 for a loss, 0 otherwise, and only
	// when the game ends.
	RewardWin RewardType = "win"
)

var (
	ErrBadAction     = errors.New("malformed action")
	ErrBadRewardType = errors.New("unknown reward type")
)

// ParseRewardType accepts "score" or "win".
func ParseRewardType(s string) (RewardType, error) {
	switch RewardType(s) {
	case RewardScore, RewardWin:
		return RewardType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadRewardType, s)
}

// Info carries diagnostics alongside a step.
type Info struct {
	EmptyPick      bool
	RoundEnded     bool
	AgentScore     int
	AdversaryScore int
	StateHash      uint64
}

type Env struct {
	game      *game.Game
	adversary player.Strategy

	rewardType       RewardType
	emptyPickPenalty float64
}

type Option func(*Env)

func WithRewardType(rt RewardType) Option {
	return func(e *Env) {
		e.rewardType = rt
	}
}

func WithEmptyPickPenalty(p float64) Option {
	return func(e *Env) {
		e.emptyPickPenalty = p
	}
}

func NewEnv(g *game.Game, adversary player.Strategy, opts ...Option) *Env {
	e := &Env{
		game:             g,
		adversary:        adversary,
		rewardType:       RewardScore,
		emptyPickPenalty: DefaultEmptyPickPenalty,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Env) Game() *game.Game {
	return e.game
}

// ActionSpace gives the size of each action component: pool, color, row.
func (e *Env) ActionSpace() []int {
	r := e.game.Rules()
	return []int{r.NumFactories + 1, r.NumColors, r.NumColors}
}

// ObservationSpace gives, for every observation element, the number of
// values it can take.
func (e *Env) ObservationSpace() []int {
	r := e.game.Rules()
	n := r.NumColors
	space := make([]int, 0, (r.NumFactories+1)*n+1+n*n+2*n+1)
	for i := 0; i < n; i++ {
		space = append(space, r.CenterCapacity()+1)
	}
	for i := 0; i < n*r.NumFactories; i++ {
		space = append(space, r.FactorySize+1)
	}
	space = append(space, 2)
	for i := 0; i < n*n; i++ {
		space = append(space, 2)
	}
	for row := 0; row < n; row++ {
		space = append(space, row+2)
	}
	for i := 0; i < n; i++ {
		space = append(space, n)
	}
	return append(space, r.FloorLimit()+1)
}

// Reset starts a new game and returns the agent's first observation.
func (e *Env) Reset() ([]int, error) {
	e.game.Reset()
	if _, err := e.adversaryPlay(); err != nil {
		return nil, err
	}
	return e.game.Observation(agentSeat), nil
}

// Step plays the agent's action [pool, color, row], then lets the
// adversary move until it is the agent's turn again or the game is over.
func (e *Env) Step(action []int) (obs []int, reward float64, done bool, info Info, err error) {
	if len(action) != 3 {
		return nil, 0, false, Info{}, fmt.Errorf("%w: want 3 components, got %d", ErrBadAction, len(action))
	}
	if !e.game.Playing() {
		return nil, 0, true, Info{}, game.ErrGameOver
	}
	a := game.Action{Pool: action[0], Color: action[1], Row: action[2]}

	res, err := e.game.PlayTurn(a)
	switch {
	case errors.Is(err, game.ErrEmptyPick):
		reward = -e.emptyPickPenalty
		info.EmptyPick = true
	case errors.Is(err, game.ErrActionOutOfRange):
		return nil, 0, false, Info{}, fmt.Errorf("%w: %w", ErrBadAction, err)
	case err != nil:
		return nil, 0, false, Info{}, err
	default:
		if e.rewardType == RewardScore {
			reward = float64(res.ScoreDelta)
		}
		info.RoundEnded = res.RoundEnded
		roundEnded, err := e.adversaryPlay()
		if err != nil {
			return nil, 0, false, Info{}, err
		}
		info.RoundEnded = info.RoundEnded || roundEnded
	}

	done = !e.game.Playing()
	if done && e.rewardType == RewardWin {
		switch e.game.Winner() {
		case agentSeat:
			reward = 1
		case adversarySeat:
			reward = -1
		}
	}
	info.AgentScore = e.game.PointsFor(agentSeat)
	info.AdversaryScore = e.game.PointsFor(adversarySeat)
	info.StateHash = e.game.StateHash()
	return e.game.Observation(agentSeat), reward, done, info, nil
}

func (e *Env) adversaryPlay() (bool, error) {
	roundEnded := false
	for e.game.Playing() && e.game.PlayerOnTurn() == adversarySeat {
		a := e.adversary.ChooseAction(e.game)
		res, err := e.game.PlayTurn(a)
		if err != nil {
			log.Err(err).Str("action", a.String()).Msg("adversary-bad-action")
			return roundEnded, fmt.Errorf("adversary %s: %w", e.adversary.Name(), err)
		}
		roundEnded = roundEnded || res.RoundEnded
	}
	return roundEnded, nil
}

// ToDisplayText renders the game for the console.
func (e *Env) ToDisplayText() string {
	return e.game.ToDisplayText()
}
