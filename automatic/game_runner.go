// Package automatic plays computer-vs-computer games, for data collection
// and for comparing strategies.
package automatic

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/azul/ai/player"
	"github.com/domino14/azul/factory"
	"github.com/domino14/azul/game"
	"github.com/domino14/azul/rules"
)

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game    *game.Game
	players [game.NumPlayers]player.Strategy
	logchan chan string

	gameID string
	states map[uint64]struct{}
}

// GameResult is the outcome of one finished game.
type GameResult struct {
	GameID    string
	Scores    [game.NumPlayers]int
	Winner    int
	Rounds    int
	Turns     int
	EndReason game.EndReason
	// StateHashes holds every distinct position the game went through.
	StateHashes []uint64
}

// NewGameRunner sets up a runner whose games and strategies are all seeded
// from seed. If logchan is not nil, every turn is written to it as a CSV
// line.
func NewGameRunner(logchan chan string, r rules.Rules, seed uint64, maxRounds int,
	player1, player2 string) (*GameRunner, error) {

	g, err := game.NewGame(r, factory.NewRand(seed),
		game.WithMaxRounds(maxRounds),
		game.WithNicknames(player1+"-1", player2+"-2"))
	if err != nil {
		return nil, err
	}
	runner := &GameRunner{game: g, logchan: logchan}
	for idx, name := range []string{player1, player2} {
		// each strategy gets its own stream so neither perturbs the deal
		s, err := player.NewStrategy(name, factory.NewRand(seed^uint64(idx+1)<<32))
		if err != nil {
			return nil, err
		}
		runner.players[idx] = s
	}
	return runner, nil
}

// StartGame resets the game and names it.
func (r *GameRunner) StartGame(gameID string) {
	r.game.Reset()
	r.gameID = gameID
	r.states = map[uint64]struct{}{r.game.StateHash(): {}}
}

// PlayTurn asks the strategy on turn for an action and plays it.
func (r *GameRunner) PlayTurn() (game.TurnResult, error) {
	onturn := r.game.PlayerOnTurn()
	nick := r.game.NickOnTurn()
	round := r.game.Round()
	a := r.players[onturn].ChooseAction(r.game)
	res, err := r.game.PlayTurn(a)
	if err != nil {
		return res, fmt.Errorf("%s played %v: %w", nick, a, err)
	}
	r.states[r.game.StateHash()] = struct{}{}

	if r.logchan != nil {
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v,%v,%v,%v,%v,%v\n",
			nick,
			r.gameID,
			round,
			r.game.Turn(),
			a.Pool,
			a.Color,
			a.Row,
			res.TilesTaken,
			res.FirstPlayerToken,
			res.ScoreDelta,
			r.game.PointsFor(onturn),
			r.game.PointsFor((onturn+1)%game.NumPlayers))
	}
	return res, nil
}

// PlayFullGame plays a new game to the end.
func (r *GameRunner) PlayFullGame(gameID string) (GameResult, error) {
	r.StartGame(gameID)
	for r.game.Playing() {
		if _, err := r.PlayTurn(); err != nil {
			return GameResult{}, err
		}
	}
	res := GameResult{
		GameID:    gameID,
		Winner:    r.game.Winner(),
		Rounds:    r.game.Round(),
		Turns:     r.game.Turn(),
		EndReason: r.game.EndReason(),
	}
	for i := range res.Scores {
		res.Scores[i] = r.game.PointsFor(i)
	}
	res.StateHashes = make([]uint64, 0, len(r.states))
	for h := range r.states {
		res.StateHashes = append(res.StateHashes, h)
	}
	log.Debug().Str("game", gameID).Int("p1", res.Scores[0]).Int("p2", res.Scores[1]).
		Int("rounds", res.Rounds).Msg("game-over")
	return res, nil
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}
