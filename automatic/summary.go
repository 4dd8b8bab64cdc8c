package automatic

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domino14/azul/game"
	"github.com/domino14/azul/stats"
)

// Summary aggregates the results of a batch of games. Spread is always the
// first player's score minus the second's.
type Summary struct {
	Games           int                      `yaml:"games"`
	Seed            uint64                   `yaml:"seed"`
	Players         [game.NumPlayers]string  `yaml:"players,flow"`
	Wins            [game.NumPlayers]int     `yaml:"wins,flow"`
	Ties            int                      `yaml:"ties"`
	MeanScore       [game.NumPlayers]float64 `yaml:"mean_score,flow"`
	StdevScore      [game.NumPlayers]float64 `yaml:"stdev_score,flow"`
	MeanSpread      float64                  `yaml:"mean_spread"`
	StdevSpread     float64                  `yaml:"stdev_spread"`
	MedianSpread    float64                  `yaml:"median_spread"`
	SpreadCI95      [2]float64               `yaml:"spread_ci95,flow"`
	MeanRounds      float64                  `yaml:"mean_rounds"`
	RoundLimitGames int                      `yaml:"round_limit_games"`
	DistinctStates  int                      `yaml:"distinct_states"`

	scores [game.NumPlayers]*stats.Statistic
	spread *stats.Statistic
	rounds *stats.Statistic
	states map[uint64]struct{}
}

func newSummary(seed uint64, players [game.NumPlayers]string) *Summary {
	s := &Summary{
		Seed:    seed,
		Players: players,
		spread:  &stats.Statistic{},
		rounds:  &stats.Statistic{},
		states:  map[uint64]struct{}{},
	}
	for i := range s.scores {
		s.scores[i] = &stats.Statistic{}
	}
	return s
}

func (s *Summary) add(res GameResult) {
	s.Games++
	if res.Winner >= 0 {
		s.Wins[res.Winner]++
	} else {
		s.Ties++
	}
	for i, score := range res.Scores {
		s.scores[i].Push(float64(score))
	}
	s.spread.Push(float64(res.Scores[0] - res.Scores[1]))
	s.rounds.Push(float64(res.Rounds))
	if res.EndReason == game.EndReasonRoundLimit {
		s.RoundLimitGames++
	}
	for _, h := range res.StateHashes {
		s.states[h] = struct{}{}
	}
}

// merge folds another tally of the same matchup into s.
func (s *Summary) merge(o *Summary) {
	s.Games += o.Games
	s.Ties += o.Ties
	s.RoundLimitGames += o.RoundLimitGames
	for i := range s.scores {
		s.Wins[i] += o.Wins[i]
		s.scores[i].Merge(o.scores[i])
	}
	s.spread.Merge(o.spread)
	s.rounds.Merge(o.rounds)
	for h := range o.states {
		s.states[h] = struct{}{}
	}
}

func (s *Summary) finish() {
	for i, st := range s.scores {
		s.MeanScore[i] = st.Mean()
		s.StdevScore[i] = st.Stdev()
	}
	s.MeanSpread = s.spread.Mean()
	s.StdevSpread = s.spread.Stdev()
	s.MedianSpread = s.spread.Median()
	s.SpreadCI95[0], s.SpreadCI95[1] = s.spread.ConfidenceInterval(95)
	s.MeanRounds = s.rounds.Mean()
	s.DistinctStates = len(s.states)
}

// WriteSummary writes the summary to path as YAML.
func (s *Summary) WriteSummary(path string) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
