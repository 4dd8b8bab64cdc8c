package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/domino14/azul/ai/player"
	"github.com/domino14/azul/config"
	"github.com/domino14/azul/env"
	"github.com/domino14/azul/factory"
	"github.com/domino14/azul/game"
)

// runEpisode steps a single environment episode with the configured agent
// strategy standing in for a learner, and prints the final table.
func runEpisode(ctx context.Context, cfg *config.Config, out io.Writer) error {
	r, err := cfg.Rules()
	if err != nil {
		return err
	}
	rt, err := env.ParseRewardType(cfg.GetString(config.ConfigRewardType))
	if err != nil {
		return err
	}
	seed := cfg.GetUint64(config.ConfigSeed)
	if seed == 0 {
		seed = factory.RandomSeed()
	}
	g, err := game.NewGame(r, factory.NewRand(seed),
		game.WithMaxRounds(cfg.GetInt(config.ConfigMaxRounds)),
		game.WithNicknames("agent", "adversary"))
	if err != nil {
		return err
	}
	agent, err := player.NewStrategy(cfg.GetString(config.ConfigAgent), factory.NewRand(seed+1))
	if err != nil {
		return err
	}
	adversary, err := player.NewStrategy(cfg.GetString(config.ConfigAdversary), factory.NewRand(seed+2))
	if err != nil {
		return err
	}
	e := env.NewEnv(g, adversary,
		env.WithRewardType(rt),
		env.WithEmptyPickPenalty(cfg.GetFloat64(config.ConfigEmptyPickPenalty)))

	if _, err := e.Reset(); err != nil {
		return err
	}
	total := 0.0
	steps := 0
	for done := false; !done; steps++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		a := agent.ChooseAction(g)
		var reward float64
		var info env.Info
		_, reward, done, info, err = e.Step([]int{a.Pool, a.Color, a.Row})
		if err != nil {
			return err
		}
		total += reward
		log.Debug().Int("step", steps).Str("action", a.String()).Float64("reward", reward).
			Bool("round-ended", info.RoundEnded).Uint64("state", info.StateHash).Msg("step")
	}
	fmt.Fprint(out, e.ToDisplayText())
	log.Info().Uint64("seed", seed).Int("steps", steps).Float64("return", total).
		Int("agent", g.PointsFor(0)).Int("adversary", g.PointsFor(1)).Msg("episode-finished")
	return nil
}
