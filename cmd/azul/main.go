package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/azul/automatic"
	"github.com/domino14/azul/config"
)

var (
	GitVersion string
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	log.Info().Str("version", GitVersion).Interface("settings", cfg.SanitizedSettings()).Msg("loaded-config")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch mode := cfg.GetString(config.ConfigMode); mode {
	case config.ModeSelfPlay:
		selfPlay(ctx, cfg)
	case config.ModeEpisode:
		if err := runEpisode(ctx, cfg, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("running-episode")
		}
	default:
		log.Fatal().Str("mode", mode).Msg("unknown-mode")
	}
}

func selfPlay(ctx context.Context, cfg *config.Config) {
	summary, err := automatic.PlayGames(ctx, cfg,
		cfg.GetInt(config.ConfigGames), cfg.GetInt(config.ConfigThreads))
	if err != nil {
		log.Fatal().Err(err).Msg("playing-games")
	}

	log.Info().
		Int("games", summary.Games).
		Strs("players", summary.Players[:]).
		Ints("wins", summary.Wins[:]).
		Int("ties", summary.Ties).
		Floats64("mean-score", summary.MeanScore[:]).
		Float64("mean-spread", summary.MeanSpread).
		Floats64("spread-ci95", summary.SpreadCI95[:]).
		Float64("mean-rounds", summary.MeanRounds).
		Int("distinct-states", summary.DistinctStates).
		Msg("summary")

	if path := cfg.GetString(config.ConfigSummaryFile); path != "" {
		if err := summary.WriteSummary(path); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("writing-summary")
		}
		log.Info().Str("path", path).Msg("wrote-summary")
	}
}
