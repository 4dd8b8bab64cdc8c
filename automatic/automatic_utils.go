package automatic

// Data collection for automatic games: computer vs computer, many at once.

import (
	"bufio"
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/azul/config"
	"github.com/domino14/azul/factory"
	"github.com/domino14/azul/game"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

// playing is held for the whole of a PlayGames call. IsPlaying only counts
// busy workers.
var playing atomic.Bool

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

const csvHeader = "playerID,gameID,round,turn,pool,color,row,tiles,firstplayer,score,totalscore,opptotalscore\n"

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// PlayGames plays numGames games between the configured agent and
// adversary strategies, threads at a time. Cancelling ctx stops new games
// from starting; games already underway finish and are counted.
func PlayGames(ctx context.Context, cfg *config.Config, numGames, threads int) (*Summary, error) {
	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)
	if threads < 1 {
		threads = 1
	}
	r, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	seed := cfg.GetUint64(config.ConfigSeed)
	if seed == 0 {
		seed = factory.RandomSeed()
	}
	maxRounds := cfg.GetInt(config.ConfigMaxRounds)
	p1 := cfg.GetString(config.ConfigAgent)
	p2 := cfg.GetString(config.ConfigAdversary)
	log.Info().Int("games", numGames).Int("threads", threads).Uint64("seed", seed).
		Str("agent", p1).Str("adversary", p2).Msg("starting-games")

	// Build every runner up front so bad settings fail before anything runs.
	runners := make([]*GameRunner, threads)
	var logchan chan string
	loggerDone := make(chan struct{})
	if path := cfg.GetString(config.ConfigOutputFile); path != "" {
		logfile, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		logchan = make(chan string, 100)
		go func() {
			defer close(loggerDone)
			defer logfile.Close()
			w := bufio.NewWriter(logfile)
			w.WriteString(csvHeader)
			for msg := range logchan {
				w.WriteString(msg)
			}
			if err := w.Flush(); err != nil {
				log.Err(err).Str("path", path).Msg("flushing-turn-log")
			}
			log.Debug().Msg("exiting-turn-logger")
		}()
	} else {
		close(loggerDone)
	}
	for i := range runners {
		runners[i], err = NewGameRunner(logchan, r, seed+uint64(i), maxRounds, p1, p2)
		if err != nil {
			if logchan != nil {
				close(logchan)
			}
			<-loggerDone
			return nil, err
		}
	}

	CVCCounter.Set(0)
	players := [game.NumPlayers]string{p1, p2}
	// Each worker tallies its own games; the tallies are merged at the end.
	parts := make([]*Summary, len(runners))
	for i := range parts {
		parts[i] = newSummary(seed, players)
	}
	jobs := make(chan int, threads)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 1; i <= numGames; i++ {
			if ctx.Err() != nil {
				log.Info().Msg("got stop signal, exiting soon...")
				return nil
			}
			select {
			case jobs <- i:
			case <-gctx.Done():
				return nil
			}
			if i%1000 == 0 {
				log.Info().Int("queued", i).Msg("queued-jobs")
			}
		}
		return nil
	})
	for i, runner := range runners {
		runner := runner
		part := parts[i]
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for id := range jobs {
				res, err := runner.PlayFullGame(fmt.Sprintf("g%d", id))
				if err != nil {
					return err
				}
				part.add(res)
				CVCCounter.Add(1)
			}
			return nil
		})
	}
	err = g.Wait()
	if logchan != nil {
		close(logchan)
	}
	<-loggerDone
	if err != nil {
		return nil, err
	}
	summary := newSummary(seed, players)
	for _, part := range parts {
		summary.merge(part)
	}
	summary.finish()
	log.Info().Int("games", summary.Games).Msg("all-games-finished")
	return summary, nil
}
