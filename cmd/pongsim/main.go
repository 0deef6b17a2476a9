// Command pongsim runs headless pong matches with random key input and logs the
// final scores.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/setanarut/sweep"
	"github.com/setanarut/sweep/internal/logging"
	"github.com/setanarut/sweep/pong"
)

func main() {
	var (
		configPath string
		matches    int
		players    int
		ticks      int
		dt         float64
		logLevel   string
		parallel   int
	)

	flag.StringVar(&configPath, "config", "", "YAML board options file")
	flag.IntVar(&matches, "matches", 4, "Number of matches run in parallel")
	flag.IntVar(&players, "players", 2, "Players per match")
	flag.IntVar(&ticks, "ticks", 60*60, "Ticks per match")
	flag.Float64Var(&dt, "dt", 1.0/60, "Tick length in seconds")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flag.IntVar(&parallel, "parallel", 0, "Max boards ticked at once (0 = no limit)")
	flag.Parse()

	logger, err := logging.New(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger, configPath, matches, players, ticks, dt, parallel); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, configPath string, matches, players, ticks int, dt float64, parallel int) error {
	opts := pong.DefaultOptions()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return fmt.Errorf("open options: %w", err)
		}
		opts, err = pong.LoadOptions(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := pong.NewRunner(logger, parallel)
	ids := make([]int, players)
	for i := range ids {
		ids[i] = i + 1
	}
	for m := range matches {
		o := opts
		o.Seed = opts.Seed + uint64(m)
		board, err := pong.NewBoard(ids, o, logger)
		if err != nil {
			return fmt.Errorf("new board %d: %w", m, err)
		}
		runner.Add(board)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, 0))
	keys := []string{sweep.KeyLeft, sweep.KeyRight}
	for tick := range ticks {
		// change every player's input about twice per second
		if tick%30 == 0 {
			for _, board := range runner.Boards() {
				for _, id := range ids {
					for _, key := range keys {
						board.HandlePlayerKey(id, key, rng.IntN(3) == 0)
					}
				}
			}
		}
		if err := runner.TickAll(ctx, dt); err != nil {
			return err
		}
	}

	for _, board := range runner.Boards() {
		logger.Info("match finished",
			zap.Stringer("board", board.ID),
			zap.Float64("elapsed", board.ElapsedTime()),
			zap.Any("scores", board.Scores()),
			zap.Uint64("digest", board.Digest()))
	}
	return nil
}
