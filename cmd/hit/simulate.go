package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/shoe"
	"github.com/lox/hit/internal/simulator"
)

// SimulateCmd plays rounds without a human and reports the expected value
type SimulateCmd struct {
	Rounds    int           `short:"n" help:"Number of rounds to play" default:"100000"`
	Workers   int           `short:"w" help:"Parallel workers (defaults to CPU count)"`
	Strategy  string        `short:"s" help:"Strategy: advisor or stand:N (12-21)" default:"advisor"`
	Shoe      *string       `help:"Shoe kind (infinite or finite)"`
	BonusRule *string       `help:"Which 21s pay 3x (any21 or natural)"`
	Timeout   time.Duration `help:"Give up after this long" default:"5m"`
	Out       string        `short:"o" help:"Write a JSON report to this path" type:"path"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, TableFlags{Shoe: c.Shoe, BonusRule: c.BonusRule})
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, g, cfg)

	if cfg.ShoeKind() == shoe.KindFair {
		return errors.New("the fair shoe replays published seeds and cannot be simulated; use infinite or finite")
	}

	strategy, err := simulator.ParseStrategy(c.Strategy)
	if err != nil {
		return err
	}
	rule, err := game.ParseBonusRule(cfg.Table.BonusRule)
	if err != nil {
		return err
	}
	if c.Rounds <= 0 {
		return errors.New("--rounds must be positive")
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	seed := resolveSeed(g, logger)
	sim := simulator.New(simulator.Config{
		Rounds:    c.Rounds,
		Workers:   workers,
		Strategy:  strategy,
		Shoe:      cfg.ShoeKind(),
		BonusRule: rule,
		Seed:      seed,
		Timeout:   c.Timeout,
		Logger:    logger,
	})

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	report := sim.NewReport(stats, time.Since(start))

	simulator.PrintSummary(os.Stdout, report, stats)
	if c.Out != "" {
		if err := simulator.WriteReport(c.Out, report); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Out)
	}
	return nil
}
