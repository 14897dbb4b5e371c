package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/hit/internal/config"
	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/randutil"
	"github.com/lox/hit/internal/shoe"
	"github.com/lox/hit/internal/tui"
)

// TableFlags override the table block of the configuration file
type TableFlags struct {
	Bankroll    *int    `help:"Starting bankroll"`
	Wager       *int    `help:"Fixed wager per round"`
	NoWager     bool    `help:"Play without a bankroll"`
	Shoe        *string `help:"Shoe kind (infinite, finite or fair)"`
	ReshuffleAt *int    `help:"Reshuffle a finite shoe when fewer cards remain"`
	BonusRule   *string `help:"Which 21s pay 3x (any21 or natural)"`
	ServerSeed  *string `help:"Server seed for the fair shoe"`
	ClientSeed  *string `help:"Client seed for the fair shoe"`
	Nonce       *int    `help:"Nonce of the first fair round"`
}

func (f TableFlags) apply(cfg *config.Config) {
	if f.Bankroll != nil {
		cfg.Table.Bankroll = *f.Bankroll
	}
	if f.Wager != nil {
		cfg.Table.Wager = *f.Wager
	}
	if f.NoWager {
		cfg.Table.Wagering = false
	}
	if f.Shoe != nil {
		cfg.Table.Shoe = *f.Shoe
	}
	if f.ReshuffleAt != nil {
		cfg.Table.ReshuffleAt = *f.ReshuffleAt
	}
	if f.BonusRule != nil {
		cfg.Table.BonusRule = *f.BonusRule
	}
	if f.ServerSeed != nil {
		cfg.Table.ServerSeed = *f.ServerSeed
	}
	if f.ClientSeed != nil {
		cfg.Table.ClientSeed = *f.ClientSeed
	}
	if f.Nonce != nil {
		cfg.Table.Nonce = *f.Nonce
	}
}

// loadConfig reads the configuration, applies flag overrides and validates
func loadConfig(g *Globals, table TableFlags) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", g.Config, err)
	}
	table.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	tui.SetColorProfile(g.NoColor)
	return cfg, nil
}

// newLogger returns a logger writing to w at the configured level
func newLogger(w io.Writer, g *Globals, cfg *config.Config) *log.Logger {
	level := cfg.LogLevel()
	if g.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// newFileLogger logs to the configured file so the terminal stays clean
func newFileLogger(g *Globals, cfg *config.Config) (*log.Logger, func(), error) {
	f, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}
	logger := newLogger(f, g, cfg)
	return logger, func() {
		if err := f.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}, nil
}

// newGame builds a game dealing from the configured shoe; seed feeds the
// infinite and finite shoes
func newGame(cfg *config.Config, seed int64, logger *log.Logger) (*game.Game, error) {
	s, err := cfg.NewShoe(randutil.New(seed))
	if err != nil {
		return nil, err
	}
	if p, ok := s.(shoe.Provable); ok && logger != nil {
		logger.Info("Dealing from a provably fair shoe",
			"server_seed_hash", p.Commitment(),
			"client_seed", p.ClientSeed(),
			"nonce", p.Nonce())
	}
	opts := append(cfg.GameOptions(), game.WithLogger(logger))
	return game.New(s, opts...), nil
}

// resolveSeed picks the session seed and logs it for replay
func resolveSeed(g *Globals, logger *log.Logger) int64 {
	seed := randutil.Seed(g.Seed)
	if g.Seed != nil {
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		logger.Info("Using random seed", "seed", seed)
	}
	return seed
}

// signalContext is cancelled on interrupt or SIGTERM
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
