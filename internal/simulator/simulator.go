package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/hit/internal/advisor"
	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/randutil"
	"github.com/lox/hit/internal/shoe"
	"github.com/lox/hit/internal/statistics"
)

// reshuffleAt keeps a finite shoe deep enough for any single round
const reshuffleAt = 20

// Config holds configuration for running simulations
type Config struct {
	Rounds    int
	Workers   int
	Strategy  Strategy
	Shoe      shoe.Kind
	BonusRule game.BonusRule
	Seed      int64
	Timeout   time.Duration
	Logger    *log.Logger
}

// Simulator runs blackjack self-play
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Strategy == nil {
		config.Strategy = Optimal{}
	}
	if config.Shoe == "" {
		config.Shoe = shoe.KindInfinite
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config}
}

// Run plays the configured number of rounds and returns the aggregate
// statistics. Results depend only on the seed and worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	workers := min(s.config.Workers, s.config.Rounds)
	perWorker := s.config.Rounds / workers
	remainder := s.config.Rounds % workers

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation",
		"rounds", s.config.Rounds,
		"workers", workers,
		"strategy", s.config.Strategy.Name(),
		"shoe", s.config.Shoe,
		"seed", s.config.Seed)

	results := make([]*statistics.Statistics, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		seed := randutil.Derive(s.config.Seed, w)

		g.Go(func() error {
			stats, err := s.runWorker(ctx, seed, rounds)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in worker order so percentiles see the same sequence every run
	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Merge(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation complete", "rounds", stats.Rounds, "mean", stats.Mean())
	return stats, nil
}

func (s *Simulator) runWorker(ctx context.Context, seed int64, rounds int) (*statistics.Statistics, error) {
	src, err := shoe.New(s.config.Shoe, randutil.New(seed))
	if err != nil {
		return nil, err
	}
	g := game.New(src,
		game.WithoutWagering(),
		game.WithBonusRule(s.config.BonusRule),
		game.WithReshuffleAt(reshuffleAt))

	stats := &statistics.Statistics{}
	for i := range rounds {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if err := s.playRound(g, src); err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		stats.Add(statistics.ResultOf(g, seed))
	}
	return stats, nil
}

// playRound plays one round to resolution. A finite shoe that runs dry
// mid-round is refilled and the failed transition retried; transitions are
// atomic so the retry sees the same table.
func (s *Simulator) playRound(g *game.Game, src shoe.Shoe) error {
	if err := retryExhausted(src, g.NewDeal); err != nil {
		return err
	}
	for g.State() == game.Playing {
		var err error
		switch s.config.Strategy.Decide(g.Player(), g.Dealer(), g.BonusRule()) {
		case advisor.Hit:
			err = retryExhausted(src, g.Hit)
		default:
			err = retryExhausted(src, g.Stand)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func retryExhausted(src shoe.Shoe, op func() error) error {
	err := op()
	if !errors.Is(err, shoe.ErrShoeExhausted) {
		return err
	}
	r, ok := src.(shoe.Resetter)
	if !ok {
		return err
	}
	r.Reset()
	return op()
}
