package main

import (
	"fmt"
	"os"

	"github.com/lox/hit/internal/config"
	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/randutil"
	"github.com/lox/hit/internal/server"
	"github.com/lox/hit/internal/shoe"
)

// ServeCmd hosts one game per WebSocket connection
type ServeCmd struct {
	TableFlags `embed:""`

	Addr *string `help:"Address to listen on (overrides server.address)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, c.TableFlags)
	if err != nil {
		return err
	}
	if c.Addr != nil {
		cfg.Server.Address = *c.Addr
	}
	logger := newLogger(os.Stderr, g, cfg)

	ctx, cancel := signalContext(logger)
	defer cancel()

	seed := resolveSeed(g, logger)
	srv := server.NewServer(server.Config{
		Address:     cfg.Server.Address,
		IdleTimeout: cfg.IdleTimeout(),
		Logger:      logger,
		NewGame: func(n int) (*game.Game, error) {
			return newGame(sessionConfig(cfg, n), randutil.Derive(seed, n), logger)
		},
	})
	return srv.ListenAndServe(ctx)
}

// sessionConfig gives every session of a fair table its own client seed so
// no two sessions deal the same cards
func sessionConfig(cfg *config.Config, n int) *config.Config {
	if cfg.ShoeKind() != shoe.KindFair {
		return cfg
	}
	c := *cfg
	c.Table.ClientSeed = fmt.Sprintf("%s-%d", cfg.Table.ClientSeed, n)
	return &c
}
