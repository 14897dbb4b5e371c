package main

import (
	"github.com/lox/hit/internal/tui"
)

// PlayCmd runs the full-screen table
type PlayCmd struct {
	TableFlags `embed:""`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, c.TableFlags)
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger(g, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := resolveSeed(g, logger)
	table, err := newGame(cfg, seed, logger)
	if err != nil {
		return err
	}

	logger.Info("Starting interactive game",
		"shoe", cfg.Table.Shoe,
		"bankroll", table.Bankroll(),
		"wager", table.Wager(),
		"bonus_rule", table.BonusRule())
	return tui.Run(table, cfg.UI, logger)
}
