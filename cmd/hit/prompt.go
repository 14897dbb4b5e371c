package main

import (
	"os"

	"github.com/lox/hit/internal/prompt"
)

// PromptCmd plays on stdin/stdout, one command per line
type PromptCmd struct {
	TableFlags `embed:""`
}

func (c *PromptCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, c.TableFlags)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, g, cfg)
	seed := resolveSeed(g, logger)
	table, err := newGame(cfg, seed, logger)
	if err != nil {
		return err
	}

	return prompt.New(table, os.Stdin, os.Stdout, cfg.UI, logger).Run()
}
