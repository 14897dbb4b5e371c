package main

import (
	"context"
	"os"
	"time"

	"github.com/lox/hit/internal/client"
	"github.com/lox/hit/internal/prompt"
)

// ConnectCmd plays a session on a remote `hit serve`
type ConnectCmd struct {
	Server string `arg:"" optional:"" help:"Server URL" default:"http://localhost:8080"`
}

func (c *ConnectCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, TableFlags{})
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, g, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	remote, err := client.Dial(ctx, c.Server, logger)
	if err != nil {
		return err
	}
	defer remote.Close()

	return prompt.NewWithTable(remote, os.Stdin, os.Stdout, cfg.UI, logger).Run()
}
