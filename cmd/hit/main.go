package main

import (
	"errors"
	"io/fs"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config  string `short:"c" help:"Path to the HCL configuration file" default:"hit.hcl" type:"path" env:"HIT_CONFIG"`
	Seed    *int64 `help:"Deterministic RNG seed (optional)" env:"HIT_SEED"`
	Debug   bool   `help:"Enable debug logging" env:"HIT_DEBUG"`
	NoColor bool   `help:"Disable colour output" env:"HIT_NO_COLOR"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play blackjack in the terminal UI"`
	Prompt   PromptCmd        `cmd:"" help:"Play blackjack with a line-by-line prompt"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate many rounds with a fixed strategy"`
	Serve    ServeCmd         `cmd:"" help:"Serve blackjack sessions over WebSocket"`
	Connect  ConnectCmd       `cmd:"" help:"Play a session on a remote server"`
	Verify   VerifyCmd        `cmd:"" help:"Replay the cards of a provably-fair round"`
}

func main() {
	// Values from .env fill in HIT_* variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("Failed to load .env file", "error", err)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("hit"),
		kong.Description("Single-player blackjack: hit, stand, and try not to bust"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
