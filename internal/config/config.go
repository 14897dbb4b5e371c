// Package config loads the HCL configuration shared by every hit command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	rand "math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/shoe"
)

// DefaultFile is read when --config is not given
const DefaultFile = "hit.hcl"

// Config is the complete configuration
type Config struct {
	Table  TableSettings
	UI     UISettings
	Server ServerSettings
}

// TableSettings describes the rules of the table
type TableSettings struct {
	Wagering    bool   `hcl:"wagering,optional"`
	Bankroll    int    `hcl:"bankroll,optional"`
	Wager       int    `hcl:"wager,optional"`
	Shoe        string `hcl:"shoe,optional"`
	ReshuffleAt int    `hcl:"reshuffle_at,optional"`
	BonusRule   string `hcl:"bonus_rule,optional"`
	ServerSeed  string `hcl:"server_seed,optional"`
	ClientSeed  string `hcl:"client_seed,optional"`
	Nonce       int    `hcl:"nonce,optional"`
}

// UISettings contains key bindings and terminal settings
type UISettings struct {
	HitKey        string `hcl:"hit_key,optional"`
	StandKey      string `hcl:"stand_key,optional"`
	QuitKey       string `hcl:"quit_key,optional"`
	CaseSensitive bool   `hcl:"case_sensitive,optional"`
	LogLevel      string `hcl:"log_level,optional"`
	LogFile       string `hcl:"log_file,optional"`
	Theme         string `hcl:"theme,optional"`
}

// ServerSettings configures `hit serve`
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	IdleTimeout string `hcl:"idle_timeout,optional"`
}

// file mirrors the HCL layout; blocks and flags are pointers so an absent
// value can be told apart from a zero one
type file struct {
	Table *struct {
		Wagering    *bool   `hcl:"wagering,optional"`
		Bankroll    *int    `hcl:"bankroll,optional"`
		Wager       *int    `hcl:"wager,optional"`
		Shoe        *string `hcl:"shoe,optional"`
		ReshuffleAt *int    `hcl:"reshuffle_at,optional"`
		BonusRule   *string `hcl:"bonus_rule,optional"`
		ServerSeed  *string `hcl:"server_seed,optional"`
		ClientSeed  *string `hcl:"client_seed,optional"`
		Nonce       *int    `hcl:"nonce,optional"`
	} `hcl:"table,block"`
	UI *struct {
		HitKey        *string `hcl:"hit_key,optional"`
		StandKey      *string `hcl:"stand_key,optional"`
		QuitKey       *string `hcl:"quit_key,optional"`
		CaseSensitive *bool   `hcl:"case_sensitive,optional"`
		LogLevel      *string `hcl:"log_level,optional"`
		LogFile       *string `hcl:"log_file,optional"`
		Theme         *string `hcl:"theme,optional"`
	} `hcl:"ui,block"`
	Server *struct {
		Address     *string `hcl:"address,optional"`
		IdleTimeout *string `hcl:"idle_timeout,optional"`
	} `hcl:"server,block"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Table: TableSettings{
			Wagering:  true,
			Bankroll:  game.DefaultBankroll,
			Wager:     game.DefaultWager,
			Shoe:      string(shoe.KindInfinite),
			BonusRule: game.BonusAny21.String(),
		},
		UI: UISettings{
			HitKey:   "h",
			StandKey: "s",
			QuitKey:  "q",
			LogLevel: "info",
			LogFile:  "hit.log",
			Theme:    "default",
		},
		Server: ServerSettings{
			Address:     "localhost:8080",
			IdleTimeout: "10m",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; values absent from the file keep their defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(f.Body)
}

// Parse reads configuration from HCL source held in memory
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(f.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var raw file
	if diags := gohcl.DecodeBody(body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if t := raw.Table; t != nil {
		set(&cfg.Table.Wagering, t.Wagering)
		set(&cfg.Table.Bankroll, t.Bankroll)
		set(&cfg.Table.Wager, t.Wager)
		set(&cfg.Table.Shoe, t.Shoe)
		set(&cfg.Table.ReshuffleAt, t.ReshuffleAt)
		set(&cfg.Table.BonusRule, t.BonusRule)
		set(&cfg.Table.ServerSeed, t.ServerSeed)
		set(&cfg.Table.ClientSeed, t.ClientSeed)
		set(&cfg.Table.Nonce, t.Nonce)
	}
	if u := raw.UI; u != nil {
		set(&cfg.UI.HitKey, u.HitKey)
		set(&cfg.UI.StandKey, u.StandKey)
		set(&cfg.UI.QuitKey, u.QuitKey)
		set(&cfg.UI.CaseSensitive, u.CaseSensitive)
		set(&cfg.UI.LogLevel, u.LogLevel)
		set(&cfg.UI.LogFile, u.LogFile)
		set(&cfg.UI.Theme, u.Theme)
	}
	if s := raw.Server; s != nil {
		set(&cfg.Server.Address, s.Address)
		set(&cfg.Server.IdleTimeout, s.IdleTimeout)
	}
	return cfg, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.Wagering {
		if c.Table.Wager <= 0 {
			return fmt.Errorf("wager must be positive")
		}
		if c.Table.Bankroll < 0 {
			return fmt.Errorf("bankroll cannot be negative")
		}
	}
	kind, err := shoe.ParseKind(c.Table.Shoe)
	if err != nil {
		return err
	}
	if kind == shoe.KindFair && c.Table.ServerSeed == "" {
		return fmt.Errorf("server_seed is required for the %s shoe", kind)
	}
	if c.Table.Nonce < 0 {
		return fmt.Errorf("nonce cannot be negative")
	}
	if c.Table.ReshuffleAt < 0 {
		return fmt.Errorf("reshuffle_at cannot be negative")
	}
	if c.Table.ReshuffleAt > 52 {
		return fmt.Errorf("reshuffle_at %d exceeds deck size", c.Table.ReshuffleAt)
	}
	if _, err := game.ParseBonusRule(c.Table.BonusRule); err != nil {
		return err
	}

	keys := []struct{ name, key string }{
		{"hit_key", c.UI.HitKey},
		{"stand_key", c.UI.StandKey},
		{"quit_key", c.UI.QuitKey},
	}
	seen := make(map[string]string, len(keys))
	for _, k := range keys {
		name, key := k.name, k.key
		if len([]rune(key)) != 1 {
			return fmt.Errorf("%s must be a single character, got %q", name, key)
		}
		if !c.UI.CaseSensitive {
			key = strings.ToLower(key)
		}
		if key == "?" {
			return fmt.Errorf("%s cannot be %q (reserved for advice)", name, key)
		}
		if other, ok := seen[key]; ok {
			return fmt.Errorf("%s and %s are both bound to %q", other, name, key)
		}
		seen[key] = name
	}

	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	validThemes := map[string]bool{
		"default": true,
		"dark":    true,
		"light":   true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}

	if c.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}
	if d, err := time.ParseDuration(c.Server.IdleTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid idle_timeout %q", c.Server.IdleTimeout)
	}
	return nil
}

// GameOptions translates the table settings into game options
func (c *Config) GameOptions() []game.Option {
	rule, _ := game.ParseBonusRule(c.Table.BonusRule)
	opts := []game.Option{
		game.WithBonusRule(rule),
		game.WithReshuffleAt(c.Table.ReshuffleAt),
	}
	if c.Table.Wagering {
		opts = append(opts, game.WithBankroll(c.Table.Bankroll, c.Table.Wager))
	} else {
		opts = append(opts, game.WithoutWagering())
	}
	return opts
}

// ShoeKind returns the configured shoe kind
func (c *Config) ShoeKind() shoe.Kind {
	return shoe.Kind(c.Table.Shoe)
}

// NewShoe builds the configured shoe. rng feeds the infinite and finite
// shoes; the fair shoe is derived from the configured seeds instead.
func (c *Config) NewShoe(rng *rand.Rand) (shoe.Shoe, error) {
	if c.ShoeKind() == shoe.KindFair {
		return shoe.NewFair(c.Table.ServerSeed, c.Table.ClientSeed, uint64(c.Table.Nonce)), nil
	}
	return shoe.New(c.ShoeKind(), rng)
}

// IdleTimeout returns the parsed server idle timeout
func (c *Config) IdleTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.IdleTimeout)
	return d
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Matches reports whether input is the given key binding
func (u UISettings) Matches(input, key string) bool {
	if u.CaseSensitive {
		return input == key
	}
	return strings.EqualFold(input, key)
}
