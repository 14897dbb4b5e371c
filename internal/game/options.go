package game

import (
	"io"

	"github.com/charmbracelet/log"
)

// Defaults for a new game
const (
	DefaultBankroll = 100
	DefaultWager    = 5
)

// Option configures a Game during creation
type Option func(*config)

type config struct {
	wagering    bool
	bankroll    int
	wager       int
	rule        BonusRule
	reshuffleAt int
	logger      *log.Logger
}

// WithBankroll enables wagering with a starting bankroll and a fixed wager
func WithBankroll(bankroll, wager int) Option {
	return func(c *config) {
		c.wagering = true
		c.bankroll = bankroll
		c.wager = wager
	}
}

// WithoutWagering disables the bankroll; Settle then always fails
func WithoutWagering() Option {
	return func(c *config) {
		c.wagering = false
		c.bankroll = 0
		c.wager = 0
	}
}

// WithBonusRule selects which wins are paid the 3× bonus
func WithBonusRule(rule BonusRule) Option {
	return func(c *config) {
		c.rule = rule
	}
}

// WithReshuffleAt makes NewDeal reset a resettable shoe when fewer than n
// cards remain. Zero disables reshuffling.
func WithReshuffleAt(n int) Option {
	return func(c *config) {
		c.reshuffleAt = n
	}
}

// WithLogger sets the logger used for transition tracing
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func defaultConfig() *config {
	return &config{
		wagering: true,
		bankroll: DefaultBankroll,
		wager:    DefaultWager,
		rule:     BonusAny21,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
}
