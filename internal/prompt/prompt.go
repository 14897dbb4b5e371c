// Package prompt is the line-oriented driver behind `hit prompt` and
// `hit connect`: it prints the table after every action and reads one
// command per line.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/lox/hit/internal/advisor"
	"github.com/lox/hit/internal/config"
	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/shoe"
)

const (
	farewell  = "Y'all come back real soon!"
	confused  = "Sorry, I'm not sure what you want to do."
	brokeMsg  = "You're out of cash!"
	emptyShoe = "The shoe is empty."
	noAdvice  = "No advice right now."
)

type command int

const (
	cmdUnknown command = iota
	cmdHit
	cmdStand
	cmdQuit
	cmdAdvice
)

// errQuit unwinds the loop when the player quits or input ends
var errQuit = errors.New("quit")

// Table is what the loop plays against: a local game or a remote session
type Table interface {
	NewDeal() error
	Hit() error
	Stand() error
	Settle() (int, error)
	Snapshot() game.Snapshot
	Advice() (advisor.Advice, error)
}

// local adapts a game with the in-process advisor
type local struct {
	*game.Game
}

func (t local) Advice() (advisor.Advice, error) {
	if t.State() != game.Playing {
		return advisor.Advice{}, fmt.Errorf("%w: no round in play", game.ErrInvalidTransition)
	}
	return advisor.Recommend(t.Player(), t.Dealer(), t.BonusRule()), nil
}

// Loop plays rounds until the player quits, input ends, the bankroll cannot
// cover the wager or the shoe runs out
type Loop struct {
	table  Table
	in     *bufio.Scanner
	out    io.Writer
	ui     config.UISettings
	logger *log.Logger
}

// New creates a prompt loop for a local game
func New(g *game.Game, in io.Reader, out io.Writer, ui config.UISettings, logger *log.Logger) *Loop {
	if g == nil {
		panic("game is required for prompt creation")
	}
	return NewWithTable(local{g}, in, out, ui, logger)
}

// NewWithTable creates a prompt loop reading commands from in and writing to out
func NewWithTable(t Table, in io.Reader, out io.Writer, ui config.UISettings, logger *log.Logger) *Loop {
	if t == nil {
		panic("table is required for prompt creation")
	}
	return &Loop{
		table:  t,
		in:     bufio.NewScanner(in),
		out:    out,
		ui:     ui,
		logger: logger.WithPrefix("prompt"),
	}
}

// Run plays until the session ends. Running out of cards or cash ends the
// session normally; only unexpected failures are returned.
func (l *Loop) Run() error {
	err := l.play()
	if errors.Is(err, errQuit) {
		err = nil
	}
	fmt.Fprintln(l.out, farewell)
	return err
}

func (l *Loop) play() error {
	if fair := l.table.Snapshot().Fair; fair != nil {
		fmt.Fprintf(l.out, "Server seed hash: %s\n", fair.ServerSeedHash)
	}
	for {
		if snap := l.table.Snapshot(); snap.Wagering && snap.Bankroll < snap.Wager {
			fmt.Fprintln(l.out, brokeMsg)
			return errQuit
		}
		if err := l.step(l.table.NewDeal); err != nil {
			return err
		}

		snap := l.table.Snapshot()
		if snap.Wagering {
			fmt.Fprintf(l.out, "Cash: %d\n", snap.Bankroll)
		}
		if snap.Fair != nil {
			fmt.Fprintf(l.out, "Client seed: %s  Nonce: %d\n", snap.Fair.ClientSeed, snap.Fair.Nonce)
		}
		fmt.Fprintf(l.out, "Dealer: %s\n", snap.Dealer.Display)
		fmt.Fprintf(l.out, "Player: %s\n", snap.Player.Display)

		for l.table.Snapshot().State == game.Playing {
			cmd, err := l.read()
			if err != nil {
				return err
			}
			switch cmd {
			case cmdHit:
				if err := l.step(l.table.Hit); err != nil {
					return err
				}
				fmt.Fprintf(l.out, "Player: %s\n", l.table.Snapshot().Player.Display)
			case cmdStand:
				if err := l.step(l.table.Stand); err != nil {
					return err
				}
			case cmdAdvice:
				advice, err := l.table.Advice()
				if err != nil {
					l.logger.Warn("Advice unavailable", "error", err)
					fmt.Fprintf(l.out, "%s (%v)\n", noAdvice, err)
					continue
				}
				fmt.Fprintf(l.out, "Advice: %s\n", advice)
			case cmdQuit:
				return errQuit
			default:
				fmt.Fprintln(l.out, confused)
			}
		}

		snap = l.table.Snapshot()
		fmt.Fprintf(l.out, "Dealer: %s\n", snap.Dealer.Display)
		if snap.Outcome == nil {
			return fmt.Errorf("round %d resolved without an outcome", snap.Round)
		}
		outcome := *snap.Outcome
		fmt.Fprintln(l.out, outcome)
		if snap.Wagering {
			if _, err := l.table.Settle(); err != nil {
				return fmt.Errorf("settle round %d: %w", snap.Round, err)
			}
		}
		l.logger.Debug("Round over", "round", snap.Round, "outcome", outcome.Name(), "bankroll", l.table.Snapshot().Bankroll)
	}
}

// step runs a transition; an exhausted shoe ends the session
func (l *Loop) step(transition func() error) error {
	err := transition()
	if errors.Is(err, shoe.ErrShoeExhausted) {
		l.logger.Info("Shoe exhausted", "round", l.table.Snapshot().Round)
		fmt.Fprintln(l.out, emptyShoe)
		return errQuit
	}
	return err
}

func (l *Loop) read() (command, error) {
	fmt.Fprintf(l.out, "%s > ", l.question())
	if !l.in.Scan() {
		fmt.Fprintln(l.out)
		if err := l.in.Err(); err != nil {
			return cmdUnknown, fmt.Errorf("read input: %w", err)
		}
		return cmdQuit, nil
	}
	return l.parse(strings.TrimSpace(l.in.Text())), nil
}

func (l *Loop) parse(input string) command {
	switch {
	case input == "?":
		return cmdAdvice
	case l.ui.Matches(input, l.ui.HitKey):
		return cmdHit
	case l.ui.Matches(input, l.ui.StandKey):
		return cmdStand
	case l.ui.Matches(input, l.ui.QuitKey):
		return cmdQuit
	}
	return cmdUnknown
}

// question renders the prompt for the configured keys, e.g.
// "(H)it, (S)tand, or (Q)uit?"
func (l *Loop) question() string {
	return fmt.Sprintf("%s, %s, or %s?",
		label("Hit", l.ui.HitKey), label("Stand", l.ui.StandKey), label("Quit", l.ui.QuitKey))
}

func label(word, key string) string {
	if strings.EqualFold(word[:1], key) {
		return "(" + strings.ToUpper(key) + ")" + word[1:]
	}
	r := []rune(key)
	if len(r) == 1 {
		key = string(unicode.ToUpper(r[0]))
	}
	return word + " (" + key + ")"
}
