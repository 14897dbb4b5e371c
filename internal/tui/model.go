// Package tui is the full-screen terminal table for `hit play`.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/hit/internal/advisor"
	"github.com/lox/hit/internal/config"
	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/shoe"
)

const (
	farewell  = "Y'all come back real soon!"
	brokeMsg  = "You're out of cash!"
	emptyShoe = "The shoe is empty."
)

// Model is the Bubble Tea model for a blackjack session
type Model struct {
	game   *game.Game
	logger *log.Logger
	ui     config.UISettings
	styles Styles

	keys    keyMap
	help    help.Model
	history viewport.Model
	entries []string

	message  string
	advice   string
	over     bool // no further rounds can be dealt
	quitting bool

	width  int
	height int

	// Test mode
	testMode    bool
	capturedLog []string
}

// New creates a TUI model playing g
func New(g *game.Game, ui config.UISettings, logger *log.Logger) *Model {
	return NewWithOptions(g, ui, logger, false)
}

// NewWithOptions creates a TUI model with test mode option
func NewWithOptions(g *game.Game, ui config.UISettings, logger *log.Logger, testMode bool) *Model {
	if g == nil {
		panic("game is required for tui creation")
	}

	return &Model{
		game:     g,
		logger:   logger.WithPrefix("tui"),
		ui:       ui,
		styles:   NewStyles(ui.Theme),
		keys:     newKeyMap(ui),
		help:     help.New(),
		history:  viewport.New(24, 10),
		testMode: testMode,
	}
}

// Run starts the full-screen program and blocks until the player quits
func Run(g *game.Game, ui config.UISettings, logger *log.Logger) error {
	p := tea.NewProgram(New(g, ui, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init deals the first round
func (m *Model) Init() tea.Cmd {
	m.deal()
	return nil
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.history.Height = max(msg.Height-6, 3)
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) || m.over {
		return m.quit()
	}

	// Scrolling the history never counts as a move
	if key.Matches(msg, m.keys.Scroll) {
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return cmd
	}

	if m.game.State() != game.Playing {
		m.deal()
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Hit):
		m.apply("hit", m.game.Hit)
	case key.Matches(msg, m.keys.Stand):
		m.apply("stand", m.game.Stand)
	case key.Matches(msg, m.keys.Advice):
		advice := advisor.Recommend(m.game.Player(), m.game.Dealer(), m.game.BonusRule())
		m.advice = "Advice: " + advice.String()
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	return tea.Sequence(tea.ClearScreen, tea.Quit)
}

func (m *Model) deal() {
	m.advice = ""
	if !m.game.CanCoverWager() {
		m.finish(brokeMsg)
		return
	}
	m.apply("deal", m.game.NewDeal)
}

// apply runs a transition and settles the round if it ended
func (m *Model) apply(name string, transition func() error) {
	if err := transition(); err != nil {
		m.logger.Error("Transition failed", "action", name, "error", err)
		if errors.Is(err, shoe.ErrShoeExhausted) {
			m.finish(emptyShoe)
			return
		}
		m.message = err.Error()
		return
	}
	m.advice = ""
	m.keys.playing(m.game.State() == game.Playing)

	if m.game.State() != game.Resolved {
		m.message = ""
		return
	}

	outcome := m.game.RoundResult()
	m.message = outcome.String()
	entry := fmt.Sprintf("#%d %s", m.game.Round(), outcome.Name())
	if m.game.Wagering() {
		credit, err := m.game.Settle()
		if err != nil {
			m.logger.Error("Settle failed", "error", err)
		}
		entry = fmt.Sprintf("%s %+d", entry, credit-m.game.Wager())
	}
	m.addHistory(entry)
	m.logger.Info("Round over",
		"round", m.game.Round(),
		"outcome", outcome.Name(),
		"player", m.game.Player().String(),
		"dealer", m.game.Dealer().String(),
		"bankroll", m.game.Bankroll())
}

func (m *Model) finish(reason string) {
	m.over = true
	m.message = reason
	m.keys.playing(false)
	m.logger.Info("Session over", "reason", reason, "rounds", m.game.Round(), "bankroll", m.game.Bankroll())
}

func (m *Model) addHistory(entry string) {
	m.entries = append(m.entries, entry)
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
	}
	m.history.SetContent(strings.Join(m.entries, "\n"))
	m.history.GotoBottom()
}

// Message returns the current status line
func (m *Model) Message() string {
	return m.message
}

// Advice returns the last advice shown, if any
func (m *Model) Advice() string {
	return m.advice
}

// Over reports whether the session has ended
func (m *Model) Over() bool {
	return m.over
}

// Quitting reports whether the player asked to leave
func (m *Model) Quitting() bool {
	return m.quitting
}

// GetCapturedLog returns the captured history entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}
