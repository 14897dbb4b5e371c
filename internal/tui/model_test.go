package tui

import (
	"fmt"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/hit/internal/config"
	"github.com/lox/hit/internal/deck"
	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/shoe"
)

func testModel(t *testing.T, cards string, opts ...game.Option) (*Model, *game.Game) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	g := game.New(shoe.NewStacked(deck.MustParseCards(cards)...), opts...)
	m := NewWithOptions(g, config.Default().UI, logger, true)
	m.Init()
	return m, g
}

func press(m *Model, keys string) {
	for _, r := range keys {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestInitDeals(t *testing.T) {
	m, g := testModel(t, "Ts 6d Kc 7c")

	assert.Equal(t, game.Playing, g.State())
	assert.Equal(t, 95, g.Bankroll())
	assert.Empty(t, m.Message())

	view := m.View()
	assert.Contains(t, view, " Blackjack ")
	assert.Contains(t, view, "Dealer")
	assert.Contains(t, view, "Player")
	assert.Contains(t, view, "<H>it, <S>tand, or <Q> to quit")
	assert.Contains(t, view, "Cash: 95")
}

func TestHitToTwentyOneWins(t *testing.T) {
	m, g := testModel(t, "Ts 6d Kc 7c 5h")

	press(m, "h")

	assert.Equal(t, game.Resolved, g.State())
	assert.Equal(t, "You win!", m.Message())
	assert.Equal(t, 110, g.Bankroll(), "any 21 pays 3x")
	assert.True(t, g.Settled())
	assert.Equal(t, []string{"#1 player_win +10"}, m.GetCapturedLog())
	assert.Contains(t, m.View(), "Press any key to continue, or <Q> to quit")
}

func TestStandIsCaseInsensitive(t *testing.T) {
	m, g := testModel(t, "Ts 7d Kc 9c")

	press(m, "S")

	assert.Equal(t, game.Resolved, g.State())
	assert.Equal(t, "Dealer wins!", m.Message())
	assert.Equal(t, 95, g.Bankroll())
	assert.Equal(t, []string{"#1 dealer_win -5"}, m.GetCapturedLog())
}

func TestCaseSensitiveKeys(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	g := game.New(shoe.NewStacked(deck.MustParseCards("Ts 7d Kc 9c")...))
	ui := config.Default().UI
	ui.CaseSensitive = true
	m := NewWithOptions(g, ui, logger, true)
	m.Init()

	press(m, "S")
	assert.Equal(t, game.Playing, g.State(), "upper case is a different key")

	press(m, "s")
	assert.Equal(t, game.Resolved, g.State())
}

func TestAdvice(t *testing.T) {
	m, g := testModel(t, "Ts 2d Kc 9c")

	press(m, "?")

	assert.Equal(t, game.Playing, g.State())
	assert.Contains(t, m.Advice(), "Advice: hit")
	assert.Contains(t, m.View(), "Advice: hit")
}

func TestAnyKeyDealsNextRound(t *testing.T) {
	m, g := testModel(t, "Ts 7d Kc 9c 9s 9d 2c 3c")

	press(m, "s")
	require.Equal(t, game.Resolved, g.State())

	press(m, "x")
	assert.Equal(t, game.Playing, g.State())
	assert.Equal(t, 2, g.Round())
	assert.Empty(t, m.Message())
}

func TestShoeExhaustionEndsSession(t *testing.T) {
	m, g := testModel(t, "Ts 7d Kc 9c")

	press(m, "s")
	press(m, "x")

	assert.True(t, m.Over())
	assert.Equal(t, emptyShoe, m.Message())
	assert.Equal(t, 1, g.Round())
	assert.Contains(t, m.View(), "Press any key to exit")

	press(m, "x")
	assert.True(t, m.Quitting())
	assert.Equal(t, farewell+"\n", m.View())
}

func TestOutOfCash(t *testing.T) {
	m, g := testModel(t, "Ts 7d Kc 9c", game.WithBankroll(5, 5))

	press(m, "s")
	require.Equal(t, 0, g.Bankroll())

	press(m, " ")
	assert.True(t, m.Over())
	assert.Equal(t, brokeMsg, m.Message())
}

func TestQuit(t *testing.T) {
	m, _ := testModel(t, "Ts 6d Kc 7c")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.NotNil(t, cmd)
	assert.True(t, m.Quitting())
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := testModel(t, "Ts 6d Kc 7c")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.Quitting())
}

func TestWithoutWagering(t *testing.T) {
	m, g := testModel(t, "Ts 7d Kc 9c", game.WithoutWagering())

	press(m, "s")
	assert.Equal(t, "Dealer wins!", m.Message())
	assert.False(t, g.Settled())
	assert.Equal(t, []string{"#1 dealer_win"}, m.GetCapturedLog())
	assert.NotContains(t, m.View(), "Cash:")
}

func TestProductionModeDoesNotCapture(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	g := game.New(shoe.NewStacked(deck.MustParseCards("Ts 7d Kc 9c")...))
	m := New(g, config.Default().UI, logger)
	m.Init()
	press(m, "s")

	assert.Nil(t, m.GetCapturedLog())
}

func TestNewStylesFallsBack(t *testing.T) {
	assert.NotPanics(t, func() { NewStyles("neon") })
}

func TestArrowKeysScrollHistoryWithoutDealing(t *testing.T) {
	m, g := testModel(t, "Ts 7d Kc 9c")
	press(m, "s")
	require.Equal(t, game.Resolved, g.State())

	for i := range 30 {
		m.addHistory(fmt.Sprintf("#%d push +0", i+2))
	}
	bottom := m.history.YOffset
	require.Positive(t, bottom)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, bottom-1, m.history.YOffset)
	m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Less(t, m.history.YOffset, bottom-1)
	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, bottom, m.history.YOffset)

	assert.Equal(t, 1, g.Round())
	assert.Equal(t, game.Resolved, g.State())
	assert.False(t, m.Over())
}

func TestSidebarShowsFairness(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	g := game.New(shoe.NewFair("server", "client", 9), game.WithoutWagering())
	m := NewWithOptions(g, config.Default().UI, logger, true)
	m.Init()

	view := m.View()
	assert.Contains(t, view, "Nonce: 9")
	assert.Contains(t, view, shoe.ServerSeedHash("server")[:16])
}
