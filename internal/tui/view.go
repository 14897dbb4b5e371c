package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/hit/internal/deck"
	"github.com/lox/hit/internal/game"
)

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return farewell + "\n"
	}

	table := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(" Blackjack "),
		"",
		m.renderHand("Dealer", m.game.Dealer()),
		m.renderHand("Player", m.game.Player()),
		m.renderMessage(),
		m.renderPrompt(),
		m.styles.Info.Render(m.help.View(m.keys)),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, table, " ", m.renderSidebar())
}

func (m *Model) renderHand(title string, h game.Hand) string {
	var body string
	if h.Len() > 0 {
		body = m.formatCards(h.Cards()) + "  " + m.styles.Total.Render(h.Total().String())
	}
	return m.styles.Box.Render(m.styles.BoxTitle.Render(title) + "\n" + body)
}

func (m *Model) renderMessage() string {
	var lines []string
	if m.message != "" {
		style := m.styles.Message
		if m.game.State() == game.Resolved && !m.over {
			if m.game.RoundResult().PlayerWon() {
				style = m.styles.Win
			} else if m.game.RoundResult() != game.Push {
				style = m.styles.Loss
			}
		}
		lines = append(lines, style.Render(m.message))
	}
	if m.advice != "" {
		lines = append(lines, m.styles.Advice.Render(m.advice))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderPrompt() string {
	quit := strings.ToUpper(m.ui.QuitKey)
	switch {
	case m.over:
		return m.styles.Prompt.Render("Press any key to exit")
	case m.game.State() == game.Playing:
		return m.styles.Prompt.Render(fmt.Sprintf("<%s>it, <%s>tand, or <%s> to quit",
			strings.ToUpper(m.ui.HitKey), strings.ToUpper(m.ui.StandKey), quit))
	default:
		return m.styles.Prompt.Render(fmt.Sprintf("Press any key to continue, or <%s> to quit", quit))
	}
}

func (m *Model) renderSidebar() string {
	var content strings.Builder
	fmt.Fprintf(&content, "Round: %d\n", m.game.Round())
	if m.game.Wagering() {
		fmt.Fprintf(&content, "Cash: %d\nWager: %d\n", m.game.Bankroll(), m.game.Wager())
	}
	if fair := m.game.Snapshot().Fair; fair != nil {
		fmt.Fprintf(&content, "Nonce: %d\nClient: %s\nSeed hash:\n%s\n",
			fair.Nonce, fair.ClientSeed, shortHash(fair.ServerSeedHash))
	}
	content.WriteString("\n")
	content.WriteString(m.styles.Info.Render("History"))
	content.WriteString("\n")
	content.WriteString(m.history.View())
	return m.styles.Sidebar.Render(content.String())
}

// formatCards formats cards with colors
func (m *Model) formatCards(cards []deck.Card) string {
	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, m.styles.RedCard.Render(card.String()))
		} else {
			formatted = append(formatted, m.styles.BlackCard.Render(card.String()))
		}
	}
	return strings.Join(formatted, " ")
}

// shortHash keeps the sidebar narrow; the full hash is in the log
func shortHash(h string) string {
	if len(h) <= 16 {
		return h
	}
	return h[:16] + "…"
}
