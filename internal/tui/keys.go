package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/lox/hit/internal/config"
)

type keyMap struct {
	Hit    key.Binding
	Stand  key.Binding
	Advice key.Binding
	Deal   key.Binding
	Scroll key.Binding
	Quit   key.Binding
}

func newKeyMap(ui config.UISettings) keyMap {
	return keyMap{
		Hit:    binding(ui, ui.HitKey, "hit"),
		Stand:  binding(ui, ui.StandKey, "stand"),
		Advice: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "advice")),
		Deal:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("any key", "deal")),
		Scroll: key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "history")),
		Quit: key.NewBinding(
			key.WithKeys(append(variants(ui, ui.QuitKey), "ctrl+c")...),
			key.WithHelp(ui.QuitKey, "quit"),
		),
	}
}

func binding(ui config.UISettings, k, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(variants(ui, k)...), key.WithHelp(k, desc))
}

func variants(ui config.UISettings, k string) []string {
	if ui.CaseSensitive {
		return []string{k}
	}
	lower, upper := strings.ToLower(k), strings.ToUpper(k)
	if lower == upper {
		return []string{k}
	}
	return []string{lower, upper}
}

// playing switches the bindings shown between a live round and the pause
// after one
func (k *keyMap) playing(live bool) {
	k.Hit.SetEnabled(live)
	k.Stand.SetEnabled(live)
	k.Advice.SetEnabled(live)
	k.Deal.SetEnabled(!live)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hit, k.Stand, k.Advice, k.Deal, k.Scroll, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
