package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the palette for one theme
type Styles struct {
	Title     lipgloss.Style
	Box       lipgloss.Style
	BoxTitle  lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Total     lipgloss.Style
	Message   lipgloss.Style
	Win       lipgloss.Style
	Loss      lipgloss.Style
	Prompt    lipgloss.Style
	Advice    lipgloss.Style
	Sidebar   lipgloss.Style
	Info      lipgloss.Style
}

type palette struct {
	title, titleBg, border, red, black, text, win, loss, prompt, info lipgloss.TerminalColor
}

var palettes = map[string]palette{
	"default": {
		title:   lipgloss.Color("#FAFAFA"),
		titleBg: lipgloss.Color("#1F7A4D"),
		border:  lipgloss.AdaptiveColor{Light: "#3C3C3C", Dark: "#626262"},
		red:     lipgloss.Color("#FF6B6B"),
		black:   lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"},
		text:    lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FAFAFA"},
		win:     lipgloss.Color("#96CEB4"),
		loss:    lipgloss.Color("#FF6B6B"),
		prompt:  lipgloss.Color("#FFD700"),
		info:    lipgloss.Color("#626262"),
	},
	"dark": {
		title:   lipgloss.Color("#FAFAFA"),
		titleBg: lipgloss.Color("#7D56F4"),
		border:  lipgloss.Color("#626262"),
		red:     lipgloss.Color("#FF6B6B"),
		black:   lipgloss.Color("#FAFAFA"),
		text:    lipgloss.Color("#FAFAFA"),
		win:     lipgloss.Color("#96CEB4"),
		loss:    lipgloss.Color("#FF6B6B"),
		prompt:  lipgloss.Color("#FFEAA7"),
		info:    lipgloss.Color("#8A8A8A"),
	},
	"light": {
		title:   lipgloss.Color("#FFFFFF"),
		titleBg: lipgloss.Color("#04B575"),
		border:  lipgloss.Color("#3C3C3C"),
		red:     lipgloss.Color("#C0392B"),
		black:   lipgloss.Color("#000000"),
		text:    lipgloss.Color("#1A1A1A"),
		win:     lipgloss.Color("#1E8449"),
		loss:    lipgloss.Color("#C0392B"),
		prompt:  lipgloss.Color("#B9770E"),
		info:    lipgloss.Color("#626262"),
	},
}

// NewStyles builds the styles for a theme name, falling back to "default"
func NewStyles(theme string) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["default"]
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(p.title).
			Background(p.titleBg).
			Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1).
			Width(30),
		BoxTitle:  lipgloss.NewStyle().Foreground(p.text).Bold(true),
		RedCard:   lipgloss.NewStyle().Foreground(p.red).Bold(true),
		BlackCard: lipgloss.NewStyle().Foreground(p.black).Bold(true),
		Total:     lipgloss.NewStyle().Foreground(p.info),
		Message:   lipgloss.NewStyle().Foreground(p.text).Bold(true),
		Win:       lipgloss.NewStyle().Foreground(p.win).Bold(true),
		Loss:      lipgloss.NewStyle().Foreground(p.loss).Bold(true),
		Prompt:    lipgloss.NewStyle().Foreground(p.prompt).Bold(true),
		Advice:    lipgloss.NewStyle().Foreground(p.win).Italic(true),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		Info: lipgloss.NewStyle().Foreground(p.info),
	}
}

// SetColorProfile switches lipgloss to plain ASCII output when colour is
// disabled, otherwise to whatever the terminal advertises
func SetColorProfile(noColor bool) termenv.Profile {
	profile := termenv.EnvColorProfile()
	if noColor {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)
	return profile
}
