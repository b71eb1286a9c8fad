package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/abacus/internal/calc"
)

type theme struct {
	base      lipgloss.Style
	title     lipgloss.Style
	display   lipgloss.Style
	status    lipgloss.Style
	errorText lipgloss.Style
	panel     lipgloss.Style
	key       lipgloss.Style
	operator  lipgloss.Style
	clear     lipgloss.Style
	backspace lipgloss.Style
	selected  lipgloss.Style
}

const keyWidth = 7

func newTheme(dark bool) theme {
	fg, bg := lipgloss.Color("#000000"), lipgloss.Color("#FFFFFF")
	keyBg := lipgloss.Color("#E6E6E6")
	if dark {
		fg, bg = lipgloss.Color("#FFFFFF"), lipgloss.Color("#000000")
		keyBg = lipgloss.Color("#333333")
	}

	key := lipgloss.NewStyle().
		Width(keyWidth).
		Align(lipgloss.Center).
		Foreground(fg).
		Background(keyBg).
		MarginRight(1)

	return theme{
		base: lipgloss.NewStyle().Foreground(fg).Background(bg),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		display: lipgloss.NewStyle().
			Width(4*(keyWidth+1) - 1).
			Align(lipgloss.Right).
			Border(lipgloss.RoundedBorder()).
			Foreground(fg).
			Background(bg).
			Padding(0, 1),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")),
		errorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1),
		key:       key,
		operator:  key.Background(lipgloss.Color("#3399CC")),
		clear:     key.Background(lipgloss.Color("#E61A1A")),
		backspace: key.Background(lipgloss.Color("#CCCC00")),
		selected:  key.Reverse(true).Bold(true),
	}
}

func (t theme) keyStyle(tok calc.Token) lipgloss.Style {
	switch tok {
	case "/", "*", "-", "+":
		return t.operator
	case calc.Clear:
		return t.clear
	case calc.Backspace:
		return t.backspace
	}
	return t.key
}
