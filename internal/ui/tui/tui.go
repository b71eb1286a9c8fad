// Package tui renders a calculator session in the terminal: a display, the
// keypad grid for the current mode, and history and settings panels.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/abacus/internal/calc"
	"github.com/felixgeelhaar/abacus/internal/ui"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const columns = 4

type panel int

const (
	panelNone panel = iota
	panelHistory
	panelSettings
)

type Model struct {
	Session  *calc.Session
	Cursor   int
	LastErr  error
	Quitting bool
	Ready    bool
	Width    int
	Height   int

	keys     []calc.Token
	panel    panel
	viewport viewport.Model
	help     help.Model
	bindings keyMap
	printer  *message.Printer
	theme    theme
}

// NewModel wraps a session. The printer formats the memory indicator.
func NewModel(s *calc.Session, printer *message.Printer) Model {
	m := Model{
		Session:  s,
		keys:     s.Keys(),
		viewport: viewport.New(40, 10),
		help:     help.New(),
		bindings: defaultKeys,
		printer:  printer,
		theme:    newTheme(s.Dark()),
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = max(3, msg.Height/3)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.bindings
	switch {
	case key.Matches(msg, b.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, b.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, b.Up):
		m.moveCursor(-columns)
		return m, nil
	case key.Matches(msg, b.Down):
		m.moveCursor(columns)
		return m, nil
	case key.Matches(msg, b.Left):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, b.Right):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, b.Press):
		m.apply(m.keys[m.Cursor])
		return m, nil
	case key.Matches(msg, b.Equals):
		m.apply(calc.Equals)
		return m, nil
	case key.Matches(msg, b.Clear):
		if m.panel != panelNone {
			m.panel = panelNone
			return m, nil
		}
		m.apply(calc.Clear)
		return m, nil
	case key.Matches(msg, b.Backspace):
		m.apply(calc.Backspace)
		return m, nil
	}

	for _, mb := range b.menu() {
		if key.Matches(msg, mb.binding) {
			m.perform(mb.action)
			return m, nil
		}
	}

	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if t := calc.Token(string(r)); m.onKeypad(t) {
				m.apply(t)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// onKeypad reports whether t is a key of the current mode. Typed input is
// limited to it, so scientific keys only work in scientific mode.
func (m Model) onKeypad(t calc.Token) bool {
	for _, k := range m.keys {
		if k == t {
			return true
		}
	}
	return false
}

func (m *Model) apply(t calc.Token) {
	m.LastErr = m.Session.Apply(t)
}

func (m *Model) perform(a calc.Action) {
	m.LastErr = m.Session.Perform(a)
	switch a {
	case calc.ShowHistory:
		m.togglePanel(panelHistory)
		m.viewport.SetContent(historyText(m.Session.History()))
		m.viewport.GotoBottom()
	case calc.OpenSettings:
		m.togglePanel(panelSettings)
	case calc.ToggleScientific:
		m.keys = m.Session.Keys()
		m.moveCursor(0)
	case calc.ToggleDarkMode:
		m.theme = newTheme(m.Session.Dark())
	}
}

func (m *Model) togglePanel(p panel) {
	if m.panel == p {
		m.panel = panelNone
		return
	}
	m.panel = p
}

func (m *Model) moveCursor(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.keys) {
		next = m.Cursor
	}
	if next >= len(m.keys) {
		next = len(m.keys) - 1
	}
	m.Cursor = next
}

func historyText(history []calc.Entry) string {
	if len(history) == 0 {
		return "No History"
	}
	lines := make([]string, len(history))
	for i, e := range history {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

func (m Model) memoryIndicator() string {
	v := m.Session.Memory()
	if v == 0 {
		return ""
	}
	return "M " + m.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(10)))
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	t := m.theme
	s := m.Session

	header := t.title.Render(" abacus ")
	status := t.status.Render(" " + ui.ModeSummary(s) + " ")
	if mem := m.memoryIndicator(); mem != "" {
		status += t.status.Render(" " + mem)
	}

	display := t.display.Render(s.Buffer())

	var rows []string
	for start := 0; start < len(m.keys); start += columns {
		end := min(start+columns, len(m.keys))
		cells := make([]string, 0, columns)
		for i := start; i < end; i++ {
			style := t.keyStyle(m.keys[i])
			if i == m.Cursor {
				style = t.selected
			}
			cells = append(cells, style.Render(string(m.keys[i])))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	keypad := strings.Join(rows, "\n")

	sections := []string{header + status, display, keypad}
	switch m.panel {
	case panelHistory:
		sections = append(sections, t.panel.Render("History\n"+m.viewport.View()))
	case panelSettings:
		c := s.Currency()
		sections = append(sections, t.panel.Render(fmt.Sprintf(
			"Settings\n%s\ncurrency: 1 → %s %s\nctrl+d dark mode · ctrl+s scientific mode",
			ui.ModeSummary(s), m.printer.Sprint(number.Decimal(c.Rate)), c.Code)))
	}
	if m.LastErr != nil {
		sections = append(sections, t.errorText.Render(m.LastErr.Error()))
	}
	sections = append(sections, m.help.View(m.bindings))

	return t.base.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
