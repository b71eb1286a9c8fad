package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/felixgeelhaar/abacus/internal/calc"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Press     key.Binding
	Equals    key.Binding
	Clear     key.Binding
	Backspace key.Binding
	Quit      key.Binding
	Help      key.Binding

	// menu
	History     key.Binding
	Dark        key.Binding
	Scientific  key.Binding
	Angle       key.Binding
	Age         key.Binding
	Currency    key.Binding
	Temperature key.Binding
	Settings    key.Binding
}

var defaultKeys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓←→", "move")),
	Down:      key.NewBinding(key.WithKeys("down")),
	Left:      key.NewBinding(key.WithKeys("left")),
	Right:     key.NewBinding(key.WithKeys("right")),
	Press:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "press")),
	Equals:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "=")),
	Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "C")),
	Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "⌫")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Help:      key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "keys")),

	History:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "history")),
	Dark:        key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "dark mode")),
	Scientific:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "scientific")),
	Angle:       key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "angle")),
	Age:         key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "age")),
	Currency:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "currency")),
	Temperature: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "temperature")),
	Settings:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "settings")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Press, k.Equals, k.Clear, k.History, k.Scientific, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Press, k.Equals, k.Clear, k.Backspace},
		{k.History, k.Dark, k.Scientific, k.Angle},
		{k.Age, k.Currency, k.Temperature, k.Settings},
		{k.Help, k.Quit},
	}
}

type menuBinding struct {
	binding key.Binding
	action  calc.Action
}

func (k keyMap) menu() []menuBinding {
	return []menuBinding{
		{k.History, calc.ShowHistory},
		{k.Dark, calc.ToggleDarkMode},
		{k.Scientific, calc.ToggleScientific},
		{k.Angle, calc.ToggleAngleMode},
		{k.Age, calc.CalculateAge},
		{k.Currency, calc.ConvertCurrency},
		{k.Temperature, calc.ConvertTemperature},
		{k.Settings, calc.OpenSettings},
	}
}
