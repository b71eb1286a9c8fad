package ui

import (
	"fmt"
	"io"

	"github.com/felixgeelhaar/abacus/internal/calc"
)

// Surface is the display a calculator session renders to.
type Surface interface {
	ShowBuffer(buffer string)
	ShowHistory(history []calc.Entry)
	ShowStatus(status string)
}

type SilentSurface struct{}

func (s SilentSurface) ShowBuffer(buffer string)         {}
func (s SilentSurface) ShowHistory(history []calc.Entry) {}
func (s SilentSurface) ShowStatus(status string)         {}

// TextSurface writes one line per update, for scripts and pipes.
type TextSurface struct {
	Out io.Writer
}

func (t TextSurface) ShowBuffer(buffer string) {
	fmt.Fprintln(t.Out, buffer)
}

func (t TextSurface) ShowHistory(history []calc.Entry) {
	if len(history) == 0 {
		fmt.Fprintln(t.Out, "No History")
		return
	}
	for _, e := range history {
		fmt.Fprintln(t.Out, e.String())
	}
}

func (t TextSurface) ShowStatus(status string) {
	fmt.Fprintf(t.Out, "[%s]\n", status)
}

// Drive applies inputs to s in order and renders the buffer after each one.
// An input is either a keypad label or a menu label such as "History".
// It returns the first error, after all inputs have been applied.
func Drive(s *calc.Session, surface Surface, inputs []string) error {
	var first error
	for _, in := range inputs {
		err := apply(s, surface, in)
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

func apply(s *calc.Session, surface Surface, input string) error {
	if a, ok := ActionByLabel(input); ok {
		err := s.Perform(a)
		switch a {
		case calc.ShowHistory:
			surface.ShowHistory(s.History())
		case calc.ToggleDarkMode, calc.ToggleScientific, calc.OpenSettings:
			surface.ShowStatus(ModeSummary(s))
		default:
			surface.ShowBuffer(s.Buffer())
		}
		return err
	}

	err := s.Apply(calc.Token(input))
	surface.ShowBuffer(s.Buffer())
	return err
}

// ActionByLabel looks up a menu action by its label.
func ActionByLabel(label string) (calc.Action, bool) {
	for _, a := range calc.Menu {
		if a.String() == label {
			return a, true
		}
	}
	return 0, false
}

// ModeSummary describes the session's mode flags in one line.
func ModeSummary(s *calc.Session) string {
	mode := "basic"
	if s.Scientific() {
		mode = "scientific"
	}
	theme := "light"
	if s.Dark() {
		theme = "dark"
	}
	return fmt.Sprintf("%s · %s · %s", mode, s.Angle(), theme)
}
