package calc

import (
	"fmt"

	"github.com/felixgeelhaar/abacus/internal/expr"
)

// Action is a menu entry.
type Action int

const (
	ShowHistory Action = iota
	ToggleDarkMode
	ToggleScientific
	ToggleAngleMode
	CalculateAge
	ConvertCurrency
	ConvertTemperature
	OpenSettings
)

// Menu lists the actions in display order.
var Menu = []Action{
	ShowHistory,
	ToggleDarkMode,
	ToggleScientific,
	ToggleAngleMode,
	CalculateAge,
	ConvertCurrency,
	ConvertTemperature,
	OpenSettings,
}

var actionLabels = map[Action]string{
	ShowHistory:        "History",
	ToggleDarkMode:     "Dark Mode",
	ToggleScientific:   "Scientific Mode",
	ToggleAngleMode:    "Toggle Angle Mode",
	CalculateAge:       "Age Calculator",
	ConvertCurrency:    "Currency Converter",
	ConvertTemperature: "Temperature Converter",
	OpenSettings:       "Settings",
}

func (a Action) String() string {
	if label, ok := actionLabels[a]; ok {
		return label
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Perform runs a menu action. History and settings only open views in the
// presentation layer and leave the session unchanged.
func (s *Session) Perform(a Action) error {
	switch a {
	case ShowHistory, OpenSettings:
		return nil
	case ToggleDarkMode:
		s.dark = !s.dark
		s.publish(EventModeChanged, a.String(), map[string]interface{}{"dark": s.dark})
		return nil
	case ToggleScientific:
		s.scientific = !s.scientific
		s.publish(EventModeChanged, a.String(), map[string]interface{}{"scientific": s.scientific})
		return nil
	case ToggleAngleMode:
		if s.angle == Degrees {
			s.angle = Radians
		} else {
			s.angle = Degrees
		}
		s.buffer = "Angle Mode: " + s.angle.String()
		s.publish(EventModeChanged, a.String(), map[string]interface{}{"angle": s.angle.String()})
		return nil
	case CalculateAge:
		return s.convert(a, s.age)
	case ConvertCurrency:
		return s.convert(a, s.toCurrency)
	case ConvertTemperature:
		return s.convert(a, toFahrenheit)
	}
	return ErrUnknownAction
}

func (s *Session) convert(a Action, f func(string) (string, error)) error {
	out, err := f(s.buffer)
	if err != nil {
		s.buffer = DisplayInvalidInput
		s.publish(EventFailed, a.String(), map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("%s: %w: %v", a, ErrInvalidInput, err)
	}
	s.buffer = out
	s.publish(EventConverted, a.String(), nil)
	return nil
}

func (s *Session) age(buffer string) (string, error) {
	born, err := expr.ParseInt(buffer)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Age: %d", int64(s.now().Year())-born), nil
}

func (s *Session) toCurrency(buffer string) (string, error) {
	amount, err := expr.ParseFloat(buffer)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Converted: %s %s", expr.FormatNumber(amount*s.currency.Rate), s.currency.Code), nil
}

func toFahrenheit(buffer string) (string, error) {
	celsius, err := expr.ParseFloat(buffer)
	if err != nil {
		return "", err
	}
	return expr.FormatNumber(celsius*9/5+32) + " °F", nil
}
