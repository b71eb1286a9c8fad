// Package calc holds the calculator state machine: a display buffer, a
// memory register, the history log and the mode flags, mutated one token
// at a time.
//
// A Session is owned by a single goroutine. The presentation layer feeds it
// tokens and menu actions and re-reads the accessors after each call.
package calc

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// AngleMode is recorded and displayed but not applied to trigonometry,
// which always works in radians.
type AngleMode int

const (
	Degrees AngleMode = iota
	Radians
)

func (a AngleMode) String() string {
	if a == Radians {
		return "rad"
	}
	return "deg"
}

// ParseAngleMode accepts "deg", "degrees", "rad" or "radians".
func ParseAngleMode(s string) (AngleMode, error) {
	switch s {
	case "deg", "degrees", "":
		return Degrees, nil
	case "rad", "radians":
		return Radians, nil
	}
	return Degrees, fmt.Errorf("unknown angle mode %q", s)
}

// Entry is one successful evaluation.
type Entry struct {
	Expression string
	Result     string
}

func (e Entry) String() string {
	return e.Expression + " = " + e.Result
}

// Session is the calculator state for one running instance.
type Session struct {
	buffer     string
	memory     float64
	history    []Entry
	scientific bool
	angle      AngleMode
	dark       bool

	now      func() time.Time
	random   func() float64
	currency Currency
	bus      *EventBus
}

// Currency is the fixed-rate target of the currency converter.
type Currency struct {
	Rate float64
	Code string
}

// DefaultCurrency converts at 110 to Bangladeshi taka.
var DefaultCurrency = Currency{Rate: 110, Code: "BDT"}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now for the age calculator.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRandom replaces the source used by the Rand key. It must return
// values in [0, 1).
func WithRandom(random func() float64) Option {
	return func(s *Session) { s.random = random }
}

// WithCurrency sets the currency converter's rate and code.
func WithCurrency(c Currency) Option {
	return func(s *Session) { s.currency = c }
}

// WithEventBus publishes every transition to bus.
func WithEventBus(bus *EventBus) Option {
	return func(s *Session) { s.bus = bus }
}

// WithModes sets the initial mode flags.
func WithModes(scientific, dark bool, angle AngleMode) Option {
	return func(s *Session) {
		s.scientific = scientific
		s.dark = dark
		s.angle = angle
	}
}

// NewSession creates a session with an empty buffer and zero memory.
func NewSession(opts ...Option) *Session {
	s := &Session{
		history:  make([]Entry, 0),
		angle:    Degrees,
		now:      time.Now,
		random:   rand.Float64,
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Buffer returns the current display text.
func (s *Session) Buffer() string {
	return s.buffer
}

// Memory returns the memory register.
func (s *Session) Memory() float64 {
	return s.memory
}

// History returns a copy of the history log, oldest first.
func (s *Session) History() []Entry {
	history := make([]Entry, len(s.history))
	copy(history, s.history)
	return history
}

// Scientific reports whether the scientific keypad is shown.
func (s *Session) Scientific() bool {
	return s.scientific
}

// Angle returns the recorded angle mode.
func (s *Session) Angle() AngleMode {
	return s.angle
}

// Dark reports whether the dark theme is on.
func (s *Session) Dark() bool {
	return s.dark
}

// Currency returns the converter settings.
func (s *Session) Currency() Currency {
	return s.currency
}

// Keys returns the tokens the keypad should show for the current mode.
func (s *Session) Keys() []Token {
	keys := make([]Token, 0, len(NormalKeys)+len(ScientificKeys))
	keys = append(keys, NormalKeys...)
	if s.scientific {
		keys = append(keys, ScientificKeys...)
	}
	return keys
}

func (s *Session) publish(eventType EventType, input string, data map[string]interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(Event{
		Type:   eventType,
		Input:  input,
		Buffer: s.buffer,
		Data:   data,
	})
}
