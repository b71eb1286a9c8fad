package calc

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/felixgeelhaar/abacus/internal/expr"
)

// Token is a button label.
type Token string

const (
	Clear        Token = "C"
	Backspace    Token = "⌫"
	Equals       Token = "="
	Sqrt         Token = "√"
	Square       Token = "x²"
	Factorial    Token = "!"
	Power        Token = "^"
	Percent      Token = "%"
	Rand         Token = "Rand"
	MemoryClear  Token = "MC"
	MemoryRecall Token = "MR"
	MemoryAdd    Token = "M+"
	MemorySub    Token = "M-"
)

// MaxFactorial bounds the argument of the ! key. 5000! already has 16326
// digits; larger results would only flood the display.
const MaxFactorial = 5000

// NormalKeys is the basic keypad, laid out four to a row.
var NormalKeys = []Token{
	"7", "8", "9", "/",
	"4", "5", "6", "*",
	"1", "2", "3", "-",
	Clear, "0", Equals, "+",
	Backspace,
}

// ScientificKeys are added after NormalKeys in scientific mode.
var ScientificKeys = []Token{
	"sin", "cos", "tan", "log",
	Sqrt, Square, "(", ")",
	"exp", "π", "e", Factorial,
	Power, Percent, Rand, MemoryClear,
	MemoryRecall, MemoryAdd, MemorySub,
}

// Tokens that are appended to the buffer verbatim.
var literalTokens = []Token{
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".",
	"+", "-", "*", "/", "(", ")",
	"sin", "cos", "tan", "log", "exp", "π", "e",
}

type handler func(s *Session, t Token) error

var handlers = buildHandlers()

func buildHandlers() map[Token]handler {
	h := map[Token]handler{
		Clear:        (*Session).clear,
		Backspace:    (*Session).backspace,
		Equals:       (*Session).evaluate,
		Sqrt:         (*Session).sqrt,
		Square:       (*Session).square,
		Factorial:    (*Session).factorial,
		Power:        appendText("**"),
		Percent:      appendText("%"),
		Rand:         (*Session).rand,
		MemoryClear:  (*Session).memoryClear,
		MemoryRecall: (*Session).memoryRecall,
		MemoryAdd:    memoryUpdate(1),
		MemorySub:    memoryUpdate(-1),
	}
	for _, t := range literalTokens {
		h[t] = appendText(string(t))
	}
	return h
}

// Known reports whether t is handled by Apply.
func Known(t Token) bool {
	_, ok := handlers[t]
	return ok
}

// Apply feeds one token to the session. A failing token replaces the buffer
// with "Error" and returns a *TokenError; an unknown token leaves the
// session untouched.
func (s *Session) Apply(t Token) error {
	h, ok := handlers[t]
	if !ok {
		return &TokenError{Token: t, Err: ErrUnknownToken}
	}
	if err := h(s, t); err != nil {
		s.buffer = DisplayError
		s.publish(EventFailed, string(t), map[string]interface{}{"error": err.Error()})
		return &TokenError{Token: t, Err: err}
	}
	s.publish(EventTokenApplied, string(t), nil)
	return nil
}

// ApplyAll applies tokens in order and returns the first error. Later tokens
// are still applied, as they would be if typed one after another.
func (s *Session) ApplyAll(tokens ...Token) error {
	var first error
	for _, t := range tokens {
		if err := s.Apply(t); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func appendText(text string) handler {
	return func(s *Session, _ Token) error {
		s.buffer += text
		return nil
	}
}

func (s *Session) clear(Token) error {
	s.buffer = ""
	return nil
}

func (s *Session) backspace(Token) error {
	if s.buffer == "" {
		return nil
	}
	_, size := utf8.DecodeLastRuneInString(s.buffer)
	s.buffer = s.buffer[:len(s.buffer)-size]
	return nil
}

func (s *Session) evaluate(Token) error {
	v, err := expr.Eval(s.buffer)
	if err != nil {
		return err
	}
	entry := Entry{Expression: s.buffer, Result: expr.FormatNumber(v)}
	s.history = append(s.history, entry)
	s.buffer = entry.Result
	s.publish(EventEvaluated, string(Equals), map[string]interface{}{
		"expression": entry.Expression,
		"result":     entry.Result,
	})
	return nil
}

func (s *Session) sqrt(Token) error {
	v, err := expr.ParseFloat(s.buffer)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%w: square root of a negative number", expr.ErrDomain)
	}
	s.buffer = expr.FormatNumber(math.Sqrt(v))
	return nil
}

func (s *Session) square(Token) error {
	v, err := expr.ParseFloat(s.buffer)
	if err != nil {
		return err
	}
	sq := v * v
	if math.IsInf(sq, 0) {
		return fmt.Errorf("%w: result is not finite", expr.ErrDomain)
	}
	s.buffer = expr.FormatNumber(sq)
	return nil
}

func (s *Session) factorial(Token) error {
	n, err := expr.ParseInt(s.buffer)
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: factorial of a negative number", expr.ErrDomain)
	}
	if n > MaxFactorial {
		return fmt.Errorf("%w: factorial argument above %d", expr.ErrDomain, MaxFactorial)
	}
	if n < 2 {
		s.buffer = "1"
		return nil
	}
	s.buffer = new(big.Int).MulRange(1, n).String()
	return nil
}

func (s *Session) rand(Token) error {
	s.buffer = expr.FormatNumber(s.random())
	return nil
}

func (s *Session) memoryClear(Token) error {
	s.memory = 0
	return nil
}

func (s *Session) memoryRecall(Token) error {
	s.buffer += expr.FormatNumber(s.memory)
	return nil
}

func memoryUpdate(sign float64) handler {
	return func(s *Session, _ Token) error {
		v := 0.0
		if strings.TrimSpace(s.buffer) != "" {
			parsed, err := expr.ParseFloat(s.buffer)
			if err != nil {
				return err
			}
			v = parsed
		}
		next := s.memory + sign*v
		if math.IsInf(next, 0) {
			return fmt.Errorf("%w: memory overflow", expr.ErrDomain)
		}
		s.memory = next
		return nil
	}
}
