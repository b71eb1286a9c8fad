package calc

import (
	"errors"
	"strings"
	"testing"

	"github.com/felixgeelhaar/abacus/internal/expr"
)

func typed(s *Session, text string) {
	s.buffer = text
}

func TestNewSession(t *testing.T) {
	s := NewSession()
	if s.Buffer() != "" {
		t.Errorf("expected empty buffer, got %q", s.Buffer())
	}
	if s.Memory() != 0 {
		t.Errorf("expected zero memory, got %v", s.Memory())
	}
	if len(s.History()) != 0 {
		t.Errorf("expected empty history, got %d entries", len(s.History()))
	}
	if s.Scientific() || s.Dark() {
		t.Error("expected scientific and dark mode off")
	}
	if s.Angle() != Degrees {
		t.Errorf("expected degrees, got %v", s.Angle())
	}
}

func TestSession_Evaluate(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"2+3", "5"},
		{"7/2", "3.5"},
		{"2+3*4", "14"},
		{"(1+2)*(3+4)", "21"},
		{"2**10", "1024"},
		{"10%4", "2"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			s := NewSession()
			typed(s, tc.input)
			if err := s.Apply(Equals); err != nil {
				t.Fatalf("Apply(=) failed: %v", err)
			}
			if s.Buffer() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, s.Buffer())
			}
			history := s.History()
			if len(history) != 1 {
				t.Fatalf("expected 1 history entry, got %d", len(history))
			}
			if history[0] != (Entry{Expression: tc.input, Result: tc.want}) {
				t.Errorf("unexpected history entry %+v", history[0])
			}
		})
	}
}

func TestSession_EvaluateFromKeys(t *testing.T) {
	s := NewSession()
	if err := s.ApplyAll("1", "2", "+", "3", Power, "2", Equals); err != nil {
		t.Fatalf("ApplyAll failed: %v", err)
	}
	if s.Buffer() != "21" {
		t.Errorf("expected 21, got %q", s.Buffer())
	}
	if got := s.History()[0].Expression; got != "12+3**2" {
		t.Errorf("expected expression '12+3**2', got %q", got)
	}
}

func TestSession_ChainsExponentResults(t *testing.T) {
	testCases := []struct {
		first, shown string
		then         []Token
		want         string
	}{
		{"10**21", "1e+21", []Token{"+", "1", Equals}, "1e+21"},
		{"0.0000001", "1e-07", []Token{"+", "1", Equals}, "1.0000001"},
		{"10**21", "1e+21", []Token{"/", "1", "0", Equals}, "100000000000000000000"},
	}

	for _, tc := range testCases {
		s := NewSession()
		if err := s.Enter(tc.first); err != nil {
			t.Fatalf("Enter(%q) failed: %v", tc.first, err)
		}
		s.Apply(Equals)
		if s.Buffer() != tc.shown {
			t.Fatalf("%s = %q, want %q", tc.first, s.Buffer(), tc.shown)
		}
		if err := s.ApplyAll(tc.then...); err != nil {
			t.Fatalf("evaluating %q again failed: %v", s.History()[len(s.History())-1].Result, err)
		}
		if s.Buffer() != tc.want {
			t.Errorf("got %q, want %q", s.Buffer(), tc.want)
		}
	}
}

func TestSession_EvaluateErrors(t *testing.T) {
	testCases := []struct {
		input string
		want  error
	}{
		{"5/0", expr.ErrDivisionByZero},
		{"5+", expr.ErrSyntax},
		{"", expr.ErrSyntax},
		{"import os", expr.ErrSyntax},
		{"log(0)", expr.ErrDomain},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			s := NewSession()
			typed(s, tc.input)
			err := s.Apply(Equals)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var te *TokenError
			if !errors.As(err, &te) || te.Token != Equals {
				t.Errorf("expected *TokenError for '=', got %T", err)
			}
			if s.Buffer() != DisplayError {
				t.Errorf("expected %q, got %q", DisplayError, s.Buffer())
			}
			if len(s.History()) != 0 {
				t.Error("history must not change on a failed evaluation")
			}
		})
	}
}

func TestSession_ClearAndBackspace(t *testing.T) {
	s := NewSession()

	if err := s.Apply(Backspace); err != nil {
		t.Fatalf("backspace failed: %v", err)
	}
	if s.Buffer() != "" {
		t.Errorf("backspace on empty buffer should be a no-op, got %q", s.Buffer())
	}

	typed(s, "12π")
	s.Apply(Backspace)
	if s.Buffer() != "12" {
		t.Errorf("expected '12', got %q", s.Buffer())
	}

	for _, text := range []string{"", "123", DisplayError, "Age: 26"} {
		typed(s, text)
		s.Apply(Clear)
		if s.Buffer() != "" {
			t.Errorf("C after %q left %q", text, s.Buffer())
		}
	}
}

func TestSession_AppendTokens(t *testing.T) {
	s := NewSession()
	s.ApplyAll("sin", "(", "π", ")", "+", "e", Power, "2", Percent, ".")
	if want := "sin(π)+e**2%."; s.Buffer() != want {
		t.Errorf("expected %q, got %q", want, s.Buffer())
	}
}

func TestSession_UnknownToken(t *testing.T) {
	s := NewSession()
	typed(s, "12")
	err := s.Apply("rm -rf")
	if !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("expected ErrUnknownToken, got %v", err)
	}
	if s.Buffer() != "12" {
		t.Errorf("unknown token must not change the buffer, got %q", s.Buffer())
	}
	if Known("rm -rf") {
		t.Error("Known should reject unlisted labels")
	}
}

func TestSession_Sqrt(t *testing.T) {
	s := NewSession()
	typed(s, "16")
	if err := s.Apply(Sqrt); err != nil {
		t.Fatalf("sqrt failed: %v", err)
	}
	if s.Buffer() != "4" {
		t.Errorf("expected 4, got %q", s.Buffer())
	}

	typed(s, "-4")
	if err := s.Apply(Sqrt); !errors.Is(err, expr.ErrDomain) {
		t.Errorf("expected domain error, got %v", err)
	}
	if s.Buffer() != DisplayError {
		t.Errorf("expected Error, got %q", s.Buffer())
	}

	typed(s, "abc")
	if err := s.Apply(Sqrt); !errors.Is(err, expr.ErrNotNumeric) {
		t.Errorf("expected not-numeric error, got %v", err)
	}
}

func TestSession_Square(t *testing.T) {
	s := NewSession()
	typed(s, "-1.5")
	if err := s.Apply(Square); err != nil {
		t.Fatalf("square failed: %v", err)
	}
	if s.Buffer() != "2.25" {
		t.Errorf("expected 2.25, got %q", s.Buffer())
	}

	typed(s, "2+2")
	if err := s.Apply(Square); !errors.Is(err, expr.ErrNotNumeric) {
		t.Errorf("expected not-numeric error, got %v", err)
	}

	typed(s, "1e200")
	if err := s.Apply(Square); !errors.Is(err, expr.ErrDomain) {
		t.Errorf("expected domain error for overflow, got %v", err)
	}
}

func TestSession_Factorial(t *testing.T) {
	testCases := []struct {
		input string
		want  string
		err   error
	}{
		{"5", "120", nil},
		{"0", "1", nil},
		{"1", "1", nil},
		{"25", "15511210043330985984000000", nil},
		{"-1", DisplayError, expr.ErrDomain},
		{"3.5", DisplayError, expr.ErrNotNumeric},
		{"five", DisplayError, expr.ErrNotNumeric},
		{"100000", DisplayError, expr.ErrDomain},
		{"5001", DisplayError, expr.ErrDomain},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			s := NewSession()
			typed(s, tc.input)
			err := s.Apply(Factorial)
			if tc.err == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
			if s.Buffer() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, s.Buffer())
			}
		})
	}
}

func TestSession_FactorialAtLimit(t *testing.T) {
	s := NewSession()
	typed(s, "5000")
	if err := s.Apply(Factorial); err != nil {
		t.Fatalf("5000! failed: %v", err)
	}
	if got := len(s.Buffer()); got != 16326 {
		t.Errorf("expected 16326 digits, got %d", got)
	}
}

func TestSession_Rand(t *testing.T) {
	s := NewSession(WithRandom(func() float64 { return 0.25 }))
	typed(s, "99")
	if err := s.Apply(Rand); err != nil {
		t.Fatalf("rand failed: %v", err)
	}
	if s.Buffer() != "0.25" {
		t.Errorf("expected 0.25, got %q", s.Buffer())
	}

	live := NewSession()
	for i := 0; i < 50; i++ {
		live.Apply(Rand)
		v, err := expr.ParseFloat(live.Buffer())
		if err != nil {
			t.Fatalf("Rand produced non-numeric buffer %q", live.Buffer())
		}
		if v < 0 || v >= 1 {
			t.Fatalf("Rand produced %v outside [0,1)", v)
		}
	}
}

func TestSession_Memory(t *testing.T) {
	s := NewSession()
	typed(s, "5")

	s.Apply(MemoryAdd)
	if s.Memory() != 5 {
		t.Errorf("expected memory 5, got %v", s.Memory())
	}
	if s.Buffer() != "5" {
		t.Errorf("M+ must not change the buffer, got %q", s.Buffer())
	}

	s.Apply(Clear)
	s.Apply(MemoryRecall)
	if s.Buffer() != "5" {
		t.Errorf("expected MR to append 5, got %q", s.Buffer())
	}

	s.Apply(MemoryRecall)
	if s.Buffer() != "55" {
		t.Errorf("MR appends rather than replaces, got %q", s.Buffer())
	}

	typed(s, "2")
	s.Apply(MemorySub)
	if s.Memory() != 3 {
		t.Errorf("expected memory 3, got %v", s.Memory())
	}

	s.Apply(MemoryClear)
	if s.Memory() != 0 {
		t.Errorf("expected memory 0 after MC, got %v", s.Memory())
	}
	s.Apply(Clear)
	s.Apply(MemoryRecall)
	if s.Buffer() != "0" {
		t.Errorf("expected MR after MC to append 0, got %q", s.Buffer())
	}
}

func TestSession_MemoryEmptyBufferCountsAsZero(t *testing.T) {
	s := NewSession()
	if err := s.Apply(MemoryAdd); err != nil {
		t.Fatalf("M+ on empty buffer failed: %v", err)
	}
	if err := s.Apply(MemorySub); err != nil {
		t.Fatalf("M- on empty buffer failed: %v", err)
	}
	if s.Memory() != 0 {
		t.Errorf("expected memory 0, got %v", s.Memory())
	}
}

func TestSession_MemoryNonNumeric(t *testing.T) {
	s := NewSession()
	typed(s, "7")
	s.Apply(MemoryAdd)

	typed(s, "1+1")
	if err := s.Apply(MemoryAdd); !errors.Is(err, expr.ErrNotNumeric) {
		t.Fatalf("expected not-numeric error, got %v", err)
	}
	if s.Buffer() != DisplayError {
		t.Errorf("expected Error, got %q", s.Buffer())
	}
	if s.Memory() != 7 {
		t.Errorf("failed M+ must keep memory, got %v", s.Memory())
	}
}

func TestSession_HistoryIsACopy(t *testing.T) {
	s := NewSession()
	typed(s, "1+1")
	s.Apply(Equals)

	history := s.History()
	history[0].Result = "modified"

	if s.History()[0].Result != "2" {
		t.Error("History should return a copy, not the original slice")
	}
}

func TestSession_HistoryOrder(t *testing.T) {
	s := NewSession()
	for _, in := range []string{"1+1", "2*3", "9-4"} {
		typed(s, in)
		s.Apply(Equals)
	}
	typed(s, "1/0")
	s.Apply(Equals)

	var lines []string
	for _, e := range s.History() {
		lines = append(lines, e.String())
	}
	if got := strings.Join(lines, "|"); got != "1+1 = 2|2*3 = 6|9-4 = 5" {
		t.Errorf("unexpected history %q", got)
	}
}

func TestSession_EvaluateResultCanBeReused(t *testing.T) {
	s := NewSession()
	s.ApplyAll("9", Equals, Sqrt, "+", "1", Equals)
	if s.Buffer() != "4" {
		t.Errorf("expected 4, got %q", s.Buffer())
	}
}

func TestSession_ErrorBufferIsNotAnExpression(t *testing.T) {
	s := NewSession()
	typed(s, "1/0")
	s.Apply(Equals)
	if err := s.Apply(Equals); !errors.Is(err, expr.ErrSyntax) {
		t.Errorf("evaluating the Error sentinel should be a syntax error, got %v", err)
	}
}
