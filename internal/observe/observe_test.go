package observe

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/felixgeelhaar/abacus/internal/calc"
)

func TestNew(t *testing.T) {
	for name, obs := range map[string]*Observer{
		"console": New(&bytes.Buffer{}, true),
		"json":    NewJSON(&bytes.Buffer{}, true),
		"discard": Discard(),
	} {
		if obs == nil || obs.Log() == nil {
			t.Fatalf("%s: expected a usable Observer", name)
		}
	}
}

func TestObserver_Log(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := New(buf, true)

	obs.Log().Info().Str("buffer", "12+3").Msg("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected output to contain 'test message', got %q", buf.String())
	}
}

func TestObserver_QuietByDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := NewJSON(buf, false)

	obs.Log().Info().Msg("hidden")
	obs.Log().Warn().Msg("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info should be filtered when not verbose, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warnings should always be logged, got %q", buf.String())
	}
}

func TestObserver_StartSpan(t *testing.T) {
	obs := New(&bytes.Buffer{}, true)

	spanCtx, span := obs.StartSpan(context.Background(), "evaluate")
	if spanCtx == nil {
		t.Fatal("expected non-nil context from StartSpan")
	}
	if span == nil {
		t.Fatal("expected non-nil span from StartSpan")
	}
	span.End()
}

func TestObserver_Watch(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := NewJSON(buf, true)
	bus := calc.NewEventBus()
	obs.Watch(bus)

	s := calc.NewSession(calc.WithEventBus(bus))
	s.ApplyAll("6", "*", "7", calc.Equals)
	s.ApplyAll(calc.Clear, "1", "/", "0", calc.Equals)

	out := buf.String()
	for _, want := range []string{"expression evaluated", "6*7", "42", "calculator input failed", "division by zero"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log output to contain %q, got %q", want, out)
		}
	}
}

func TestObserver_Close(t *testing.T) {
	obs := New(&bytes.Buffer{}, true)
	if err := obs.Close(); err != nil {
		t.Errorf("expected nil error from Close, got %v", err)
	}
}
