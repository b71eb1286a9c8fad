package observe

import (
	"context"
	"io"

	"github.com/felixgeelhaar/abacus/internal/calc"
	"github.com/felixgeelhaar/bolt/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("abacus")

// Observer handles logging and tracing
type Observer struct {
	log *bolt.Logger
}

// New creates a new Observer with console output.
// If verbose is false, only warnings and errors are shown.
func New(out io.Writer, verbose bool) *Observer {
	return newObserver(bolt.New(bolt.NewConsoleHandler(out)), verbose)
}

// NewJSON creates a new Observer with JSON output.
// If verbose is false, only warnings and errors are shown.
func NewJSON(out io.Writer, verbose bool) *Observer {
	return newObserver(bolt.New(bolt.NewJSONHandler(out)), verbose)
}

// Discard returns an Observer that drops everything. The TUI uses it when no
// log file is configured, since it owns the terminal.
func Discard() *Observer {
	return NewJSON(io.Discard, false)
}

func newObserver(l *bolt.Logger, verbose bool) *Observer {
	if !verbose {
		l.SetLevel(bolt.WARN)
	}
	return &Observer{log: l}
}

// Log returns the underlying logger
func (o *Observer) Log() *bolt.Logger {
	return o.log
}

// StartSpan starts a new OTel span
func (o *Observer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// Watch logs every session event: failures as warnings, the rest at debug.
func (o *Observer) Watch(bus *calc.EventBus) {
	bus.SubscribeAll(func(e calc.Event) {
		switch e.Type {
		case calc.EventFailed:
			msg, _ := e.Data["error"].(string)
			o.log.Warn().
				Str("input", e.Input).
				Str("error", msg).
				Msg("calculator input failed")
		case calc.EventEvaluated:
			expression, _ := e.Data["expression"].(string)
			o.log.Info().
				Str("expression", expression).
				Str("result", e.Buffer).
				Msg("expression evaluated")
		default:
			o.log.Debug().
				Str("event", string(e.Type)).
				Str("input", e.Input).
				Str("buffer", e.Buffer).
				Msg("session event")
		}
	})
}

// Close ensures any buffered logs or traces are flushed (placeholder)
func (o *Observer) Close() error {
	return nil
}
