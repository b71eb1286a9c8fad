package store

import (
	"time"

	"github.com/felixgeelhaar/abacus/internal/calc"
	"github.com/google/uuid"
)

// Recorder copies successful evaluations from a session's event bus into a
// journal.
type Recorder struct {
	journal   Journal
	sessionID string
	onError   func(error)
}

// StartRecording opens a journal session and subscribes to bus. Write
// failures are passed to onError and never reach the calculator.
func StartRecording(j Journal, bus *calc.EventBus, onError func(error)) (*Recorder, error) {
	if onError == nil {
		onError = func(error) {}
	}
	r := &Recorder{
		journal:   j,
		sessionID: uuid.NewString(),
		onError:   onError,
	}
	err := j.CreateSession(&Session{
		ID:        r.sessionID,
		StartedAt: time.Now(),
		Status:    "active",
	})
	if err != nil {
		return nil, err
	}

	bus.Subscribe(calc.EventEvaluated, r.record)
	return r, nil
}

// SessionID identifies this run in the journal.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

func (r *Recorder) record(e calc.Event) {
	expression, _ := e.Data["expression"].(string)
	result, _ := e.Data["result"].(string)
	err := r.journal.AppendEntry(&Entry{
		SessionID:  r.sessionID,
		Expression: expression,
		Result:     result,
		CreatedAt:  e.Timestamp,
	})
	if err != nil {
		r.onError(err)
	}
}

// Stop marks the journal session as finished.
func (r *Recorder) Stop() error {
	return r.journal.EndSession(r.sessionID, "completed")
}
