package calc

import (
	"sync"
	"testing"
	"time"
)

func TestEventBus_Subscribe(t *testing.T) {
	eb := NewEventBus()
	called := false

	eb.Subscribe(EventEvaluated, func(e Event) {
		called = true
	})

	eb.Publish(Event{Type: EventEvaluated})

	if !called {
		t.Error("handler was not called")
	}
}

func TestEventBus_DifferentEventTypes(t *testing.T) {
	eb := NewEventBus()
	evaluated := false
	failed := false

	eb.Subscribe(EventEvaluated, func(e Event) { evaluated = true })
	eb.Subscribe(EventFailed, func(e Event) { failed = true })

	eb.Publish(Event{Type: EventEvaluated})

	if !evaluated {
		t.Error("evaluated handler was not called")
	}
	if failed {
		t.Error("failed handler should not have been called")
	}
}

func TestEventBus_TimestampAutoSet(t *testing.T) {
	eb := NewEventBus()
	var received Event
	eb.SubscribeAll(func(e Event) { received = e })

	before := time.Now()
	eb.Publish(Event{Type: EventTokenApplied})
	after := time.Now()

	if received.Timestamp.Before(before) || received.Timestamp.After(after) {
		t.Error("timestamp not set correctly")
	}
}

func TestEventBus_ConcurrentPublish(t *testing.T) {
	eb := NewEventBus()
	var count int
	var mu sync.Mutex

	eb.SubscribeAll(func(e Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			eb.Publish(Event{Type: EventTokenApplied})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != 100 {
		t.Errorf("expected 100 events, got %d", count)
	}
}

func TestSession_PublishesEvents(t *testing.T) {
	eb := NewEventBus()
	var events []Event
	eb.SubscribeAll(func(e Event) { events = append(events, e) })

	s := NewSession(WithEventBus(eb))
	s.ApplyAll("2", "*", "3", Equals)

	var evaluated *Event
	for i := range events {
		if events[i].Type == EventEvaluated {
			evaluated = &events[i]
		}
	}
	if evaluated == nil {
		t.Fatal("expected an evaluated event")
	}
	if evaluated.Data["expression"] != "2*3" || evaluated.Data["result"] != "6" {
		t.Errorf("unexpected event data %v", evaluated.Data)
	}
	if last := events[len(events)-1]; last.Type != EventTokenApplied || last.Buffer != "6" {
		t.Errorf("unexpected last event %+v", last)
	}
}

func TestSession_PublishesFailuresAndModes(t *testing.T) {
	eb := NewEventBus()
	counts := map[EventType]int{}
	eb.SubscribeAll(func(e Event) { counts[e.Type]++ })

	s := NewSession(WithEventBus(eb))
	s.ApplyAll("1", "/", "0", Equals)
	s.Perform(ToggleScientific)
	s.Perform(ToggleAngleMode)
	s.Apply(Clear)
	s.Perform(ConvertTemperature)
	s.ApplyAll(Clear, "5")
	s.Perform(ConvertTemperature)

	if counts[EventFailed] != 2 {
		t.Errorf("expected 2 failures, got %d", counts[EventFailed])
	}
	if counts[EventModeChanged] != 2 {
		t.Errorf("expected 2 mode changes, got %d", counts[EventModeChanged])
	}
	if counts[EventConverted] != 1 {
		t.Errorf("expected 1 conversion, got %d", counts[EventConverted])
	}
	if counts[EventEvaluated] != 0 {
		t.Errorf("expected no evaluations, got %d", counts[EventEvaluated])
	}
}
