package log

import (
	"sync"
	"testing"
)

type recordingLogger struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingLogger) Log(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingLogger) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestMultiLoggerFansOut(t *testing.T) {
	a, b := &recordingLogger{}, &recordingLogger{}
	m := NewMultiLogger(a, nil, b)

	m.Log(Event{CaptureID: "one"})
	m.Log(Event{CaptureID: "two"})

	if a.len() != 2 || b.len() != 2 {
		t.Errorf("events: got %d and %d, want 2 and 2", a.len(), b.len())
	}
	if a.events[1].CaptureID != "two" {
		t.Errorf("order: got %q, want %q", a.events[1].CaptureID, "two")
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	NewMultiLogger().Log(Event{})
}

func TestMultiLoggerConcurrent(t *testing.T) {
	r := &recordingLogger{}
	m := NewMultiLogger(r, NoopLogger{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.Log(Event{Stage: StageFrame})
			}
		}()
	}
	wg.Wait()

	if r.len() != 500 {
		t.Errorf("events: got %d, want 500", r.len())
	}
}
