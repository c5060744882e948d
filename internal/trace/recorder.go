package trace

import "github.com/retroenv/chip8emu/internal/chip8"

// Recorder keeps the most recent events in a ring buffer, used to report
// the instructions that led to a fault.
type Recorder struct {
	events []chip8.Event
	next   int
	full   bool
}

// NewRecorder returns a recorder that keeps the last size events.
func NewRecorder(size int) *Recorder {
	if size < 1 {
		size = 1
	}
	return &Recorder{
		events: make([]chip8.Event, size),
	}
}

// Trace implements chip8.Tracer.
func (r *Recorder) Trace(event chip8.Event) {
	r.events[r.next] = event
	r.next++
	if r.next == len(r.events) {
		r.next = 0
		r.full = true
	}
}

// Events returns the recorded events, oldest first.
func (r *Recorder) Events() []chip8.Event {
	if !r.full {
		return append([]chip8.Event(nil), r.events[:r.next]...)
	}

	events := make([]chip8.Event, 0, len(r.events))
	events = append(events, r.events[r.next:]...)
	events = append(events, r.events[:r.next]...)
	return events
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.next = 0
	r.full = false
}
