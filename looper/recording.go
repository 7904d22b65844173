package looper

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go-looper/midi"
)

var ErrRecordingFrozen = errors.New("recording is frozen")

// Recording is one captured take: untransformed events in arrival order
// between a start and end mark.
type Recording struct {
	ID     uuid.UUID
	events []midi.NoteEvent
	start  uint64
	end    uint64
	frozen bool
}

// NewRecording starts an empty take at start
func NewRecording(start uint64) *Recording {
	return &Recording{
		ID:    uuid.New(),
		start: start,
		end:   start,
	}
}

// Append adds ev. Timestamps before the start mark (an event stamped in the
// same tick recording began) are pulled up to it.
func (r *Recording) Append(ev midi.NoteEvent) error {
	if r.frozen {
		return ErrRecordingFrozen
	}
	if ev.Timestamp < r.start {
		ev.Timestamp = r.start
	}
	r.events = append(r.events, ev)
	return nil
}

// Freeze sets the end mark and makes the take read-only. The end mark never
// precedes the last event.
func (r *Recording) Freeze(end uint64) {
	if r.frozen {
		return
	}
	if end < r.start {
		end = r.start
	}
	if n := len(r.events); n > 0 && r.events[n-1].Timestamp > end {
		end = r.events[n-1].Timestamp
	}
	r.end = end
	r.frozen = true
}

func (r *Recording) Frozen() bool {
	return r.frozen
}

func (r *Recording) Len() int {
	return len(r.events)
}

// Event returns the i-th event
func (r *Recording) Event(i int) midi.NoteEvent {
	return r.events[i]
}

// Events returns a copy of the captured events
func (r *Recording) Events() []midi.NoteEvent {
	out := make([]midi.NoteEvent, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recording) Start() uint64 {
	return r.start
}

func (r *Recording) End() uint64 {
	return r.end
}

// Duration is end - start; zero until frozen
func (r *Recording) Duration() uint64 {
	return r.end - r.start
}
