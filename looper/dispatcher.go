package looper

import (
	"github.com/pkg/errors"

	"go-looper/debug"
	"go-looper/midi"
)

// Input is a non-blocking source of raw events
type Input interface {
	Poll() bool
	Read(max int) []midi.RawEvent
}

// Sink is the synthesizer. SetInstrument issues a program change.
type Sink interface {
	NoteOn(note, velocity, channel uint8) error
	NoteOff(note, velocity, channel uint8) error
	SetInstrument(program uint8) error
}

// Send plays one transformed event on out
func Send(out Sink, ev midi.NoteEvent) error {
	if ev.Kind == midi.KindNoteOff {
		return out.NoteOff(ev.Note, ev.Velocity, ev.Channel)
	}
	return out.NoteOn(ev.Note, ev.Velocity, ev.Channel)
}

// Dispatcher moves live input to the synth and, while recording, into the
// take.
type Dispatcher struct {
	in        Input
	out       Sink
	drums     *DrumMap
	transport *Transport
	batch     int
}

func NewDispatcher(in Input, out Sink, drums *DrumMap, transport *Transport, batch int) *Dispatcher {
	if batch < 1 {
		batch = 1
	}
	return &Dispatcher{in: in, out: out, drums: drums, transport: transport, batch: batch}
}

// Drain handles at most one batch of pending input. Every event is
// processed even if the sink fails; the first sink error is returned.
func (d *Dispatcher) Drain(drums bool) (int, error) {
	if !d.in.Poll() {
		return 0, nil
	}
	var first error
	raws := d.in.Read(d.batch)
	for _, raw := range raws {
		if err := d.Handle(raw, drums); err != nil && first == nil {
			first = err
		}
	}
	return len(raws), first
}

// Handle decodes raw, echoes it and records it. Invalid input is dropped
// and never reaches the take.
func (d *Dispatcher) Handle(raw midi.RawEvent, drums bool) error {
	ev, err := midi.Decode(raw)
	if err != nil {
		if errors.Is(err, midi.ErrOutOfRange) {
			debug.Log("input", "dropped: %v", err)
		}
		return nil
	}

	sendErr := Send(d.out, d.drums.Transform(ev, drums))

	// record the untransformed event so replay re-applies the drum setting
	if d.transport.Capture(ev) {
		debug.LogEvery(16, "record", "captured %s", ev)
	}

	return errors.Wrap(sendErr, "live")
}
