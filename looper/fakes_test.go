package looper

import (
	"errors"

	"go-looper/midi"
)

type fakeClock struct {
	t uint64
}

func (c *fakeClock) Now() uint64 { return c.t }

type fakeInput struct {
	queue []midi.RawEvent
}

func (in *fakeInput) push(evs ...midi.RawEvent) {
	in.queue = append(in.queue, evs...)
}

func (in *fakeInput) Poll() bool { return len(in.queue) > 0 }

func (in *fakeInput) Read(max int) []midi.RawEvent {
	if max > len(in.queue) {
		max = len(in.queue)
	}
	out := in.queue[:max]
	in.queue = in.queue[max:]
	return out
}

type sent struct {
	On       bool
	Note     uint8
	Velocity uint8
	Channel  uint8
}

var errUnplugged = errors.New("device unplugged")

type recordSink struct {
	notes      []sent
	programs   []uint8
	failing    bool
	failedSend int
}

func (s *recordSink) NoteOn(note, velocity, channel uint8) error {
	if s.failing {
		s.failedSend++
		return errUnplugged
	}
	s.notes = append(s.notes, sent{On: true, Note: note, Velocity: velocity, Channel: channel})
	return nil
}

func (s *recordSink) NoteOff(note, velocity, channel uint8) error {
	if s.failing {
		s.failedSend++
		return errUnplugged
	}
	s.notes = append(s.notes, sent{On: false, Note: note, Velocity: velocity, Channel: channel})
	return nil
}

func (s *recordSink) SetInstrument(program uint8) error {
	if s.failing {
		return errUnplugged
	}
	s.programs = append(s.programs, program)
	return nil
}

func noteOn(note, vel uint8, t uint64) midi.RawEvent {
	return midi.RawEvent{Status: midi.NoteOn, Note: note, Velocity: vel, Timestamp: t}
}

func noteOff(note uint8, t uint64) midi.RawEvent {
	return midi.RawEvent{Status: midi.NoteOff, Note: note, Velocity: 0, Timestamp: t}
}

func decoded(raw midi.RawEvent) midi.NoteEvent {
	ev, err := midi.Decode(raw)
	if err != nil {
		panic(err)
	}
	return ev
}
