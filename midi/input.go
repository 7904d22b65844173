package midi

import (
	"sync/atomic"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// inputBuffer bounds how many messages may queue between two reads
const inputBuffer = 256

// Input receives messages from a MIDI input port and hands them out through
// a non-blocking Poll/Read pair. Messages are stamped on arrival with the
// caller's clock so recorded timestamps share a time base with playback.
type Input struct {
	name     string
	port     drivers.In
	now      func() uint64
	stopFunc func()

	events  chan RawEvent
	dropped uint64
}

// NewInput starts listening on inPort
func NewInput(inPort drivers.In, now func() uint64) (*Input, error) {
	in := &Input{
		name:   inPort.String(),
		port:   inPort,
		now:    now,
		events: make(chan RawEvent, inputBuffer),
	}

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		b := msg.Bytes()
		if len(b) < 3 {
			return // realtime / short messages carry no note
		}
		in.push(RawEvent{Status: b[0], Note: b[1], Velocity: b[2], Timestamp: in.now()})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "listen on input %q", in.name)
	}
	in.stopFunc = stop

	return in, nil
}

// push enqueues without blocking the driver thread
func (in *Input) push(ev RawEvent) {
	select {
	case in.events <- ev:
	default:
		atomic.AddUint64(&in.dropped, 1)
	}
}

func (in *Input) Name() string {
	return in.name
}

// Poll reports whether events are pending
func (in *Input) Poll() bool {
	return len(in.events) > 0
}

// Read returns up to max pending events in arrival order. It never blocks.
func (in *Input) Read(max int) []RawEvent {
	var out []RawEvent
	for len(out) < max {
		select {
		case ev := <-in.events:
			out = append(out, ev)
		default:
			return out
		}
	}
	return out
}

// Dropped returns how many events were lost to a full buffer
func (in *Input) Dropped() uint64 {
	return atomic.LoadUint64(&in.dropped)
}

func (in *Input) Close() error {
	if in.stopFunc != nil {
		in.stopFunc()
		in.stopFunc = nil
	}
	if in.port != nil && in.port.IsOpen() {
		return errors.Wrapf(in.port.Close(), "close input %q", in.name)
	}
	return nil
}
