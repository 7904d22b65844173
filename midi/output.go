package midi

import (
	"sync"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Output sends note and program messages to a synthesizer port
type Output struct {
	name string
	port drivers.Out
	send func(msg gomidi.Message) error

	mu         sync.Mutex
	instrument uint8
}

// NewOutput opens outPort for sending
func NewOutput(outPort drivers.Out) (*Output, error) {
	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return nil, errors.Wrapf(err, "open output %q", outPort.String())
	}
	return &Output{name: outPort.String(), port: outPort, send: send}, nil
}

func (o *Output) Name() string {
	return o.name
}

func (o *Output) NoteOn(note, velocity, channel uint8) error {
	return errors.Wrapf(o.send(gomidi.NoteOn(channel, note, velocity)), "note on %d to %q", note, o.name)
}

func (o *Output) NoteOff(note, velocity, channel uint8) error {
	return errors.Wrapf(o.send(gomidi.NoteOffVelocity(channel, note, velocity)), "note off %d to %q", note, o.name)
}

// SetInstrument records program as the current instrument and sends a
// program change on channel 0. Unlike a plain setter it talks to the device.
func (o *Output) SetInstrument(program uint8) error {
	if program > 127 {
		return errors.Wrapf(ErrOutOfRange, "program %d", program)
	}
	o.mu.Lock()
	o.instrument = program
	o.mu.Unlock()
	return errors.Wrapf(o.send(gomidi.ProgramChange(0, program)), "program change to %q", o.name)
}

// Instrument returns the last program set
func (o *Output) Instrument() uint8 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.instrument
}

// Close silences every channel before releasing the port
func (o *Output) Close() error {
	if o.port == nil || !o.port.IsOpen() {
		return nil
	}
	var first error
	for ch := uint8(0); ch < 16; ch++ {
		if err := o.send(gomidi.ControlChange(ch, allNotesOff, 0)); err != nil && first == nil {
			first = errors.Wrapf(err, "all notes off on %q channel %d", o.name, ch)
		}
	}
	if err := o.port.Close(); err != nil {
		return errors.Wrapf(err, "close output %q", o.name)
	}
	return first
}

const allNotesOff uint8 = 123
