package midi

import (
	"fmt"

	"github.com/pkg/errors"
)

// MIDI status nibbles
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// PercussionChannel is the General MIDI drum channel (channel 10, zero based)
const PercussionChannel uint8 = 9

var (
	ErrUnrecognized = errors.New("unrecognized status")
	ErrOutOfRange   = errors.New("data byte out of range")
)

// Kind distinguishes note-on from note-off
type Kind uint8

const (
	KindNoteOn Kind = iota
	KindNoteOff
)

func (k Kind) String() string {
	if k == KindNoteOff {
		return "off"
	}
	return "on"
}

// RawEvent is an undecoded message as read from an input port
type RawEvent struct {
	Status    uint8
	Note      uint8
	Velocity  uint8
	Timestamp uint64 // monotonic ms
}

// NoteEvent is a validated note-on or note-off
type NoteEvent struct {
	Kind      Kind
	Note      uint8
	Velocity  uint8
	Channel   uint8
	Timestamp uint64 // monotonic ms
}

func (e NoteEvent) String() string {
	return fmt.Sprintf("%s ch=%d note=%d vel=%d t=%d", e.Kind, e.Channel, e.Note, e.Velocity, e.Timestamp)
}

// Decode validates a raw event. Statuses other than note-on/off return
// ErrUnrecognized; data bytes with the high bit set return ErrOutOfRange.
func Decode(raw RawEvent) (NoteEvent, error) {
	var kind Kind
	switch raw.Status & 0xF0 {
	case NoteOn:
		kind = KindNoteOn
	case NoteOff:
		kind = KindNoteOff
	default:
		return NoteEvent{}, errors.Wrapf(ErrUnrecognized, "status 0x%02X", raw.Status)
	}
	if raw.Note > 127 || raw.Velocity > 127 {
		return NoteEvent{}, errors.Wrapf(ErrOutOfRange, "note=%d vel=%d", raw.Note, raw.Velocity)
	}
	return NoteEvent{
		Kind:      kind,
		Note:      raw.Note,
		Velocity:  raw.Velocity,
		Channel:   raw.Status & 0x0F,
		Timestamp: raw.Timestamp,
	}, nil
}
