package looper

import "go-looper/midi"

// Drum pad input range, inclusive
const (
	PadLow   uint8 = 44
	PadHigh  uint8 = 51
	PadCount       = int(PadHigh-PadLow) + 1
)

// DrumMap remaps the pad range to a kit's notes on the percussion channel
type DrumMap struct {
	kit DrumKit
}

func NewDrumMap(kit DrumKit) *DrumMap {
	return &DrumMap{kit: kit}
}

func (d *DrumMap) Kit() DrumKit {
	return d.kit
}

// IsPad reports whether note is inside the pad range
func IsPad(note uint8) bool {
	return note >= PadLow && note <= PadHigh
}

// Lookup returns the mapped note and true for pads, or note and false
func (d *DrumMap) Lookup(note uint8) (uint8, bool) {
	if !IsPad(note) {
		return note, false
	}
	return d.kit.Notes[note-PadLow], true
}

// Transform maps an input event to what the synth should receive. Pads go
// to the percussion channel when drums is set; everything else plays on
// channel 0.
func (d *DrumMap) Transform(ev midi.NoteEvent, drums bool) midi.NoteEvent {
	out := ev
	out.Channel = 0
	if drums {
		if note, ok := d.Lookup(ev.Note); ok {
			out.Note = note
			out.Channel = midi.PercussionChannel
		}
	}
	return out
}
