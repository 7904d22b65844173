package midi

import "fmt"

// General MIDI instrument families, eight programs each
var families = [16]string{
	"Piano",
	"Chromatic Percussion",
	"Organ",
	"Guitar",
	"Bass",
	"Strings",
	"Ensemble",
	"Brass",
	"Reed",
	"Pipe",
	"Synth Lead",
	"Synth Pad",
	"Synth Effects",
	"Ethnic",
	"Percussive",
	"Sound Effects",
}

// InstrumentFamily returns the GM family name for a program number
func InstrumentFamily(program uint8) string {
	if program > 127 {
		return "?"
	}
	return families[program/8]
}

// InstrumentFamilies returns the family names with their program ranges,
// e.g. "0-7: Piano"
func InstrumentFamilies() []string {
	out := make([]string, len(families))
	for i, name := range families {
		out[i] = fmt.Sprintf("%d-%d: %s", i*8, i*8+7, name)
	}
	return out
}

