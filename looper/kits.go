package looper

// DrumKit maps the eight drum pads to percussion notes
type DrumKit struct {
	Name  string
	Notes [PadCount]uint8 // indexed by pad, i.e. input note - PadLow
}

// Pads for reference
// 0 (44): Pad 1 top row
// 1 (45): Pad 2 top row
// 2 (46): Pad 3 top row
// 3 (47): Pad 4 top row
// 4 (48): Pad 1 bottom row
// 5 (49): Pad 2 bottom row
// 6 (50): Pad 3 bottom row
// 7 (51): Pad 4 bottom row

// Kits contains all available pad mappings
var Kits = map[string]DrumKit{
	"mpk": {
		Name: "MPK Mini pads",
		Notes: [PadCount]uint8{
			42, // Closed HH
			44, // Pedal HH
			51, // Ride
			59, // Ride 2
			35, // Acoustic Kick
			36, // Kick
			38, // Snare
			39, // Clap
		},
	},
	"gm": {
		Name: "General MIDI",
		Notes: [PadCount]uint8{
			42, // Closed HH
			46, // Open HH
			49, // Crash
			51, // Ride
			36, // Kick
			38, // Snare
			41, // Low Tom
			45, // High Tom
		},
	},
	"rd8": {
		Name: "Behringer RD-8",
		Notes: [PadCount]uint8{
			42, // Closed HH (CH)
			46, // Open HH (OH)
			49, // Crash (CY)
			51, // Ride (RC)
			36, // Kick (BD)
			40, // Snare (SD) - note: RD-8 uses 40, not 38!
			39, // Clap (CP)
			37, // Rimshot (RS)
		},
	},
	"tr8s": {
		Name: "Roland TR-8S",
		Notes: [PadCount]uint8{
			42, // Closed HH
			46, // Open HH
			49, // Crash
			51, // Ride
			36, // Kick
			38, // Snare
			39, // Clap
			37, // Rimshot
		},
	},
}

// KitNames returns the list of available kit names
func KitNames() []string {
	return []string{"mpk", "gm", "rd8", "tr8s"}
}

// GetKit returns a kit by name, defaulting to the MPK layout if not found
func GetKit(name string) DrumKit {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}

// DefaultKit is the default kit name
const DefaultKit = "mpk"
