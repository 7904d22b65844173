package looper

import "go-looper/midi"

// Step is the outcome of one Player.Advance call
type Step int

const (
	StepWait  Step = iota // nothing due yet
	StepEvent             // an event is returned for dispatch
	StepDone              // the loop is over
)

// Player replays a frozen Recording, placing each event at its recorded
// offset from the take start, measured from the loop origin.
type Player struct {
	drums  *DrumMap
	repeat bool

	take   *Recording
	next   int
	origin uint64
	passes int
}

// NewPlayer creates a player. With repeat set a finished pass rewinds
// instead of ending the loop.
func NewPlayer(drums *DrumMap, repeat bool) *Player {
	return &Player{drums: drums, repeat: repeat}
}

// Arm points the cursor at the start of take, with the loop beginning now
func (p *Player) Arm(take *Recording, now uint64) {
	p.take = take
	p.next = 0
	p.origin = now
	p.passes = 0
}

// Disarm drops the cursor
func (p *Player) Disarm() {
	p.take = nil
	p.next = 0
	p.origin = 0
}

func (p *Player) Armed() bool {
	return p.take != nil
}

// Position returns the elapsed ms into the current pass and the pass number
func (p *Player) Position(now uint64) (elapsed uint64, pass int) {
	if p.take == nil || now < p.origin {
		return 0, p.passes
	}
	return now - p.origin, p.passes
}

// Advance returns the next due event, transformed with the current drum
// setting. Callers loop on StepEvent to drain everything due at now.
func (p *Player) Advance(now uint64, drums bool) (midi.NoteEvent, Step) {
	if p.take == nil || p.take.Len() == 0 {
		return midi.NoteEvent{}, StepDone
	}

	duration := p.take.Duration()
	var elapsed uint64
	if now > p.origin {
		elapsed = now - p.origin
	}

	if p.next >= p.take.Len() {
		if elapsed < duration {
			return midi.NoteEvent{}, StepWait
		}
		return p.finishPass(now, drums)
	}

	ev := p.take.Event(p.next)
	due := ev.Timestamp - p.take.Start()
	if elapsed < due {
		return midi.NoteEvent{}, StepWait
	}
	if due >= duration {
		return p.finishPass(now, drums)
	}

	p.next++
	return p.drums.Transform(ev, drums), StepEvent
}

// finishPass ends the loop or, when repeating, starts the next pass on a
// whole multiple of duration after the previous origin. Passes missed during
// a stall are skipped, not replayed.
func (p *Player) finishPass(now uint64, drums bool) (midi.NoteEvent, Step) {
	duration := p.take.Duration()
	if !p.repeat || duration == 0 {
		return midi.NoteEvent{}, StepDone
	}
	skip := uint64(1)
	if now > p.origin && (now-p.origin)/duration > 1 {
		skip = (now - p.origin) / duration
	}
	p.origin += skip * duration
	p.next = 0
	p.passes += int(skip)
	return p.Advance(now, drums)
}
