package looper

import (
	"github.com/pkg/errors"

	"go-looper/midi"
)

// State is the transport mode. Exactly one is active at a time.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateLooping
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "REC"
	case StateLooping:
		return "LOOP"
	default:
		return "IDLE"
	}
}

var ErrToggleWhileLooping = errors.New("record toggle ignored while looping")

// Transport moves through idle -> recording -> looping -> idle and owns the
// take and the player that replays it.
type Transport struct {
	state  State
	take   *Recording
	player *Player
}

func NewTransport(player *Player) *Transport {
	return &Transport{state: StateIdle, player: player}
}

func (t *Transport) State() State {
	return t.state
}

// Take returns the current (or last) recording, nil before the first one
func (t *Transport) Take() *Recording {
	return t.take
}

func (t *Transport) Player() *Player {
	return t.player
}

// ToggleRecord starts a take from idle, or freezes the take and starts
// looping it. It returns the state entered. From looping it returns
// ErrToggleWhileLooping and changes nothing.
func (t *Transport) ToggleRecord(now uint64) (State, error) {
	switch t.state {
	case StateIdle:
		t.take = NewRecording(now)
		t.state = StateRecording
	case StateRecording:
		t.take.Freeze(now)
		t.player.Arm(t.take, now)
		t.state = StateLooping
	case StateLooping:
		return t.state, ErrToggleWhileLooping
	}
	return t.state, nil
}

// Capture appends ev to the take while recording and reports whether it did
func (t *Transport) Capture(ev midi.NoteEvent) bool {
	if t.state != StateRecording {
		return false
	}
	return t.take.Append(ev) == nil
}

// Stop ends looping and releases the player cursor
func (t *Transport) Stop() {
	if t.state != StateLooping {
		return
	}
	t.player.Disarm()
	t.state = StateIdle
}
