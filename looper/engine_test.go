package looper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-looper/midi"
)

type rig struct {
	clock *fakeClock
	in    *fakeInput
	out   *recordSink
	e     *Engine
}

func newRig(opts Options) *rig {
	r := &rig{clock: &fakeClock{}, in: &fakeInput{}, out: &recordSink{}}
	r.e = NewEngine(r.in, r.out, r.clock, opts)
	return r
}

// at advances the clock to t and ticks
func (r *rig) at(t uint64) {
	r.clock.t = t
	r.e.Tick()
}

func TestEngineLivePassThrough(t *testing.T) {
	r := newRig(DefaultOptions())
	r.in.push(noteOn(60, 100, 0), noteOn(48, 90, 1), noteOff(60, 2))
	r.at(5)

	assert.Equal(t, []sent{
		{On: true, Note: 60, Velocity: 100, Channel: 0},
		{On: true, Note: 35, Velocity: 90, Channel: 9},
		{On: false, Note: 60, Velocity: 0, Channel: 0},
	}, r.out.notes)
	assert.Equal(t, StateIdle, r.e.Status().State)
	assert.Equal(t, uint64(3), r.e.Status().Live)
	assert.Nil(t, r.e.Transport().Take())
}

func TestEngineReadBatchIsBounded(t *testing.T) {
	opts := DefaultOptions()
	opts.ReadBatch = 2
	r := newRig(opts)
	r.in.push(noteOn(1, 1, 0), noteOn(2, 1, 0), noteOn(3, 1, 0))

	r.at(1)
	assert.Len(t, r.out.notes, 2)
	r.at(2)
	assert.Len(t, r.out.notes, 3)
}

func TestEngineRecordAndReplay(t *testing.T) {
	r := newRig(DefaultOptions())

	r.e.ToggleRecord()
	r.at(1000)
	require.Equal(t, StateRecording, r.e.Status().State)

	raws := []midi.RawEvent{noteOn(60, 100, 1000), noteOn(48, 80, 1100), noteOff(60, 1250)}
	for _, raw := range raws {
		r.in.push(raw)
		r.at(raw.Timestamp)
	}
	require.Len(t, r.out.notes, 3, "live monitoring while recording")

	// the take holds the untransformed events
	take := r.e.Transport().Take()
	require.Equal(t, 3, take.Len())
	for i, raw := range raws {
		assert.Equal(t, decoded(raw), take.Event(i))
	}

	r.out.notes = nil
	r.e.ToggleRecord()
	r.at(1300)
	require.Equal(t, StateLooping, r.e.Status().State)
	assert.Equal(t, uint64(300), take.Duration())
	assert.Equal(t, []sent{{On: true, Note: 60, Velocity: 100}}, r.out.notes, "offset 0 plays as the loop starts")

	r.at(1399)
	assert.Len(t, r.out.notes, 1)
	r.at(1400)
	assert.Equal(t, sent{On: true, Note: 35, Velocity: 80, Channel: 9}, r.out.notes[1])
	r.at(1550)
	assert.Equal(t, sent{On: false, Note: 60}, r.out.notes[2])

	r.at(1599)
	assert.Equal(t, StateLooping, r.e.Status().State)
	r.at(1600)
	assert.Equal(t, StateIdle, r.e.Status().State)
	assert.Len(t, r.out.notes, 3)
}

func TestEngineReplayUsesCurrentDrumSetting(t *testing.T) {
	r := newRig(DefaultOptions())
	r.e.ToggleRecord()
	r.at(0)
	r.in.push(noteOn(48, 80, 10))
	r.at(10)
	assert.Equal(t, uint8(35), r.out.notes[0].Note)

	r.e.ToggleDrums()
	r.e.ToggleRecord()
	r.at(100)
	r.at(110)
	require.Len(t, r.out.notes, 2)
	assert.Equal(t, sent{On: true, Note: 48, Velocity: 80, Channel: 0}, r.out.notes[1])
}

func TestEngineEmptyLoopEndsWithoutSound(t *testing.T) {
	r := newRig(DefaultOptions())
	r.e.ToggleRecord()
	r.at(0)
	r.e.ToggleRecord()
	r.at(500)

	assert.Equal(t, StateIdle, r.e.Status().State)
	assert.Empty(t, r.out.notes)
	assert.Equal(t, 0, r.e.Status().Events)
}

func TestEngineToggleWhileLoopingKeepsLooping(t *testing.T) {
	r := newRig(DefaultOptions())
	r.e.ToggleRecord()
	r.at(0)
	r.in.push(noteOn(60, 100, 50))
	r.at(50)
	r.e.ToggleRecord()
	r.at(1000)

	r.e.ToggleRecord()
	r.at(1001)
	s := r.e.Status()
	assert.Equal(t, StateLooping, s.State)
	assert.Contains(t, s.LastErr, ErrToggleWhileLooping.Error())
	assert.Equal(t, 1, s.Events)
}

func TestEngineToggleDrumsTwiceIsIdempotent(t *testing.T) {
	r := newRig(DefaultOptions())
	before := r.e.Status().Drums

	r.e.ToggleDrums()
	r.at(1)
	assert.NotEqual(t, before, r.e.Status().Drums)

	r.e.ToggleDrums()
	r.at(2)
	assert.Equal(t, before, r.e.Status().Drums)
	assert.Empty(t, r.out.notes)
}

func TestEngineInvalidInputNeverRecorded(t *testing.T) {
	r := newRig(DefaultOptions())
	r.e.ToggleRecord()
	r.at(0)
	r.in.push(
		midi.RawEvent{Status: midi.NoteOn, Note: 200, Velocity: 10, Timestamp: 1},
		midi.RawEvent{Status: 0xB0, Note: 7, Velocity: 100, Timestamp: 2},
	)
	r.at(5)

	assert.Empty(t, r.out.notes)
	assert.Equal(t, 0, r.e.Transport().Take().Len())
	assert.Empty(t, r.e.Status().LastErr)
}

func TestEngineSinkFailureKeepsRecording(t *testing.T) {
	r := newRig(DefaultOptions())
	r.e.ToggleRecord()
	r.at(0)

	r.out.failing = true
	r.in.push(noteOn(60, 100, 10), noteOn(61, 100, 11))
	r.at(12)

	s := r.e.Status()
	assert.Equal(t, StateRecording, s.State)
	assert.Contains(t, s.LastErr, errUnplugged.Error())
	assert.Equal(t, 2, r.e.Transport().Take().Len())
	assert.Equal(t, 2, r.out.failedSend)

	r.out.failing = false
	r.e.ToggleRecord()
	r.at(100)
	assert.Equal(t, StateLooping, r.e.Status().State)
	assert.Empty(t, r.e.Status().LastErr)
}

func TestEngineInstrumentCommands(t *testing.T) {
	r := newRig(DefaultOptions())

	r.e.PrevInstrument()
	r.at(1)
	assert.Equal(t, uint8(127), r.e.Status().Instrument)

	r.e.NextInstrument()
	r.e.SetInstrument(40)
	r.e.NextInstrument()
	r.at(2)
	assert.Equal(t, []uint8{127, 0, 40, 41}, r.out.programs)
	assert.Equal(t, uint8(41), r.e.Status().Instrument)

	r.out.failing = true
	r.e.NextInstrument()
	r.at(3)
	assert.Equal(t, uint8(41), r.e.Status().Instrument)
	assert.NotEmpty(t, r.e.Status().LastErr)
}

func TestEngineRepeatOption(t *testing.T) {
	opts := DefaultOptions()
	opts.Repeat = true
	r := newRig(opts)
	r.e.ToggleRecord()
	r.at(0)
	r.in.push(noteOn(60, 100, 0))
	r.at(0)
	r.e.ToggleRecord()
	r.at(200)
	r.out.notes = nil

	for now := uint64(201); now <= 1000; now++ {
		r.at(now)
	}
	assert.Equal(t, StateLooping, r.e.Status().State)
	assert.Len(t, r.out.notes, 4) // passes starting at 400, 600, 800, 1000
}

func TestEngineRunAppliesCommands(t *testing.T) {
	opts := DefaultOptions()
	opts.TickRate = 200
	e := NewEngine(&fakeInput{}, &recordSink{}, NewClock(), opts)
	require.True(t, e.Status().Drums)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	e.ToggleDrums()
	require.Eventually(t, func() bool { return !e.Status().Drums }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
