package looper

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"go-looper/debug"
)

// CommandKind identifies a user command
type CommandKind int

const (
	CmdToggleRecord CommandKind = iota
	CmdToggleDrums
	CmdSetInstrument
	CmdNextInstrument
	CmdPrevInstrument
)

// Command is a user trigger queued for the control loop
type Command struct {
	Kind    CommandKind
	Program uint8 // CmdSetInstrument only
}

// Options configure an Engine
type Options struct {
	TickRate   int    // ticks per second
	ReadBatch  int    // max input events per tick
	Repeat     bool   // restart finished loops
	Kit        string // drum kit name
	Drums      bool   // drum mapping initially on
	Instrument uint8  // initial program
}

// DefaultOptions matches a 120 Hz refresh-bound loop
func DefaultOptions() Options {
	return Options{
		TickRate:  120,
		ReadBatch: 32,
		Kit:       DefaultKit,
		Drums:     true,
	}
}

// Status is a snapshot of the engine for display
type Status struct {
	State      State
	Drums      bool
	Kit        string
	Instrument uint8
	TakeID     string
	Events     int    // events in the current take
	Duration   uint64 // ms, once frozen
	Elapsed    uint64 // ms into the current loop pass
	Pass       int
	Live       uint64 // live events echoed so far
	LastErr    string
}

// Engine is the single control loop. It alone touches the transport, the
// take and the player; other goroutines talk to it through commands and
// read Status.
type Engine struct {
	out        Sink
	clock      Clock
	opts       Options
	drumMap    *DrumMap
	transport  *Transport
	dispatcher *Dispatcher

	drums      bool
	instrument uint8
	live       uint64
	lastErr    error

	commands chan Command

	mu     sync.RWMutex
	status Status

	// Notify UI of updates
	UpdateChan chan struct{}
}

// NewEngine wires a dispatcher, transport and player around in and out
func NewEngine(in Input, out Sink, clock Clock, opts Options) *Engine {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultOptions().TickRate
	}
	if opts.ReadBatch <= 0 {
		opts.ReadBatch = DefaultOptions().ReadBatch
	}
	drumMap := NewDrumMap(GetKit(opts.Kit))
	transport := NewTransport(NewPlayer(drumMap, opts.Repeat))

	e := &Engine{
		out:        out,
		clock:      clock,
		opts:       opts,
		drumMap:    drumMap,
		transport:  transport,
		dispatcher: NewDispatcher(in, out, drumMap, transport, opts.ReadBatch),
		drums:      opts.Drums,
		instrument: opts.Instrument,
		commands:   make(chan Command, 64),
		UpdateChan: make(chan struct{}, 1),
	}
	e.publish()
	return e
}

// Send queues cmd for the next tick. It reports false if the queue is full.
func (e *Engine) Send(cmd Command) bool {
	select {
	case e.commands <- cmd:
		return true
	default:
		debug.Log("cmd", "queue full, dropped %v", cmd.Kind)
		return false
	}
}

func (e *Engine) ToggleRecord() bool { return e.Send(Command{Kind: CmdToggleRecord}) }
func (e *Engine) ToggleDrums() bool  { return e.Send(Command{Kind: CmdToggleDrums}) }
func (e *Engine) NextInstrument() bool {
	return e.Send(Command{Kind: CmdNextInstrument})
}
func (e *Engine) PrevInstrument() bool {
	return e.Send(Command{Kind: CmdPrevInstrument})
}

// SetInstrument queues a program change
func (e *Engine) SetInstrument(program uint8) bool {
	return e.Send(Command{Kind: CmdSetInstrument, Program: program})
}

// Run sends the initial program and ticks until ctx is cancelled
func (e *Engine) Run(ctx context.Context) error {
	if err := e.out.SetInstrument(e.instrument); err != nil {
		e.fail("instrument", err)
	}
	e.publish()

	ticker := time.NewTicker(time.Second / time.Duration(e.opts.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Tick runs one pass of the control loop: commands, live input, playback
func (e *Engine) Tick() {
	e.drainCommands()

	n, err := e.dispatcher.Drain(e.drums)
	e.live += uint64(n)
	if err != nil {
		e.fail("dispatch", err)
	}

	if e.transport.State() == StateLooping {
		e.advance(e.clock.Now())
	}

	e.publish()
}

func (e *Engine) drainCommands() {
	for {
		select {
		case cmd := <-e.commands:
			e.handle(cmd)
		default:
			return
		}
	}
}

func (e *Engine) handle(cmd Command) {
	switch cmd.Kind {
	case CmdToggleRecord:
		state, err := e.transport.ToggleRecord(e.clock.Now())
		if err != nil {
			e.fail("transport", err)
			return
		}
		take := e.transport.Take()
		debug.Log("transport", "-> %s take=%s events=%d", state, take.ID, take.Len())
		e.lastErr = nil
	case CmdToggleDrums:
		e.drums = !e.drums
		debug.Log("drums", "enabled=%v", e.drums)
	case CmdSetInstrument:
		e.setInstrument(cmd.Program)
	case CmdNextInstrument:
		e.setInstrument((e.instrument + 1) % 128)
	case CmdPrevInstrument:
		e.setInstrument((e.instrument + 127) % 128)
	}
}

func (e *Engine) setInstrument(program uint8) {
	if err := e.out.SetInstrument(program); err != nil {
		e.fail("instrument", err)
		return
	}
	e.instrument = program
	debug.Log("instrument", "program=%d", program)
}

// advance plays everything due at now and stops the transport when the
// player is done
func (e *Engine) advance(now uint64) {
	player := e.transport.Player()
	for {
		ev, step := player.Advance(now, e.drums)
		switch step {
		case StepEvent:
			if err := Send(e.out, ev); err != nil {
				e.fail("loop", errors.Wrap(err, "replay"))
			}
			continue
		case StepDone:
			e.transport.Stop()
			debug.Log("transport", "loop finished -> %s", e.transport.State())
		}
		return
	}
}

// fail records a recoverable error; the loop keeps running
func (e *Engine) fail(category string, err error) {
	e.lastErr = err
	debug.Error(category, err)
}

// publish refreshes the status snapshot and notifies the UI on change
func (e *Engine) publish() {
	s := Status{
		State:      e.transport.State(),
		Drums:      e.drums,
		Kit:        e.drumMap.Kit().Name,
		Instrument: e.instrument,
		Live:       e.live,
	}
	if take := e.transport.Take(); take != nil {
		s.TakeID = take.ID.String()[:8]
		s.Events = take.Len()
		s.Duration = take.Duration()
	}
	if s.State == StateLooping {
		// coarse so the UI is not woken every tick
		elapsed, pass := e.transport.Player().Position(e.clock.Now())
		s.Elapsed = elapsed / 100 * 100
		s.Pass = pass
	}
	if e.lastErr != nil {
		s.LastErr = e.lastErr.Error()
	}

	e.mu.Lock()
	changed := s != e.status
	e.status = s
	e.mu.Unlock()

	if changed {
		select {
		case e.UpdateChan <- struct{}{}:
		default:
		}
	}
}

// Status returns the latest snapshot
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// Transport exposes the transport. Control loop and tests only.
func (e *Engine) Transport() *Transport {
	return e.transport
}
