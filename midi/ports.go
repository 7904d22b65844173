package midi

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// scanTimeout bounds port enumeration (CoreMIDI can hang)
const scanTimeout = 3 * time.Second

var ErrScanTimeout = errors.New("MIDI port scan timed out")

// Ports is a snapshot of the available MIDI ports
type Ports struct {
	Ins  []drivers.In
	Outs []drivers.Out
}

// InNames returns the input port names
func (p Ports) InNames() []string {
	names := make([]string, len(p.Ins))
	for i, in := range p.Ins {
		names[i] = in.String()
	}
	return names
}

// OutNames returns the output port names
func (p Ports) OutNames() []string {
	names := make([]string, len(p.Outs))
	for i, out := range p.Outs {
		names[i] = out.String()
	}
	return names
}

// Scan enumerates ports, giving up after scanTimeout
func Scan() (Ports, error) {
	ch := make(chan Ports, 1)
	go func() {
		ch <- Ports{Ins: gomidi.GetInPorts(), Outs: gomidi.GetOutPorts()}
	}()

	select {
	case p := <-ch:
		return p, nil
	case <-time.After(scanTimeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return Ports{}, ErrScanTimeout
	}
}

// FindIn returns the first input whose name contains name (case-insensitive).
// An empty name selects the first port.
func (p Ports) FindIn(name string) (drivers.In, error) {
	for _, in := range p.Ins {
		if matches(in.String(), name) {
			return in, nil
		}
	}
	return nil, errors.Errorf("no input port matching %q (have %v)", name, p.InNames())
}

// FindOut returns the first output whose name contains name (case-insensitive).
// An empty name selects the first port.
func (p Ports) FindOut(name string) (drivers.Out, error) {
	for _, out := range p.Outs {
		if matches(out.String(), name) {
			return out, nil
		}
	}
	return nil, errors.Errorf("no output port matching %q (have %v)", name, p.OutNames())
}

func matches(portName, want string) bool {
	return strings.Contains(strings.ToLower(portName), strings.ToLower(want))
}
