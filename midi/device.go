package midi

import (
	"github.com/pkg/errors"
)

// Device owns the performance input and the synthesizer output. Callers
// must Close it; main defers that right after Open succeeds.
type Device struct {
	In  *Input
	Out *Output
}

// Open finds and opens both ports. The returned error names the port that
// failed; there is no retry.
func Open(inName, outName string, now func() uint64) (*Device, error) {
	ports, err := Scan()
	if err != nil {
		return nil, err
	}

	inPort, err := ports.FindIn(inName)
	if err != nil {
		return nil, err
	}
	outPort, err := ports.FindOut(outName)
	if err != nil {
		return nil, err
	}

	in, err := NewInput(inPort, now)
	if err != nil {
		return nil, errors.Wrap(err, "the following input device could not connect")
	}
	out, err := NewOutput(outPort)
	if err != nil {
		in.Close()
		return nil, errors.Wrap(err, "the following output device could not connect")
	}

	return &Device{In: in, Out: out}, nil
}

// Close silences and releases the output, then the input, reporting the
// first failure
func (d *Device) Close() error {
	var first error
	if d.Out != nil {
		first = d.Out.Close()
	}
	if d.In != nil {
		if err := d.In.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
