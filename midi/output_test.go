package midi

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

var errUnplugged = errors.New("device unplugged")

// stubOut is a drivers.Out that only tracks open state
type stubOut struct {
	open bool
}

func (s *stubOut) Open() error { s.open = true; return nil }
func (s *stubOut) Close() error { s.open = false; return nil }
func (s *stubOut) IsOpen() bool { return s.open }
func (s *stubOut) Number() int { return 0 }
func (s *stubOut) String() string { return "stub-out" }
func (s *stubOut) Underlying() interface{} { return nil }
func (s *stubOut) Send(data []byte) error { return nil }

func TestOutputCloseReportsSilenceFailure(t *testing.T) {
	port := &stubOut{open: true}
	var sent int
	out := &Output{name: port.String(), port: port, send: func(gomidi.Message) error {
		sent++
		return errUnplugged
	}}

	err := out.Close()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUnplugged))
	assert.Contains(t, err.Error(), "channel 0")
	assert.Equal(t, 16, sent)
	assert.False(t, port.IsOpen())

	dev := &Device{Out: &Output{name: "stub-out", port: &stubOut{open: true}, send: func(gomidi.Message) error {
		return errUnplugged
	}}}
	assert.True(t, errors.Is(dev.Close(), errUnplugged))
}
