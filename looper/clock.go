package looper

import "time"

// Clock is a monotonic millisecond counter shared by recording and playback
type Clock interface {
	Now() uint64
}

type monoClock struct {
	t0 time.Time
}

// NewClock returns a Clock that starts at zero now. It reads Go's monotonic
// clock so wall-clock adjustments never move it.
func NewClock() Clock {
	return &monoClock{t0: time.Now()}
}

func (c *monoClock) Now() uint64 {
	return uint64(time.Since(c.t0).Milliseconds())
}
