// Package clock produces the song time every other component is judged
// against. A driven clock follows an external transport's playback
// position; a freewheeling clock measures wall time from a start mark,
// for when no transport is available.
package clock

import "time"

type Clock struct {
	position func() float64 // transport playback position, seconds
	start    time.Time
	last     float64
	driven   bool
}

// NewDriven wraps a transport position callback.
func NewDriven(position func() float64) *Clock {
	return &Clock{position: position, driven: true}
}

// NewFreewheeling starts counting wall time immediately.
func NewFreewheeling() *Clock {
	return &Clock{start: time.Now()}
}

// Now returns the current song time in seconds. It never decreases,
// even if the underlying transport position jitters backwards.
func (c *Clock) Now() float64 {
	var now float64
	if c.driven {
		now = c.position()
	} else {
		now = time.Since(c.start).Seconds()
	}
	if now < c.last {
		return c.last
	}
	c.last = now
	return now
}

// Freewheel switches a driven clock to wall time, continuous at the
// switch point. It happens at most once; calling it again, or on a
// clock that already freewheels, is a no-op.
func (c *Clock) Freewheel() {
	if !c.driven {
		return
	}
	c.driven = false
	c.start = time.Now().Add(-time.Duration(c.last * float64(time.Second)))
}

// Driven reports whether the clock still follows the transport.
func (c *Clock) Driven() bool {
	return c.driven
}
