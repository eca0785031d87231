package countdown

import (
	"fmt"
	"time"
)

// State is the countdown's lifecycle phase.
type State int

const (
	// Counting means time remains before the target.
	Counting State = iota
	// Expired is terminal: the target has been reached.
	Expired
)

func (s State) String() string {
	switch s {
	case Counting:
		return "counting"
	case Expired:
		return "expired"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Remaining returns the whole seconds left until target, floored at zero.
func Remaining(target, now time.Time) int64 {
	d := target.Sub(now)
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}

// Format renders secs as zero-padded HH:MM:SS. Hours are not wrapped at 24,
// so a multi-day remainder renders as e.g. 27:14:02.
func Format(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Countdown tracks the seconds left until a fixed target. It recomputes
// from the target on every tick instead of decrementing, so drift never
// accumulates. Once it reaches zero it stays expired until Reset.
type Countdown struct {
	target    time.Time
	remaining int64
	state     State
}

// New returns a countdown to target evaluated at now.
func New(target, now time.Time) *Countdown {
	c := &Countdown{}
	c.Reset(target, now)
	return c
}

// Reset re-arms the countdown with a new target.
func (c *Countdown) Reset(target, now time.Time) {
	c.target = target
	c.state = Counting
	c.Tick(now)
}

// Tick recomputes the remaining seconds at now and returns them.
func (c *Countdown) Tick(now time.Time) int64 {
	if c.state == Expired {
		return 0
	}
	c.remaining = Remaining(c.target, now)
	if c.remaining == 0 {
		c.state = Expired
	}
	return c.remaining
}

// Display ticks at now and returns the HH:MM:SS rendering.
func (c *Countdown) Display(now time.Time) string {
	return Format(c.Tick(now))
}

// Remaining returns the value computed by the last tick.
func (c *Countdown) Remaining() int64 { return c.remaining }

// State returns the current lifecycle phase.
func (c *Countdown) State() State { return c.state }

// Target returns the instant being counted down to.
func (c *Countdown) Target() time.Time { return c.target }
