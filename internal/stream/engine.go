// Package stream synthesizes the live utilization metric and keeps the most
// recent samples in a fixed-capacity window.
package stream

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

const (
	// DefaultCapacity is the number of samples retained in the window.
	DefaultCapacity = 60
	// DefaultTail is the number of newest samples rendered as projected.
	DefaultTail = 15
	// DefaultPeriod is the sampling interval.
	DefaultPeriod = 800 * time.Millisecond

	// MinValue and MaxValue bound every emitted sample value.
	MinValue = 10
	MaxValue = 92
)

// ErrInvalidOptions is returned when the engine is configured with a
// non-positive capacity, tail size or period.
var ErrInvalidOptions = errors.New("stream: invalid options")

// Sample is one synthesized data point. Samples are values and never change
// after creation.
type Sample struct {
	Seq   uint64
	Value int
}

// Source is a uniform random source in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a PCG-backed source. Equal seeds produce equal streams.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // synthetic noise
}

// Options controls the shape of the window and how often it is fed.
type Options struct {
	Capacity int
	Tail     int
	Period   time.Duration
}

// DefaultOptions returns the reference window configuration.
func DefaultOptions() Options {
	return Options{
		Capacity: DefaultCapacity,
		Tail:     DefaultTail,
		Period:   DefaultPeriod,
	}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	switch {
	case o.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidOptions, o.Capacity)
	case o.Tail <= 0:
		return fmt.Errorf("%w: projected tail must be positive, got %d", ErrInvalidOptions, o.Tail)
	case o.Period <= 0:
		return fmt.Errorf("%w: period must be positive, got %s", ErrInvalidOptions, o.Period)
	}
	return nil
}

// Synthesize computes the sample value for tick t given a uniform draw in
// [0, 1). The baseline is a bounded quasi-periodic signal, the draw adds
// noise in [-6, 6], and the result is clamped and rounded.
func Synthesize(t int, draw float64) int {
	x := float64(t)
	base := 35 + 25*math.Sin(x/3) + 8*math.Sin(x/1.7)
	noise := (draw - 0.5) * 12
	v := base + noise
	if v < MinValue {
		v = MinValue
	}
	if v > MaxValue {
		v = MaxValue
	}
	return int(math.Round(v))
}

// Engine owns the sample window. It is not safe for concurrent use: a single
// driver (the TUI event loop or the scheduler goroutine) calls Tick and reads
// the window between ticks.
type Engine struct {
	opts  Options
	src   Source
	state State
}

// New validates opts and returns an empty engine drawing noise from src.
func New(opts Options, src Source) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidOptions)
	}
	return &Engine{
		opts:  opts,
		src:   src,
		state: NewState(opts.Capacity),
	}, nil
}

// Tick produces exactly one new sample and appends it to the window,
// evicting the oldest sample when the window is full.
func (e *Engine) Tick() Sample {
	e.state = advance(e.state, e.src.Float64())
	s, _ := e.state.Latest()
	return s
}

// View returns the window oldest-first without copying. The slice is only
// valid until the next Tick and must not be modified.
func (e *Engine) View() []Sample {
	return e.state.view()
}

// Samples returns an owned copy of the window.
func (e *Engine) Samples() []Sample {
	v := e.state.view()
	out := make([]Sample, len(v))
	copy(out, v)
	return out
}

// Split partitions the current window at the projected-tail boundary.
func (e *Engine) Split() Split {
	return SplitAt(e.state.view(), e.opts.Tail)
}

// IsProjected reports whether seq is one of the newest Tail samples
// currently in the window.
func (e *Engine) IsProjected(seq uint64) bool {
	n := uint64(e.state.length)
	if n == 0 || seq > e.state.lastSeq {
		return false
	}
	k := uint64(e.opts.Tail)
	if k > n {
		k = n
	}
	return e.state.lastSeq-seq < k
}

// Latest returns the newest sample, if any.
func (e *Engine) Latest() (Sample, bool) {
	return e.state.Latest()
}

// Len returns the number of samples in the window.
func (e *Engine) Len() int { return e.state.length }

// Capacity returns the maximum window length.
func (e *Engine) Capacity() int { return e.opts.Capacity }

// Tail returns the projected tail size.
func (e *Engine) Tail() int { return e.opts.Tail }

// Period returns the configured sampling interval.
func (e *Engine) Period() time.Duration { return e.opts.Period }

// Ticks returns how many samples have been produced since creation.
func (e *Engine) Ticks() uint64 { return uint64(e.state.t) }

// Evicted returns how many samples have left the window.
func (e *Engine) Evicted() uint64 { return e.state.evicted }
