package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/pulse/internal/countdown"
	"github.com/theirongolddev/pulse/internal/stream"

	"go.uber.org/zap/zapcore"
)

// Validate checks every field the engines depend on and reports all
// problems at once. A config that fails validation must not start a
// dashboard.
func (c Config) Validate() error {
	var errs []error

	if err := c.StreamOptions().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: [stream] %w", ErrInvalid, err))
	}
	if err := c.validateCountdown(); err != nil {
		errs = append(errs, fmt.Errorf("%w: [countdown] %w", ErrInvalid, err))
	}
	if c.Log.Capacity < 0 {
		errs = append(errs, fmt.Errorf("%w: [log] capacity must not be negative, got %d", ErrInvalid, c.Log.Capacity))
	}
	if c.Logging.Level != "" {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(c.Logging.Level)); err != nil {
			errs = append(errs, fmt.Errorf("%w: [logging] level %q", ErrInvalid, c.Logging.Level))
		}
	}

	return errors.Join(errs...)
}

// StreamOptions converts the [stream] section into engine options.
func (c Config) StreamOptions() stream.Options {
	return stream.Options{
		Capacity: c.Stream.Capacity,
		Tail:     c.Stream.ProjectedTail,
		Period:   time.Duration(c.Stream.PeriodMs) * time.Millisecond,
	}
}

// validateCountdown checks the syntax of the [countdown] fields. Resolving
// the instant is left to TargetAt, whose result depends on the clock and
// location the dashboard runs with; whether a date exists does not.
func (c Config) validateCountdown() error {
	clock := countdown.EndOfDay
	if s := strings.TrimSpace(c.Countdown.EndOfDay); s != "" {
		parsed, err := countdown.ParseTimeOfDay(s)
		if err != nil {
			return err
		}
		clock = parsed
	}
	if s := strings.TrimSpace(c.Countdown.Target); s != "" {
		if _, err := countdown.ParseDateAt(s, clock, time.UTC); err != nil {
			return err
		}
	}
	return nil
}

// TargetAt resolves the countdown target in loc. With no configured date the
// target is the end of now's day.
func (c Config) TargetAt(now time.Time, loc *time.Location) (time.Time, error) {
	clock := countdown.EndOfDay
	if s := strings.TrimSpace(c.Countdown.EndOfDay); s != "" {
		parsed, err := countdown.ParseTimeOfDay(s)
		if err != nil {
			return time.Time{}, err
		}
		clock = parsed
	}

	if strings.TrimSpace(c.Countdown.Target) == "" {
		if loc == nil {
			loc = time.Local
		}
		local := now.In(loc)
		return countdown.ParseTargetAt(local.Day(), int(local.Month()), local.Year(), clock, loc)
	}
	return countdown.ParseDateAt(c.Countdown.Target, clock, loc)
}
