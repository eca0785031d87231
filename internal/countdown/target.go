// Package countdown turns a fixed target instant into a HH:MM:SS display.
package countdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTarget is returned for malformed or out-of-range target dates.
var ErrInvalidTarget = errors.New("countdown: invalid target")

// TimeOfDay is a wall-clock time within a day.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// EndOfDay is the default target time: the last second of the day.
var EndOfDay = TimeOfDay{Hour: 23, Minute: 59, Second: 59}

func (c TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

func (c TimeOfDay) valid() bool {
	return c.Hour >= 0 && c.Hour < 24 &&
		c.Minute >= 0 && c.Minute < 60 &&
		c.Second >= 0 && c.Second < 60
}

// ParseTarget returns the end of the given calendar day (23:59:59) in loc.
func ParseTarget(day, month, year int, loc *time.Location) (time.Time, error) {
	return ParseTargetAt(day, month, year, EndOfDay, loc)
}

// ParseTargetAt is ParseTarget with an explicit time of day.
func ParseTargetAt(day, month, year int, clock TimeOfDay, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("%w: year %d out of range", ErrInvalidTarget, year)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month %d out of range", ErrInvalidTarget, month)
	}
	if day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, fmt.Errorf("%w: day %d out of range for %s %d", ErrInvalidTarget, day, time.Month(month), year)
	}
	if !clock.valid() {
		return time.Time{}, fmt.Errorf("%w: time of day %s out of range", ErrInvalidTarget, clock)
	}
	return time.Date(year, time.Month(month), day, clock.Hour, clock.Minute, clock.Second, 0, loc), nil
}

// ParseDate parses a "DD/MM/YYYY" date (also accepting '-' or '.' as the
// separator) and returns the end of that day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return ParseDateAt(s, EndOfDay, loc)
}

// ParseDateAt is ParseDate with an explicit time of day.
func ParseDateAt(s string, clock TimeOfDay, loc *time.Location) (time.Time, error) {
	fields, err := splitNumeric(s, "DD/MM/YYYY", '/', '-', '.')
	if err != nil {
		return time.Time{}, err
	}
	if len(fields) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q is not DD/MM/YYYY", ErrInvalidTarget, s)
	}
	return ParseTargetAt(fields[0], fields[1], fields[2], clock, loc)
}

// ParseTimeOfDay parses "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	fields, err := splitNumeric(s, "HH:MM:SS", ':')
	if err != nil {
		return TimeOfDay{}, err
	}
	if len(fields) != 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q is not HH:MM:SS", ErrInvalidTarget, s)
	}
	c := TimeOfDay{Hour: fields[0], Minute: fields[1], Second: fields[2]}
	if !c.valid() {
		return TimeOfDay{}, fmt.Errorf("%w: time of day %q out of range", ErrInvalidTarget, s)
	}
	return c, nil
}

// splitNumeric splits s on the first of seps that occurs in it. Every field
// must be a non-empty run of ASCII digits and the same separator must be
// used throughout.
func splitNumeric(s, layout string, seps ...rune) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty value, want %s", ErrInvalidTarget, layout)
	}
	sep := ""
	if i := strings.IndexAny(s, string(seps)); i >= 0 {
		sep = s[i : i+1]
	}
	parts := []string{s}
	if sep != "" {
		parts = strings.Split(s, sep)
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if !allDigits(p) {
			return nil, fmt.Errorf("%w: %q has malformed field %q, want %s", ErrInvalidTarget, s, p, layout)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %q field %q: %w", ErrInvalidTarget, s, p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func daysIn(m time.Month, year int) int {
	// Day 0 of the next month normalizes to the last day of m.
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
