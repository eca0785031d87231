// Package eventlog keeps the newest-first list of notable dashboard events.
package eventlog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Entry is one immutable notification record.
type Entry struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	At       time.Time `json:"at"`
}

// Archiver receives entries dropped by a capacity-bounded log, oldest first.
type Archiver interface {
	Archive(ctx context.Context, entries []Entry) error
}

// Log is an append-only event list. Entries are stored oldest-first
// internally and handed out newest-first.
type Log struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int // 0 means unbounded
	evicted  int

	archiver Archiver
	now      func() time.Time
	logger   *zap.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithCapacity bounds the log to n entries; older entries are dropped (and
// archived, when an archiver is set). n <= 0 keeps the log unbounded.
func WithCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.capacity = n
		}
	}
}

// WithArchiver hands evicted entries to a.
func WithArchiver(a Archiver) Option {
	return func(l *Log) { l.archiver = a }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// WithLogger sets the logger used for archive failures.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Log) { l.logger = logger }
}

// New returns an empty log.
func New(opts ...Option) *Log {
	l := &Log{
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Seed installs entries given newest-first, as they would appear in a
// snapshot. It is meant for the initial state before any Append.
func (l *Log) Seed(entries ...Entry) {
	l.mu.Lock()
	for i := len(entries) - 1; i >= 0; i-- {
		l.entries = append(l.entries, entries[i])
	}
	dropped := l.trimLocked()
	l.mu.Unlock()

	l.archive(dropped)
}

// Append prepends a new entry and returns it.
func (l *Log) Append(title, subtitle string) Entry {
	e := Entry{Title: title, Subtitle: subtitle, At: l.now()}

	l.mu.Lock()
	l.entries = append(l.entries, e)
	dropped := l.trimLocked()
	l.mu.Unlock()

	l.archive(dropped)
	return e
}

// Snapshot returns the entries newest-first. The slice is owned by the
// caller.
func (l *Log) Snapshot() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Head returns the newest entry, if any.
func (l *Log) Head() (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Evicted returns how many entries the capacity bound has dropped.
func (l *Log) Evicted() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.evicted
}

func (l *Log) trimLocked() []Entry {
	if l.capacity == 0 || len(l.entries) <= l.capacity {
		return nil
	}
	n := len(l.entries) - l.capacity
	dropped := make([]Entry, n)
	copy(dropped, l.entries[:n])

	kept := make([]Entry, l.capacity, l.capacity+1)
	copy(kept, l.entries[n:])
	l.entries = kept
	l.evicted += n
	return dropped
}

func (l *Log) archive(dropped []Entry) {
	if len(dropped) == 0 || l.archiver == nil {
		return
	}
	if err := l.archiver.Archive(context.Background(), dropped); err != nil {
		l.logger.Warn("archive evicted log entries", zap.Int("count", len(dropped)), zap.Error(err))
	}
}
