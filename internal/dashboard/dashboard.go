// Package dashboard composes the countdown, sample stream and event log into
// the frame the presentation layer renders. The three engines share no
// state; this package only reads them side by side and routes mutations to
// the one engine that owns them.
package dashboard

import (
	"fmt"
	"time"

	"github.com/theirongolddev/pulse/internal/config"
	"github.com/theirongolddev/pulse/internal/countdown"
	"github.com/theirongolddev/pulse/internal/eventlog"
	"github.com/theirongolddev/pulse/internal/logging"
	"github.com/theirongolddev/pulse/internal/metrics"
	"github.com/theirongolddev/pulse/internal/model"
	"github.com/theirongolddev/pulse/internal/stream"

	"go.uber.org/zap"
)

const deadlineLayout = "02 Jan 2006 15:04:05"

// Frame is everything a renderer needs for one paint. Split aliases the
// stream window and is valid until the next stream tick; Log is owned.
type Frame struct {
	At             time.Time
	Account        model.Account
	Countdown      string
	Remaining      int64
	CountdownState countdown.State
	Target         time.Time
	Split          stream.Split
	Stats          stream.Stats
	Tail           int
	Log            []eventlog.Entry
}

// Dashboard owns one instance of each engine.
type Dashboard struct {
	account model.Account
	nav     []model.NavItem

	stream    *stream.Engine
	countdown *countdown.Countdown
	log       *eventlog.Log

	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

type options struct {
	src      stream.Source
	now      func() time.Time
	loc      *time.Location
	logger   *zap.Logger
	metrics  *metrics.Metrics
	archiver eventlog.Archiver
	nav      []model.NavItem
}

// Option customizes New.
type Option func(*options)

// WithSource injects the stream's random source.
func WithSource(src stream.Source) Option {
	return func(o *options) { o.src = src }
}

// WithClock overrides the wall clock used for the countdown and log stamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLocation sets the time zone the countdown target is interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = logging.OrNop(l) }
}

// WithMetrics records engine activity into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithArchiver hands entries evicted from a bounded log to a.
func WithArchiver(a eventlog.Archiver) Option {
	return func(o *options) { o.archiver = a }
}

// WithNav replaces the static sidebar list.
func WithNav(items []model.NavItem) Option {
	return func(o *options) { o.nav = items }
}

// New validates cfg and builds the engines. Configuration problems are
// reported here so that nothing starts in an invalid state.
func New(cfg config.Config, opts ...Option) (*Dashboard, error) {
	o := options{
		now:    time.Now,
		loc:    time.Local,
		logger: zap.NewNop(),
		nav:    model.DefaultNav,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if o.src == nil {
		seed := cfg.Stream.Seed
		if seed == 0 {
			seed = uint64(o.now().UnixNano()) //nolint:gosec // sign is irrelevant for a seed
		}
		o.src = stream.NewSource(seed)
	}

	eng, err := stream.New(cfg.StreamOptions(), o.src)
	if err != nil {
		return nil, fmt.Errorf("building stream: %w", err)
	}

	now := o.now()
	target, err := cfg.TargetAt(now, o.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: [countdown] %w", config.ErrInvalid, err)
	}

	logOpts := []eventlog.Option{
		eventlog.WithCapacity(cfg.Log.Capacity),
		eventlog.WithClock(o.now),
		eventlog.WithLogger(o.logger),
	}
	if o.archiver != nil {
		logOpts = append(logOpts, eventlog.WithArchiver(o.archiver))
	}

	d := &Dashboard{
		account: model.Account{
			Name:   cfg.Account.Name,
			Email:  cfg.Account.Email,
			Plan:   cfg.Account.Plan,
			Status: cfg.Account.Status,
			Region: cfg.Account.Region,
		},
		nav:       o.nav,
		stream:    eng,
		countdown: countdown.New(target, now),
		log:       eventlog.New(logOpts...),
		metrics:   o.metrics,
		logger:    o.logger,
		now:       o.now,
	}

	d.logger.Info("dashboard ready",
		zap.Int("capacity", eng.Capacity()),
		zap.Int("projected_tail", eng.Tail()),
		zap.Duration("period", eng.Period()),
		zap.Time("target", target),
	)
	if d.countdown.State() == countdown.Expired {
		d.Record("Session started", "Deadline "+target.Format(deadlineLayout)+" already passed")
		d.recordExpiry()
	} else {
		d.Record("Session started", "Counting down to "+target.Format(deadlineLayout))
	}
	return d, nil
}

// TickStream produces one sample.
func (d *Dashboard) TickStream() stream.Sample {
	evictedBefore := d.stream.Evicted()
	s := d.stream.Tick()
	if d.metrics != nil {
		d.metrics.ObserveTick(s.Value, d.stream.Len(), d.stream.Evicted() != evictedBefore)
	}
	return s
}

// TickCountdown recomputes the countdown at now. The transition to expired
// is recorded in the event log once.
func (d *Dashboard) TickCountdown(now time.Time) int64 {
	wasCounting := d.countdown.State() == countdown.Counting
	remaining := d.countdown.Tick(now)
	if d.metrics != nil {
		d.metrics.ObserveCountdown(remaining)
	}
	if wasCounting && d.countdown.State() == countdown.Expired {
		d.recordExpiry()
	}
	return remaining
}

func (d *Dashboard) recordExpiry() {
	d.logger.Info("countdown expired", zap.Time("target", d.countdown.Target()))
	d.Record("Access expired", "Deadline "+d.countdown.Target().Format(deadlineLayout)+" reached")
}

// Record appends an event to the log.
func (d *Dashboard) Record(title, subtitle string) eventlog.Entry {
	e := d.log.Append(title, subtitle)
	if d.metrics != nil {
		d.metrics.ObserveAppend()
	}
	d.logger.Debug("event recorded", zap.String("title", title), zap.String("subtitle", subtitle))
	return e
}

// Frame assembles the current view. It reads engine state only.
func (d *Dashboard) Frame() Frame {
	return Frame{
		At:             d.now(),
		Account:        d.account,
		Countdown:      countdown.Format(d.countdown.Remaining()),
		Remaining:      d.countdown.Remaining(),
		CountdownState: d.countdown.State(),
		Target:         d.countdown.Target(),
		Split:          d.stream.Split(),
		Stats:          d.stream.Stats(),
		Tail:           d.stream.Tail(),
		Log:            d.log.Snapshot(),
	}
}

// FilterNav applies the sidebar substring filter.
func (d *Dashboard) FilterNav(query string) []model.NavItem {
	return model.FilterNav(d.nav, query)
}
