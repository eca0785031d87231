package dashboard

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/theirongolddev/pulse/internal/config"
	"github.com/theirongolddev/pulse/internal/countdown"
	"github.com/theirongolddev/pulse/internal/metrics"
	"github.com/theirongolddev/pulse/internal/model"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newDashboard(t *testing.T, mutate func(*config.Config), opts ...Option) (*Dashboard, *fakeClock) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Countdown.Target = "09/10/2025"
	if mutate != nil {
		mutate(&cfg)
	}
	clock := &fakeClock{t: time.Date(2025, 10, 9, 23, 59, 0, 0, time.UTC)}
	base := []Option{
		WithClock(clock.Now),
		WithLocation(time.UTC),
		WithSource(rand.New(rand.NewPCG(3, 4))),
	}
	d, err := New(cfg, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, clock
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Stream.Capacity = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("err = %v, want config.ErrInvalid", err)
	}

	cfg = config.DefaultConfig()
	cfg.Countdown.Target = "32/13/2025"
	if _, err := New(cfg); !errors.Is(err, countdown.ErrInvalidTarget) {
		t.Fatalf("err = %v, want countdown.ErrInvalidTarget", err)
	}
}

func TestFrame_InitialState(t *testing.T) {
	d, _ := newDashboard(t, nil)
	f := d.Frame()

	if f.Countdown != "00:00:59" {
		t.Fatalf("Countdown = %q, want 00:00:59", f.Countdown)
	}
	if f.CountdownState != countdown.Counting {
		t.Fatalf("state = %s, want counting", f.CountdownState)
	}
	if f.Split.Len() != 0 {
		t.Fatalf("split has %d samples before any tick", f.Split.Len())
	}
	if len(f.Log) != 1 || f.Log[0].Title != "Session started" {
		t.Fatalf("log = %+v, want the start entry", f.Log)
	}
	if f.Account.Name != "Operator" {
		t.Fatalf("account = %+v", f.Account)
	}
}

func TestTickStream_FillsSplit(t *testing.T) {
	d, _ := newDashboard(t, func(c *config.Config) {
		c.Stream.Capacity = 20
		c.Stream.ProjectedTail = 5
	})
	for i := 0; i < 50; i++ {
		d.TickStream()
	}
	f := d.Frame()
	if len(f.Split.Observed) != 15 || len(f.Split.Projected) != 5 {
		t.Fatalf("observed/projected = %d/%d, want 15/5", len(f.Split.Observed), len(f.Split.Projected))
	}
	if f.Stats.Ticks != 50 || f.Tail != 5 {
		t.Fatalf("Ticks/Tail = %d/%d, want 50/5", f.Stats.Ticks, f.Tail)
	}
	if f.Split.Observed[14].Seq+1 != f.Split.Boundary() {
		t.Fatalf("boundary %d disagrees with the frame split", f.Split.Boundary())
	}
}

func TestTickCountdown_RecordsExpiryOnce(t *testing.T) {
	m := metrics.New()
	d, clock := newDashboard(t, nil, WithMetrics(m))

	clock.Advance(30 * time.Second)
	if got := d.TickCountdown(clock.Now()); got != 29 {
		t.Fatalf("remaining = %d, want 29", got)
	}

	clock.Advance(time.Minute)
	d.TickCountdown(clock.Now())
	d.TickCountdown(clock.Now().Add(-time.Hour))
	d.TickCountdown(clock.Now())

	f := d.Frame()
	if f.Countdown != "00:00:00" || f.CountdownState != countdown.Expired {
		t.Fatalf("frame countdown = %q %s, want 00:00:00 expired", f.Countdown, f.CountdownState)
	}
	expired := 0
	for _, e := range f.Log {
		if e.Title == "Access expired" {
			expired++
		}
	}
	if expired != 1 {
		t.Fatalf("expiry recorded %d times, want 1", expired)
	}
	if f.Log[0].Title != "Access expired" {
		t.Fatalf("newest entry = %q, want Access expired", f.Log[0].Title)
	}
	if got := testutil.ToFloat64(m.CountdownRemaining); got != 0 {
		t.Fatalf("countdown gauge = %v, want 0", got)
	}
}

func TestNew_TargetAlreadyPassed(t *testing.T) {
	d, clock := newDashboard(t, func(c *config.Config) { c.Countdown.Target = "01/10/2025" })

	f := d.Frame()
	if f.CountdownState != countdown.Expired || f.Countdown != "00:00:00" {
		t.Fatalf("frame countdown = %q %s, want 00:00:00 expired", f.Countdown, f.CountdownState)
	}
	if len(f.Log) != 2 || f.Log[0].Title != "Access expired" || f.Log[1].Title != "Session started" {
		t.Fatalf("log = %+v, want expiry above the start entry", f.Log)
	}
	if got, want := f.Log[1].Subtitle, "Deadline 01 Oct 2025 23:59:59 already passed"; got != want {
		t.Fatalf("start subtitle = %q, want %q", got, want)
	}

	clock.Advance(time.Second)
	d.TickCountdown(clock.Now())
	if n := len(d.Frame().Log); n != 2 {
		t.Fatalf("log has %d entries after a tick, want 2", n)
	}
}

func TestRecord_NewestFirst(t *testing.T) {
	d, _ := newDashboard(t, nil)
	d.Record("B", "")
	d.Record("C", "")
	log := d.Frame().Log
	if len(log) != 3 || log[0].Title != "C" || log[1].Title != "B" || log[2].Title != "Session started" {
		t.Fatalf("log order = %+v", log)
	}
}

func TestMetricsObserveTicks(t *testing.T) {
	m := metrics.New()
	d, _ := newDashboard(t, func(c *config.Config) { c.Stream.Capacity = 3 }, WithMetrics(m))
	for i := 0; i < 5; i++ {
		d.TickStream()
	}
	if got := testutil.ToFloat64(m.StreamTicks); got != 5 {
		t.Fatalf("ticks = %v, want 5", got)
	}
	if got := testutil.ToFloat64(m.StreamEvictions); got != 2 {
		t.Fatalf("evictions = %v, want 2", got)
	}
}

func TestFilterNav(t *testing.T) {
	d, _ := newDashboard(t, nil)
	if len(d.FilterNav("")) != len(model.DefaultNav) {
		t.Fatal("empty filter dropped items")
	}
	got := d.FilterNav("bill")
	if len(got) != 1 || got[0].Label != "Billing" {
		t.Fatalf("FilterNav(bill) = %+v", got)
	}
}
