package tui

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/pulse/internal/config"
	"github.com/theirongolddev/pulse/internal/dashboard"
	"github.com/theirongolddev/pulse/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

var testNow = time.Date(2025, 10, 9, 23, 59, 0, 0, time.UTC)

func newTestApp(t *testing.T) App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Countdown.Target = "09/10/2025"
	d, err := dashboard.New(cfg,
		dashboard.WithClock(func() time.Time { return testNow }),
		dashboard.WithLocation(time.UTC),
		dashboard.WithSource(rand.New(rand.NewPCG(1, 2))),
	)
	if err != nil {
		t.Fatalf("dashboard.New: %v", err)
	}
	return NewApp(d, nil)
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return next, cmd
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStreamTickAdvancesAndReschedules(t *testing.T) {
	a := newTestApp(t)
	a, cmd := update(t, a, streamTickMsg{gen: a.streamGen, at: testNow})
	if cmd == nil {
		t.Fatal("stream tick did not reschedule itself")
	}
	if got := a.dash.Frame().Stats.Ticks; got != 1 {
		t.Fatalf("ticks = %d, want 1", got)
	}
}

func TestStaleStreamTickIgnored(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, keys("p"))
	a, _ = update(t, a, keys("p"))

	// A tick scheduled before the pause belongs to generation 0.
	a, cmd := update(t, a, streamTickMsg{gen: 0, at: testNow})
	if cmd != nil {
		t.Fatal("stale tick rescheduled a loop")
	}
	if got := a.dash.Frame().Stats.Ticks; got != 0 {
		t.Fatalf("stale tick mutated the stream: ticks = %d", got)
	}
}

func TestPauseStopsStreamAndLogs(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, keys("p"))
	if !a.Paused() {
		t.Fatal("p did not pause")
	}
	a, cmd := update(t, a, streamTickMsg{gen: a.streamGen, at: testNow})
	if cmd != nil || a.dash.Frame().Stats.Ticks != 0 {
		t.Fatal("paused app still ticks the stream")
	}
	if got := a.dash.Frame().Log[0].Title; got != "Stream paused" {
		t.Fatalf("newest log entry = %q, want Stream paused", got)
	}

	a, cmd = update(t, a, keys("p"))
	if a.Paused() || cmd == nil {
		t.Fatal("resume did not restart the stream loop")
	}
}

func TestCountdownKeepsRunningWhilePaused(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, keys("p"))
	a, cmd := update(t, a, clockTickMsg{gen: a.clockGen, at: testNow.Add(10 * time.Second)})
	if cmd == nil {
		t.Fatal("clock loop stopped")
	}
	if got := a.dash.Frame().Countdown; got != "00:00:49" {
		t.Fatalf("countdown = %q, want 00:00:49", got)
	}
}

func TestQuitEndsLoops(t *testing.T) {
	a := newTestApp(t)
	streamGen, clockGen := a.streamGen, a.clockGen
	a, cmd := update(t, a, keys("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
	if _, c := update(t, a, streamTickMsg{gen: streamGen}); c != nil {
		t.Fatal("stream loop survived quit")
	}
	if _, c := update(t, a, clockTickMsg{gen: clockGen}); c != nil {
		t.Fatal("clock loop survived quit")
	}
}

func TestFilterNarrowsSidebar(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, keys("/"))
	if !a.filtering {
		t.Fatal("/ did not focus the filter")
	}
	for _, r := range "bil" {
		a, _ = update(t, a, keys(string(r)))
	}
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.filtering || a.query != "bil" {
		t.Fatalf("filtering=%v query=%q", a.filtering, a.query)
	}
	items := a.navItems()
	if len(items) != 1 || items[0].Label != "Billing" {
		t.Fatalf("filtered items = %+v", items)
	}

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	if got := a.dash.Frame().Log[0].Title; got != "Opened Billing" {
		t.Fatalf("newest log entry = %q, want Opened Billing", got)
	}

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.query != "" || len(a.navItems()) != len(model.DefaultNav) {
		t.Fatal("esc did not clear the filter")
	}
}

func TestCursorMovementClamped(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, keys("k"))
	if a.cursor != 0 {
		t.Fatalf("cursor = %d after k at top", a.cursor)
	}
	for i := 0; i < 20; i++ {
		a, _ = update(t, a, keys("j"))
	}
	if want := len(a.navItems()) - 1; a.cursor != want {
		t.Fatalf("cursor = %d, want %d", a.cursor, want)
	}
}

func TestAcknowledgeRecordsEvent(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, streamTickMsg{gen: a.streamGen})
	a, _ = update(t, a, keys("a"))
	e := a.dash.Frame().Log[0]
	if e.Title != "Acknowledged" || !strings.Contains(e.Subtitle, "Utilization") {
		t.Fatalf("entry = %+v", e)
	}
}

func TestNavAtMatchesSidebarRows(t *testing.T) {
	a := newTestApp(t)
	for i := range a.navItems() {
		if got := a.navAt(2, sidebarItemTop+i); got != i {
			t.Fatalf("navAt(y=%d) = %d, want %d", sidebarItemTop+i, got, i)
		}
	}
	if a.navAt(2, sidebarItemTop-1) != -1 {
		t.Fatal("row above the list hit an item")
	}
	if a.navAt(40, sidebarItemTop) != -1 {
		t.Fatal("click outside the sidebar hit an item")
	}
}

func TestViewRenders(t *testing.T) {
	a := newTestApp(t)
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 140, Height: 48})
	for i := 0; i < 5; i++ {
		a, _ = update(t, a, streamTickMsg{gen: a.streamGen})
	}
	out := a.View()
	for _, want := range []string{"pulse", "Account", "Expiry", "00:00:59", "Utilization", "Events"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	a, _ = update(t, a, keys("?"))
	if !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not shown")
	}

	a, _ = update(t, a, tea.WindowSizeMsg{Width: 60, Height: 20})
	a, _ = update(t, a, keys("x"))
	if !strings.Contains(a.View(), "too narrow") {
		t.Fatal("narrow terminal not reported")
	}
}
