package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/pulse/internal/eventlog"
)

func openArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "archive", "log.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestArchive_RoundTrip(t *testing.T) {
	a := openArchive(t)
	ctx := context.Background()
	at := time.Date(2025, 10, 9, 8, 30, 0, 0, time.UTC)

	err := a.Archive(ctx, []eventlog.Entry{
		{Title: "A", Subtitle: "first", At: at},
		{Title: "B", Subtitle: "second", At: at.Add(time.Minute)},
	})
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if err := a.Archive(ctx, []eventlog.Entry{{Title: "C", At: at.Add(2 * time.Minute)}}); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	n, err := a.Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, %v; want 3", n, err)
	}

	got, err := a.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].Title != "C" || got[1].Title != "B" {
		t.Fatalf("Recent = %+v, want C then B", got)
	}
	if got[1].Subtitle != "second" || !got[1].At.Equal(at.Add(time.Minute)) {
		t.Fatalf("entry B = %+v", got[1])
	}
}

func TestArchive_EmptyIsNoop(t *testing.T) {
	a := openArchive(t)
	if err := a.Archive(context.Background(), nil); err != nil {
		t.Fatalf("Archive(nil): %v", err)
	}
	if n, _ := a.Count(context.Background()); n != 0 {
		t.Fatalf("Count = %d, want 0", n)
	}
}

func TestArchive_ReceivesEvictionsFromLog(t *testing.T) {
	a := openArchive(t)
	l := eventlog.New(eventlog.WithCapacity(2), eventlog.WithArchiver(a))
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		l.Append(title, "")
	}

	got, err := a.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	want := []string{"three", "two", "one"}
	if len(got) != len(want) {
		t.Fatalf("archived %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Title != w {
			t.Fatalf("archived[%d] = %q, want %q", i, got[i].Title, w)
		}
	}
}

func TestRecent_RejectsCorruptTimestamp(t *testing.T) {
	a := openArchive(t)
	ctx := context.Background()
	_, err := a.db.ExecContext(ctx, `INSERT INTO log_archive (title, subtitle, logged_at, archived_at)
		VALUES ('broken', '', 'not-a-time', '2025-10-09T00:00:00Z')`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := a.Recent(ctx, 5); err == nil || !strings.Contains(err.Error(), "not-a-time") {
		t.Fatalf("Recent err = %v, want a logged_at parse error", err)
	}
}
