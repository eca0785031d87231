package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveTick(t *testing.T) {
	m := New()
	m.ObserveTick(40, 1, false)
	m.ObserveTick(55, 2, true)

	if got := testutil.ToFloat64(m.StreamTicks); got != 2 {
		t.Fatalf("ticks = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.StreamEvictions); got != 1 {
		t.Fatalf("evictions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.StreamLastValue); got != 55 {
		t.Fatalf("last value = %v, want 55", got)
	}
	if got := testutil.ToFloat64(m.StreamWindowLen); got != 2 {
		t.Fatalf("window len = %v, want 2", got)
	}
}

func TestWriteFile(t *testing.T) {
	m := New()
	m.ObserveCountdown(59)
	m.ObserveAppend()

	path := filepath.Join(t.TempDir(), "pulse.prom")
	if err := m.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"pulse_countdown_remaining_seconds 59", "pulse_log_appends_total 1"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}
