package stream

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
	"time"
)

// seqSource replays draws in order, repeating the last one when exhausted.
type seqSource struct {
	draws []float64
	i     int
}

func (s *seqSource) Float64() float64 {
	if len(s.draws) == 0 {
		return 0.5
	}
	d := s.draws[s.i]
	if s.i < len(s.draws)-1 {
		s.i++
	}
	return d
}

func newEngine(t *testing.T, capacity, tail int, src Source) *Engine {
	t.Helper()
	if src == nil {
		src = rand.New(rand.NewPCG(1, 2))
	}
	e, err := New(Options{Capacity: capacity, Tail: tail, Period: time.Second}, src)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestNew_RejectsInvalidOptions(t *testing.T) {
	src := rand.New(rand.NewPCG(1, 2))
	cases := []struct {
		name string
		opts Options
	}{
		{"zero capacity", Options{Capacity: 0, Tail: 15, Period: time.Second}},
		{"negative tail", Options{Capacity: 60, Tail: -1, Period: time.Second}},
		{"zero period", Options{Capacity: 60, Tail: 15, Period: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.opts, src); !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("New(%+v) err = %v, want ErrInvalidOptions", tc.opts, err)
			}
		})
	}

	if _, err := New(DefaultOptions(), nil); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("New with nil source err = %v, want ErrInvalidOptions", err)
	}
}

func TestSynthesize_KnownValues(t *testing.T) {
	cases := []struct {
		t    int
		draw float64
		want int
	}{
		{1, 0.5, 48},    // baseline 47.62, no noise
		{4, 0.5, 65},    // baseline 64.97
		{31, 0, 10},     // baseline 10.67 - 6 clamps to the floor
		{24, 0.999, 74}, // baseline 67.73 + 5.99
	}
	for _, tc := range cases {
		if got := Synthesize(tc.t, tc.draw); got != tc.want {
			t.Errorf("Synthesize(%d, %v) = %d, want %d", tc.t, tc.draw, got, tc.want)
		}
	}
}

func TestTick_ValuesStayInBounds(t *testing.T) {
	e := newEngine(t, DefaultCapacity, DefaultTail, nil)
	for i := 0; i < 5000; i++ {
		s := e.Tick()
		if s.Value < MinValue || s.Value > MaxValue {
			t.Fatalf("tick %d: value %d outside [%d, %d]", i+1, s.Value, MinValue, MaxValue)
		}
	}

	// Extreme draws at every tick must still clamp.
	for _, draw := range []float64{0, 0.9999999} {
		e := newEngine(t, 10, 3, &seqSource{draws: []float64{draw}})
		for i := 0; i < 200; i++ {
			if s := e.Tick(); s.Value < MinValue || s.Value > MaxValue {
				t.Fatalf("draw %v tick %d: value %d out of bounds", draw, i+1, s.Value)
			}
		}
	}
}

func TestTick_WindowBound(t *testing.T) {
	e := newEngine(t, 60, 15, nil)
	for i := 1; i <= 200; i++ {
		e.Tick()
		want := i
		if want > 60 {
			want = 60
		}
		if e.Len() != want {
			t.Fatalf("after %d ticks Len = %d, want %d", i, e.Len(), want)
		}
		if len(e.View()) != want {
			t.Fatalf("after %d ticks len(View) = %d, want %d", i, len(e.View()), want)
		}
	}
	if e.Ticks() != 200 {
		t.Fatalf("Ticks = %d, want 200", e.Ticks())
	}
	if e.Evicted() != 140 {
		t.Fatalf("Evicted = %d, want 140", e.Evicted())
	}
}

func TestTick_FIFOEviction(t *testing.T) {
	e := newEngine(t, 5, 2, nil)
	for i := 0; i < 5; i++ {
		e.Tick()
	}

	for round := 0; round < 12; round++ {
		before := e.Samples()
		added := e.Tick()
		after := e.Samples()

		if len(after) != 5 {
			t.Fatalf("round %d: len = %d, want 5", round, len(after))
		}
		for _, s := range after {
			if s.Seq == before[0].Seq {
				t.Fatalf("round %d: oldest seq %d still present", round, before[0].Seq)
			}
		}
		if !reflect.DeepEqual(after[:4], before[1:]) {
			t.Fatalf("round %d: survivors reordered: got %v, want %v", round, after[:4], before[1:])
		}
		if after[4] != added {
			t.Fatalf("round %d: newest = %v, want %v", round, after[4], added)
		}
	}
}

func TestTick_SequenceAscending(t *testing.T) {
	e := newEngine(t, 7, 3, nil)
	for i := 0; i < 30; i++ {
		e.Tick()
		v := e.View()
		for j := 1; j < len(v); j++ {
			if v[j].Seq != v[j-1].Seq+1 {
				t.Fatalf("tick %d: seq %d follows %d", i+1, v[j].Seq, v[j-1].Seq)
			}
		}
	}
}

func TestTick_DeterministicWithInjectedSource(t *testing.T) {
	draws := []float64{0.5, 0.5, 0.5, 0.5}
	e := newEngine(t, 10, 2, &seqSource{draws: draws})
	for i := 1; i <= 4; i++ {
		s := e.Tick()
		if s.Seq != uint64(i) {
			t.Fatalf("tick %d: Seq = %d", i, s.Seq)
		}
		if want := Synthesize(i, 0.5); s.Value != want {
			t.Fatalf("tick %d: Value = %d, want %d", i, s.Value, want)
		}
	}

	a := newEngine(t, 60, 15, rand.New(rand.NewPCG(7, 7)))
	b := newEngine(t, 60, 15, rand.New(rand.NewPCG(7, 7)))
	for i := 0; i < 100; i++ {
		a.Tick()
		b.Tick()
	}
	if !reflect.DeepEqual(a.Samples(), b.Samples()) {
		t.Fatal("engines with identical seeds diverged")
	}
}

func TestSamples_DoesNotAliasWindow(t *testing.T) {
	e := newEngine(t, 3, 1, nil)
	for i := 0; i < 3; i++ {
		e.Tick()
	}
	snap := e.Samples()
	want := append([]Sample(nil), snap...)
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	if !reflect.DeepEqual(snap, want) {
		t.Fatalf("copy changed after ticks: %v, want %v", snap, want)
	}
}

func TestIsProjected(t *testing.T) {
	e := newEngine(t, 10, 3, nil)
	if e.IsProjected(1) {
		t.Fatal("IsProjected on empty window = true")
	}

	e.Tick()
	e.Tick()
	if !e.IsProjected(1) || !e.IsProjected(2) {
		t.Fatal("short window: every sample should be projected")
	}

	for i := 0; i < 20; i++ {
		e.Tick()
	}
	// Window holds seq 13..22; projected tail is 20..22.
	for seq := uint64(1); seq <= 25; seq++ {
		want := seq >= 20 && seq <= 22
		if got := e.IsProjected(seq); got != want {
			t.Errorf("IsProjected(%d) = %v, want %v", seq, got, want)
		}
	}

	sp := e.Split()
	for _, s := range sp.Observed {
		if e.IsProjected(s.Seq) {
			t.Errorf("observed seq %d reported projected", s.Seq)
		}
	}
	for _, s := range sp.Projected {
		if !e.IsProjected(s.Seq) {
			t.Errorf("projected seq %d not reported projected", s.Seq)
		}
	}
}

func TestStats(t *testing.T) {
	e := newEngine(t, 4, 2, &seqSource{draws: []float64{0.5}})
	if st := e.Stats(); st.Len != 0 || st.Fill != 0 {
		t.Fatalf("empty stats = %+v", st)
	}

	for i := 0; i < 6; i++ {
		e.Tick()
	}
	st := e.Stats()
	if st.Len != 4 || st.Capacity != 4 || st.Fill != 1 {
		t.Fatalf("Len/Capacity/Fill = %d/%d/%v, want 4/4/1", st.Len, st.Capacity, st.Fill)
	}
	if st.Ticks != 6 || st.Evicted != 2 {
		t.Fatalf("Ticks/Evicted = %d/%d, want 6/2", st.Ticks, st.Evicted)
	}

	sum := 0
	lo, hi := MaxValue, MinValue
	for i := 3; i <= 6; i++ {
		v := Synthesize(i, 0.5)
		sum += v
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if st.Min != lo || st.Max != hi {
		t.Fatalf("Min/Max = %d/%d, want %d/%d", st.Min, st.Max, lo, hi)
	}
	if st.Mean != float64(sum)/4 {
		t.Fatalf("Mean = %v, want %v", st.Mean, float64(sum)/4)
	}
	if st.Latest != Synthesize(6, 0.5) {
		t.Fatalf("Latest = %d, want %d", st.Latest, Synthesize(6, 0.5))
	}
}

func TestNewSource_SeedDeterminism(t *testing.T) {
	a, b, c := NewSource(7), NewSource(7), NewSource(8)
	same, differ := true, false
	for i := 0; i < 16; i++ {
		x, y, z := a.Float64(), b.Float64(), c.Float64()
		if x != y {
			same = false
		}
		if x != z {
			differ = true
		}
	}
	if !same {
		t.Fatal("equal seeds diverged")
	}
	if !differ {
		t.Fatal("different seeds produced identical draws")
	}
}
