package stream

// Stats summarizes the current window for status cards.
type Stats struct {
	Ticks    uint64
	Evicted  uint64
	Len      int
	Capacity int
	Fill     float64 // Len / Capacity
	Min      int
	Max      int
	Mean     float64
	Latest   int
}

// Stats scans the window once; cost is bounded by the capacity, not by the
// number of ticks ever produced.
func (e *Engine) Stats() Stats {
	v := e.state.view()
	st := Stats{
		Ticks:    e.Ticks(),
		Evicted:  e.state.evicted,
		Len:      len(v),
		Capacity: e.opts.Capacity,
		Fill:     float64(len(v)) / float64(e.opts.Capacity),
	}
	if len(v) == 0 {
		return st
	}

	st.Min, st.Max = v[0].Value, v[0].Value
	sum := 0
	for _, s := range v {
		if s.Value < st.Min {
			st.Min = s.Value
		}
		if s.Value > st.Max {
			st.Max = s.Value
		}
		sum += s.Value
	}
	st.Mean = float64(sum) / float64(len(v))
	st.Latest = v[len(v)-1].Value
	return st
}
