package stream

// State is the engine's window plus its counters. Every sample is stored
// twice, at slot i and slot i+capacity, so the live window is always one
// contiguous sub-slice of buf and appending never shifts elements.
type State struct {
	buf      []Sample
	capacity int
	start    int // slot of the oldest sample, in [0, capacity)
	length   int
	t        int    // tick counter, 1 after the first step
	lastSeq  uint64 // sequence id of the newest sample, 0 when empty
	evicted  uint64
}

// NewState returns an empty window for the given capacity.
func NewState(capacity int) State {
	return State{
		buf:      make([]Sample, 2*capacity),
		capacity: capacity,
	}
}

// Step returns the state after one tick with draw as the noise input. st is
// left untouched, so old and new states can be held side by side.
func Step(st State, draw float64) State {
	st.buf = append([]Sample(nil), st.buf...)
	return advance(st, draw)
}

// advance is Step without the copy: it writes into st's storage, so callers
// must continue with the returned value and drop st.
func advance(st State, draw float64) State {
	st.t++
	st.lastSeq++
	s := Sample{Seq: st.lastSeq, Value: Synthesize(st.t, draw)}

	var slot int
	if st.length < st.capacity {
		slot = (st.start + st.length) % st.capacity
		st.length++
	} else {
		slot = st.start
		st.start = (st.start + 1) % st.capacity
		st.evicted++
	}
	st.buf[slot] = s
	st.buf[slot+st.capacity] = s
	return st
}

// Latest returns the newest sample, if any.
func (st State) Latest() (Sample, bool) {
	if st.length == 0 {
		return Sample{}, false
	}
	return st.buf[st.start+st.length-1], true
}

// Len returns the number of samples in the window.
func (st State) Len() int { return st.length }

func (st State) view() []Sample {
	return st.buf[st.start : st.start+st.length : st.start+st.length]
}
