package stream

// Split is the render partition of a window: Observed is the settled
// history and Projected is the newest tail. Both alias the window they were
// cut from; concatenated they reproduce it exactly.
type Split struct {
	Observed  []Sample
	Projected []Sample
}

// SplitAt cuts window so that the last tail samples are projected. When the
// window is no longer than tail, everything is projected.
func SplitAt(window []Sample, tail int) Split {
	cut := len(window) - tail
	if cut < 0 {
		cut = 0
	}
	return Split{
		Observed:  window[:cut:cut],
		Projected: window[cut:],
	}
}

// Len returns the total number of samples in the split.
func (s Split) Len() int {
	return len(s.Observed) + len(s.Projected)
}

// Boundary returns the sequence id of the first projected sample, or 0 when
// the split is empty.
func (s Split) Boundary() uint64 {
	if len(s.Projected) == 0 {
		return 0
	}
	return s.Projected[0].Seq
}

// Values flattens the split into chart values, oldest first, along with the
// index at which the projected segment begins.
func (s Split) Values() ([]float64, int) {
	vals := make([]float64, 0, s.Len())
	for _, smp := range s.Observed {
		vals = append(vals, float64(smp.Value))
	}
	for _, smp := range s.Projected {
		vals = append(vals, float64(smp.Value))
	}
	return vals, len(s.Observed)
}
