package difficulty

// Outcome is a single answer result tagged with the tier it was given at.
type Outcome struct {
	Correct bool
	Tier    Tier
}

// Window is a bounded FIFO of the most recent outcomes.
// Appending to a full window evicts the oldest entry.
type Window struct {
	outcomes []Outcome
	capacity int
}

// NewWindow creates an empty window holding at most capacity outcomes.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{
		outcomes: make([]Outcome, 0, capacity),
		capacity: capacity,
	}
}

// Push appends o, evicting the oldest outcome if the window is full.
func (w *Window) Push(o Outcome) {
	if len(w.outcomes) == w.capacity {
		copy(w.outcomes, w.outcomes[1:])
		w.outcomes = w.outcomes[:len(w.outcomes)-1]
	}
	w.outcomes = append(w.outcomes, o)
}

// Len returns the number of outcomes currently held.
func (w *Window) Len() int {
	return len(w.outcomes)
}

// Cap returns the window capacity.
func (w *Window) Cap() int {
	return w.capacity
}

// Full reports whether the window holds capacity outcomes.
func (w *Window) Full() bool {
	return len(w.outcomes) >= w.capacity
}

// CorrectCount returns the number of correct outcomes in the window.
func (w *Window) CorrectCount() int {
	n := 0
	for _, o := range w.outcomes {
		if o.Correct {
			n++
		}
	}
	return n
}

// Accuracy returns the ratio of correct outcomes, or 0 for an empty window.
func (w *Window) Accuracy() float64 {
	if len(w.outcomes) == 0 {
		return 0
	}
	return float64(w.CorrectCount()) / float64(len(w.outcomes))
}

// Clear empties the window.
func (w *Window) Clear() {
	w.outcomes = w.outcomes[:0]
}

// Outcomes returns a copy of the window contents, oldest first.
func (w *Window) Outcomes() []Outcome {
	out := make([]Outcome, len(w.outcomes))
	copy(out, w.outcomes)
	return out
}
