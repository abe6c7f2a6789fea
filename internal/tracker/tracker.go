// Package tracker holds the position bookkeeping shared by the display
// backends. Unlike the strict reference monitor, a Tracker accepts positions
// beyond the total and reports them clamped for rendering.
package tracker

import (
	"fmt"

	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

// Tracker records position, total, and closed state.
type Tracker struct {
	position int
	total    int
	closed   bool
}

// New validates the starting state. The initial position may exceed total.
func New(total, initial int) (Tracker, error) {
	if total < 0 {
		return Tracker{}, fmt.Errorf("%w: negative total %d", progress.ErrOutOfRange, total)
	}
	if initial < 0 {
		return Tracker{}, fmt.Errorf("%w: negative initial position %d", progress.ErrOutOfRange, initial)
	}
	return Tracker{position: initial, total: total}, nil
}

// Position returns the recorded position.
func (t *Tracker) Position() int { return t.position }

// Total returns the expected final position.
func (t *Tracker) Total() int { return t.total }

// Closed reports whether Close was called.
func (t *Tracker) Closed() bool { return t.closed }

// Move sets the position to n. It fails on a closed tracker or a negative n and
// leaves the position unchanged.
func (t *Tracker) Move(n int) error {
	if t.closed {
		return fmt.Errorf("%w: move to %d", progress.ErrClosed, n)
	}
	if n < 0 {
		return fmt.Errorf("%w: negative position %d", progress.ErrOutOfRange, n)
	}
	t.position = n
	return nil
}

// Close marks the tracker closed and reports whether this call closed it.
func (t *Tracker) Close() bool {
	if t.closed {
		return false
	}
	t.closed = true
	return true
}

// Shown returns the position clamped to total.
func (t *Tracker) Shown() int {
	return min(t.position, t.total)
}

// Fraction returns the completed share in [0, 1]. An empty task counts as done.
func (t *Tracker) Fraction() float64 {
	if t.total == 0 {
		return 1
	}
	return float64(t.Shown()) / float64(t.total)
}
