package progress

import (
	"errors"
	"fmt"
)

// Monitor tracks, and usually displays, the progress of an iterative task.
// Position counts completed units of work and Total is the expected final
// position. Implementations are not required to be safe for concurrent use.
type Monitor interface {
	Position() int
	Total() int
	Closed() bool
	// Increment advances the position by delta, which may be negative unless
	// the implementation forbids it. MoveBy provides the usual implementation.
	Increment(delta int) error
	// MoveTo sets the absolute position.
	MoveTo(n int) error
	// Close stops reporting and releases any display resources.
	Close() error
}

// Creator is implemented by monitor types that can construct instances of
// themselves. The receiver only identifies the type; Create must not depend on
// its state.
type Creator interface {
	Create(p Params) (Monitor, error)
}

// Factory constructs a monitor from resolved construction parameters.
type Factory func(p Params) (Monitor, error)

// MoveBy advances m by delta through MoveTo.
func MoveBy(m Monitor, delta int) error {
	return m.MoveTo(m.Position() + delta)
}

// With runs fn with m and closes m once on every exit path, including panics.
// An error from Close is joined with the error returned by fn.
func With(m Monitor, fn func(Monitor) error) (err error) {
	defer func() {
		if cerr := m.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close progress monitor: %w", cerr))
		}
	}()
	return fn(m)
}
