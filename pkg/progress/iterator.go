package progress

import (
	"fmt"
	"iter"
	"slices"
)

// Iterator wraps a sequence and advances a monitor once per produced element.
// The monitor counts completed elements: it is advanced before each element
// after the first is pulled, and reaches the sequence length when the sequence
// is exhausted. Exhaustion closes the monitor, and so does Close, which callers
// should defer to cover early exits.
//
//	it, err := progress.Iterate(reg, files, progress.Default, nil)
//	if err != nil {
//		return err
//	}
//	defer it.Close()
//	for it.Next() {
//		process(it.Value())
//	}
//	return it.Err()
type Iterator[T any] struct {
	next    func() (T, bool)
	stop    func()
	monitor Monitor
	started bool
	done    bool
	value   T
	err     error
}

// NewIterator wraps seq without consuming it. The iterator takes over closing m.
func NewIterator[T any](seq iter.Seq[T], m Monitor) *Iterator[T] {
	next, stop := iter.Pull(seq)
	return &Iterator[T]{
		next:    next,
		stop:    stop,
		monitor: m,
	}
}

// Iterate acquires a monitor sized to len(items) and wraps items.
func Iterate[T any](r *Registry, items []T, arg Arg, opts Options) (*Iterator[T], error) {
	return IterateSeq(r, slices.Values(items), len(items), arg, opts)
}

// IterateSeq acquires a monitor for total units and wraps seq. Sequences carry
// no length, so total must be supplied; a negative total fails with
// ErrUnknownTotal.
func IterateSeq[T any](r *Registry, seq iter.Seq[T], total int, arg Arg, opts Options) (*Iterator[T], error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: total %d", ErrUnknownTotal, total)
	}
	cfg, err := r.Resolve(arg, nil)
	if err != nil {
		return nil, err
	}
	m, err := cfg.Create(total, opts)
	if err != nil {
		return nil, err
	}
	return NewIterator(seq, m), nil
}

// Monitor returns the wrapped monitor.
func (it *Iterator[T]) Monitor() Monitor {
	return it.monitor
}

// Next advances to the next element. It returns false when the sequence is
// exhausted, in which case the monitor has been closed, or when advancing the
// monitor failed, in which case Err reports why.
func (it *Iterator[T]) Next() bool {
	if it.done {
		return false
	}
	if it.started {
		if err := it.monitor.Increment(1); err != nil {
			it.err = fmt.Errorf("advance progress monitor: %w", err)
			it.done = true
			it.stop()
			return false
		}
	}
	it.started = true

	v, ok := it.next()
	if !ok {
		it.done = true
		var zero T
		it.value = zero
		if err := it.monitor.Close(); err != nil {
			it.err = fmt.Errorf("close progress monitor: %w", err)
		}
		return false
	}
	it.value = v
	return true
}

// Value returns the element produced by the last successful Next.
func (it *Iterator[T]) Value() T {
	return it.value
}

// Err returns the first error hit while advancing or closing the monitor.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Close stops the underlying sequence and closes the monitor. It always calls
// the monitor's Close, even after exhaustion already did, so monitors handed to
// an Iterator must tolerate a second Close.
func (it *Iterator[T]) Close() error {
	it.done = true
	it.stop()
	if err := it.monitor.Close(); err != nil {
		err = fmt.Errorf("close progress monitor: %w", err)
		if it.err == nil {
			it.err = err
		}
		return err
	}
	return nil
}

// All returns a range-over-func view of the iterator. Leaving the loop for any
// reason closes the iterator; check Err afterwards.
func (it *Iterator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer it.Close() //nolint:errcheck // recorded in Err
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
