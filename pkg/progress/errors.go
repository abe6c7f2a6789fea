package progress

import "errors"

var (
	// ErrNotRegistered signals that a registry key has no configuration.
	ErrNotRegistered = errors.New("progress monitor not registered")
	// ErrInvalidArgument signals a progress argument of an unsupported shape.
	ErrInvalidArgument = errors.New("invalid progress argument")
	// ErrKeyConflict signals a registration over an existing key without overwrite.
	ErrKeyConflict = errors.New("progress key already registered")
	// ErrInvalidOption signals an option value of the wrong type.
	ErrInvalidOption = errors.New("invalid progress option")
	// ErrOutOfRange signals a position outside [0, total].
	ErrOutOfRange = errors.New("progress position out of range")
	// ErrDecrement signals a backwards move on a monitor that forbids it.
	ErrDecrement = errors.New("progress position decreased")
	// ErrClosed signals a mutation of a monitor that was already closed.
	ErrClosed = errors.New("progress monitor closed")
	// ErrUnknownTotal signals a sequence with no length and no explicit total.
	ErrUnknownTotal = errors.New("progress total unknown")
)
