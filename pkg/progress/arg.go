package progress

import "fmt"

// Arg is the flexible progress argument accepted by Resolve, Acquire, and
// Iterate. The variants are:
//
//   - nil or Bool(false): no progress display (Null).
//   - Bool(true): the registry's default backend.
//   - Key: a registry key.
//   - Config: an explicit configuration.
//   - Type: a monitor type that constructs itself through Creator.
//   - Func: a factory function.
type Arg interface {
	isArg()
}

// Bool selects the default backend (true) or no display (false).
type Bool bool

// Key names a registry entry.
type Key string

// Func uses a factory function directly.
type Func Factory

// Type uses the Create method of a monitor type.
type Type struct {
	Creator Creator
}

func (Bool) isArg() {}
func (Key) isArg()  {}
func (Func) isArg() {}
func (Type) isArg() {}

// Shorthands for the boolean variants.
var (
	Default Arg = Bool(true)
	None    Arg = Bool(false)
)

// ArgOf classifies a dynamically typed value, such as one decoded from a config
// file or a flag, into an Arg.
func ArgOf(v any) (Arg, error) {
	switch a := v.(type) {
	case nil:
		return nil, nil
	case Arg:
		return a, nil
	case bool:
		return Bool(a), nil
	case string:
		return Key(a), nil
	case Factory:
		return Func(a), nil
	case func(Params) (Monitor, error):
		return Func(a), nil
	case Creator:
		return Type{Creator: a}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidArgument, v)
	}
}
