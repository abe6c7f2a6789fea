package progress

import "fmt"

// Resolve turns a progress argument into a Config. extra is layered over the
// result's defaults, except for the Null monitor which ignores options.
//
// Bool(true) and Key are substituted first (default backend and registry
// lookup); the substitute is then classified like any other argument. A
// missing key fails with ErrNotRegistered and an unsupported argument with
// ErrInvalidArgument.
func (r *Registry) Resolve(arg Arg, extra Options) (Config, error) {
	switch a := arg.(type) {
	case Bool:
		if a {
			arg = r.DefaultConfig()
		}
	case Key:
		cfg, err := r.Lookup(string(a))
		if err != nil {
			return Config{}, err
		}
		arg = cfg
	}

	switch a := arg.(type) {
	case nil:
		return NullConfig(), nil
	case Bool:
		// true was substituted above.
		return NullConfig(), nil
	case Config:
		if a.IsZero() {
			return Config{}, fmt.Errorf("%w: zero Config", ErrInvalidArgument)
		}
		if len(extra) > 0 {
			return a.Update(extra), nil
		}
		return a, nil
	case Type:
		if a.Creator == nil {
			return Config{}, fmt.Errorf("%w: Type without Creator", ErrInvalidArgument)
		}
		return NewConfig(fmt.Sprintf("%T", a.Creator), a.Creator.Create, extra), nil
	case Func:
		if a == nil {
			return Config{}, fmt.Errorf("%w: nil Func", ErrInvalidArgument)
		}
		return NewConfig("func", Factory(a), extra), nil
	default:
		return Config{}, fmt.Errorf("%w: %T", ErrInvalidArgument, arg)
	}
}

// Acquire resolves arg and creates a monitor for total units starting at
// initial. opts are passed to the factory on top of the resolved defaults.
func (r *Registry) Acquire(arg Arg, total, initial int, opts Options) (Monitor, error) {
	cfg, err := r.Resolve(arg, nil)
	if err != nil {
		return nil, err
	}
	return cfg.Create(total, opts.Merge(Options{KeyInitial: initial}))
}
