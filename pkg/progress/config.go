package progress

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
)

// Config is a deferred construction recipe for monitors: a factory plus default
// options. It is a value; Update returns a new Config and never changes the
// receiver.
type Config struct {
	name     string
	factory  Factory
	defaults Options
}

// NewConfig builds a Config. The defaults map is copied.
func NewConfig(name string, factory Factory, defaults Options) Config {
	return Config{
		name:     name,
		factory:  factory,
		defaults: Options(nil).Merge(defaults),
	}
}

// Name identifies the factory, for diagnostics.
func (c Config) Name() string {
	return c.name
}

// Options returns a copy of the default options.
func (c Config) Options() Options {
	return maps.Clone(c.defaults)
}

// IsZero reports whether c has no factory.
func (c Config) IsZero() bool {
	return c.factory == nil
}

// Create builds a monitor for total units. overrides win over the stored
// defaults on key collisions.
func (c Config) Create(total int, overrides Options) (Monitor, error) {
	if c.factory == nil {
		return nil, errors.New("progress config has no factory")
	}
	params, err := NewParams(total, c.defaults.Merge(overrides))
	if err != nil {
		return nil, fmt.Errorf("build %s params: %w", c.name, err)
	}
	m, err := c.factory(params)
	if err != nil {
		return nil, fmt.Errorf("create %s monitor: %w", c.name, err)
	}
	return m, nil
}

// Update returns a copy of c with overrides merged on top of its defaults.
func (c Config) Update(overrides Options) Config {
	return Config{
		name:     c.name,
		factory:  c.factory,
		defaults: c.defaults.Merge(overrides),
	}
}

// Equal reports whether c and other share a name, a factory, and default
// options. Factories are compared by code pointer: closures created from the
// same function literal and method values of the same method compare equal.
func (c Config) Equal(other Config) bool {
	if c.name != other.name || len(c.defaults) != len(other.defaults) {
		return false
	}
	if factoryPointer(c.factory) != factoryPointer(other.factory) {
		return false
	}
	for k, v := range c.defaults {
		ov, ok := other.defaults[k]
		if !ok || !sameOption(v, ov) {
			return false
		}
	}
	return true
}

func factoryPointer(f Factory) uintptr {
	if f == nil {
		return 0
	}
	return reflect.ValueOf(f).Pointer()
}

func sameOption(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func (Config) isArg() {}
