package progress

import (
	"fmt"
	"io"
	"maps"
	"math"
	"time"
)

// Option keys shared by every backend. Other keys are backend specific and end
// up in Params.Extra.
const (
	KeyInitial     = "initial"
	KeyDescription = "description"
	KeyOutput      = "output"
)

// Options is a layered bag of construction options keyed by name.
type Options map[string]any

// Merge returns a new Options holding o overlaid with each layer in order; later
// layers win on key collisions. Neither o nor the layers are modified.
func (o Options) Merge(layers ...Options) Options {
	size := len(o)
	for _, l := range layers {
		size += len(l)
	}
	out := make(Options, size)
	maps.Copy(out, o)
	for _, l := range layers {
		maps.Copy(out, l)
	}
	return out
}

// Int reads key as an integer, returning def when the key is absent.
func (o Options) Int(key string, def int) (int, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), nil
		}
	case float32:
		if float64(v) == math.Trunc(float64(v)) {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidOption, key, raw)
}

// Float reads key as a float64, returning def when the key is absent.
func (o Options) Float(key string, def float64) (float64, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	}
	n, err := o.Int(key, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidOption, key, raw)
	}
	return float64(n), nil
}

// Bool reads key as a bool, returning def when the key is absent.
func (o Options) Bool(key string, def bool) (bool, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return def, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a bool, got %T", ErrInvalidOption, key, raw)
	}
	return v, nil
}

// String reads key as a string, returning def when the key is absent.
func (o Options) String(key string, def string) (string, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return def, nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidOption, key, raw)
	}
	return v, nil
}

// Duration reads key as a time.Duration, returning def when the key is absent.
// Strings are parsed with time.ParseDuration, as decoded from config files.
func (o Options) Duration(key string, def time.Duration) (time.Duration, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", ErrInvalidOption, key, err)
		}
		return d, nil
	}
	return 0, fmt.Errorf("%w: %s must be a duration, got %T", ErrInvalidOption, key, raw)
}

// Params carries everything a Factory needs to build one monitor.
type Params struct {
	// Total is the expected number of units of work.
	Total int
	// Initial is the starting position.
	Initial int
	// Description is a short label shown next to the progress display.
	Description string
	// Output is where terminal backends draw; nil means the backend default.
	Output io.Writer
	// Extra holds backend specific options that are not core fields.
	Extra Options
}

// NewParams splits merged options into core fields and Extra.
func NewParams(total int, opts Options) (Params, error) {
	p := Params{Total: total, Extra: make(Options, len(opts))}
	for k, v := range opts {
		switch k {
		case KeyInitial, KeyDescription, KeyOutput:
		default:
			p.Extra[k] = v
		}
	}

	initial, err := opts.Int(KeyInitial, 0)
	if err != nil {
		return Params{}, err
	}
	p.Initial = initial

	desc, err := opts.String(KeyDescription, "")
	if err != nil {
		return Params{}, err
	}
	p.Description = desc

	if raw, ok := opts[KeyOutput]; ok && raw != nil {
		w, ok := raw.(io.Writer)
		if !ok {
			return Params{}, fmt.Errorf("%w: %s must be an io.Writer, got %T", ErrInvalidOption, KeyOutput, raw)
		}
		p.Output = w
	}
	return p, nil
}
