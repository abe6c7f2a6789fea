package progress

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Registry maps string keys to configurations. Backends register themselves on
// an explicitly constructed Registry during setup; resolution only reads it.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	entries    map[string]Config
	defaultKey string
	logger     *zap.Logger
}

// NewRegistry returns an empty Registry. The logger receives the warning emitted
// when the default backend is unavailable; nil disables logging.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		entries: make(map[string]Config),
		logger:  logger,
	}
}

// Register resolves target and stores the result under key. target may be any
// Arg, including a Key naming an existing entry (an alias) or nil for the Null
// monitor. An existing key is only replaced when overwrite is set.
func (r *Registry) Register(key string, target Arg, overwrite bool) (Config, error) {
	if key == "" {
		return Config{}, fmt.Errorf("%w: empty registry key", ErrInvalidArgument)
	}
	cfg, err := r.Resolve(target, nil)
	if err != nil {
		return Config{}, fmt.Errorf("register %q: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[key]; exists && !overwrite {
		return Config{}, fmt.Errorf("%w: %q", ErrKeyConflict, key)
	}
	r.entries[key] = cfg
	return cfg, nil
}

// Decorator returns a function that registers a factory under key and hands the
// factory back unchanged, so a package can register at its point of definition.
func (r *Registry) Decorator(key string, overwrite bool) func(Factory) (Factory, error) {
	return func(f Factory) (Factory, error) {
		if _, err := r.Register(key, Func(f), overwrite); err != nil {
			return nil, err
		}
		return f, nil
	}
}

// DecoratorType is Decorator for monitor types: it registers c under key and
// hands it back unchanged.
func (r *Registry) DecoratorType(key string, overwrite bool) func(Creator) (Creator, error) {
	return func(c Creator) (Creator, error) {
		if _, err := r.Register(key, Type{Creator: c}, overwrite); err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Lookup returns the configuration registered under key.
func (r *Registry) Lookup(key string) (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.entries[key]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrNotRegistered, key)
	}
	return cfg, nil
}

// Keys lists the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SetDefault names the key Bool(true) resolves to. The key does not need to be
// registered yet.
func (r *Registry) SetDefault(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultKey = key
}

// DefaultKey returns the key set by SetDefault.
func (r *Registry) DefaultKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultKey
}

// DefaultConfig returns the configuration for the default key. When no default
// is set or it is not registered, it logs a warning and falls back to the Null
// monitor; it never fails.
func (r *Registry) DefaultConfig() Config {
	key := r.DefaultKey()
	if key == "" {
		r.logger.Warn("no default progress monitor configured, falling back to null monitor")
		return NullConfig()
	}
	cfg, err := r.Lookup(key)
	if err != nil {
		r.logger.Warn("default progress monitor unavailable, falling back to null monitor",
			zap.String("key", key))
		return NullConfig()
	}
	return cfg
}
