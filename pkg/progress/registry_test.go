package progress_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/progress-monitor/pkg/progress"
	"github.com/JakeFAU/progress-monitor/pkg/progress/progresstest"
)

// TestRegisterConflicts rejects duplicate keys unless overwrite is set.
func TestRegisterConflicts(t *testing.T) {
	t.Parallel()

	reg := progress.NewRegistry(nil)
	_, err := reg.Register("foo", progresstest.Config(nil), false)
	require.NoError(t, err)

	_, err = reg.Register("foo", progresstest.Config(nil), false)
	require.ErrorIs(t, err, progress.ErrKeyConflict)

	cfg, err := reg.Register("foo", progresstest.Config(progress.Options{"a": 1}), true)
	require.NoError(t, err)
	stored, err := reg.Lookup("foo")
	require.NoError(t, err)
	require.True(t, stored.Equal(cfg))
	require.Equal(t, progress.Options{"a": 1}, stored.Options())

	_, err = reg.Register("", progresstest.Config(nil), false)
	require.ErrorIs(t, err, progress.ErrInvalidArgument)
}

// TestRegisterResolvesTargets stores every kind of argument as a config.
func TestRegisterResolvesTargets(t *testing.T) {
	t.Parallel()

	reg := progress.NewRegistry(nil)
	_, err := reg.Register("null", nil, false)
	require.NoError(t, err)
	_, err = reg.Register("type", progress.Type{Creator: progresstest.Monitor{}}, false)
	require.NoError(t, err)
	_, err = reg.Register("alias", progress.Key("type"), false)
	require.NoError(t, err)

	_, err = reg.Register("dangling", progress.Key("missing"), false)
	require.ErrorIs(t, err, progress.ErrNotRegistered)
	_, err = reg.Register("bad", progress.Type{}, false)
	require.ErrorIs(t, err, progress.ErrInvalidArgument)

	require.Equal(t, []string{"alias", "null", "type"}, reg.Keys())

	m, err := reg.Acquire(progress.Key("null"), 10, 0, nil)
	require.NoError(t, err)
	require.IsType(t, progress.Null{}, m)
	require.Equal(t, 10, m.Total())

	m, err = reg.Acquire(progress.Key("alias"), 10, 2, nil)
	require.NoError(t, err)
	require.IsType(t, &progresstest.Monitor{}, m)
	require.Equal(t, 2, m.Position())
}

// TestDecoratorRegistersFactory hands the factory back after registering it.
func TestDecoratorRegistersFactory(t *testing.T) {
	t.Parallel()

	reg := progress.NewRegistry(nil)
	register := reg.Decorator("decorated", false)

	f, err := register(testFactory)
	require.NoError(t, err)
	require.NotNil(t, f)

	m, err := reg.Acquire(progress.Key("decorated"), 4, 1, nil)
	require.NoError(t, err)
	require.Equal(t, 1, m.Position())

	_, err = register(testFactory)
	require.ErrorIs(t, err, progress.ErrKeyConflict)
}

// TestDecoratorTypeRegistersCreator registers a monitor type in place.
func TestDecoratorTypeRegistersCreator(t *testing.T) {
	t.Parallel()

	reg := progress.NewRegistry(nil)
	register := reg.DecoratorType("typed", false)

	c, err := register(progresstest.Monitor{})
	require.NoError(t, err)
	require.Equal(t, progresstest.Monitor{}, c)

	m, err := reg.Acquire(progress.Key("typed"), 8, 3, nil)
	require.NoError(t, err)
	require.IsType(t, &progresstest.Monitor{}, m)
	require.Equal(t, 3, m.Position())
	require.Equal(t, 8, m.Total())

	_, err = register(progresstest.Monitor{})
	require.ErrorIs(t, err, progress.ErrKeyConflict)

	_, err = reg.DecoratorType("nil", false)(nil)
	require.ErrorIs(t, err, progress.ErrInvalidArgument)
}

// TestRegistryConcurrentAccess exercises registration and lookup from many goroutines.
func TestRegistryConcurrentAccess(t *testing.T) {
	t.Parallel()

	reg := progress.NewRegistry(nil)
	reg.SetDefault("k0")

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			_, err := reg.Register(key, progresstest.Config(nil), false)
			assert.NoError(t, err)
			_, err = reg.Lookup(key)
			assert.NoError(t, err)
			_ = reg.DefaultConfig()
			_ = reg.Keys()
		}()
	}
	wg.Wait()
	require.Len(t, reg.Keys(), 16)
	require.Equal(t, "k0", reg.DefaultKey())
}
