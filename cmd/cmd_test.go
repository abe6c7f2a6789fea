package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/progress-monitor/internal/config"
	"github.com/JakeFAU/progress-monitor/pkg/progress"
	"github.com/JakeFAU/progress-monitor/pkg/progress/progresstest"
)

// mockApp mocks the App interface around a real registry.
type mockApp struct {
	mock.Mock
	registry *progress.Registry
}

func (m *mockApp) Logger() *zap.Logger            { return zap.NewNop() }
func (m *mockApp) Registry() *progress.Registry   { return m.registry }
func (m *mockApp) DefaultKey() string             { return m.registry.DefaultKey() }
func (m *mockApp) WriteMetrics(w io.Writer) error { return m.Called(w).Error(0) }
func (m *mockApp) Close(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newMockApp(t *testing.T) (*mockApp, *progresstest.Captured) {
	t.Helper()
	reg := progress.NewRegistry(nil)
	cfg, captured := progresstest.Capture(progresstest.Config(nil))
	_, err := reg.Register("test", cfg, false)
	require.NoError(t, err)
	_, err = reg.Register("none", nil, false)
	require.NoError(t, err)
	reg.SetDefault("test")
	return &mockApp{registry: reg}, captured
}

// useApp swaps the application factory for the duration of a test.
func useApp(t *testing.T, a App) {
	t.Helper()
	prev := newApp
	newApp = func(config.Config, io.Writer) (App, error) { return a, nil }
	t.Cleanup(func() { newApp = prev })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// TestRunDrivesDefaultMonitor iterates every unit under the default monitor and closes the app.
func TestRunDrivesDefaultMonitor(t *testing.T) {
	a, captured := newMockApp(t)
	a.On("Close", mock.Anything).Return(nil).Once()
	useApp(t, a)

	_, err := execute(t, "run", "--items", "5", "--delay", "0s", "--description", "unit test")
	require.NoError(t, err)

	m := captured.Last().(*progresstest.Monitor)
	require.Equal(t, 5, m.Total())
	require.Equal(t, 5, m.Position())
	require.True(t, m.Closed())
	require.Equal(t, "unit test", m.Description)
	a.AssertExpectations(t)
}

// TestRunPrintsMetrics drains the app before writing metrics.
func TestRunPrintsMetrics(t *testing.T) {
	a, _ := newMockApp(t)
	a.On("Close", mock.Anything).Return(nil).Twice()
	a.On("WriteMetrics", mock.Anything).Return(nil).Once()
	useApp(t, a)

	_, err := execute(t, "run", "--items", "2", "--delay", "0s", "--metrics")
	require.NoError(t, err)
	a.AssertExpectations(t)
}

// TestRunRejectsBadInput reports unknown monitors and negative item counts.
func TestRunRejectsBadInput(t *testing.T) {
	a, _ := newMockApp(t)
	useApp(t, a)

	_, err := execute(t, "run", "--monitor", "missing", "--delay", "0s")
	require.ErrorIs(t, err, progress.ErrNotRegistered)

	_, err = execute(t, "run", "--items=-1")
	require.ErrorContains(t, err, "--items")
}

// TestRunCanceled stops when the context ends.
func TestRunCanceled(t *testing.T) {
	a, captured := newMockApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runWorkload(ctx, a, runOptions{items: 3, delay: 0})
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, captured.Last().Closed())
}

// TestListMarksDefault prints every key with the default starred.
func TestListMarksDefault(t *testing.T) {
	a, _ := newMockApp(t)
	a.On("Close", mock.Anything).Return(nil)
	useApp(t, a)

	out, err := execute(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "  none")
	require.Contains(t, out, "* test")
	require.Contains(t, out, "capture(progresstest.Monitor)")
}

// TestMonitorArg maps flag values onto progress arguments.
func TestMonitorArg(t *testing.T) {
	t.Parallel()

	cases := map[string]progress.Arg{
		"":      progress.Default,
		"true":  progress.Bool(true),
		"false": progress.Bool(false),
		"bar":   progress.Key("bar"),
	}
	for flag, want := range cases {
		got, err := monitorArg(flag)
		require.NoError(t, err)
		require.Equal(t, want, got, flag)
	}
}

// TestListWithRealApp loads a config file and builds the real services.
func TestListWithRealApp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.yaml")
	require.NoError(t, os.WriteFile(path, []byte("progress:\n  default: bar-plain\nlogging:\n  level: error\n"), 0o600))

	out, err := execute(t, "--config", path, "list")
	require.NoError(t, err)
	require.Contains(t, out, "* bar-plain")
	require.Contains(t, out, "progressbar-bytes")
}
