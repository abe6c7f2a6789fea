// Package cmd defines the CLI commands of the progress-demo executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/progress-monitor/internal/app"
	"github.com/JakeFAU/progress-monitor/internal/config"
	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

const shutdownTimeout = 5 * time.Second

// App is what commands need from the application services. Tests inject fakes
// through newApp.
type App interface {
	Logger() *zap.Logger
	Registry() *progress.Registry
	DefaultKey() string
	WriteMetrics(w io.Writer) error
	Close(ctx context.Context) error
}

// newApp is the application factory, replaced in tests.
var newApp = func(cfg config.Config, out io.Writer) (App, error) {
	return app.New(cfg, out, nil)
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "progress-demo",
		Short: "Exercise the bundled progress monitors.",
		Long: `progress-demo drives the progress monitors registered by pkg/monitors
over a synthetic workload, so each backend can be seen and configured
from a YAML file or PROGRESS_* environment variables.`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.ErrOrStderr()
			if cfg.Progress.Output == config.OutputStdout {
				out = cmd.OutOrStdout()
			}
			appInstance, err := newApp(cfg, out)
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},

		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return appInstance.Close(ctx)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, TOML, or JSON)")
	cmd.AddCommand(newRunCmd(), newListCmd())
	return cmd
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "progress-demo: %v\n", err)
		stop()
		os.Exit(1)
	}
}
