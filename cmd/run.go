package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/progress-monitor/pkg/progress"
)

type runOptions struct {
	items       int
	monitor     string
	delay       time.Duration
	description string
	metrics     bool
}

func newRunCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Iterate a synthetic workload under a progress monitor",
		Long: `Processes --items units of work, sleeping --delay per unit, while the
selected monitor reports progress. --monitor accepts a registry key, or
"true"/"false" for the default monitor and no monitor.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := runWorkload(cmd.Context(), appInstance, opts); err != nil {
				return err
			}
			if !opts.metrics {
				return nil
			}
			// Drain pending events first; the post-run Close is then a no-op.
			ctx, cancel := context.WithTimeout(cmd.Context(), shutdownTimeout)
			defer cancel()
			if err := appInstance.Close(ctx); err != nil {
				return err
			}
			return appInstance.WriteMetrics(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&opts.items, "items", 50, "number of work units")
	cmd.Flags().StringVar(&opts.monitor, "monitor", "", "registry key, or true/false (default: the configured default)")
	cmd.Flags().DurationVar(&opts.delay, "delay", 20*time.Millisecond, "time spent per work unit")
	cmd.Flags().StringVar(&opts.description, "description", "working", "label shown by the monitor")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print event metrics when done (requires events.metrics)")
	return cmd
}

// monitorArg maps the --monitor flag onto a progress argument.
func monitorArg(flag string) (progress.Arg, error) {
	if flag == "" {
		return progress.Default, nil
	}
	if b, err := strconv.ParseBool(flag); err == nil {
		return progress.ArgOf(b)
	}
	return progress.ArgOf(flag)
}

func runWorkload(ctx context.Context, appInstance App, opts runOptions) error {
	if opts.items < 0 {
		return fmt.Errorf("--items must be >= 0, got %d", opts.items)
	}
	arg, err := monitorArg(opts.monitor)
	if err != nil {
		return err
	}
	units := make([]int, opts.items)
	for i := range units {
		units[i] = i + 1
	}

	it, err := progress.Iterate(appInstance.Registry(), units, arg, progress.Options{
		progress.KeyDescription: opts.description,
	})
	if err != nil {
		return fmt.Errorf("start progress: %w", err)
	}
	defer it.Close() //nolint:errcheck // recorded in Err

	logger := appInstance.Logger()
	start := time.Now()
	for it.Next() {
		if err := work(ctx, opts.delay); err != nil {
			logger.Warn("workload interrupted", zap.Int("completed", it.Monitor().Position()))
			return err
		}
	}
	if err := it.Err(); err != nil {
		return err
	}
	logger.Info("workload finished", zap.Int("items", opts.items), zap.Duration("elapsed", time.Since(start)))
	return nil
}

// work stands in for one unit of real work.
func work(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
