package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/johnnynv/filelogger/pkg/filelog"
	"github.com/johnnynv/filelogger/pkg/logger"
)

func newJanitorCmd(env *cliEnv) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "janitor",
		Short: "Remove expired .log files periodically",
		Long: `Run clean immediately and then every --interval until interrupted.
Failed sweeps are reported and retried on the next tick.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := env.setup(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("interval") {
				interval = a.config.Janitor.Interval
			}
			if interval <= 0 {
				return fmt.Errorf("janitor interval must be positive, got %s", interval)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			log := a.loggers.ForOperation("cli", "janitor")
			log.WithFields(logger.Fields{
				"interval": interval.String(),
				"dir":      a.fileLogger.LogPath(),
			}).Info("Janitor started")

			err = filelog.NewJanitor(a.fileLogger, interval).
				OnRun(func(r *filelog.CleanupResult, err error) {
					if err != nil {
						fmt.Fprintf(out, "sweep failed: %v\n", err)
						return
					}
					fmt.Fprintf(out, "%s swept %s: %d removed\n",
						time.Now().Format(time.RFC3339), r.Dir, len(r.Removed))
				}).
				Run(ctx)

			log.Info("Janitor stopped")
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 24*time.Hour, "time between sweeps (default from config)")

	return cmd
}
