package cmd

import (
	"fmt"
	"time"

	"puzzle-leaderboard/core/scheduler"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reconcileCmd runs a single pass and exits.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run one reconciliation pass and exit",
	Long: `Fetches the leaderboard once, stores it and posts or edits the day's message.

Failures are reported to the error channel and the command exits non-zero, which makes
it suitable for cron or a Kubernetes CronJob.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		engine, reporter, err := a.engine()
		if err != nil {
			return err
		}

		sched := scheduler.New(a.cfg.Schedule, engine.Task, reporter, nil, a.logger)
		if err := sched.RunOnce(ctx); err != nil {
			return fmt.Errorf("reconciliation failed: %w", err)
		}

		if snap := engine.Current(); snap != nil {
			a.logger.Info("Reconciliation completed",
				zap.String("date", snap.Date().Format(time.DateOnly)),
				zap.Int("participants", snap.Len()),
				zap.Bool("complete", snap.Complete()),
			)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(reconcileCmd)
}
