package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/reportsentinel/sentinel/pkg/config"
	"github.com/reportsentinel/sentinel/pkg/log"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run watchdog passes on a schedule",
	Long: `Run the sentinel as a long-running process, performing a watchdog
pass on a cron schedule instead of relying on system cron.

Each pass has single-pass semantics identical to "sentinel check". Passes
are not guarded against overlap; pick a schedule interval that exceeds the
worst-case duration of a pass including recovery.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		initLogging(cfg)

		schedule, _ := cmd.Flags().GetString("schedule")

		logger := log.WithComponent("watch")
		c := cron.New()
		if _, err := c.AddFunc(schedule, func() {
			res := runPass(context.Background(), cfg)
			logger.Info().
				Str("run_id", res.RunID).
				Int("checked", res.Checked).
				Str("missing", res.MissingDir).
				Msg("pass complete")
		}); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", schedule, err)
		}

		c.Start()
		logger.Info().Str("schedule", schedule).Msg("watch mode started")
		fmt.Println("Sentinel is running. Press Ctrl+C to stop.")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		fmt.Println("\nShutting down...")
		// Stop scheduling and let an in-flight pass finish.
		<-c.Stop().Done()
		fmt.Println("✓ Shutdown complete")
		return nil
	},
}

func init() {
	watchCmd.Flags().String("schedule", "*/15 * * * *", "Cron schedule for watchdog passes")
	rootCmd.AddCommand(watchCmd)
}
