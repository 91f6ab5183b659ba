package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reportsentinel/sentinel/pkg/config"
	"github.com/reportsentinel/sentinel/pkg/log"
	"github.com/reportsentinel/sentinel/pkg/metrics"
	"github.com/reportsentinel/sentinel/pkg/notify"
	"github.com/reportsentinel/sentinel/pkg/recovery"
	"github.com/reportsentinel/sentinel/pkg/report"
	"github.com/reportsentinel/sentinel/pkg/sentinel"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one watchdog pass",
	Long: `Run a single watchdog pass over the configured report directories.

This is the cron entry point. Configuration errors abort with a non-zero
exit before any directory is checked; everything after that point is logged
and the process exits zero, so the scheduler simply tries again next cycle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		initLogging(cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res := runPass(ctx, cfg)
		printSummary(res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// runPass wires the real collaborators, runs one pass, and records metrics.
// Shared by check and watch.
func runPass(ctx context.Context, cfg *config.Config) sentinel.Result {
	mailer := notify.NewMailer(
		cfg.SMTP.Host, cfg.SMTP.Port,
		cfg.SMTP.Username, cfg.SMTP.Password,
		cfg.SMTP.Sender, cfg.SMTP.Recipients,
	)
	invoker := recovery.NewInvoker(
		cfg.Recovery.Script, cfg.Recovery.Python,
		time.Duration(cfg.Recovery.Timeout),
		log.WithComponent("recovery"),
	)
	s := sentinel.New(cfg.ReportPaths, report.NewChecker(), mailer, invoker,
		log.WithComponent("sentinel"))

	res := s.Run(ctx)

	metrics.RecordRun(res)
	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			l := log.WithComponent("metrics")
			l.Error().Err(err).
				Str("path", cfg.Metrics.Textfile).Msg("failed to write metrics textfile")
		}
	}

	return res
}

func printSummary(res sentinel.Result) {
	switch {
	case res.Err != nil:
		fmt.Printf("Run %s ended with an error: %v\n", res.RunID, res.Err)
	case res.MissingDir == "":
		fmt.Printf("✓ All %d report directories up to date\n", res.Checked)
	default:
		fmt.Printf("Report missing in %s; alert sent, recovery %s\n",
			res.MissingDir, res.Recovery.Status)
	}
}
