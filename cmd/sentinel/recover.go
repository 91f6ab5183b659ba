package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reportsentinel/sentinel/pkg/config"
	"github.com/reportsentinel/sentinel/pkg/log"
	"github.com/reportsentinel/sentinel/pkg/recovery"
)

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Invoke the recovery tool manually",
	Long: `Invoke the external report generator once, outside a watchdog pass.

Unlike the pass itself, a manual invocation exits non-zero when the tool
fails, so it can be used interactively or from scripts that care about the
outcome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		initLogging(cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		invoker := recovery.NewInvoker(
			cfg.Recovery.Script, cfg.Recovery.Python,
			time.Duration(cfg.Recovery.Timeout),
			log.WithComponent("recovery"),
		)

		out := invoker.Run(ctx)
		if out.Succeeded() {
			fmt.Printf("✓ Recovery tool completed in %s\n", out.Duration.Round(time.Millisecond))
			return nil
		}

		if out.Stderr != "" {
			fmt.Fprintln(os.Stderr, out.Stderr)
		}
		return fmt.Errorf("recovery %s (%s)", out.Status, out.Reason)
	},
}

func init() {
	rootCmd.AddCommand(recoverCmd)
}
