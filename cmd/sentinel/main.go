package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reportsentinel/sentinel/pkg/config"
	"github.com/reportsentinel/sentinel/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "Sentinel - missing-report watchdog",
	Long: `Sentinel watches report directories for the daily CSV drop.

For each configured directory it checks whether the latest possible report
(per the 17:00 US Eastern cutoff) exists. On the first missing report it
emails the operators, triggers one reprocessing attempt via the external
report generator, and stops; the next scheduled pass re-checks.

Intended to run from cron via "sentinel check", or as a long-running
process via "sentinel watch".`,
	Version: Version,
}

var cfgPath string

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Sentinel version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(),
		"Path to the YAML configuration file")
}

// initLogging configures the process-wide logger once, from the loaded
// config. Everything downstream works with child loggers.
func initLogging(cfg *config.Config) {
	log.Init(log.Config{
		Level:      log.Level(cfg.Log.Level),
		JSONOutput: cfg.Log.JSON,
		Output:     os.Stdout,
	})
}
