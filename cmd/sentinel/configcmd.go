package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reportsentinel/sentinel/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect sentinel configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		switch {
		case err == nil:
			fmt.Printf("✓ Configuration valid (%d report directories, %d recipients)\n",
				len(cfg.ReportPaths), len(cfg.SMTP.Recipients))
			return nil
		case errors.Is(err, config.ErrNotFound):
			return fmt.Errorf("not found: %w", err)
		case errors.Is(err, config.ErrMalformed):
			return fmt.Errorf("malformed: %w", err)
		case errors.Is(err, config.ErrInvalid):
			return fmt.Errorf("invalid: %w", err)
		default:
			return err
		}
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}
