// Package cmd implements the CLI commands for interviewd.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/version"
)

// cfgFile holds the config file path from CLI flag.
var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "interviewd",
	Short:   "Interview recording merge and evaluation delivery service",
	Version: version.Short(),
	Long: `interviewd reassembles interview recordings uploaded as ordered video
chunks, publishes the merged videos to object storage, and delivers
evaluation reports for finished sessions to an external endpoint.

It exposes a REST API for triggering merges and managing candidate and
job records, plus background loops for unmerged-session pickup and
report delivery.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("executing root command: %w", err)
	}
	return nil
}

func init() {
	// These flags are not bound to viper. Explicitly-set flags override
	// config/env values in runServe, which preserves the priority order:
	// CLI flag > env var > config > default.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ., ./configs, /etc/interviewd)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (text, json)")
}
