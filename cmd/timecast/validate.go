package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/timecast/config"
)

// validateCmd validates a config file without starting the poller.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a timecast configuration file without starting the poller.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  timecast validate -c timecast.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	s := cfg.Settings()
	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Server:       %s\n", s.ServerURL(""))
	fmt.Printf("  Target:       %s\n", s.TargetName)
	fmt.Printf("  Time mode:    %s\n", s.TimeMode)
	fmt.Printf("  Keep updated: %t\n", s.KeepUpdated)

	return nil
}
