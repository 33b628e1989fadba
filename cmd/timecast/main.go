// Package main is the entry point for the timecast CLI.
//
// timecast can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary
// approach, rendering the timecode to the terminal.
//
// Usage:
//
//	timecast run                     # Poll with default settings
//	timecast run -c timecast.yaml    # Poll with a config file
//	timecast validate -c timecast.yaml
//	timecast version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "timecast",
	Short: "Render a server-driven timecode into a display target",
	Long: `timecast polls a timecode server once a second and renders the
returned text into a named display target.

Quick start:
  1. Start a timecode server (see example/cmd/timeserver)
  2. Run: timecast run
  3. The timecode appears on your terminal

Example config:
  server_host: 127.0.0.1
  server_port: 8080
  target_name: TimecodeDisplay
  show_frame: true
  keep_updated: true`,
	// No Run/RunE means this just shows help when called without subcommands
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this timecast binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("timecast %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}
