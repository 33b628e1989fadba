package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/timecast"
	"github.com/jpalmerr/timecast/config"
	"github.com/jpalmerr/timecast/termhost"
)

// runCmd starts polling and renders to the terminal.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Poll the timecode server and render to the terminal",
	Long: `Poll the timecode server and render the timecode to the terminal.

Without a config file the defaults are used: server 127.0.0.1:8080,
target "TimecodeDisplay". The process runs until interrupted (Ctrl+C)
or SIGTERM.

Example:
  timecast run
  timecast run -c timecast.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (optional)")
}

// newLogger creates a JSON logger for CLI use.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func runRun(cmd *cobra.Command, args []string) error {
	settings := timecast.DefaultSettings()
	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		settings = cfg.Settings()
	}

	logger := newLogger(settings.Debug)

	host := termhost.New(os.Stdout)
	host.AddTarget(settings.TargetName)

	tc, err := timecast.New(
		timecast.WithSettings(settings),
		timecast.WithHost(host),
		timecast.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create timecast: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return tc.Start(ctx)
}
