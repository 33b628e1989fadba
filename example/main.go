// Example of embedding timecast as a library.
//
// Run a timecode server first:
//
//	go run ./example/cmd/timeserver
//
// Then in another terminal:
//
//	go run ./example
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpalmerr/timecast"
	"github.com/jpalmerr/timecast/termhost"
)

func main() {
	settings := timecast.DefaultSettings()
	settings.ShowFrame = true
	settings.PreText = "TC "
	settings.KeepUpdated = true

	host := termhost.New(os.Stdout)
	host.AddTarget(settings.TargetName)

	tc, err := timecast.New(
		timecast.WithSettings(settings),
		timecast.WithHost(host),
	)
	if err != nil {
		slog.Error("failed to create timecast", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tc.Start(ctx); err != nil {
		slog.Error("timecast failed", "error", err)
		os.Exit(1)
	}
}
