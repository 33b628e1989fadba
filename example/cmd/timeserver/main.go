// Standalone timecode server for timecast clients.
//
// Usage:
//
//	go run ./example/cmd/timeserver
//
// Then in another terminal:
//
//	go run ./cmd/timecast run
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/timecast/internal/timeserver"
)

var (
	port       int
	defaultFPS int
	ntpServer  string
	debug      bool
)

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var rootCmd = &cobra.Command{
	Use:   "timeserver",
	Short: "A timecode server for timecast",
	Long: `Serve the current time as a timecode over HTTP.

Clients poll GET /timecode for a JSON display_text and may push their
formatting preferences via POST /config. Time is disciplined by NTP,
falling back to system time when the NTP server is unreachable.`,
	RunE: runServer,
}

func init() {
	rootCmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	rootCmd.Flags().IntVarP(&defaultFPS, "fps", "f", 30, "default frames per second")
	rootCmd.Flags().StringVar(&ntpServer, "ntp", "pool.ntp.org", "NTP server for time synchronization")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable verbose logging")
}

func runServer(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fmt.Println(bannerStyle.Render(fmt.Sprintf("timecode server starting on :%d", port)))
	fmt.Printf("default fps: %d (clients can override via /config)\n", defaultFPS)

	service := timeserver.NewService(defaultFPS)
	provider := timeserver.NewNTPProvider(ntpServer, logger)
	service.SetTimeProvider(provider.Now)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := timeserver.NewServer(service, port, logger)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("timecode server stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
