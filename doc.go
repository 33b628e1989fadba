// Package timecast polls a timecode server over HTTP and renders the
// returned text into a named display target owned by a pluggable render
// host.
//
// # Quick Start
//
// Create a host, configure settings, and start with graceful shutdown:
//
//	host := termhost.New(os.Stdout)
//	host.AddTarget("TimecodeDisplay")
//
//	tc, _ := timecast.New(
//	    timecast.WithHost(host),
//	    timecast.WithSettings(timecast.DefaultSettings()),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	tc.Start(ctx) // blocks until context is cancelled
//
// # Behavior
//
// Every second the scheduler checks that the display target exists and is
// visible, then fetches GET /timecode from the configured server and
// renders the JSON display_text field. Network and parse failures never
// stop the loop; they render an error string in place of content. A
// missing or hidden target halts polling until [Timecast.Reconnect] is
// called.
//
// # Architecture
//
// The root package owns the poll state machine and a single-goroutine main
// loop. The display package defines the render host contract and the sink
// that writes to it. The termhost package provides a ready-made terminal
// render host. Internal packages (under internal/):
//
//   - internal/poller: HTTP client with fixed timeout and outcome classification
//   - internal/dispatch: worker-per-call dispatcher with a FIFO result queue
//   - internal/timers: idempotent role-keyed timer registry
//   - internal/timeserver: the timecode server the client polls
//
// The internal packages are not part of the public API and may change
// without notice.
package timecast
