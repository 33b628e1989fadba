package timecast

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jpalmerr/timecast/display"
	"github.com/jpalmerr/timecast/internal/dispatch"
	"github.com/jpalmerr/timecast/internal/poller"
	"github.com/jpalmerr/timecast/internal/timers"
)

const (
	// pollInterval is the cadence of the timecode poll tick.
	pollInterval = 1000 * time.Millisecond

	// drainInterval is the cadence of the result-queue drain. It runs
	// faster than the poll so results are handled promptly after arrival.
	drainInterval = 100 * time.Millisecond

	// configRetryInterval is the cadence of config push retries while the
	// server has not acknowledged the current settings.
	configRetryInterval = 5000 * time.Millisecond
)

// Timecast polls a timecode server and renders the returned text into a
// named display target.
//
// All state — settings, poll state, the display sink — is owned by a
// single main loop goroutine run by [Timecast.Start]. HTTP calls happen on
// ephemeral worker goroutines and hand their results back through the
// dispatcher's queue, which the main loop drains on a recurring timer.
// Nothing outside that loop mutates shared state.
//
// The typical lifecycle is:
//
//	tc, err := timecast.New(
//	    timecast.WithHost(host),
//	    timecast.WithSettings(settings),
//	)
//	if err != nil {
//	    slog.Error("failed to create timecast", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	tc.Start(ctx) // blocks until context cancelled
type Timecast struct {
	logger *slog.Logger

	client *poller.Client
	disp   *dispatch.Dispatcher
	sink   *display.Sink
	timers *timers.Registry

	// calls is the main loop's inbox: timer callbacks and public API
	// requests are posted here and executed one at a time.
	calls chan func()
	done  chan struct{}

	mu      sync.Mutex
	started bool

	// owned by the main loop
	settings Settings
	state    pollState
	synced   bool

	// fixed intervals, held as fields so tests can shorten them
	pollEvery        time.Duration
	drainEvery       time.Duration
	configRetryEvery time.Duration
}

// New creates a [Timecast] with the given options.
//
// A render host is required via [WithHost]. Settings default to
// [DefaultSettings] and are validated here.
func New(opts ...Option) (*Timecast, error) {
	cfg := &tcConfig{settings: DefaultSettings()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.host == nil {
		return nil, errors.New("a render host is required (use WithHost)")
	}
	if err := cfg.settings.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.logger
	if logger == nil {
		level := slog.LevelInfo
		if cfg.settings.Debug {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	tc := &Timecast{
		logger:           logger,
		client:           poller.NewClient(logger),
		disp:             dispatch.New(logger),
		sink:             display.NewSink(cfg.host, cfg.settings.TargetName, logger),
		calls:            make(chan func(), 64),
		done:             make(chan struct{}),
		settings:         cfg.settings,
		state:            stateIdle,
		pollEvery:        pollInterval,
		drainEvery:       drainInterval,
		configRetryEvery: configRetryInterval,
	}
	tc.timers = timers.NewRegistry(tc.post)
	return tc, nil
}

// Start arms the poll and drain timers and runs the main loop.
//
// Start blocks until ctx is cancelled, then disarms all timers and returns
// nil. If ctx is nil, context.Background() is used. Start may be called at
// most once.
func (tc *Timecast) Start(ctx context.Context) error {
	tc.mu.Lock()
	if tc.started {
		tc.mu.Unlock()
		return errors.New("timecast already started")
	}
	tc.started = true
	tc.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	tc.logger.Info("timecast starting",
		"server", tc.settings.ServerURL(""),
		"target", tc.settings.TargetName,
	)

	tc.state = statePolling
	tc.timers.Arm(timers.Poll, tc.pollEvery, tc.tick)
	tc.timers.Arm(timers.Drain, tc.drainEvery, tc.drainResults)
	if tc.settings.KeepUpdated {
		tc.pushConfig()
	}

	for {
		select {
		case <-ctx.Done():
			tc.timers.DisarmAll()
			close(tc.done)
			tc.client.Close()
			tc.logger.Info("timecast stopped")
			return nil
		case fn := <-tc.calls:
			fn()
		}
	}
}

// ApplySettings replaces the configuration wholesale.
//
// The update is validated here and applied on the main loop: both the poll
// and drain timers are disarmed and re-armed unconditionally so a changed
// host, port, or target takes effect on the next tick. Runtime state other
// than timer handles and the config-synced flag is preserved.
func (tc *Timecast) ApplySettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	tc.post(func() { tc.applySettings(s) })
	return nil
}

// Reconnect manually resumes polling after the target went missing.
//
// It re-arms the poll timer and issues one poll immediately rather than
// waiting for the next tick. This is the only way back from the
// target-unavailable state; there is no automatic re-check.
func (tc *Timecast) Reconnect() {
	tc.post(tc.reconnect)
}

// post hands fn to the main loop. Calls posted after shutdown are dropped.
func (tc *Timecast) post(fn func()) {
	select {
	case tc.calls <- fn:
	case <-tc.done:
	}
}
