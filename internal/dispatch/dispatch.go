// Package dispatch runs HTTP calls on worker goroutines and hands their
// results back to the owner's main loop through a FIFO queue.
//
// The dispatcher is the only synchronization point between workers and the
// main loop: workers push completed results onto a lock-protected queue and
// never touch shared state directly; the main loop empties the queue at a
// fixed cadence via [Dispatcher.Drain] and runs each handler synchronously.
// Pushing never blocks a worker and draining an empty queue returns
// immediately.
package dispatch

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"github.com/jpalmerr/timecast/internal/poller"
)

// Call performs a blocking HTTP request and returns its classified outcome.
// It runs on a worker goroutine.
type Call func() poller.Outcome

// Handler consumes a completed outcome. It runs on whichever goroutine
// calls [Dispatcher.Drain], never on a worker.
type Handler func(poller.Outcome)

// pending pairs a completed outcome with the handler that asked for it.
// Instances are ephemeral: created by a worker, consumed exactly once by
// the drain.
type pending struct {
	outcome poller.Outcome
	handler Handler
}

// Dispatcher decouples blocking HTTP calls from the main loop.
//
// Each [Dispatcher.Dispatch] spawns one worker goroutine; there is no
// pooling or backpressure because the scheduler issues at most one poll per
// tick, so outstanding requests are naturally capped. Results are delivered
// in queue-arrival order, which is completion order rather than dispatch
// order. A call that outlives its timeout completes late and is still
// delivered; stale results are not discarded.
type Dispatcher struct {
	logger *slog.Logger

	mu    sync.Mutex
	queue []pending
}

// New creates a [Dispatcher]. logger is used for panic recovery reports.
func New(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Dispatch runs call on a new worker goroutine and queues its result for a
// later [Dispatcher.Drain]. It returns immediately. onResult is never
// invoked on the worker.
func (d *Dispatcher) Dispatch(call Call, onResult Handler) {
	go func() {
		out := d.safeCall(call)

		d.mu.Lock()
		d.queue = append(d.queue, pending{outcome: out, handler: onResult})
		d.mu.Unlock()
	}()
}

// Drain pops every currently queued result and invokes its handler in FIFO
// order. It never blocks: results queued while a drain is running are
// picked up by the next one. Returns the number of handlers invoked.
func (d *Dispatcher) Drain() int {
	d.mu.Lock()
	batch := d.queue
	d.queue = nil
	d.mu.Unlock()

	for _, p := range batch {
		d.invokeSafe(p)
	}
	return len(batch)
}

// Pending returns the number of queued, undrained results.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// safeCall runs a worker call with panic recovery. A panicking call is
// converted to an Unexpected outcome carrying a correlation ID; the full
// stack is logged server-side under the same ID.
func (d *Dispatcher) safeCall(call Call) (out poller.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			d.logger.Error("dispatch worker panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			out = poller.Outcome{
				Kind: poller.Unexpected,
				Err:  fmt.Errorf("worker panic (correlation_id: %s)", correlationID),
			}
		}
	}()
	return call()
}

// invokeSafe runs a result handler with panic recovery so one bad handler
// cannot take down the main loop.
func (d *Dispatcher) invokeSafe(p pending) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			d.logger.Error("result handler panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	p.handler(p.outcome)
}
