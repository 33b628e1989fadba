package dispatch

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jpalmerr/timecast/internal/poller"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// waitPending polls until the dispatcher has queued n results or the
// deadline expires.
func waitPending(t *testing.T, d *Dispatcher, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for d.Pending() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d pending results, have %d", n, d.Pending())
		}
		time.Sleep(time.Millisecond)
	}
}

// TestDispatcher_ResultDeliveredViaDrain verifies the basic handoff: the
// handler runs during Drain, on the draining goroutine, with the worker's
// outcome.
func TestDispatcher_ResultDeliveredViaDrain(t *testing.T) {
	d := New(testLogger())

	var got poller.Outcome
	d.Dispatch(
		func() poller.Outcome {
			return poller.Outcome{Kind: poller.Success, Status: 200, Body: []byte("tick")}
		},
		func(o poller.Outcome) { got = o },
	)

	waitPending(t, d, 1)
	if n := d.Drain(); n != 1 {
		t.Fatalf("Drain returned %d, want 1", n)
	}
	if !got.OK() || string(got.Body) != "tick" {
		t.Errorf("handler received wrong outcome: %+v", got)
	}
}

// TestDispatcher_DrainEmptyQueueReturnsImmediately verifies that draining
// with nothing queued is a cheap no-op.
func TestDispatcher_DrainEmptyQueueReturnsImmediately(t *testing.T) {
	d := New(testLogger())
	if n := d.Drain(); n != 0 {
		t.Fatalf("Drain of empty queue returned %d", n)
	}
}

// TestDispatcher_FIFOOrder verifies that results are handled in the order
// they arrived on the queue.
func TestDispatcher_FIFOOrder(t *testing.T) {
	d := New(testLogger())

	// workers complete in a controlled order: each waits for the previous
	// one's result to be queued before finishing
	gates := make([]chan struct{}, 5)
	for i := range gates {
		gates[i] = make(chan struct{})
	}
	close(gates[0])

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		d.Dispatch(
			func() poller.Outcome {
				<-gates[i]
				return poller.Outcome{Kind: poller.Success, Status: i}
			},
			func(o poller.Outcome) { order = append(order, o.Status) },
		)
	}
	for i := 1; i < 5; i++ {
		waitPending(t, d, i)
		close(gates[i])
	}

	waitPending(t, d, 5)
	d.Drain()

	for i, got := range order {
		if got != i {
			t.Fatalf("results out of order: %v", order)
		}
	}
}

// TestDispatcher_ConcurrentProducers verifies that many workers can push
// results concurrently without loss.
func TestDispatcher_ConcurrentProducers(t *testing.T) {
	d := New(testLogger())

	const workers = 50
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < workers; i++ {
		d.Dispatch(
			func() poller.Outcome {
				start.Wait() // maximize contention
				return poller.Outcome{Kind: poller.Success}
			},
			func(poller.Outcome) {},
		)
	}
	start.Done()

	waitPending(t, d, workers)

	total := 0
	deadline := time.Now().Add(2 * time.Second)
	for total < workers && time.Now().Before(deadline) {
		total += d.Drain()
		time.Sleep(time.Millisecond)
	}
	if total != workers {
		t.Fatalf("drained %d results, want %d", total, workers)
	}
}

// TestDispatcher_WorkerPanicBecomesUnexpectedOutcome verifies that a
// panicking call is converted to an Unexpected outcome with a correlation
// ID instead of crashing the process.
func TestDispatcher_WorkerPanicBecomesUnexpectedOutcome(t *testing.T) {
	d := New(testLogger())

	var got poller.Outcome
	d.Dispatch(
		func() poller.Outcome { panic("worker exploded") },
		func(o poller.Outcome) { got = o },
	)

	waitPending(t, d, 1)
	d.Drain()

	if got.Kind != poller.Unexpected {
		t.Fatalf("expected Unexpected outcome, got %s", got.Kind)
	}
	if got.Err == nil || !strings.Contains(got.Err.Error(), "correlation_id") {
		t.Errorf("panic outcome should carry a correlation ID, got %v", got.Err)
	}
}

// TestDispatcher_HandlerPanicDoesNotStopDrain verifies that one panicking
// handler does not prevent later queued handlers from running.
func TestDispatcher_HandlerPanicDoesNotStopDrain(t *testing.T) {
	d := New(testLogger())

	first := make(chan struct{})
	d.Dispatch(
		func() poller.Outcome { return poller.Outcome{Kind: poller.Success} },
		func(poller.Outcome) { close(first); panic("handler exploded") },
	)
	waitPending(t, d, 1)

	var secondRan bool
	d.Dispatch(
		func() poller.Outcome { return poller.Outcome{Kind: poller.Success} },
		func(poller.Outcome) { secondRan = true },
	)
	waitPending(t, d, 2)

	if n := d.Drain(); n != 2 {
		t.Fatalf("Drain returned %d, want 2", n)
	}
	select {
	case <-first:
	default:
		t.Fatal("first handler never ran")
	}
	if !secondRan {
		t.Fatal("handler after a panicking one was skipped")
	}
}
