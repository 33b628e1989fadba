package timers

import (
	"sync"
	"time"
)

// Role identifies a logical recurring timer. Timers are keyed by role
// rather than by callback identity, so re-arming the same role with a
// different closure never registers a duplicate.
type Role int

const (
	// Poll drives the scheduler's timecode poll tick.
	Poll Role = iota

	// Drain drives the dispatcher's result-queue drain.
	Drain

	// ConfigSync drives the retry loop for pushing settings to the server.
	ConfigSync
)

// String returns the role's name for logging.
func (r Role) String() string {
	switch r {
	case Poll:
		return "poll"
	case Drain:
		return "drain"
	case ConfigSync:
		return "config_sync"
	default:
		return "unknown"
	}
}

// Registry provides guarded start/stop of named recurring callbacks.
//
// Arm and Disarm are idempotent: arming an already-armed role is a no-op,
// as is disarming an unarmed one. Each method reports whether it actually
// changed state, so callers (and tests) can observe that the underlying
// ticker is started and stopped exactly once per transition.
//
// Callbacks are not invoked on the ticker goroutine. Each firing is handed
// to the submit function provided at construction, which is expected to
// run it on the owner's main loop. A tick already in flight when Disarm is
// called may still be submitted; the main loop serializes it either way.
//
// All methods are safe for concurrent use.
type Registry struct {
	submit func(func())

	mu     sync.Mutex
	active map[Role]chan struct{}
}

// NewRegistry creates a [Registry] whose timer callbacks are executed via
// submit. submit must not be nil.
func NewRegistry(submit func(func())) *Registry {
	return &Registry{
		submit: submit,
		active: make(map[Role]chan struct{}),
	}
}

// Arm starts a recurring timer for role, firing fn every interval.
//
// Returns true if the timer was started, false if the role was already
// armed (in which case the existing timer keeps its original interval
// and callback).
func (r *Registry) Arm(role Role, interval time.Duration, fn func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, armed := r.active[role]; armed {
		return false
	}

	stop := make(chan struct{})
	r.active[role] = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				r.submit(fn)
			}
		}
	}()

	return true
}

// Disarm stops the timer for role.
//
// Returns true if a timer was stopped, false if the role was not armed.
func (r *Registry) Disarm(role Role) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	stop, armed := r.active[role]
	if !armed {
		return false
	}
	close(stop)
	delete(r.active, role)
	return true
}

// Active reports whether role currently has an armed timer.
func (r *Registry) Active(role Role) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, armed := r.active[role]
	return armed
}

// DisarmAll stops every armed timer. Used at unload for clean teardown.
func (r *Registry) DisarmAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for role, stop := range r.active {
		close(stop)
		delete(r.active, role)
	}
}
