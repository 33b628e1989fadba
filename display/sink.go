// Package display pushes final text to a render target owned by an
// external host, suppressing redundant writes.
//
// The host — the environment that owns named display surfaces — is modeled
// by the [Host] interface so the sink can run against OBS-style frontends,
// a terminal, or a test fake without changes.
package display

import "log/slog"

// Target is an opaque handle to a named render surface. Only the [Host]
// that produced it knows how to interpret it.
type Target any

// Host is the render-target collaborator interface.
type Host interface {
	// FindTarget looks up a render surface by name. The second return is
	// false when no surface with that name exists.
	FindTarget(name string) (Target, bool)

	// IsVisible reports whether the target is active in any currently
	// composed scene.
	IsVisible(target Target) bool

	// SetText replaces the target's text content.
	SetText(target Target, text string)
}

// Sink deduplicates and applies text updates to one named target.
//
// Sink also owns the current error message: when set, it is rendered in
// place of whatever text the caller supplies, so error display always takes
// precedence over computed content.
//
// Sink is not safe for concurrent use; it belongs to the scheduler's main
// loop and must only be touched from there.
type Sink struct {
	host   Host
	logger *slog.Logger

	targetName string
	errMsg     string
	last       string
}

// NewSink creates a [Sink] rendering into the target named targetName.
func NewSink(host Host, targetName string, logger *slog.Logger) *Sink {
	return &Sink{host: host, targetName: targetName, logger: logger}
}

// SetTargetName redirects the sink to a different named target. The
// dedupe state is kept: if the new target should show the same string, no
// write is forced.
func (s *Sink) SetTargetName(name string) {
	s.targetName = name
}

// TargetName returns the name of the target the sink renders into.
func (s *Sink) TargetName() string {
	return s.targetName
}

// SetError sets the error message that overrides rendered content.
func (s *Sink) SetError(msg string) {
	s.errMsg = msg
}

// ClearError removes the error override.
func (s *Sink) ClearError() {
	s.errMsg = ""
}

// ErrorMessage returns the current error override, empty if none.
func (s *Sink) ErrorMessage() string {
	return s.errMsg
}

// LastDisplayed returns the last string actually written to the target.
func (s *Sink) LastDisplayed() string {
	return s.last
}

// TargetVisible reports whether the sink's target exists and is visible.
func (s *Sink) TargetVisible() bool {
	target, ok := s.host.FindTarget(s.targetName)
	return ok && s.host.IsVisible(target)
}

// Render pushes text to the target.
//
// If an error message is set it is substituted for text. If the resulting
// final string equals what was last written, the call is a no-op. A
// missing target is reported at debug level and tolerated; it never
// propagates a failure to the caller.
func (s *Sink) Render(text string) {
	final := text
	if s.errMsg != "" {
		final = s.errMsg
	}
	if final == s.last {
		return
	}

	target, ok := s.host.FindTarget(s.targetName)
	if !ok {
		s.logger.Debug("render target not found", "target", s.targetName)
		return
	}

	s.host.SetText(target, final)
	s.last = final
}
