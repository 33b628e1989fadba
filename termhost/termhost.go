// Package termhost is a terminal-backed render host for timecast.
//
// It implements [display.Host] over named in-memory targets whose text is
// drawn as a styled, in-place updated line on an io.Writer. Visibility is
// togglable per target, which also makes the host convenient in tests and
// a reasonable default for embedders without a rendering environment of
// their own.
package termhost

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/jpalmerr/timecast/display"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(1).
			PaddingRight(1)

	textStyle = lipgloss.NewStyle().Bold(true)
)

// Host renders display targets to a terminal.
//
// Host is safe for concurrent use; the scheduler's main loop and test
// goroutines may touch it at the same time.
type Host struct {
	mu      sync.Mutex
	out     io.Writer
	targets map[string]*target
}

type target struct {
	name    string
	visible bool
	text    string
}

// New creates a [Host] writing to out.
func New(out io.Writer) *Host {
	return &Host{
		out:     out,
		targets: make(map[string]*target),
	}
}

// AddTarget registers a named, visible target. Adding an existing name is
// a no-op.
func (h *Host) AddTarget(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.targets[name]; ok {
		return
	}
	h.targets[name] = &target{name: name, visible: true}
}

// SetVisible toggles a target's visibility. Unknown names are ignored.
func (h *Host) SetVisible(name string, visible bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.targets[name]; ok {
		t.visible = visible
	}
}

// Text returns the target's current text, empty for unknown names.
func (h *Host) Text(name string) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.targets[name]; ok {
		return t.text
	}
	return ""
}

// FindTarget implements [display.Host].
func (h *Host) FindTarget(name string) (display.Target, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t, ok := h.targets[name]
	return t, ok
}

// IsVisible implements [display.Host].
func (h *Host) IsVisible(dt display.Target) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return dt.(*target).visible
}

// SetText implements [display.Host]: it stores the text and redraws the
// target's line in place.
func (h *Host) SetText(dt display.Target, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t := dt.(*target)
	t.text = text

	// \r + erase-to-end keeps the line updating in place
	fmt.Fprintf(h.out, "\r%s %s\x1b[K",
		labelStyle.Render(t.name),
		textStyle.Render(text),
	)
}
