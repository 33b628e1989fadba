package timecast

import (
	"encoding/json"
	"fmt"

	"github.com/jpalmerr/timecast/internal/poller"
	"github.com/jpalmerr/timecast/internal/timers"
)

// pollState is the scheduler's position in the poll/recover cycle.
type pollState int

const (
	// stateIdle means the scheduler has not been started.
	stateIdle pollState = iota

	// statePolling means the poll timer is armed and ticking.
	statePolling

	// stateTargetUnavailable means the display target went missing or
	// hidden and polling is halted until Reconnect.
	stateTargetUnavailable
)

// targetMissingMessage is shown when the display target cannot be found or
// is hidden in every composed scene.
const targetMissingMessage = "TARGET SOURCE MISSING OR HIDDEN?"

// serverConfig is the settings payload pushed to the server's /config
// endpoint when KeepUpdated is set. Field names follow the server's wire
// contract.
type serverConfig struct {
	SourceName string `json:"source_name"`
	TimeMode   string `json:"time_mode"`
	ShowFrame  bool   `json:"show_frame"`
	ShowDate   bool   `json:"show_date"`
	ShowUTC    bool   `json:"show_utc"`
	PreText    string `json:"pre_text"`
	PostText   string `json:"post_text"`
	FPS        int    `json:"fps"`
}

// tick is one poll timer callback. It runs on the main loop.
//
// Polling with no place to render is wasted work, so a missing or hidden
// target halts the poll timer; every other failure is recovered in the
// result handler and never stops the loop.
func (tc *Timecast) tick() {
	if !tc.sink.TargetVisible() {
		tc.sink.SetError(targetMissingMessage)
		tc.sink.Render("")
		tc.timers.Disarm(timers.Poll)
		tc.state = stateTargetUnavailable
		tc.logger.Warn("display target missing or hidden, polling halted",
			"target", tc.sink.TargetName())
		return
	}

	url := tc.settings.ServerURL("/timecode")
	tc.disp.Dispatch(
		func() poller.Outcome { return tc.client.Get(url) },
		tc.handleTimecode,
	)
}

// drainResults is the drain timer callback. It runs on the main loop and
// empties the dispatcher's result queue.
func (tc *Timecast) drainResults() {
	tc.disp.Drain()
}

// handleTimecode consumes one poll outcome on the main loop.
//
// Failures never propagate: every error path converts into a display error
// string and renders it in place of content.
func (tc *Timecast) handleTimecode(out poller.Outcome) {
	if !out.OK() {
		tc.sink.SetError(serverErrorMessage(out))
		tc.sink.Render("")
		return
	}

	var payload struct {
		DisplayText string `json:"display_text"`
	}
	if err := json.Unmarshal(out.Body, &payload); err != nil {
		tc.sink.SetError(fmt.Sprintf("SERVER RESPONSE ERROR: %v", err))
		tc.sink.Render("")
		return
	}

	// an absent display_text field renders as empty, not as an error
	tc.sink.ClearError()
	tc.sink.Render(payload.DisplayText)
}

// serverErrorMessage maps a failed outcome onto the display error string.
func serverErrorMessage(out poller.Outcome) string {
	if out.Err != nil {
		return fmt.Sprintf("SERVER ERROR: %v", out.Err)
	}
	return fmt.Sprintf("SERVER ERROR: HTTP %d", out.Status)
}

// applySettings installs a new settings record. It runs on the main loop.
func (tc *Timecast) applySettings(s Settings) {
	tc.settings = s
	tc.sink.SetTargetName(s.TargetName)

	// unconditional disarm-then-arm: changed host/port/target take effect
	// on the next tick even when the values are identical
	tc.timers.Disarm(timers.Poll)
	tc.timers.Disarm(timers.Drain)
	tc.timers.Arm(timers.Poll, tc.pollEvery, tc.tick)
	tc.timers.Arm(timers.Drain, tc.drainEvery, tc.drainResults)
	tc.state = statePolling

	// the server no longer holds these settings; push again if asked to
	tc.synced = false
	tc.timers.Disarm(timers.ConfigSync)
	if s.KeepUpdated {
		tc.pushConfig()
	}

	tc.logger.Info("settings applied",
		"server", s.ServerURL(""),
		"target", s.TargetName,
		"keep_updated", s.KeepUpdated,
	)
}

// reconnect re-arms the poll timer and polls once immediately. It runs on
// the main loop.
func (tc *Timecast) reconnect() {
	tc.timers.Disarm(timers.Poll)
	tc.timers.Arm(timers.Poll, tc.pollEvery, tc.tick)
	tc.state = statePolling
	tc.logger.Info("reconnect requested, polling resumed")
	tc.tick()
}

// pushConfig sends the formatting settings to the server. It runs on the
// main loop; the POST itself happens on a worker.
func (tc *Timecast) pushConfig() {
	s := tc.settings
	payload := serverConfig{
		SourceName: s.TargetName,
		TimeMode:   s.TimeMode,
		ShowFrame:  s.ShowFrame,
		ShowDate:   s.ShowDate,
		ShowUTC:    s.ShowUTC,
		PreText:    s.PreText,
		PostText:   s.PostText,
		FPS:        s.FPS,
	}
	url := s.ServerURL("/config")
	tc.disp.Dispatch(
		func() poller.Outcome { return tc.client.PostJSON(url, payload) },
		tc.handleConfigPush,
	)
}

// handleConfigPush consumes a config push outcome on the main loop. A
// failed push arms the retry timer; a successful one disarms it.
func (tc *Timecast) handleConfigPush(out poller.Outcome) {
	if out.OK() {
		tc.synced = true
		tc.timers.Disarm(timers.ConfigSync)
		tc.logger.Info("server config synced")
		return
	}

	tc.logger.Warn("server config push failed, will retry",
		"outcome", out.Kind.String(),
		"error", out.Err,
	)
	tc.timers.Arm(timers.ConfigSync, tc.configRetryEvery, tc.pushConfig)
}
