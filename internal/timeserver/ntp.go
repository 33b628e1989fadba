package timeserver

import (
	"log/slog"
	"sync"
	"time"

	"github.com/beevik/ntp"
)

// ntpResyncInterval is how long a measured clock offset stays fresh.
const ntpResyncInterval = 10 * time.Minute

// NTPProvider is a [TimeProvider] disciplined by an NTP server.
//
// The clock offset is queried lazily and cached for ten minutes; when the
// query fails the provider logs a warning and falls back to system time,
// so an unreachable NTP server never breaks the timecode.
type NTPProvider struct {
	server string
	logger *slog.Logger

	mu       sync.Mutex
	offset   time.Duration
	lastSync time.Time
}

// NewNTPProvider creates a provider syncing against server
// (e.g. "pool.ntp.org").
func NewNTPProvider(server string, logger *slog.Logger) *NTPProvider {
	return &NTPProvider{server: server, logger: logger}
}

// Now returns the NTP-adjusted current time.
func (p *NTPProvider) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastSync.IsZero() || time.Since(p.lastSync) > ntpResyncInterval {
		resp, err := ntp.Query(p.server)
		if err != nil {
			p.logger.Warn("ntp sync failed, using system time",
				"server", p.server, "error", err)
		} else {
			p.offset = resp.ClockOffset
			p.lastSync = time.Now()
		}
	}
	return time.Now().Add(p.offset)
}
