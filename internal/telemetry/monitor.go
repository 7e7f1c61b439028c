package telemetry

import (
	"fmt"
	"sync/atomic"
	"time"
)

type Connectivity uint8

const (
	Connected Connectivity = iota
	Stale
	Disconnected
	numConnectivity
)

var connectivityNames = [...]string{"connected", "stale", "disconnected"}

var _ = [1]struct{}{}[len(connectivityNames)-int(numConnectivity)]

func (c Connectivity) String() string {
	if c >= numConnectivity {
		return connectivityNames[Disconnected]
	}
	return connectivityNames[c]
}

func (c Connectivity) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Connectivity) UnmarshalText(text []byte) error {
	for i, name := range connectivityNames {
		if name == string(text) {
			*c = Connectivity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown connectivity %q", text)
}

const (
	DefaultStaleAfter        = 15 * time.Second
	DefaultDisconnectedAfter = 60 * time.Second
)

// Monitor classifies telemetry freshness from the time of the last
// successful reading. Nothing observed yet counts as disconnected.
type Monitor struct {
	staleAfter        time.Duration
	disconnectedAfter time.Duration
	last              atomic.Int64
}

func NewMonitor(staleAfter, disconnectedAfter time.Duration) *Monitor {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if disconnectedAfter < staleAfter {
		disconnectedAfter = staleAfter
	}
	return &Monitor{staleAfter: staleAfter, disconnectedAfter: disconnectedAfter}
}

func (m *Monitor) Observe(t time.Time) {
	m.last.Store(t.UnixNano())
}

func (m *Monitor) LastObserved() (time.Time, bool) {
	n := m.last.Load()
	if n == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, n), true
}

func (m *Monitor) State(now time.Time) Connectivity {
	last, ok := m.LastObserved()
	if !ok {
		return Disconnected
	}
	age := now.Sub(last)
	switch {
	case age <= m.staleAfter:
		return Connected
	case age <= m.disconnectedAfter:
		return Stale
	default:
		return Disconnected
	}
}

func (m *Monitor) Connected(now time.Time) bool {
	return m.State(now) == Connected
}
