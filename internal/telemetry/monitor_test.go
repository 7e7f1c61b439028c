package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonitorStates(t *testing.T) {
	m := NewMonitor(15*time.Second, time.Minute)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, Disconnected, m.State(base), "nothing observed yet")

	m.Observe(base)
	tests := []struct {
		after time.Duration
		want  Connectivity
	}{
		{0, Connected},
		{15 * time.Second, Connected},
		{16 * time.Second, Stale},
		{time.Minute, Stale},
		{time.Minute + time.Second, Disconnected},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.State(base.Add(tt.after)), "after %s", tt.after)
	}

	m.Observe(base.Add(2 * time.Minute))
	assert.True(t, m.Connected(base.Add(2*time.Minute+time.Second)))
}

func TestMonitorLastObserved(t *testing.T) {
	m := NewMonitor(0, 0)
	_, ok := m.LastObserved()
	assert.False(t, ok)

	now := time.Now()
	m.Observe(now)
	last, ok := m.LastObserved()
	assert.True(t, ok)
	assert.True(t, last.Equal(now))
}

func TestMonitorDefaults(t *testing.T) {
	m := NewMonitor(0, 0)
	assert.Equal(t, DefaultStaleAfter, m.staleAfter)
	assert.Equal(t, DefaultStaleAfter, m.disconnectedAfter)
}

func TestConnectivityJSON(t *testing.T) {
	b, _ := json.Marshal(map[string]Connectivity{"state": Stale})
	assert.JSONEq(t, `{"state":"stale"}`, string(b))
	assert.Equal(t, "disconnected", Connectivity(42).String())
}

func TestConnectivityUnmarshalText(t *testing.T) {
	var c Connectivity
	assert.NoError(t, c.UnmarshalText([]byte("stale")))
	assert.Equal(t, Stale, c)
	assert.Error(t, c.UnmarshalText([]byte("offline")))
}
