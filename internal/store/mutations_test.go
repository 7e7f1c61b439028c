package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metorial/homewatch/internal/models"
)

func findAlert(t *testing.T, alerts []models.Alert, id string) models.Alert {
	t.Helper()
	i := alertIndex(alerts, id)
	require.GreaterOrEqual(t, i, 0, "alert %s not found", id)
	return alerts[i]
}

func TestMarkRead(t *testing.T) {
	s := NewSeeded()

	version, ok := s.MarkRead("1")
	assert.True(t, ok)
	assert.Equal(t, uint64(1), version)

	a := findAlert(t, s.Snapshot().Alerts, "1")
	assert.True(t, a.IsRead)
	assert.False(t, a.IsResolved)
}

func TestMarkResolvedImpliesRead(t *testing.T) {
	for _, id := range []string{"1", "2", "3", "4"} {
		t.Run(id, func(t *testing.T) {
			s := NewSeeded()
			_, ok := s.MarkResolved(id)
			require.True(t, ok)

			a := findAlert(t, s.Snapshot().Alerts, id)
			assert.True(t, a.IsResolved)
			assert.True(t, a.IsRead)
		})
	}
}

func TestDeleteAlertRemovesExactlyOne(t *testing.T) {
	s := NewSeeded()
	before := s.Snapshot()

	_, ok := s.DeleteAlert("3")
	require.True(t, ok)
	after := s.Snapshot()

	require.Len(t, after.Alerts, len(before.Alerts)-1)
	assert.Equal(t, -1, alertIndex(after.Alerts, "3"))

	var rest []models.Alert
	for _, a := range before.Alerts {
		if a.ID != "3" {
			rest = append(rest, a)
		}
	}
	assert.Equal(t, rest, after.Alerts)
	assert.Equal(t, before.Devices, after.Devices)
	assert.Equal(t, before.Rules, after.Rules)
	assert.Equal(t, before.Scenes, after.Scenes)
	assert.Equal(t, before.Activity, after.Activity)
	assert.Equal(t, before.Health, after.Health)
}

func TestToggleAutomation(t *testing.T) {
	s := NewSeeded()

	_, ok := s.ToggleAutomation("3")
	require.True(t, ok)
	assert.True(t, s.Snapshot().Rules[2].IsActive)

	version, ok := s.ToggleAutomation("3")
	require.True(t, ok)
	assert.False(t, s.Snapshot().Rules[2].IsActive)
	assert.Equal(t, uint64(2), version)
}

func TestActivateScene(t *testing.T) {
	s := NewSeeded()

	_, ok := s.ActivateScene("1")
	require.True(t, ok)
	assert.Equal(t, "Just now", s.Snapshot().Scenes[0].LastActivated)
	assert.Equal(t, "1 hour ago", s.Snapshot().Scenes[1].LastActivated)
}

func TestMutateDevice(t *testing.T) {
	s := NewSeeded()
	online := models.StatusOnline
	seen := "Just now"

	_, ok, err := s.MutateDevice("4", models.DevicePatch{Status: &online, LastSeen: &seen})
	require.NoError(t, err)
	require.True(t, ok)

	d := s.Snapshot().Devices[3]
	assert.Equal(t, models.StatusOnline, d.Status)
	assert.Equal(t, "Just now", d.LastSeen)
	assert.Equal(t, 0, *d.Brightness)
}

func TestUnknownIDIsNoOp(t *testing.T) {
	s := NewSeeded()
	notified := false
	s.Subscribe(func(Change) { notified = true })
	before := s.Snapshot()

	brightness := 10
	ops := map[string]func(string) (uint64, bool){
		"MarkRead":         s.MarkRead,
		"MarkResolved":     s.MarkResolved,
		"DeleteAlert":      s.DeleteAlert,
		"ToggleAutomation": s.ToggleAutomation,
		"ActivateScene":    s.ActivateScene,
		"MutateDevice": func(id string) (uint64, bool) {
			version, ok, _ := s.MutateDevice(id, models.DevicePatch{Brightness: &brightness})
			return version, ok
		},
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			version, ok := op("missing")
			assert.False(t, ok)
			assert.Equal(t, uint64(0), version)
		})
	}

	assert.False(t, notified)
	assert.Same(t, before, s.Snapshot())
}

func TestMutateDeviceRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		patch func() models.DevicePatch
		want  error
	}{
		{"brightness above 100", func() models.DevicePatch { v := 500; return models.DevicePatch{Brightness: &v} }, models.ErrBrightnessRange},
		{"brightness below 0", func() models.DevicePatch { v := -1; return models.DevicePatch{Brightness: &v} }, models.ErrBrightnessRange},
		{"battery below 0", func() models.DevicePatch { v := -40; return models.DevicePatch{Battery: &v} }, models.ErrBatteryRange},
		{"battery above 100", func() models.DevicePatch { v := 101; return models.DevicePatch{Battery: &v} }, models.ErrBatteryRange},
		{"unknown status", func() models.DevicePatch {
			v := models.DeviceStatusTag("Online")
			return models.DevicePatch{Status: &v}
		}, models.ErrUnknownDeviceStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeeded()
			before := s.Snapshot()

			version, ok, err := s.MutateDevice("1", tt.patch())
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			assert.False(t, ok)
			assert.Equal(t, uint64(0), version)
			assert.Same(t, before, s.Snapshot())
		})
	}
}

func TestMutateDeviceBoundaryValues(t *testing.T) {
	s := NewSeeded()
	zero, full := 0, 100

	_, ok, err := s.MutateDevice("5", models.DevicePatch{Brightness: &zero, Battery: &full})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 100, *s.Snapshot().Devices[4].Battery)
}

func TestMutateDeviceEmptyPatchPublishesNothing(t *testing.T) {
	s := NewSeeded()
	notified := false
	s.Subscribe(func(Change) { notified = true })
	before := s.Snapshot()

	version, ok, err := s.MutateDevice("1", models.DevicePatch{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), version)
	assert.False(t, notified)
	assert.Same(t, before, s.Snapshot())
}
