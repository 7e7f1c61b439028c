package store

import "github.com/metorial/homewatch/internal/models"

type DeviceRegistry interface {
	ListDevices() []models.Device
	MutateDevice(id string, patch models.DevicePatch) (uint64, bool, error)
}

type AlertStore interface {
	ListAlerts() []models.Alert
	MarkRead(id string) (uint64, bool)
	MarkResolved(id string) (uint64, bool)
	DeleteAlert(id string) (uint64, bool)
}

type AutomationStore interface {
	ListRules() []models.AutomationRule
	ListScenes() []models.Scene
	ToggleAutomation(id string) (uint64, bool)
	ActivateScene(id string) (uint64, bool)
}

var (
	_ DeviceRegistry  = (*Store)(nil)
	_ AlertStore      = (*Store)(nil)
	_ AutomationStore = (*Store)(nil)
)

func (s *Store) ListDevices() []models.Device {
	return s.Snapshot().Devices
}

func (s *Store) ListAlerts() []models.Alert {
	return s.Snapshot().Alerts
}

func (s *Store) ListRules() []models.AutomationRule {
	return s.Snapshot().Rules
}

func (s *Store) ListScenes() []models.Scene {
	return s.Snapshot().Scenes
}
