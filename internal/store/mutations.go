package store

import "github.com/metorial/homewatch/internal/models"

// Lookups are linear; collections stay small.

func alertIndex(alerts []models.Alert, id string) int {
	for i := range alerts {
		if alerts[i].ID == id {
			return i
		}
	}
	return -1
}

func ruleIndex(rules []models.AutomationRule, id string) int {
	for i := range rules {
		if rules[i].ID == id {
			return i
		}
	}
	return -1
}

func sceneIndex(scenes []models.Scene, id string) int {
	for i := range scenes {
		if scenes[i].ID == id {
			return i
		}
	}
	return -1
}

func deviceIndex(devices []models.Device, id string) int {
	for i := range devices {
		if devices[i].ID == id {
			return i
		}
	}
	return -1
}

// MarkRead sets isRead on the alert with the given id. An unknown id is a
// no-op and reports false. Every mutation also returns the store version
// current after it.
func (s *Store) MarkRead(id string) (uint64, bool) {
	return s.commit(ChangeAlerts, func(snap *Snapshot) bool {
		i := alertIndex(snap.Alerts, id)
		if i < 0 {
			return false
		}
		snap.Alerts[i].IsRead = true
		return true
	})
}

// MarkResolved resolves the alert and marks it read in the same update.
func (s *Store) MarkResolved(id string) (uint64, bool) {
	return s.commit(ChangeAlerts, func(snap *Snapshot) bool {
		i := alertIndex(snap.Alerts, id)
		if i < 0 {
			return false
		}
		snap.Alerts[i].IsResolved = true
		snap.Alerts[i].IsRead = true
		return true
	})
}

func (s *Store) DeleteAlert(id string) (uint64, bool) {
	return s.commit(ChangeAlerts, func(snap *Snapshot) bool {
		i := alertIndex(snap.Alerts, id)
		if i < 0 {
			return false
		}
		snap.Alerts = append(snap.Alerts[:i], snap.Alerts[i+1:]...)
		return true
	})
}

func (s *Store) ToggleAutomation(id string) (uint64, bool) {
	return s.commit(ChangeAutomations, func(snap *Snapshot) bool {
		i := ruleIndex(snap.Rules, id)
		if i < 0 {
			return false
		}
		snap.Rules[i].IsActive = !snap.Rules[i].IsActive
		return true
	})
}

func (s *Store) ActivateScene(id string) (uint64, bool) {
	return s.commit(ChangeScenes, func(snap *Snapshot) bool {
		i := sceneIndex(snap.Scenes, id)
		if i < 0 {
			return false
		}
		snap.Scenes[i].LastActivated = "Just now"
		return true
	})
}

// MutateDevice applies the non-nil fields of patch to the device. An
// invalid patch is rejected before the store is touched. An empty patch on a
// known device matches without publishing a change.
func (s *Store) MutateDevice(id string, patch models.DevicePatch) (uint64, bool, error) {
	if err := patch.Validate(); err != nil {
		return s.Snapshot().Version, false, err
	}
	if patch.Empty() {
		snap := s.Snapshot()
		return snap.Version, deviceIndex(snap.Devices, id) >= 0, nil
	}

	version, matched := s.commit(ChangeDevices, func(snap *Snapshot) bool {
		i := deviceIndex(snap.Devices, id)
		if i < 0 {
			return false
		}
		patch.Apply(&snap.Devices[i])
		return true
	})
	return version, matched, nil
}
