package seed

import (
	"testing"

	"github.com/metorial/homewatch/internal/models"
)

func TestSeedSizes(t *testing.T) {
	if n := len(Devices()); n != 5 {
		t.Errorf("Expected 5 devices, got %d", n)
	}
	if n := len(Rules()); n != 4 {
		t.Errorf("Expected 4 rules, got %d", n)
	}
	if n := len(Scenes()); n != 4 {
		t.Errorf("Expected 4 scenes, got %d", n)
	}
	if n := len(Alerts()); n != 6 {
		t.Errorf("Expected 6 alerts, got %d", n)
	}
	if n := len(Activity()); n != 8 {
		t.Errorf("Expected 8 activity items, got %d", n)
	}
	if n := len(Services()); n != 5 {
		t.Errorf("Expected 5 services, got %d", n)
	}
}

func TestSeedKeepsRecordedCasing(t *testing.T) {
	alerts := Alerts()
	if alerts[1].Type != "Warning" || alerts[2].Type != "Warning" {
		t.Errorf("Expected alerts 2 and 3 tagged Warning, got %q and %q", alerts[1].Type, alerts[2].Type)
	}
	if alerts[4].Type != "Success" {
		t.Errorf("Expected alert 5 tagged Success, got %q", alerts[4].Type)
	}
	if Rules()[2].TriggerType != "Sensor" {
		t.Errorf("Expected rule 3 trigger Sensor, got %q", Rules()[2].TriggerType)
	}
}

func TestSeedResolvedAlertsAreRead(t *testing.T) {
	for _, a := range Alerts() {
		if a.IsResolved && !a.IsRead {
			t.Errorf("Alert %s is resolved but unread", a.ID)
		}
	}
}

func TestSeedReturnsFreshCopies(t *testing.T) {
	a := Devices()
	*a[0].Brightness = 10
	a[0].Status = models.StatusError

	b := Devices()
	if *b[0].Brightness != 75 || b[0].Status != models.StatusOnline {
		t.Errorf("Expected untouched seed, got %+v", b[0])
	}
}

func TestSeedHealth(t *testing.T) {
	h := Health()
	if h.OnlineDevices+h.OfflineDevices != h.TotalDevices {
		t.Errorf("Expected online+offline == total, got %d+%d != %d", h.OnlineDevices, h.OfflineDevices, h.TotalDevices)
	}
	if h.SystemLoad != 45 || h.MemoryUsage != 68 || h.DiskUsage != 34 {
		t.Errorf("Unexpected resource values %+v", h)
	}
}
