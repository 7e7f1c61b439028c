package models

import "testing"

func TestClassifyAlert(t *testing.T) {
	tests := []struct {
		raw  AlertType
		want Severity
		tone Tone
	}{
		{"critical", SeverityCritical, ToneBad},
		{"warning", SeverityWarning, ToneWarn},
		{"info", SeverityInfo, ToneInfo},
		{"success", SeveritySuccess, ToneGood},
		{"Warning", SeverityUnrecognized, ToneNeutral},
		{"Success", SeverityUnrecognized, ToneNeutral},
		{"", SeverityUnrecognized, ToneNeutral},
	}

	for _, tt := range tests {
		t.Run(string(tt.raw), func(t *testing.T) {
			got := ClassifyAlert(tt.raw)
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
			if got.Tone() != tt.tone {
				t.Errorf("Expected tone %v, got %v", tt.tone, got.Tone())
			}
		})
	}
}

func TestClassifyTriggerKeepsCase(t *testing.T) {
	if k := ClassifyTrigger("sensor"); k != TriggerKindSensor {
		t.Errorf("Expected sensor, got %v", k)
	}
	if k := ClassifyTrigger("Sensor"); k != TriggerUnrecognized {
		t.Errorf("Expected unrecognized, got %v", k)
	}
}

func TestEveryVariantHasAName(t *testing.T) {
	for s := Severity(0); s < numSeverities; s++ {
		if s.String() == "" {
			t.Errorf("Severity %d has no name", s)
		}
	}
	for s := DeviceState(0); s < numDeviceStates; s++ {
		if s.String() == "" {
			t.Errorf("DeviceState %d has no name", s)
		}
	}
	for k := ActivityKind(0); k < numActivityKinds; k++ {
		if k.String() == "" {
			t.Errorf("ActivityKind %d has no name", k)
		}
	}
	for k := OutcomeKind(0); k < numOutcomeKinds; k++ {
		if k.String() == "" {
			t.Errorf("OutcomeKind %d has no name", k)
		}
	}
}

func TestOutOfRangeVariantsFallBack(t *testing.T) {
	if Severity(200).Tone() != ToneNeutral {
		t.Error("Expected neutral tone for out of range severity")
	}
	if Severity(200).String() != "unrecognized" {
		t.Errorf("Expected unrecognized, got %s", Severity(200).String())
	}
	if Tone(99).String() != "neutral" {
		t.Errorf("Expected neutral, got %s", Tone(99).String())
	}
}

func TestClassifyDeviceAndHealth(t *testing.T) {
	if ClassifyDevice("online") != DeviceOnline || ClassifyDevice("error").Tone() != ToneBad {
		t.Error("device status classification mismatch")
	}
	if ClassifyHealth("healthy") != HealthStateHealthy || ClassifyHealth("degraded") != HealthStateUnrecognized {
		t.Error("health status classification mismatch")
	}
}

func TestDevicePatchApply(t *testing.T) {
	b := 75
	d := Device{ID: "1", Status: StatusOnline, Brightness: &b}
	c := d.Clone()

	off := StatusOffline
	zero := 0
	DevicePatch{Status: &off, Brightness: &zero}.Apply(&c)

	if c.Status != StatusOffline || *c.Brightness != 0 {
		t.Errorf("Expected patched device, got %+v", c)
	}
	if *d.Brightness != 75 {
		t.Errorf("Expected source brightness untouched, got %d", *d.Brightness)
	}
	if !(DevicePatch{}).Empty() {
		t.Error("Expected zero patch to be empty")
	}
}
