package models

// Tone is the presentation class a category maps to. Renderers pick a color
// per tone; nothing in the domain depends on the concrete color.
type Tone uint8

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneWarn
	ToneBad
	ToneInfo
	numTones
)

var toneNames = [...]string{"neutral", "good", "warn", "bad", "info"}

// Each table below must have exactly one entry per variant. Indexing a
// one-element array with the length difference fails to compile otherwise.
var _ = [1]struct{}{}[len(toneNames)-int(numTones)]

func (t Tone) String() string {
	if t >= numTones {
		return toneNames[ToneNeutral]
	}
	return toneNames[t]
}

func classify[T ~string, K ~uint8](tags []T, raw T, unrecognized K) K {
	for i, tag := range tags {
		if tag == raw {
			return K(i)
		}
	}
	return unrecognized
}

// Severity is the closed set of alert categories plus an explicit variant for
// tags that match none of them.
type Severity uint8

const (
	SeverityCritical Severity = iota
	SeverityWarning
	SeverityInfo
	SeveritySuccess
	SeverityUnrecognized
	numSeverities
)

var severityTags = [...]AlertType{AlertCritical, AlertWarning, AlertInfo, AlertSuccess, "unrecognized"}
var severityTones = [...]Tone{ToneBad, ToneWarn, ToneInfo, ToneGood, ToneNeutral}

var _ = [1]struct{}{}[len(severityTags)-int(numSeverities)]
var _ = [1]struct{}{}[len(severityTones)-int(numSeverities)]

// ClassifyAlert matches the tag exactly. "Warning" is not "warning".
func ClassifyAlert(t AlertType) Severity {
	return classify(severityTags[:SeverityUnrecognized], t, SeverityUnrecognized)
}

func (s Severity) Tone() Tone {
	if s >= numSeverities {
		return ToneNeutral
	}
	return severityTones[s]
}

func (s Severity) String() string {
	if s >= numSeverities {
		s = SeverityUnrecognized
	}
	return string(severityTags[s])
}

type DeviceState uint8

const (
	DeviceOnline DeviceState = iota
	DeviceOffline
	DeviceError
	DeviceUnrecognized
	numDeviceStates
)

var deviceStateTags = [...]DeviceStatusTag{StatusOnline, StatusOffline, StatusError, "unrecognized"}
var deviceStateTones = [...]Tone{ToneGood, ToneNeutral, ToneBad, ToneNeutral}

var _ = [1]struct{}{}[len(deviceStateTags)-int(numDeviceStates)]
var _ = [1]struct{}{}[len(deviceStateTones)-int(numDeviceStates)]

func ClassifyDevice(t DeviceStatusTag) DeviceState {
	return classify(deviceStateTags[:DeviceUnrecognized], t, DeviceUnrecognized)
}

func (s DeviceState) Tone() Tone {
	if s >= numDeviceStates {
		return ToneNeutral
	}
	return deviceStateTones[s]
}

func (s DeviceState) String() string {
	if s >= numDeviceStates {
		s = DeviceUnrecognized
	}
	return string(deviceStateTags[s])
}

type HealthState uint8

const (
	HealthStateHealthy HealthState = iota
	HealthStateWarning
	HealthStateCritical
	HealthStateUnrecognized
	numHealthStates
)

var healthStateTags = [...]HealthStatusTag{HealthHealthy, HealthWarning, HealthCritical, "unrecognized"}
var healthStateTones = [...]Tone{ToneGood, ToneWarn, ToneBad, ToneNeutral}

var _ = [1]struct{}{}[len(healthStateTags)-int(numHealthStates)]
var _ = [1]struct{}{}[len(healthStateTones)-int(numHealthStates)]

func ClassifyHealth(t HealthStatusTag) HealthState {
	return classify(healthStateTags[:HealthStateUnrecognized], t, HealthStateUnrecognized)
}

func (s HealthState) Tone() Tone {
	if s >= numHealthStates {
		return ToneNeutral
	}
	return healthStateTones[s]
}

func (s HealthState) String() string {
	if s >= numHealthStates {
		s = HealthStateUnrecognized
	}
	return string(healthStateTags[s])
}

// TriggerKind classifies automation triggers. The seed rule "Energy Saver"
// carries "Sensor" and therefore lands on TriggerUnrecognized.
type TriggerKind uint8

const (
	TriggerKindTime TriggerKind = iota
	TriggerKindDevice
	TriggerKindSensor
	TriggerUnrecognized
	numTriggerKinds
)

var triggerTags = [...]TriggerTag{TriggerTime, TriggerDevice, TriggerSensor, "unrecognized"}
var triggerTones = [...]Tone{ToneInfo, ToneGood, ToneWarn, ToneNeutral}

var _ = [1]struct{}{}[len(triggerTags)-int(numTriggerKinds)]
var _ = [1]struct{}{}[len(triggerTones)-int(numTriggerKinds)]

func ClassifyTrigger(t TriggerTag) TriggerKind {
	return classify(triggerTags[:TriggerUnrecognized], t, TriggerUnrecognized)
}

func (k TriggerKind) Tone() Tone {
	if k >= numTriggerKinds {
		return ToneNeutral
	}
	return triggerTones[k]
}

func (k TriggerKind) String() string {
	if k >= numTriggerKinds {
		k = TriggerUnrecognized
	}
	return string(triggerTags[k])
}

type ActivityKind uint8

const (
	ActivityKindDevice ActivityKind = iota
	ActivityKindAutomation
	ActivityKindUser
	ActivityKindSystem
	ActivityKindSecurity
	ActivityUnrecognized
	numActivityKinds
)

var activityTags = [...]ActivityCategoryTag{
	ActivityDevice, ActivityAutomation, ActivityUser, ActivitySystem, ActivitySecurity, "unrecognized",
}
var activityTones = [...]Tone{ToneInfo, ToneGood, ToneNeutral, ToneNeutral, ToneBad, ToneNeutral}

var _ = [1]struct{}{}[len(activityTags)-int(numActivityKinds)]
var _ = [1]struct{}{}[len(activityTones)-int(numActivityKinds)]

func ClassifyActivity(t ActivityCategoryTag) ActivityKind {
	return classify(activityTags[:ActivityUnrecognized], t, ActivityUnrecognized)
}

func (k ActivityKind) Tone() Tone {
	if k >= numActivityKinds {
		return ToneNeutral
	}
	return activityTones[k]
}

func (k ActivityKind) String() string {
	if k >= numActivityKinds {
		k = ActivityUnrecognized
	}
	return string(activityTags[k])
}

type OutcomeKind uint8

const (
	OutcomeKindSuccess OutcomeKind = iota
	OutcomeKindWarning
	OutcomeKindError
	OutcomeKindInfo
	OutcomeUnrecognized
	numOutcomeKinds
)

var outcomeTags = [...]ActivityOutcomeTag{OutcomeSuccess, OutcomeWarning, OutcomeError, OutcomeInfo, "unrecognized"}
var outcomeTones = [...]Tone{ToneGood, ToneWarn, ToneBad, ToneInfo, ToneNeutral}

var _ = [1]struct{}{}[len(outcomeTags)-int(numOutcomeKinds)]
var _ = [1]struct{}{}[len(outcomeTones)-int(numOutcomeKinds)]

func ClassifyOutcome(t ActivityOutcomeTag) OutcomeKind {
	return classify(outcomeTags[:OutcomeUnrecognized], t, OutcomeUnrecognized)
}

func (k OutcomeKind) Tone() Tone {
	if k >= numOutcomeKinds {
		return ToneNeutral
	}
	return outcomeTones[k]
}

func (k OutcomeKind) String() string {
	if k >= numOutcomeKinds {
		k = OutcomeUnrecognized
	}
	return string(outcomeTags[k])
}

// Tones lists every tone in declaration order.
func Tones() []Tone {
	out := make([]Tone, 0, numTones)
	for t := Tone(0); t < numTones; t++ {
		out = append(out, t)
	}
	return out
}
