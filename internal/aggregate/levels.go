package aggregate

import (
	"fmt"

	"github.com/metorial/homewatch/internal/models"
)

type Level uint8

const (
	LevelNormal Level = iota
	LevelElevated
	LevelCritical
	numLevels
)

var levelNames = [...]string{"normal", "elevated", "critical"}
var levelTones = [...]models.Tone{models.ToneGood, models.ToneWarn, models.ToneBad}

var _ = [1]struct{}{}[len(levelNames)-int(numLevels)]
var _ = [1]struct{}{}[len(levelTones)-int(numLevels)]

func (l Level) String() string {
	if l >= numLevels {
		return levelNames[LevelNormal]
	}
	return levelNames[l]
}

func (l Level) Tone() models.Tone {
	if l >= numLevels {
		return models.ToneNeutral
	}
	return levelTones[l]
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	return unmarshalName(levelNames[:], text, l)
}

// Threshold levels are strict: a value equal to a limit stays below it.
type Threshold struct {
	Elevated float64
	Critical float64
}

var (
	CPUThreshold    = Threshold{Elevated: 50, Critical: 70}
	MemoryThreshold = Threshold{Elevated: 60, Critical: 80}
	DiskThreshold   = Threshold{Elevated: 60, Critical: 80}
)

func (t Threshold) Level(value float64) Level {
	switch {
	case value > t.Critical:
		return LevelCritical
	case value > t.Elevated:
		return LevelElevated
	default:
		return LevelNormal
	}
}

type RateClass uint8

const (
	RateGood RateClass = iota
	RateFair
	RatePoor
	numRateClasses
)

var rateNames = [...]string{"good", "fair", "poor"}
var rateTones = [...]models.Tone{models.ToneGood, models.ToneWarn, models.ToneBad}

var _ = [1]struct{}{}[len(rateNames)-int(numRateClasses)]
var _ = [1]struct{}{}[len(rateTones)-int(numRateClasses)]

func (r RateClass) String() string {
	if r >= numRateClasses {
		return rateNames[RatePoor]
	}
	return rateNames[r]
}

func (r RateClass) Tone() models.Tone {
	if r >= numRateClasses {
		return models.ToneNeutral
	}
	return rateTones[r]
}

func (r RateClass) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RateClass) UnmarshalText(text []byte) error {
	return unmarshalName(rateNames[:], text, r)
}

func unmarshalName[K ~uint8](names []string, text []byte, dst *K) error {
	for i, name := range names {
		if name == string(text) {
			*dst = K(i)
			return nil
		}
	}
	return fmt.Errorf("unknown class %q", text)
}

func ClassifySuccessRate(rate float64) RateClass {
	switch {
	case rate >= 95:
		return RateGood
	case rate >= 85:
		return RateFair
	default:
		return RatePoor
	}
}

type ResourceLevels struct {
	CPU    Level `json:"cpu"`
	Memory Level `json:"memory"`
	Disk   Level `json:"disk"`
}

type HealthOverview struct {
	OnlinePercent int                 `json:"online_percent"`
	State         string              `json:"state"`
	Levels        ResourceLevels      `json:"levels"`
	Health        models.SystemHealth `json:"health"`
}

func OverviewOf(h models.SystemHealth) HealthOverview {
	return HealthOverview{
		OnlinePercent: Percent(h.OnlineDevices, h.TotalDevices),
		State:         models.ClassifyHealth(h.Status).String(),
		Levels: ResourceLevels{
			CPU:    CPUThreshold.Level(h.SystemLoad),
			Memory: MemoryThreshold.Level(h.MemoryUsage),
			Disk:   DiskThreshold.Level(h.DiskUsage),
		},
		Health: h,
	}
}
