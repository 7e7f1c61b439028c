// Package aggregate derives summary counters from entity lists. Every
// function is pure.
package aggregate

import (
	"math"
	"sort"

	"github.com/metorial/homewatch/internal/models"
)

// Percent returns round(part/total*100), or 0 when total is not positive.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(part)/float64(total)*100 + 0.5))
}

type AlertSummary struct {
	Total        int `json:"total"`
	Critical     int `json:"critical"`
	Warning      int `json:"warning"`
	Info         int `json:"info"`
	Success      int `json:"success"`
	Unrecognized int `json:"unrecognized"`
	Unread       int `json:"unread"`
	Unresolved   int `json:"unresolved"`
}

// SummarizeAlerts counts by exact tag. Tags that differ only in case from a
// known category are counted as unrecognized.
func SummarizeAlerts(alerts []models.Alert) AlertSummary {
	s := AlertSummary{Total: len(alerts)}
	for _, a := range alerts {
		switch models.ClassifyAlert(a.Type) {
		case models.SeverityCritical:
			s.Critical++
		case models.SeverityWarning:
			s.Warning++
		case models.SeverityInfo:
			s.Info++
		case models.SeveritySuccess:
			s.Success++
		default:
			s.Unrecognized++
		}
		if !a.IsRead {
			s.Unread++
		}
		if !a.IsResolved {
			s.Unresolved++
		}
	}
	return s
}

type DeviceSummary struct {
	Total         int      `json:"total"`
	Online        int      `json:"online"`
	Offline       int      `json:"offline"`
	Error         int      `json:"error"`
	OnlinePercent int      `json:"online_percent"`
	Rooms         []string `json:"rooms"`
}

func SummarizeDevices(devices []models.Device) DeviceSummary {
	s := DeviceSummary{Total: len(devices), Rooms: Rooms(devices)}
	for _, d := range devices {
		switch models.ClassifyDevice(d.Status) {
		case models.DeviceOnline:
			s.Online++
		case models.DeviceOffline:
			s.Offline++
		case models.DeviceError:
			s.Error++
		}
	}
	s.OnlinePercent = Percent(s.Online, s.Total)
	return s
}

// Rooms returns the distinct rooms in first-seen order.
func Rooms(devices []models.Device) []string {
	seen := make(map[string]bool, len(devices))
	rooms := make([]string, 0, len(devices))
	for _, d := range devices {
		if !seen[d.Room] {
			seen[d.Room] = true
			rooms = append(rooms, d.Room)
		}
	}
	return rooms
}

type ExecutionStats struct {
	Today       int     `json:"today"`
	ThisWeek    int     `json:"this_week"`
	SuccessRate float64 `json:"success_rate"`
}

// DefaultExecutionStats are the fixed execution figures shown next to rules.
var DefaultExecutionStats = ExecutionStats{Today: 24, ThisWeek: 156, SuccessRate: 97.8}

type AutomationSummary struct {
	Total      int                     `json:"total"`
	Active     int                     `json:"active"`
	Inactive   int                     `json:"inactive"`
	MostActive []models.AutomationRule `json:"most_active"`
	Executions ExecutionStats          `json:"executions"`
}

const mostActiveLimit = 3

func SummarizeAutomations(rules []models.AutomationRule) AutomationSummary {
	s := AutomationSummary{Total: len(rules), Executions: DefaultExecutionStats}
	for _, r := range rules {
		if r.IsActive {
			s.Active++
		}
	}
	s.Inactive = s.Total - s.Active
	s.MostActive = MostActive(rules, mostActiveLimit)
	return s
}

// MostActive returns up to n rules ordered by execution count, highest
// first. Ties keep their input order. A negative n yields nothing.
func MostActive(rules []models.AutomationRule, n int) []models.AutomationRule {
	if n < 0 {
		n = 0
	}
	sorted := append([]models.AutomationRule{}, rules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExecutionCount > sorted[j].ExecutionCount
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

type ActivitySummary struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
	ByOutcome  map[string]int `json:"by_outcome"`
}

func SummarizeActivity(items []models.ActivityItem) ActivitySummary {
	s := ActivitySummary{
		Total:      len(items),
		ByCategory: make(map[string]int),
		ByOutcome:  make(map[string]int),
	}
	for _, i := range items {
		s.ByCategory[models.ClassifyActivity(i.Category).String()]++
		s.ByOutcome[models.ClassifyOutcome(i.Outcome).String()]++
	}
	return s
}
