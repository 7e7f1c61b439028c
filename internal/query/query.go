// Package query narrows entity lists by text search and categorical
// criteria. Criteria combine with AND, relative order is kept and an empty
// result is a valid answer.
package query

import (
	"strings"

	"github.com/metorial/homewatch/internal/models"
)

// All disables a categorical criterion. The empty string does the same.
const All = "all"

const (
	StateUnread     = "unread"
	StateUnresolved = "unresolved"
	StateResolved   = "resolved"
)

type Predicate[T any] func(T) bool

// Where returns the items matching every predicate. The result is never nil.
func Where[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}

func disabled(value string) bool {
	return value == "" || value == All
}

// containsFold reports whether any field contains term, ignoring case.
func containsFold(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

type DeviceCriteria struct {
	Search string
	Status string
	Room   string
}

func Devices(devices []models.Device, c DeviceCriteria) []models.Device {
	return Where(devices,
		func(d models.Device) bool { return containsFold(c.Search, d.Name, d.Room) },
		func(d models.Device) bool { return disabled(c.Status) || string(d.Status) == c.Status },
		func(d models.Device) bool { return disabled(c.Room) || d.Room == c.Room },
	)
}

type AlertCriteria struct {
	Search string
	Type   string
	State  string
}

func Alerts(alerts []models.Alert, c AlertCriteria) []models.Alert {
	return Where(alerts,
		func(a models.Alert) bool { return containsFold(c.Search, a.Title, a.Message, a.Source) },
		func(a models.Alert) bool { return disabled(c.Type) || string(a.Type) == c.Type },
		func(a models.Alert) bool { return matchesState(a, c.State) },
	)
}

// matchesState treats any value outside the known states as matching nothing.
func matchesState(a models.Alert, state string) bool {
	switch state {
	case "", All:
		return true
	case StateUnread:
		return !a.IsRead
	case StateUnresolved:
		return !a.IsResolved
	case StateResolved:
		return a.IsResolved
	default:
		return false
	}
}

type ActivityCriteria struct {
	Search   string
	Category string
	Outcome  string
}

func Activity(items []models.ActivityItem, c ActivityCriteria) []models.ActivityItem {
	return Where(items,
		func(i models.ActivityItem) bool { return containsFold(c.Search, i.Title, i.Description) },
		func(i models.ActivityItem) bool { return disabled(c.Category) || string(i.Category) == c.Category },
		func(i models.ActivityItem) bool { return disabled(c.Outcome) || string(i.Outcome) == c.Outcome },
	)
}
