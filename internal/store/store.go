// Package store keeps the dashboard state as a sequence of immutable
// snapshots. Writers build a modified copy and swap it in; readers hold
// whichever snapshot they loaded and never see a partial update.
package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/metorial/homewatch/internal/models"
	"github.com/metorial/homewatch/internal/seed"
)

type ChangeKind string

const (
	ChangeHealth      ChangeKind = "health"
	ChangePerformance ChangeKind = "performance"
	ChangeDevices     ChangeKind = "devices"
	ChangeAlerts      ChangeKind = "alerts"
	ChangeAutomations ChangeKind = "automations"
	ChangeScenes      ChangeKind = "scenes"
)

// Snapshot is the whole dashboard state at one version. A published
// snapshot is never modified; treat every slice in it as read-only.
type Snapshot struct {
	Version   uint64    `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`

	Devices  []models.Device         `json:"devices"`
	Rules    []models.AutomationRule `json:"automation_rules"`
	Scenes   []models.Scene          `json:"scenes"`
	Alerts   []models.Alert          `json:"alerts"`
	Activity []models.ActivityItem   `json:"activity"`

	Health   models.SystemHealth        `json:"system_health"`
	Network  models.NetworkStats        `json:"network"`
	Database models.DatabaseStats       `json:"database"`
	Services []models.ServiceStatus     `json:"services"`
	Notices  []models.PerformanceNotice `json:"notices"`

	CPUHistory    []models.MetricSample `json:"cpu_history"`
	MemoryHistory []models.MetricSample `json:"memory_history"`
}

// Seeded returns the initial dashboard state with empty histories.
func Seeded() Snapshot {
	return Snapshot{
		Devices:       seed.Devices(),
		Rules:         seed.Rules(),
		Scenes:        seed.Scenes(),
		Alerts:        seed.Alerts(),
		Activity:      seed.Activity(),
		Health:        seed.Health(),
		Network:       seed.Network(),
		Database:      seed.Database(),
		Services:      seed.Services(),
		Notices:       seed.Notices(),
		CPUHistory:    []models.MetricSample{},
		MemoryHistory: []models.MetricSample{},
	}
}

func (s *Snapshot) clone() *Snapshot {
	c := *s
	c.Devices = make([]models.Device, len(s.Devices))
	for i, d := range s.Devices {
		c.Devices[i] = d.Clone()
	}
	c.Rules = append([]models.AutomationRule{}, s.Rules...)
	c.Scenes = append([]models.Scene{}, s.Scenes...)
	c.Alerts = append([]models.Alert{}, s.Alerts...)
	c.Activity = append([]models.ActivityItem{}, s.Activity...)
	c.Services = append([]models.ServiceStatus{}, s.Services...)
	c.Notices = append([]models.PerformanceNotice{}, s.Notices...)
	c.CPUHistory = append([]models.MetricSample{}, s.CPUHistory...)
	c.MemoryHistory = append([]models.MetricSample{}, s.MemoryHistory...)
	return &c
}

type Change struct {
	Kind     ChangeKind
	Snapshot *Snapshot
}

type Listener func(Change)

type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]

	subs    map[uint64]Listener
	nextSub uint64
	now     func() time.Time
}

func New(initial Snapshot) *Store {
	s := &Store{
		subs: make(map[uint64]Listener),
		now:  time.Now,
	}
	first := initial.clone()
	if first.UpdatedAt.IsZero() {
		first.UpdatedAt = s.now()
	}
	s.current.Store(first)
	return s
}

func NewSeeded() *Store {
	return New(Seeded())
}

// Snapshot returns the current state. It never blocks on writers.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Update applies fn to a private copy of the current snapshot. When fn
// reports a change the copy becomes current and every listener is called
// with it, in version order. When fn returns false nothing is published.
//
// Listeners run while the write lock is held and must not call Update.
func (s *Store) Update(kind ChangeKind, fn func(*Snapshot) bool) bool {
	_, changed := s.commit(kind, fn)
	return changed
}

// commit is Update that also reports the version current once it returns:
// the published version on a change, the untouched one otherwise.
func (s *Store) commit(kind ChangeKind, fn func(*Snapshot) bool) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	next := cur.clone()
	if !fn(next) {
		return cur.Version, false
	}
	next.Version++
	next.UpdatedAt = s.now()
	s.current.Store(next)

	change := Change{Kind: kind, Snapshot: next}
	for _, l := range s.listeners() {
		l(change)
	}
	return next.Version, true
}

// Subscribe registers l for every published change and returns a function
// that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// listeners returns subscribers in registration order. Caller holds mu.
func (s *Store) listeners() []Listener {
	out := make([]Listener, 0, len(s.subs))
	for id := uint64(0); id < s.nextSub; id++ {
		if l, ok := s.subs[id]; ok {
			out = append(out, l)
		}
	}
	return out
}
