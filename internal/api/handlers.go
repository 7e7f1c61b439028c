package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/metorial/homewatch/internal/aggregate"
	"github.com/metorial/homewatch/internal/metrics"
	"github.com/metorial/homewatch/internal/models"
	"github.com/metorial/homewatch/internal/query"
	"github.com/metorial/homewatch/internal/telemetry"
)

type HealthResponse struct {
	Status       string                 `json:"status"`
	Service      string                 `json:"service"`
	Connectivity telemetry.Connectivity `json:"connectivity"`
	LastUpdate   *time.Time             `json:"last_update,omitempty"`
	Version      uint64                 `json:"version"`
	Time         time.Time              `json:"time"`
}

var connectivityStatus = map[telemetry.Connectivity]string{
	telemetry.Connected:    "healthy",
	telemetry.Stale:        "degraded",
	telemetry.Disconnected: "unavailable",
}

// healthCheck answers 503 once telemetry is disconnected so HTTP health
// checks fail with it.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	state := s.monitor.State(now)

	resp := HealthResponse{
		Status:       connectivityStatus[state],
		Service:      "homewatch",
		Connectivity: state,
		Version:      s.store.Snapshot().Version,
		Time:         now.UTC(),
	}
	if last, ok := s.monitor.LastObserved(); ok {
		last = last.UTC()
		resp.LastUpdate = &last
	}

	status := http.StatusOK
	if state == telemetry.Disconnected {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, resp)
}

type OverviewResponse struct {
	Health      aggregate.HealthOverview    `json:"health"`
	Devices     aggregate.DeviceSummary     `json:"devices"`
	Alerts      aggregate.AlertSummary      `json:"alerts"`
	Automations aggregate.AutomationSummary `json:"automations"`
	Activity    []models.ActivityItem       `json:"recent_activity"`
	Version     uint64                      `json:"version"`
}

func (s *Server) getOverview(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	respondJSON(w, http.StatusOK, OverviewResponse{
		Health:      aggregate.OverviewOf(snap.Health),
		Devices:     aggregate.SummarizeDevices(snap.Devices),
		Alerts:      aggregate.SummarizeAlerts(snap.Alerts),
		Automations: aggregate.SummarizeAutomations(snap.Rules),
		Activity:    snap.Activity,
		Version:     snap.Version,
	})
}

type DeviceListResponse struct {
	Devices []models.Device         `json:"devices"`
	Count   int                     `json:"count"`
	Summary aggregate.DeviceSummary `json:"summary"`
}

func (s *Server) listDevices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all := s.store.ListDevices()
	devices := query.Devices(all, query.DeviceCriteria{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Room:   q.Get("room"),
	})

	respondJSON(w, http.StatusOK, DeviceListResponse{
		Devices: devices,
		Count:   len(devices),
		Summary: aggregate.SummarizeDevices(all),
	})
}

func (s *Server) patchDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.DevicePatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if patch.Empty() {
		respondError(w, http.StatusBadRequest, "Empty device patch")
		return
	}

	version, matched, err := s.store.MutateDevice(id, patch)
	if err != nil {
		respondError(w, http.StatusBadRequest, patchErrors[err])
		return
	}
	s.respondMutation(w, "mutate_device", id, version, matched)
}

var patchErrors = map[error]string{
	models.ErrUnknownDeviceStatus: "Unknown device status",
	models.ErrBrightnessRange:     "Brightness must be between 0 and 100",
	models.ErrBatteryRange:        "Battery must be between 0 and 100",
}

type RuleView struct {
	models.AutomationRule
	TriggerKind  string              `json:"trigger_kind"`
	SuccessClass aggregate.RateClass `json:"success_class"`
}

type AutomationResponse struct {
	Rules   []RuleView                  `json:"automation_rules"`
	Scenes  []models.Scene              `json:"scenes"`
	Summary aggregate.AutomationSummary `json:"summary"`
}

func (s *Server) listAutomations(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()

	views := make([]RuleView, 0, len(snap.Rules))
	for _, rule := range snap.Rules {
		views = append(views, RuleView{
			AutomationRule: rule,
			TriggerKind:    models.ClassifyTrigger(rule.TriggerType).String(),
			SuccessClass:   aggregate.ClassifySuccessRate(rule.SuccessRate),
		})
	}

	respondJSON(w, http.StatusOK, AutomationResponse{
		Rules:   views,
		Scenes:  snap.Scenes,
		Summary: aggregate.SummarizeAutomations(snap.Rules),
	})
}

func (s *Server) toggleAutomation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	version, matched := s.store.ToggleAutomation(id)
	s.respondMutation(w, "toggle_automation", id, version, matched)
}

func (s *Server) activateScene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	version, matched := s.store.ActivateScene(id)
	s.respondMutation(w, "activate_scene", id, version, matched)
}

type PerformanceResponse struct {
	Health        aggregate.HealthOverview   `json:"health"`
	Network       models.NetworkStats        `json:"network"`
	Database      models.DatabaseStats       `json:"database"`
	Services      []models.ServiceStatus     `json:"services"`
	Notices       []models.PerformanceNotice `json:"notices"`
	CPUHistory    []models.MetricSample      `json:"cpu_history"`
	MemoryHistory []models.MetricSample      `json:"memory_history"`
	Connectivity  telemetry.Connectivity     `json:"connectivity"`
}

func (s *Server) getPerformance(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	respondJSON(w, http.StatusOK, PerformanceResponse{
		Health:        aggregate.OverviewOf(snap.Health),
		Network:       snap.Network,
		Database:      snap.Database,
		Services:      snap.Services,
		Notices:       snap.Notices,
		CPUHistory:    snap.CPUHistory,
		MemoryHistory: snap.MemoryHistory,
		Connectivity:  s.monitor.State(s.now()),
	})
}

type AlertListResponse struct {
	Alerts  []models.Alert         `json:"alerts"`
	Count   int                    `json:"count"`
	Summary aggregate.AlertSummary `json:"summary"`
}

func (s *Server) listAlerts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all := s.store.ListAlerts()
	alerts := query.Alerts(all, query.AlertCriteria{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		State:  q.Get("status"),
	})

	respondJSON(w, http.StatusOK, AlertListResponse{
		Alerts:  alerts,
		Count:   len(alerts),
		Summary: aggregate.SummarizeAlerts(all),
	})
}

func (s *Server) markAlertRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	version, matched := s.store.MarkRead(id)
	s.respondMutation(w, "mark_read", id, version, matched)
}

func (s *Server) resolveAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	version, matched := s.store.MarkResolved(id)
	s.respondMutation(w, "mark_resolved", id, version, matched)
}

func (s *Server) deleteAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	version, matched := s.store.DeleteAlert(id)
	s.respondMutation(w, "delete_alert", id, version, matched)
}

type ActivityResponse struct {
	Activity []models.ActivityItem     `json:"activity"`
	Count    int                       `json:"count"`
	Summary  aggregate.ActivitySummary `json:"summary"`
}

func (s *Server) listActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all := s.store.Snapshot().Activity
	items := query.Activity(all, query.ActivityCriteria{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Outcome:  q.Get("outcome"),
	})

	respondJSON(w, http.StatusOK, ActivityResponse{
		Activity: items,
		Count:    len(items),
		Summary:  aggregate.SummarizeActivity(all),
	})
}

type MutationResponse struct {
	ID      string `json:"id"`
	Matched bool   `json:"matched"`
	Version uint64 `json:"version"`
}

// respondMutation answers 200 whether or not the id matched; unknown ids
// are no-ops, not errors. version is the one the mutation left behind, not
// whatever a later tick published.
func (s *Server) respondMutation(w http.ResponseWriter, operation, id string, version uint64, matched bool) {
	metrics.RecordMutation(operation, matched)
	respondJSON(w, http.StatusOK, MutationResponse{
		ID:      id,
		Matched: matched,
		Version: version,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}
