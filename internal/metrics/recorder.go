package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/metorial/homewatch/internal/aggregate"
	"github.com/metorial/homewatch/internal/store"
	"github.com/metorial/homewatch/internal/telemetry"
)

// Record refreshes every snapshot gauge. It is meant to be subscribed to the
// store.
func Record(change store.Change) {
	snap := change.Snapshot
	StoreChanges.WithLabelValues(string(change.Kind)).Inc()
	RecordSnapshot(snap)
}

func RecordSnapshot(snap *store.Snapshot) {
	StoreVersion.Set(float64(snap.Version))

	h := snap.Health
	SystemResource.WithLabelValues("cpu").Set(h.SystemLoad)
	SystemResource.WithLabelValues("memory").Set(h.MemoryUsage)
	SystemResource.WithLabelValues("disk").Set(h.DiskUsage)
	OnlineDevices.Set(float64(h.OnlineDevices))

	n := snap.Network
	Network.WithLabelValues("inbound").Set(n.Inbound)
	Network.WithLabelValues("outbound").Set(n.Outbound)
	Network.WithLabelValues("latency").Set(n.Latency)
	Network.WithLabelValues("connections").Set(float64(n.Connections))

	alerts := aggregate.SummarizeAlerts(snap.Alerts)
	Alerts.WithLabelValues("total").Set(float64(alerts.Total))
	Alerts.WithLabelValues("unread").Set(float64(alerts.Unread))
	Alerts.WithLabelValues("unresolved").Set(float64(alerts.Unresolved))
	Alerts.WithLabelValues("critical").Set(float64(alerts.Critical))

	devices := aggregate.SummarizeDevices(snap.Devices)
	DevicesByStatus.WithLabelValues("online").Set(float64(devices.Online))
	DevicesByStatus.WithLabelValues("offline").Set(float64(devices.Offline))
	DevicesByStatus.WithLabelValues("error").Set(float64(devices.Error))
}

func RecordConnectivity(state telemetry.Connectivity) {
	for _, s := range []telemetry.Connectivity{telemetry.Connected, telemetry.Stale, telemetry.Disconnected} {
		v := 0.0
		if s == state {
			v = 1
		}
		TelemetryConnectivity.WithLabelValues(s.String()).Set(v)
	}
}

func RecordMutation(operation string, matched bool) {
	Mutations.WithLabelValues(operation, strconv.FormatBool(matched)).Inc()
}

// Middleware counts requests by chi route pattern so ids do not explode the
// label space.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
