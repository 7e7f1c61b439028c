// Package healthcheck drives the gRPC health service from telemetry
// freshness.
package healthcheck

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/metorial/homewatch/internal/metrics"
	"github.com/metorial/homewatch/internal/telemetry"
)

// TelemetryService is SERVING only while telemetry is fresh. The overall
// service "" stays SERVING until telemetry is disconnected.
const TelemetryService = "homewatch.telemetry"

const DefaultInterval = time.Second

type Reporter struct {
	server   *health.Server
	monitor  *telemetry.Monitor
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
	last     telemetry.Connectivity
	reported bool
}

func NewReporter(server *health.Server, monitor *telemetry.Monitor, interval time.Duration, logger *zap.Logger) *Reporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{
		server:   server,
		monitor:  monitor,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (r *Reporter) Run(ctx context.Context) {
	r.Report()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.server.Shutdown()
			return
		case <-ticker.C:
			r.Report()
		}
	}
}

// Report evaluates freshness once and updates both health services.
func (r *Reporter) Report() telemetry.Connectivity {
	state := r.monitor.State(r.now())

	overall := grpc_health_v1.HealthCheckResponse_SERVING
	if state == telemetry.Disconnected {
		overall = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	fresh := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if state == telemetry.Connected {
		fresh = grpc_health_v1.HealthCheckResponse_SERVING
	}

	r.server.SetServingStatus("", overall)
	r.server.SetServingStatus(TelemetryService, fresh)
	metrics.RecordConnectivity(state)

	if !r.reported || state != r.last {
		r.logger.Info("Telemetry connectivity changed", zap.String("state", state.String()))
		r.last = state
		r.reported = true
	}
	return state
}
