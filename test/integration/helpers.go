package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/metorial/homewatch/internal/api"
	"github.com/metorial/homewatch/internal/feed"
	"github.com/metorial/homewatch/internal/store"
	"github.com/metorial/homewatch/internal/telemetry"
)

// Controller is an in-process controller: seeded store, live telemetry and
// the HTTP API on an httptest server.
type Controller struct {
	Store     *store.Store
	Monitor   *telemetry.Monitor
	Generator *telemetry.Generator
	Hub       *feed.Hub
	Server    *httptest.Server
}

type controllerOptions struct {
	healthEvery       time.Duration
	perfEvery         time.Duration
	staleAfter        time.Duration
	disconnectedAfter time.Duration
	startTelemetry    bool
}

func StartController(t *testing.T, opts controllerOptions) *Controller {
	t.Helper()

	logger := zap.NewNop()
	ctx, cancel := context.WithCancel(context.Background())

	st := store.NewSeeded()
	monitor := telemetry.NewMonitor(opts.staleAfter, opts.disconnectedAfter)

	hub := feed.NewHub(logger)
	go hub.Run(ctx)
	st.Subscribe(hub.Publish)

	gen := telemetry.NewGenerator(st, telemetry.Options{
		HealthInterval:      opts.healthEvery,
		PerformanceInterval: opts.perfEvery,
		Source:              telemetry.NewRandomSource(42),
		Monitor:             monitor,
		Logger:              logger,
	})
	if opts.startTelemetry {
		if err := gen.Start(ctx); err != nil {
			t.Fatalf("Failed to start telemetry: %v", err)
		}
	}

	server := httptest.NewServer(api.NewServer(api.Options{
		Store:   st,
		Monitor: monitor,
		Hub:     hub,
		Logger:  logger,
	}).Handler())

	t.Cleanup(func() {
		gen.Stop()
		server.Close()
		cancel()
	})

	return &Controller{
		Store:     st,
		Monitor:   monitor,
		Generator: gen,
		Hub:       hub,
		Server:    server,
	}
}

// WaitFor polls cond until it holds or timeout elapses.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}
