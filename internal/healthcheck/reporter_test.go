package healthcheck

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/metorial/homewatch/internal/telemetry"
)

func dialHealth(t *testing.T, server *health.Server) grpc_health_v1.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(s, server)
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return grpc_health_v1.NewHealthClient(conn)
}

func check(t *testing.T, client grpc_health_v1.HealthClient, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := client.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.Status
}

func TestReporterFollowsMonitor(t *testing.T) {
	server := health.NewServer()
	client := dialHealth(t, server)
	monitor := telemetry.NewMonitor(15*time.Second, time.Minute)

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	clock := base
	r := NewReporter(server, monitor, time.Second, nil)
	r.now = func() time.Time { return clock }

	assert.Equal(t, telemetry.Disconnected, r.Report())
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, client, ""))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, client, TelemetryService))

	monitor.Observe(base)
	assert.Equal(t, telemetry.Connected, r.Report())
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, client, ""))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, client, TelemetryService))

	clock = base.Add(30 * time.Second)
	assert.Equal(t, telemetry.Stale, r.Report())
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, client, ""))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, client, TelemetryService))
}

func TestReporterRunStopsWithContext(t *testing.T) {
	server := health.NewServer()
	monitor := telemetry.NewMonitor(time.Minute, time.Hour)
	monitor.Observe(time.Now())
	r := NewReporter(server, monitor, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Reporter did not stop")
	}
}
