package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homewatch_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "homewatch_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Mutations counts alert, rule, scene and device mutations by whether an
	// entity matched the id.
	Mutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homewatch_mutations_total",
			Help: "Total number of entity mutations",
		},
		[]string{"operation", "matched"},
	)

	StoreChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homewatch_store_changes_total",
			Help: "Published store snapshots by change kind",
		},
		[]string{"kind"},
	)

	StoreVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "homewatch_store_version",
			Help: "Version of the current store snapshot",
		},
	)

	SystemResource = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "homewatch_system_resource_percent",
			Help: "System resource usage in percent",
		},
		[]string{"resource"},
	)

	OnlineDevices = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "homewatch_online_devices",
			Help: "Number of online devices reported by system health",
		},
	)

	Network = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "homewatch_network",
			Help: "Network figures: inbound and outbound in MB/s, latency in ms, open connections",
		},
		[]string{"measure"},
	)

	Alerts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "homewatch_alerts",
			Help: "Alert counts by state",
		},
		[]string{"state"},
	)

	DevicesByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "homewatch_devices",
			Help: "Registered devices by status",
		},
		[]string{"status"},
	)

	TelemetryConnectivity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "homewatch_telemetry_connectivity",
			Help: "1 for the current telemetry connectivity state, 0 otherwise",
		},
		[]string{"state"},
	)

	FeedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "homewatch_feed_clients",
			Help: "Number of connected change feed clients",
		},
	)

	PublishedChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homewatch_redis_publish_total",
			Help: "Change events published to Redis",
		},
		[]string{"status"},
	)
)
