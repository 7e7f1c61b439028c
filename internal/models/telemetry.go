package models

type HealthStatusTag string

const (
	HealthHealthy  HealthStatusTag = "healthy"
	HealthWarning  HealthStatusTag = "warning"
	HealthCritical HealthStatusTag = "critical"
)

type SystemHealth struct {
	Status            HealthStatusTag `json:"status"`
	Uptime            string          `json:"uptime"`
	TotalDevices      int             `json:"total_devices"`
	OnlineDevices     int             `json:"online_devices"`
	OfflineDevices    int             `json:"offline_devices"`
	ActiveAutomations int             `json:"active_automations"`
	RecentAlerts      int             `json:"recent_alerts"`
	SystemLoad        float64         `json:"system_load"`
	MemoryUsage       float64         `json:"memory_usage"`
	DiskUsage         float64         `json:"disk_usage"`
}

type MetricSample struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

type NetworkStats struct {
	Inbound     float64 `json:"inbound"`
	Outbound    float64 `json:"outbound"`
	Latency     float64 `json:"latency"`
	Connections int     `json:"connections"`
}

type DatabaseStats struct {
	Connections     int     `json:"connections"`
	Queries         int     `json:"queries"`
	AvgResponseTime float64 `json:"avg_response_time"`
	CacheHitRate    float64 `json:"cache_hit_rate"`
}

type ServiceStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

type PerformanceNotice struct {
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
	Severity  string    `json:"severity"`
}
