// Package seed holds the fixed records the dashboard starts from.
//
// Tags are kept exactly as recorded. Alerts 2 and 3 say "Warning", alert 5
// says "Success" and rule 3 says "Sensor". Exact-match filters and counters
// therefore do not see them under the lowercase categories.
package seed

import "github.com/metorial/homewatch/internal/models"

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func Devices() []models.Device {
	return []models.Device{
		{ID: "1", Name: "Living Room Light", Category: models.CategoryLight, Room: "Living Room", Status: models.StatusOnline, LastSeen: "2 minutes ago", Brightness: intPtr(75)},
		{ID: "2", Name: "Main Thermostat", Category: models.CategoryThermostat, Room: "Hallway", Status: models.StatusOnline, LastSeen: "1 minute ago", Temperature: floatPtr(22)},
		{ID: "3", Name: "Front Door Camera", Category: models.CategoryCamera, Room: "Entrance", Status: models.StatusOnline, LastSeen: "30 seconds ago"},
		{ID: "4", Name: "Bedroom Light", Category: models.CategoryLight, Room: "Bedroom", Status: models.StatusOffline, LastSeen: "2 hours ago", Brightness: intPtr(0)},
		{ID: "5", Name: "Smart Lock", Category: models.CategoryLock, Room: "Front Door", Status: models.StatusOnline, LastSeen: "5 minutes ago", Locked: boolPtr(true), Battery: intPtr(85)},
	}
}

func Rules() []models.AutomationRule {
	return []models.AutomationRule{
		{ID: "1", Name: "Morning Routine", Description: "Turn on lights and adjust temperature at 7:00 AM", IsActive: true, TriggerType: models.TriggerTime, LastExecuted: "2 hours ago", ExecutionCount: 156, SuccessRate: 98.7, NextExecution: "Tomorrow at 7:00 AM"},
		{ID: "2", Name: "Security Mode", Description: "Lock doors and arm cameras when everyone leaves", IsActive: true, TriggerType: models.TriggerDevice, LastExecuted: "4 hours ago", ExecutionCount: 89, SuccessRate: 100},
		{ID: "3", Name: "Energy Saver", Description: "Turn off lights when no motion detected for 30 minutes", IsActive: false, TriggerType: "Sensor", LastExecuted: "1 day ago", ExecutionCount: 234, SuccessRate: 95.2},
		{ID: "4", Name: "Night Mode", Description: "Dim lights and lower temperature at 10:00 PM", IsActive: true, TriggerType: models.TriggerTime, LastExecuted: "12 hours ago", ExecutionCount: 145, SuccessRate: 97.9, NextExecution: "Today at 10:00 PM"},
	}
}

func Scenes() []models.Scene {
	return []models.Scene{
		{ID: "1", Name: "Movie Night", Description: "Dim lights, Close blinds, turn on TV", DeviceCount: 5, LastActivated: "2 days ago", Icon: "🎬"},
		{ID: "2", Name: "Good Morning", Description: "Gradual light increase, coffee maker on", DeviceCount: 8, LastActivated: "1 hour ago", Icon: "☀️"},
		{ID: "3", Name: "Away Mode", Description: "All lights off, security armed, temperature down", DeviceCount: 12, LastActivated: "6 hours ago", Icon: "🏠"},
		{ID: "4", Name: "Sleep Time", Description: "All lights off, doors locked, temperature optimal", DeviceCount: 10, LastActivated: "8 hours ago", Icon: "🌙"},
	}
}

func Alerts() []models.Alert {
	return []models.Alert{
		{ID: "1", Type: models.AlertCritical, Title: "Offline", Message: "Bedroom Light has been offline for more than 2 hours", Timestamp: "2 hours ago", Source: "Device Monitor"},
		{ID: "2", Type: "Warning", Title: "High Memory Usage", Message: "System memory usage has exceeded 80% threshold", Timestamp: "15 minutes ago", Source: "System Monitor"},
		{ID: "3", Type: "Warning", Title: "Automation Failed", Message: "Morning Routine automation failed to execute completely", Timestamp: "3 hours ago", Source: "Automation Engine", IsRead: true},
		{ID: "4", Type: models.AlertInfo, Title: "Firmware Update Available", Message: "Smart Lock firmware update v2.1.3 is available", Timestamp: "1 day ago", Source: "Update Manager", IsRead: true},
		{ID: "5", Type: "Success", Title: "Backup Completed", Message: "Daily system backup completed successfully", Timestamp: "1 day ago", Source: "Backup Service", IsRead: true, IsResolved: true},
		{ID: "6", Type: models.AlertCritical, Title: "Security Alert", Message: "Multiple failed login attempts detected", Timestamp: "2 days ago", Source: "Security Monitor", IsRead: true, IsResolved: true},
	}
}

func Activity() []models.ActivityItem {
	return []models.ActivityItem{
		{ID: "1", Category: models.ActivityDevice, Title: "Living Room Light turned on", Description: "Device controlled via mobile app", Timestamp: "2 minutes ago", Outcome: models.OutcomeSuccess, Actor: "John Doe"},
		{ID: "2", Category: models.ActivityAutomation, Title: "Morning Routine executed", Description: "Automated scene activated successfully", Timestamp: "3 hours ago", Outcome: models.OutcomeSuccess},
		{ID: "3", Category: models.ActivityDevice, Title: "Bedroom Light went offline", Description: "Device lost connection to network", Timestamp: "2 hours ago", Outcome: models.OutcomeError},
		{ID: "4", Category: models.ActivityUser, Title: "New user registered", Description: "Sarah Smith joined the system", Timestamp: "4 hours ago", Outcome: models.OutcomeInfo},
		{ID: "5", Category: models.ActivitySecurity, Title: "Security system armed", Description: "All sensors activated for night mode", Timestamp: "8 hours ago", Outcome: models.OutcomeSuccess, Actor: "John Doe"},
		{ID: "6", Category: models.ActivitySystem, Title: "System backup completed", Description: "Daily backup process finished successfully", Timestamp: "12 hours ago", Outcome: models.OutcomeSuccess},
		{ID: "7", Category: models.ActivityAutomation, Title: "Energy Saver rule triggered", Description: "Lights dimmed due to no motion detected", Timestamp: "1 day ago", Outcome: models.OutcomeSuccess},
		{ID: "8", Category: models.ActivityDevice, Title: "Smart Lock battery low", Description: "Battery level dropped below 20%", Timestamp: "1 day ago", Outcome: models.OutcomeWarning},
	}
}

func Health() models.SystemHealth {
	return models.SystemHealth{
		Status:            models.HealthHealthy,
		Uptime:            "7d 14h 32m",
		TotalDevices:      24,
		OnlineDevices:     22,
		OfflineDevices:    2,
		ActiveAutomations: 8,
		RecentAlerts:      3,
		SystemLoad:        45,
		MemoryUsage:       68,
		DiskUsage:         34,
	}
}

func Network() models.NetworkStats {
	return models.NetworkStats{Inbound: 2.4, Outbound: 1.8, Latency: 12, Connections: 127}
}

func Database() models.DatabaseStats {
	return models.DatabaseStats{Connections: 15, Queries: 1247, AvgResponseTime: 45, CacheHitRate: 94.2}
}

func Services() []models.ServiceStatus {
	names := []string{"API Server", "Database", "Redis Cache", "Celery Workers", "WebSocket Server"}
	services := make([]models.ServiceStatus, 0, len(names))
	for _, name := range names {
		services = append(services, models.ServiceStatus{Name: name, Status: "running", Uptime: "7d 14h"})
	}
	return services
}

func Notices() []models.PerformanceNotice {
	return []models.PerformanceNotice{
		{Type: models.AlertWarning, Message: "Memory usage above 65%", Timestamp: "2 minutes ago", Severity: "medium"},
		{Type: models.AlertInfo, Message: "Database query optimization completed", Timestamp: "15 minutes ago", Severity: "low"},
		{Type: models.AlertSuccess, Message: "System backup completed successfully", Timestamp: "1 hour ago", Severity: "low"},
	}
}
