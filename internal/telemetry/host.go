package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

type HostReading struct {
	CPUPercent    float64
	MemoryPercent float64
	DiskPercent   float64
	Uptime        time.Duration
}

type HostReader interface {
	Read(ctx context.Context) (HostReading, error)
}

// HostSampler reads resource usage of the machine the controller runs on.
type HostSampler struct {
	diskPath string
}

func NewHostSampler(diskPath string) *HostSampler {
	if diskPath == "" {
		diskPath = "/"
	}
	return &HostSampler{diskPath: diskPath}
}

func (hs *HostSampler) Read(ctx context.Context) (HostReading, error) {
	cpuPercent, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return HostReading{}, fmt.Errorf("get cpu percent: %w", err)
	}

	memInfo, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return HostReading{}, fmt.Errorf("get memory usage: %w", err)
	}

	diskInfo, err := disk.UsageWithContext(ctx, hs.diskPath)
	if err != nil {
		return HostReading{}, fmt.Errorf("get disk usage: %w", err)
	}

	uptime, err := host.UptimeWithContext(ctx)
	if err != nil {
		return HostReading{}, fmt.Errorf("get uptime: %w", err)
	}

	cpuPct := 0.0
	if len(cpuPercent) > 0 {
		cpuPct = cpuPercent[0]
	}

	return HostReading{
		CPUPercent:    Clamp(cpuPct, 0, 100),
		MemoryPercent: Clamp(memInfo.UsedPercent, 0, 100),
		DiskPercent:   Clamp(diskInfo.UsedPercent, 0, 100),
		Uptime:        time.Duration(uptime) * time.Second,
	}, nil
}

// FormatUptime renders d as "7d 14h 32m".
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Minute)
	days := total / (24 * 60)
	hours := (total % (24 * 60)) / 60
	minutes := total % 60
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}
