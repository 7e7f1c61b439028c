package telemetry

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/metorial/homewatch/internal/models"
	"github.com/metorial/homewatch/internal/store"
)

const (
	DefaultHealthInterval      = 5 * time.Second
	DefaultPerformanceInterval = 2 * time.Second
)

var ErrAlreadyRunning = errors.New("telemetry generator already running")

type Options struct {
	HealthInterval      time.Duration
	PerformanceInterval time.Duration
	HistorySize         int

	Source  Source
	Host    HostReader
	Monitor *Monitor
	Logger  *zap.Logger
	Now     func() time.Time
}

// Generator keeps the store live with two independent tickers: a health
// tick that perturbs device and resource figures and a performance tick
// that appends history samples and perturbs network figures.
type Generator struct {
	store   *store.Store
	source  Source
	host    HostReader
	monitor *Monitor
	logger  *zap.Logger
	now     func() time.Time

	healthEvery time.Duration
	perfEvery   time.Duration
	historySize int

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

func NewGenerator(st *store.Store, opts Options) *Generator {
	g := &Generator{
		store:       st,
		source:      opts.Source,
		host:        opts.Host,
		monitor:     opts.Monitor,
		logger:      opts.Logger,
		now:         opts.Now,
		healthEvery: opts.HealthInterval,
		perfEvery:   opts.PerformanceInterval,
		historySize: opts.HistorySize,
	}
	if g.source == nil {
		g.source = NewRandomSource(0)
	}
	if g.monitor == nil {
		g.monitor = NewMonitor(DefaultStaleAfter, DefaultDisconnectedAfter)
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.healthEvery <= 0 {
		g.healthEvery = DefaultHealthInterval
	}
	if g.perfEvery <= 0 {
		g.perfEvery = DefaultPerformanceInterval
	}
	if g.historySize <= 0 {
		g.historySize = DefaultHistorySize
	}
	if g.historySize > MaxHistorySize {
		g.historySize = MaxHistorySize
	}
	return g
}

func (g *Generator) Monitor() *Monitor {
	return g.monitor
}

// Start launches both tickers. They run until ctx is cancelled or Stop is
// called.
func (g *Generator) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.running = true

	g.wg.Add(2)
	go g.loop(ctx, g.healthEvery, g.TickHealth)
	go g.loop(ctx, g.perfEvery, g.TickPerformance)

	g.logger.Info("Telemetry generator started",
		zap.Duration("health_interval", g.healthEvery),
		zap.Duration("performance_interval", g.perfEvery),
		zap.Bool("host_readings", g.host != nil))
	return nil
}

// Stop cancels both tickers and waits for them. No store update is issued
// after Stop returns.
func (g *Generator) Stop() {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return
	}
	g.cancel()
	g.running = false
	g.mu.Unlock()

	g.wg.Wait()
	g.logger.Info("Telemetry generator stopped")
}

func (g *Generator) loop(ctx context.Context, every time.Duration, tick func(context.Context)) {
	defer g.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			tick(ctx)
		}
	}
}

// TickHealth runs one health update. With a host reader configured the
// resource figures come from the host, held to the same bounds as synthetic
// ones, and a failed read skips the update, which lets the monitor notice
// the gap.
func (g *Generator) TickHealth(ctx context.Context) {
	var reading *HostReading
	if g.host != nil {
		r, err := g.host.Read(ctx)
		if err != nil {
			g.logger.Warn("Host reading failed", zap.Error(err))
			return
		}
		reading = &r
	}

	g.store.Update(store.ChangeHealth, func(snap *store.Snapshot) bool {
		h := &snap.Health
		h.OnlineDevices = int(Step(FieldOnlineDevices, float64(h.OnlineDevices), g.source.Next()))
		h.OfflineDevices = h.TotalDevices - h.OnlineDevices

		if reading != nil {
			h.SystemLoad = clampTo(FieldSystemLoad, reading.CPUPercent)
			h.MemoryUsage = clampTo(FieldMemoryUsage, reading.MemoryPercent)
			h.DiskUsage = Clamp(reading.DiskPercent, 0, 100)
			h.Uptime = FormatUptime(reading.Uptime)
		} else {
			h.SystemLoad = Step(FieldSystemLoad, h.SystemLoad, g.source.Next())
			h.MemoryUsage = Step(FieldMemoryUsage, h.MemoryUsage, g.source.Next())
		}
		return true
	})

	g.monitor.Observe(g.now())
}

// TickPerformance appends the current load and memory figures to their
// histories and perturbs the network figures.
func (g *Generator) TickPerformance(context.Context) {
	label := g.now().Format("15:04:05")

	g.store.Update(store.ChangePerformance, func(snap *store.Snapshot) bool {
		cpu := NewHistory(g.historySize, snap.CPUHistory)
		cpu.Push(models.MetricSample{Timestamp: label, Value: snap.Health.SystemLoad})
		snap.CPUHistory = cpu.Samples()

		memory := NewHistory(g.historySize, snap.MemoryHistory)
		memory.Push(models.MetricSample{Timestamp: label, Value: snap.Health.MemoryUsage})
		snap.MemoryHistory = memory.Samples()

		n := &snap.Network
		n.Inbound = Step(FieldInbound, n.Inbound, g.source.Next())
		n.Outbound = Step(FieldOutbound, n.Outbound, g.source.Next())
		n.Latency = Step(FieldLatency, n.Latency, g.source.Next())
		n.Connections = int(Step(FieldConnections, float64(n.Connections), g.source.Next()))
		return true
	})
}
