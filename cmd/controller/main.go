package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/metorial/homewatch/internal/api"
	"github.com/metorial/homewatch/internal/config"
	"github.com/metorial/homewatch/internal/discovery"
	"github.com/metorial/homewatch/internal/feed"
	"github.com/metorial/homewatch/internal/healthcheck"
	"github.com/metorial/homewatch/internal/logger"
	"github.com/metorial/homewatch/internal/metrics"
	"github.com/metorial/homewatch/internal/publish"
	"github.com/metorial/homewatch/internal/store"
	"github.com/metorial/homewatch/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return config.Load(path)
	}
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	zapLog, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "homewatch-controller")
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer zapLog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := store.NewSeeded()
	metrics.RecordSnapshot(st.Snapshot())
	st.Subscribe(metrics.Record)

	hub := feed.NewHub(zapLog)
	go hub.Run(ctx)
	st.Subscribe(hub.Publish)

	if cfg.Redis.Addr != "" {
		redisClient, err := publish.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zapLog.Warn("Change publishing disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			publisher := publish.New(redisClient, cfg.Redis.Channel, zapLog)
			go publisher.Run(ctx)
			st.Subscribe(publisher.Listen)
			zapLog.Info("Publishing changes to Redis",
				zap.String("addr", cfg.Redis.Addr),
				zap.String("channel", cfg.Redis.Channel))
		}
	}

	monitor := telemetry.NewMonitor(cfg.Telemetry.StaleAfter, cfg.Telemetry.DisconnectedAfter)
	opts := telemetry.Options{
		HealthInterval:      cfg.Telemetry.HealthInterval,
		PerformanceInterval: cfg.Telemetry.PerformanceInterval,
		HistorySize:         cfg.Telemetry.HistorySize,
		Source:              telemetry.NewRandomSource(cfg.Telemetry.Seed),
		Monitor:             monitor,
		Logger:              zapLog,
	}
	if cfg.Telemetry.Mode == config.ModeHost {
		opts.Host = telemetry.NewHostSampler(cfg.Telemetry.DiskPath)
	}
	generator := telemetry.NewGenerator(st, opts)
	if err := generator.Start(ctx); err != nil {
		return fmt.Errorf("start telemetry: %w", err)
	}
	defer generator.Stop()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	reporter := healthcheck.NewReporter(healthServer, monitor, healthcheck.DefaultInterval, zapLog)
	go reporter.Run(ctx)

	server := api.NewServer(api.Options{
		Store:       st,
		Monitor:     monitor,
		Hub:         hub,
		Logger:      zapLog,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.HTTPPort),
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	registrar, err := discovery.NewRegistrar(cfg.Consul.Addr, cfg.Consul.AdvertiseAddr, cfg.Server.GRPCPort, cfg.Server.HTTPPort, zapLog)
	if err != nil {
		zapLog.Warn("Failed to create Consul client", zap.Error(err))
	}
	if err := registrar.Register(); err != nil {
		zapLog.Warn("Failed to register with Consul", zap.Error(err))
	}
	defer registrar.Deregister()

	errChan := make(chan error, 2)
	go func() {
		zapLog.Info("gRPC server listening", zap.String("port", cfg.Server.GRPCPort))
		errChan <- grpcServer.Serve(lis)
	}()

	go func() {
		zapLog.Info("HTTP API server listening",
			zap.String("port", cfg.Server.HTTPPort),
			zap.String("environment", cfg.Server.Environment),
			zap.String("telemetry_mode", cfg.Telemetry.Mode))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		zapLog.Info("Received signal", zap.String("signal", sig.String()))
		generator.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("HTTP shutdown failed", zap.Error(err))
		}
		grpcServer.GracefulStop()
		return nil
	}
}
