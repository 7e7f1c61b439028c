package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/metorial/homewatch/internal/telemetry"
)

const (
	ModeSynthetic = "synthetic"
	ModeHost      = "host"
)

var (
	ErrInvalidInterval = errors.New("intervals must be positive")
	ErrInvalidStale    = errors.New("disconnected_after must not be shorter than stale_after")
	ErrInvalidMode     = errors.New("telemetry mode must be synthetic or host")
	ErrInvalidHistory  = errors.New("history size must be between 1 and 20")
	ErrInvalidPort     = errors.New("ports must be set")
)

// Config holds all configuration for the controller
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
	Redis     RedisConfig     `yaml:"redis"`
	Consul    ConsulConfig    `yaml:"consul"`
}

type ServerConfig struct {
	HTTPPort    string   `yaml:"http_port"`
	GRPCPort    string   `yaml:"grpc_port"`
	Environment string   `yaml:"environment"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// TelemetryConfig controls the live update loop and its freshness checks
type TelemetryConfig struct {
	Mode                string        `yaml:"mode"`
	HealthInterval      time.Duration `yaml:"health_interval"`
	PerformanceInterval time.Duration `yaml:"performance_interval"`
	StaleAfter          time.Duration `yaml:"stale_after"`
	DisconnectedAfter   time.Duration `yaml:"disconnected_after"`
	HistorySize         int           `yaml:"history_size"`
	Seed                uint64        `yaml:"seed"`
	DiskPath            string        `yaml:"disk_path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RedisConfig enables the change publisher when Addr is set
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

// ConsulConfig enables service registration when Addr is set
type ConsulConfig struct {
	Addr          string `yaml:"addr"`
	AdvertiseAddr string `yaml:"advertise_addr"`
}

// Load reads a YAML file on top of the environment defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := LoadFromEnv()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:    getEnv("HTTP_PORT", "8080"),
			GRPCPort:    getEnv("GRPC_PORT", "9090"),
			Environment: getEnv("ENVIRONMENT", "development"),
			CORSOrigins: []string{getEnv("CORS_ORIGIN", "*")},
		},
		Telemetry: TelemetryConfig{
			Mode:                getEnv("TELEMETRY_MODE", ModeSynthetic),
			HealthInterval:      getEnvDuration("HEALTH_INTERVAL", 5*time.Second),
			PerformanceInterval: getEnvDuration("PERFORMANCE_INTERVAL", 2*time.Second),
			StaleAfter:          getEnvDuration("STALE_AFTER", 15*time.Second),
			DisconnectedAfter:   getEnvDuration("DISCONNECTED_AFTER", 60*time.Second),
			HistorySize:         getEnvInt("HISTORY_SIZE", 20),
			Seed:                uint64(getEnvInt("TELEMETRY_SEED", 0)),
			DiskPath:            getEnv("DISK_PATH", "/"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Channel:  getEnv("REDIS_CHANNEL", "homewatch:changes"),
		},
		Consul: ConsulConfig{
			Addr:          getEnv("CONSUL_HTTP_ADDR", ""),
			AdvertiseAddr: getEnv("NOMAD_IP_grpc", ""),
		},
	}
}

func (c *Config) Validate() error {
	t := c.Telemetry
	if c.Server.HTTPPort == "" || c.Server.GRPCPort == "" {
		return ErrInvalidPort
	}
	if t.HealthInterval <= 0 || t.PerformanceInterval <= 0 || t.StaleAfter <= 0 {
		return ErrInvalidInterval
	}
	if t.DisconnectedAfter < t.StaleAfter {
		return ErrInvalidStale
	}
	if t.Mode != ModeSynthetic && t.Mode != ModeHost {
		return fmt.Errorf("%w: %q", ErrInvalidMode, t.Mode)
	}
	if t.HistorySize <= 0 || t.HistorySize > telemetry.MaxHistorySize {
		return fmt.Errorf("%w: %d", ErrInvalidHistory, t.HistorySize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
