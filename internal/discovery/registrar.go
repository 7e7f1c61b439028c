package discovery

import (
	"fmt"
	"net"
	"strconv"

	consul "github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

// Registrar announces the controller's gRPC and HTTP endpoints to Consul.
type Registrar struct {
	client   *consul.Client
	address  string
	grpcPort int
	httpPort int
	logger   *zap.Logger
}

// NewRegistrar returns nil when consulAddr is empty; a nil Registrar does
// nothing.
func NewRegistrar(consulAddr, advertiseAddr, grpcPort, httpPort string, logger *zap.Logger) (*Registrar, error) {
	if consulAddr == "" {
		return nil, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	config := consul.DefaultConfig()
	config.Address = consulAddr
	client, err := consul.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}

	if advertiseAddr == "" {
		advertiseAddr = LocalIP()
	}

	gp, err := strconv.Atoi(grpcPort)
	if err != nil {
		return nil, fmt.Errorf("parse grpc port: %w", err)
	}
	hp, err := strconv.Atoi(httpPort)
	if err != nil {
		return nil, fmt.Errorf("parse http port: %w", err)
	}

	return &Registrar{
		client:   client,
		address:  advertiseAddr,
		grpcPort: gp,
		httpPort: hp,
		logger:   logger,
	}, nil
}

func (r *Registrar) Register() error {
	if r == nil {
		return nil
	}

	registration := &consul.AgentServiceRegistration{
		ID:      ServiceName,
		Name:    ServiceName,
		Port:    r.grpcPort,
		Address: r.address,
		Check: &consul.AgentServiceCheck{
			GRPC:                           fmt.Sprintf("%s:%d", r.address, r.grpcPort),
			Interval:                       "10s",
			Timeout:                        "5s",
			DeregisterCriticalServiceAfter: "30s",
		},
		Tags: []string{"homewatch", "telemetry", "grpc"},
	}

	if err := r.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("register grpc service: %w", err)
	}

	httpRegistration := &consul.AgentServiceRegistration{
		ID:      HTTPServiceName,
		Name:    HTTPServiceName,
		Port:    r.httpPort,
		Address: r.address,
		Check: &consul.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/api/v1/health", r.address, r.httpPort),
			Interval:                       "10s",
			Timeout:                        "5s",
			DeregisterCriticalServiceAfter: "30s",
		},
		Tags: []string{"homewatch", "dashboard", "http", "api"},
	}

	if err := r.client.Agent().ServiceRegister(httpRegistration); err != nil {
		return fmt.Errorf("register http service: %w", err)
	}

	r.logger.Info("Registered with Consul", zap.String("address", r.address))
	return nil
}

func (r *Registrar) Deregister() {
	if r == nil {
		return
	}

	if err := r.client.Agent().ServiceDeregister(ServiceName); err != nil {
		r.logger.Warn("Error deregistering gRPC service", zap.Error(err))
	}

	if err := r.client.Agent().ServiceDeregister(HTTPServiceName); err != nil {
		r.logger.Warn("Error deregistering HTTP service", zap.Error(err))
	}
}

// LocalIP returns the first non-loopback IPv4 address, or 127.0.0.1.
func LocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}

	return "127.0.0.1"
}
