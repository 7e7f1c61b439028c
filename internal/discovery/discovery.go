package discovery

import (
	"context"
	"fmt"
	"time"

	consul "github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

const (
	ServiceName     = "homewatch-controller"
	HTTPServiceName = "homewatch-controller-http"
)

type ServiceDiscovery struct {
	consulAddr string
	client     *consul.Client
}

func NewServiceDiscovery(consulAddr string) (*ServiceDiscovery, error) {
	config := consul.DefaultConfig()
	config.Address = consulAddr

	client, err := consul.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}

	return &ServiceDiscovery{
		consulAddr: consulAddr,
		client:     client,
	}, nil
}

// Discover returns host:port of the first healthy instance of name.
func (sd *ServiceDiscovery) Discover(name string) (string, error) {
	services, _, err := sd.client.Health().Service(name, "", true, nil)
	if err != nil {
		return "", fmt.Errorf("query consul: %w", err)
	}

	if len(services) == 0 {
		return "", fmt.Errorf("no healthy %s services found", name)
	}

	service := services[0]
	addr := service.Service.Address
	if addr == "" {
		addr = service.Node.Address
	}

	return fmt.Sprintf("%s:%d", addr, service.Service.Port), nil
}

// DiscoverAPI returns the base URL of a healthy controller HTTP API.
func (sd *ServiceDiscovery) DiscoverAPI() (string, error) {
	addr, err := sd.Discover(HTTPServiceName)
	if err != nil {
		return "", err
	}
	return "http://" + addr, nil
}

// DiscoverGRPC returns host:port of a healthy controller gRPC endpoint.
func (sd *ServiceDiscovery) DiscoverGRPC() (string, error) {
	return sd.Discover(ServiceName)
}

// Watch polls name and emits its address whenever it changes. The channel
// is closed when ctx is done.
func (sd *ServiceDiscovery) Watch(ctx context.Context, name string, every time.Duration, logger *zap.Logger) <-chan string {
	if logger == nil {
		logger = zap.NewNop()
	}
	addrChan := make(chan string, 1)

	go func() {
		defer close(addrChan)

		var lastAddr string
		for {
			wait := every
			addr, err := sd.Discover(name)
			if err != nil {
				logger.Warn("Discovery failed", zap.String("service", name), zap.Error(err))
				wait = every / 2
			} else if addr != lastAddr {
				logger.Info("Discovered service", zap.String("service", name), zap.String("addr", addr))
				select {
				case addrChan <- addr:
				case <-ctx.Done():
					return
				}
				lastAddr = addr
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}()

	return addrChan
}
