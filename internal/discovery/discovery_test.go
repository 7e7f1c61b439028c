package discovery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func consulHealthServer(t *testing.T, service string, entries []map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/health/service/"+service {
			t.Errorf("Unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}))
}

func entry(nodeAddr, serviceAddr string, port int) map[string]interface{} {
	return map[string]interface{}{
		"Node": map[string]interface{}{
			"Address": nodeAddr,
		},
		"Service": map[string]interface{}{
			"Address": serviceAddr,
			"Port":    port,
		},
	}
}

func TestDiscoverAPI(t *testing.T) {
	server := consulHealthServer(t, HTTPServiceName, []map[string]interface{}{entry("10.0.0.1", "10.0.0.2", 8080)})
	defer server.Close()

	sd, err := NewServiceDiscovery(server.URL[7:])
	if err != nil {
		t.Fatalf("Failed to create service discovery: %v", err)
	}

	url, err := sd.DiscoverAPI()
	if err != nil {
		t.Fatalf("Failed to discover API: %v", err)
	}

	expected := "http://10.0.0.2:8080"
	if url != expected {
		t.Errorf("Expected %s, got %s", expected, url)
	}
}

func TestDiscoverGRPCUsesNodeAddress(t *testing.T) {
	server := consulHealthServer(t, ServiceName, []map[string]interface{}{entry("10.0.0.1", "", 9090)})
	defer server.Close()

	sd, err := NewServiceDiscovery(server.URL[7:])
	if err != nil {
		t.Fatalf("Failed to create service discovery: %v", err)
	}

	addr, err := sd.DiscoverGRPC()
	if err != nil {
		t.Fatalf("Failed to discover controller: %v", err)
	}

	expected := "10.0.0.1:9090"
	if addr != expected {
		t.Errorf("Expected address %s (node address), got %s", expected, addr)
	}
}

func TestDiscoverNoServices(t *testing.T) {
	server := consulHealthServer(t, ServiceName, []map[string]interface{}{})
	defer server.Close()

	sd, err := NewServiceDiscovery(server.URL[7:])
	if err != nil {
		t.Fatalf("Failed to create service discovery: %v", err)
	}

	if _, err := sd.DiscoverGRPC(); err == nil {
		t.Error("Expected error when no services found")
	}
}

func TestWatch(t *testing.T) {
	server := consulHealthServer(t, ServiceName, []map[string]interface{}{entry("10.0.0.1", "10.0.0.2", 9090)})
	defer server.Close()

	sd, err := NewServiceDiscovery(server.URL[7:])
	if err != nil {
		t.Fatalf("Failed to create service discovery: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	addrChan := sd.Watch(ctx, ServiceName, 50*time.Millisecond, nil)

	select {
	case addr := <-addrChan:
		if addr != "10.0.0.2:9090" {
			t.Errorf("Expected address 10.0.0.2:9090, got %s", addr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for controller address")
	}

	cancel()
	select {
	case _, ok := <-addrChan:
		if ok {
			t.Error("Expected no further address for an unchanged service")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}
