package discovery

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type consulAgent struct {
	mu           sync.Mutex
	registered   []map[string]interface{}
	deregistered []string
}

func (a *consulAgent) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()

		switch {
		case r.URL.Path == "/v1/agent/service/register":
			body, _ := io.ReadAll(r.Body)
			var reg map[string]interface{}
			if err := json.Unmarshal(body, &reg); err != nil {
				t.Errorf("Invalid registration body: %v", err)
			}
			a.registered = append(a.registered, reg)
		case strings.HasPrefix(r.URL.Path, "/v1/agent/service/deregister/"):
			a.deregistered = append(a.deregistered, strings.TrimPrefix(r.URL.Path, "/v1/agent/service/deregister/"))
		default:
			t.Errorf("Unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestRegistrarRegistersBothServices(t *testing.T) {
	agent := &consulAgent{}
	server := httptest.NewServer(agent.handler(t))
	defer server.Close()

	r, err := NewRegistrar(server.URL[7:], "10.1.1.1", "9090", "8080", nil)
	if err != nil {
		t.Fatalf("Failed to create registrar: %v", err)
	}

	if err := r.Register(); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	if len(agent.registered) != 2 {
		t.Fatalf("Expected 2 registrations, got %d", len(agent.registered))
	}

	grpcReg := agent.registered[0]
	if grpcReg["Name"] != ServiceName {
		t.Errorf("Expected name %s, got %v", ServiceName, grpcReg["Name"])
	}
	if grpcReg["Port"] != float64(9090) {
		t.Errorf("Expected port 9090, got %v", grpcReg["Port"])
	}
	check := grpcReg["Check"].(map[string]interface{})
	if check["GRPC"] != "10.1.1.1:9090" {
		t.Errorf("Expected grpc check 10.1.1.1:9090, got %v", check["GRPC"])
	}

	httpCheck := agent.registered[1]["Check"].(map[string]interface{})
	if httpCheck["HTTP"] != "http://10.1.1.1:8080/api/v1/health" {
		t.Errorf("Unexpected http check %v", httpCheck["HTTP"])
	}

	r.Deregister()
	if len(agent.deregistered) != 2 || agent.deregistered[0] != ServiceName || agent.deregistered[1] != HTTPServiceName {
		t.Errorf("Unexpected deregistrations %v", agent.deregistered)
	}
}

func TestRegistrarDisabledWithoutConsul(t *testing.T) {
	r, err := NewRegistrar("", "", "9090", "8080", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if r != nil {
		t.Fatal("Expected nil registrar")
	}
	if err := r.Register(); err != nil {
		t.Errorf("Expected nil registrar to be a no-op, got %v", err)
	}
	r.Deregister()
}

func TestRegistrarRejectsBadPort(t *testing.T) {
	if _, err := NewRegistrar("127.0.0.1:8500", "10.0.0.1", "grpc", "8080", nil); err == nil {
		t.Error("Expected error for non-numeric port")
	}
}

func TestLocalIP(t *testing.T) {
	if LocalIP() == "" {
		t.Error("Expected non-empty local IP")
	}
}
