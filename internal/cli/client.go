package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30*time.Second).
			SetHeader("Accept", "application/json"),
	}
}

type DeviceFilter struct {
	Search string
	Status string
	Room   string
}

type AlertFilter struct {
	Search string
	Type   string
	Status string
}

type ActivityFilter struct {
	Search   string
	Category string
	Outcome  string
}

// Health also accepts 503, which the controller answers once telemetry is
// disconnected.
func (c *Client) Health() (map[string]interface{}, error) {
	return c.do(http.MethodGet, "/api/v1/health", "", nil, nil, http.StatusServiceUnavailable)
}

func (c *Client) Overview() (map[string]interface{}, error) {
	return c.get("/api/v1/overview", nil)
}

func (c *Client) ListDevices(f DeviceFilter) (map[string]interface{}, error) {
	return c.get("/api/v1/devices", params(map[string]string{
		"search": f.Search,
		"status": f.Status,
		"room":   f.Room,
	}))
}

func (c *Client) PatchDevice(id string, patch map[string]interface{}) (map[string]interface{}, error) {
	return c.do(http.MethodPatch, "/api/v1/devices/{id}", id, nil, patch)
}

func (c *Client) Automations() (map[string]interface{}, error) {
	return c.get("/api/v1/automations", nil)
}

func (c *Client) ToggleAutomation(id string) (map[string]interface{}, error) {
	return c.do(http.MethodPost, "/api/v1/automations/{id}/toggle", id, nil, nil)
}

func (c *Client) ActivateScene(id string) (map[string]interface{}, error) {
	return c.do(http.MethodPost, "/api/v1/scenes/{id}/activate", id, nil, nil)
}

func (c *Client) Performance() (map[string]interface{}, error) {
	return c.get("/api/v1/performance", nil)
}

func (c *Client) ListAlerts(f AlertFilter) (map[string]interface{}, error) {
	return c.get("/api/v1/alerts", params(map[string]string{
		"search": f.Search,
		"type":   f.Type,
		"status": f.Status,
	}))
}

func (c *Client) MarkAlertRead(id string) (map[string]interface{}, error) {
	return c.do(http.MethodPost, "/api/v1/alerts/{id}/read", id, nil, nil)
}

func (c *Client) ResolveAlert(id string) (map[string]interface{}, error) {
	return c.do(http.MethodPost, "/api/v1/alerts/{id}/resolve", id, nil, nil)
}

func (c *Client) DeleteAlert(id string) (map[string]interface{}, error) {
	return c.do(http.MethodDelete, "/api/v1/alerts/{id}", id, nil, nil)
}

func (c *Client) Activity(f ActivityFilter) (map[string]interface{}, error) {
	return c.get("/api/v1/activity", params(map[string]string{
		"search":   f.Search,
		"category": f.Category,
		"outcome":  f.Outcome,
	}))
}

func params(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func (c *Client) get(path string, query map[string]string) (map[string]interface{}, error) {
	return c.do(http.MethodGet, path, "", query, nil)
}

// do fills a {id} placeholder in path with the escaped id.
func (c *Client) do(method, path, id string, query map[string]string, body interface{}, alsoOK ...int) (map[string]interface{}, error) {
	req := c.http.R().SetQueryParams(query)
	if id != "" {
		req.SetPathParam("id", id)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if !accepted(resp.StatusCode(), alsoOK) {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode(), resp.String())
	}

	var result map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return result, nil
}

func accepted(status int, alsoOK []int) bool {
	if status == http.StatusOK {
		return true
	}
	for _, s := range alsoOK {
		if s == status {
			return true
		}
	}
	return false
}
