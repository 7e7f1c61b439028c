package models

type TriggerTag string

const (
	TriggerTime   TriggerTag = "time"
	TriggerDevice TriggerTag = "device"
	TriggerSensor TriggerTag = "sensor"
)

type AutomationRule struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	IsActive       bool       `json:"is_active"`
	TriggerType    TriggerTag `json:"trigger_type"`
	LastExecuted   string     `json:"last_executed"`
	ExecutionCount int        `json:"execution_count"`
	SuccessRate    float64    `json:"success_rate"`
	NextExecution  string     `json:"next_execution,omitempty"`
}

type Scene struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	DeviceCount   int    `json:"device_count"`
	LastActivated string `json:"last_activated"`
	Icon          string `json:"icon"`
}
