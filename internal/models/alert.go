package models

// AlertType is the raw category tag as it arrives in the data. It is not
// normalized: seed records carry "Warning" and "Success" next to "critical"
// and "info", and consumers see exactly that.
type AlertType string

const (
	AlertCritical AlertType = "critical"
	AlertWarning  AlertType = "warning"
	AlertInfo     AlertType = "info"
	AlertSuccess  AlertType = "success"
)

type Alert struct {
	ID         string    `json:"id"`
	Type       AlertType `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Timestamp  string    `json:"timestamp"`
	Source     string    `json:"source"`
	IsRead     bool      `json:"is_read"`
	IsResolved bool      `json:"is_resolved"`
}

type ActivityCategoryTag string

const (
	ActivityDevice     ActivityCategoryTag = "device"
	ActivityAutomation ActivityCategoryTag = "automation"
	ActivityUser       ActivityCategoryTag = "user"
	ActivitySystem     ActivityCategoryTag = "system"
	ActivitySecurity   ActivityCategoryTag = "security"
)

type ActivityOutcomeTag string

const (
	OutcomeSuccess ActivityOutcomeTag = "success"
	OutcomeWarning ActivityOutcomeTag = "warning"
	OutcomeError   ActivityOutcomeTag = "error"
	OutcomeInfo    ActivityOutcomeTag = "info"
)

type ActivityItem struct {
	ID          string              `json:"id"`
	Category    ActivityCategoryTag `json:"type"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Timestamp   string              `json:"timestamp"`
	Outcome     ActivityOutcomeTag  `json:"status"`
	Actor       string              `json:"user,omitempty"`
}
