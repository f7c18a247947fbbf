package approval

import (
	"time"

	common_models "go-hiring/internal/common/models"
)

// Event is broadcast after every successful submission or decision so
// live dashboards can refresh without polling.
type Event struct {
	RequisitionID string                       `json:"requisition_id"`
	Action        string                       `json:"action"` // submitted | approved | rejected | auto_approved
	Status        common_models.ApprovalStatus `json:"status"`
	CurrentStep   int                          `json:"current_step,omitempty"`
	ActorEmail    string                       `json:"actor_email,omitempty"`
	Timestamp     time.Time                    `json:"timestamp"`
}

// Publisher is implemented by the dashboard's websocket hub.
type Publisher interface {
	Publish(event Event)
}
