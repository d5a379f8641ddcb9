package notification

import (
	"time"
)

// Type represents the type of notification
type Type string

const (
	TypeTimesheetGenerated Type = "timesheet_generated"
	TypeTimesheetApproved  Type = "timesheet_approved"
	TypeTimesheetLocked    Type = "timesheet_locked"
	TypeAggregationAnomaly Type = "aggregation_anomaly"
	TypeStaleOpenSession   Type = "stale_open_session"
)

// Notification is an in-app message persisted for a recipient. Delivery
// is in-DB only; there is no email fan-out.
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	Type        Type
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
