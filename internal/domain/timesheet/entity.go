package timesheet

import (
	"time"
)

// Status is the lifecycle state of a timesheet. Transitions are
// one-directional: draft -> approved -> locked.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusLocked   Status = "locked"
)

// Totals is the aggregation output for one employee/location/period tuple.
// Invariant: VarianceMinutes == (RegularMinutes + OvertimeMinutes) - PlannedMinutes.
type Totals struct {
	RegularMinutes  int `json:"regular_minutes"`
	OvertimeMinutes int `json:"overtime_minutes"`
	BreakMinutes    int `json:"break_minutes"`
	PlannedMinutes  int `json:"planned_minutes"`
	VarianceMinutes int `json:"variance_minutes"`
	DaysWorked      int `json:"days_worked"`
}

// AnomalyCode classifies a non-fatal problem found while aggregating.
type AnomalyCode string

const (
	// AnomalyInvalidTransition marks a punch that is not a valid transition
	// from the current session state; the punch is skipped.
	AnomalyInvalidTransition AnomalyCode = "invalid_transition"
	// AnomalyOutOfOrder marks a punch whose timestamp precedes the previous
	// punch in the stream.
	AnomalyOutOfOrder AnomalyCode = "out_of_order_event"
	// AnomalyUnterminatedSession marks a session still open after a period
	// that has already ended; the session is clipped at the period boundary.
	AnomalyUnterminatedSession AnomalyCode = "unterminated_session"
	// AnomalySessionOpen marks a session still open in a period that is
	// still running; informational, the open portion is clipped at the
	// evaluation time.
	AnomalySessionOpen AnomalyCode = "session_open"
)

// Anomaly is a non-fatal data-quality finding attached to an aggregation
// result for human review. Aggregation never aborts on anomalies.
type Anomaly struct {
	Code   AnomalyCode `json:"code"`
	At     time.Time   `json:"at"`
	Kind   string      `json:"kind,omitempty"`
	Detail string      `json:"detail"`
}

// Timesheet is the persisted aggregation result, keyed by
// (company, employee, location, period_start, period_end).
type Timesheet struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	LocationID  string
	PeriodStart time.Time // date, inclusive
	PeriodEnd   time.Time // date, inclusive
	Totals      Totals
	Status      Status
	Anomalies   []Anomaly
	Notes       *string
	ApprovedBy  *string
	ApprovedAt  *time.Time
	LockedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName  *string
	EmployeeEmail *string
	LocationName  *string
}
