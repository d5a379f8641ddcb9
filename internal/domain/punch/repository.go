package punch

import (
	"context"
	"time"
)

// Pair identifies one employee/location combination that produced punches.
type Pair struct {
	EmployeeID string
	LocationID string
}

// OpenSession describes the trailing punch of a session with no clock_out.
type OpenSession struct {
	EmployeeID string
	LocationID string
	LastKind   Kind
	LastPunch  time.Time
}

// EventRepository defines data access for punch events.
// All methods take companyID to prevent cross-company data access.
type EventRepository interface {
	// Create inserts a new punch event. Uniqueness on the idempotency key
	// means kiosk retries surface as ErrDuplicatePunch.
	Create(ctx context.Context, event Event) (Event, error)

	// GetByIdempotencyKey fetches a previously recorded punch, if any.
	GetByIdempotencyKey(ctx context.Context, key string, companyID string) (*Event, error)

	// ListForAggregation returns all events for one employee/location pair
	// in [from, to), ordered by occurred_at ascending. Callers widen the
	// window by a day on each side to catch sessions crossing the period
	// boundary.
	ListForAggregation(ctx context.Context, employeeID, locationID string, from, to time.Time, companyID string) ([]Event, error)

	// List returns punch events with filters and pagination.
	List(ctx context.Context, filter PunchFilter, companyID string) ([]Event, int64, error)

	// DistinctPairs returns every (employee, location) pair with at least
	// one punch in [from, to).
	DistinctPairs(ctx context.Context, from, to time.Time, companyID string) ([]Pair, error)

	// StaleOpenSessions returns pairs whose latest punch is not a clock_out
	// and is older than the cutoff.
	StaleOpenSessions(ctx context.Context, cutoff time.Time, companyID string) ([]OpenSession, error)

	// DistinctCompanyIDs returns every company with at least one punch in
	// [from, to), for the background jobs that fan out per company.
	DistinctCompanyIDs(ctx context.Context, from, to time.Time) ([]string, error)
}

// EventService is the punch-recording surface used by handlers.
type EventService interface {
	RecordPunch(ctx context.Context, companyID string, req RecordPunchRequest) (PunchResponse, error)
	ListPunches(ctx context.Context, companyID string, filter PunchFilter) (ListPunchResponse, error)
}
