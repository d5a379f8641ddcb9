package punch

import (
	"time"
)

// Kind is the type of a time-clock punch.
type Kind string

const (
	KindClockIn    Kind = "clock_in"
	KindClockOut   Kind = "clock_out"
	KindBreakStart Kind = "break_start"
	KindBreakEnd   Kind = "break_end"
)

// AllKinds returns every valid punch kind.
func AllKinds() []Kind {
	return []Kind{KindClockIn, KindClockOut, KindBreakStart, KindBreakEnd}
}

// Source records which channel produced a punch.
type Source string

const (
	SourceKiosk      Source = "kiosk"
	SourceAPI        Source = "api"
	SourceCorrection Source = "correction"
)

// Event is a single immutable time-clock punch. Events are insert-only;
// an approved correction arrives as a replacement event with
// Source = SourceCorrection rather than an update of the original row.
type Event struct {
	ID             string
	CompanyID      string
	EmployeeID     string
	LocationID     string
	Kind           Kind
	OccurredAt     time.Time // UTC
	Source         Source
	IdempotencyKey string
	CreatedAt      time.Time

	// DTO
	EmployeeName *string
	LocationName *string
}
