package shift

import (
	"time"
)

// PlannedShift is a scheduled work interval. Published shifts are the
// reference data variance is computed against; unpublished drafts do not
// contribute to planned minutes.
type PlannedShift struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	LocationID  string
	StartsAt    time.Time // UTC
	EndsAt      time.Time // UTC
	JobTag      *string
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
	LocationName *string
}

// Published reports whether the shift has been published.
func (s PlannedShift) Published() bool {
	return s.PublishedAt != nil
}

// Minutes returns the full scheduled length of the shift in minutes.
func (s PlannedShift) Minutes() int {
	return int(s.EndsAt.Sub(s.StartsAt) / time.Minute)
}
