package shift

import (
	"context"
	"time"
)

// PlannedShiftRepository defines data access for planned shifts.
// All methods take companyID to prevent cross-company data access.
type PlannedShiftRepository interface {
	Create(ctx context.Context, s PlannedShift) (PlannedShift, error)

	GetByID(ctx context.Context, id string, companyID string) (PlannedShift, error)

	// Update modifies an unpublished shift. Published shifts are immutable
	// reference data and the repository rejects the write.
	Update(ctx context.Context, s PlannedShift) error

	Delete(ctx context.Context, id string, companyID string) error

	// Publish stamps published_at; returns ErrShiftAlreadyPublished when
	// the shift is already published.
	Publish(ctx context.Context, id string, companyID string, at time.Time) error

	List(ctx context.Context, filter ShiftFilter, companyID string) ([]PlannedShift, int64, error)

	// ListOverlapping returns published shifts for one employee/location
	// pair overlapping [from, to), ordered by starts_at.
	ListOverlapping(ctx context.Context, employeeID, locationID string, from, to time.Time, companyID string) ([]PlannedShift, error)
}

// PlannedShiftService is the shift-planning surface used by handlers.
type PlannedShiftService interface {
	CreateShift(ctx context.Context, companyID string, req CreateShiftRequest) (ShiftResponse, error)
	UpdateShift(ctx context.Context, companyID string, req UpdateShiftRequest) (ShiftResponse, error)
	DeleteShift(ctx context.Context, companyID string, id string) error
	PublishShift(ctx context.Context, companyID string, id string) (ShiftResponse, error)
	GetShift(ctx context.Context, companyID string, id string) (ShiftResponse, error)
	ListShifts(ctx context.Context, companyID string, filter ShiftFilter) (ListShiftResponse, error)
}
