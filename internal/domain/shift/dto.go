package shift

import (
	"time"

	"github.com/wfmlabs/workforce-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	EmployeeID string  `json:"employee_id"`
	LocationID string  `json:"location_id"`
	StartsAt   string  `json:"starts_at"` // RFC3339
	EndsAt     string  `json:"ends_at"`   // RFC3339
	JobTag     *string `json:"job_tag,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LocationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_id",
			Message: "location_id is required",
		})
	}

	startsAt, startOK := validator.IsValidDateTime(r.StartsAt)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "starts_at",
			Message: "starts_at must be an RFC3339 timestamp",
		})
	}

	endsAt, endOK := validator.IsValidDateTime(r.EndsAt)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "ends_at",
			Message: "ends_at must be an RFC3339 timestamp",
		})
	}

	if startOK && endOK && !endsAt.After(startsAt) {
		errs = append(errs, validator.ValidationError{
			Field:   "ends_at",
			Message: "ends_at must be after starts_at",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID       string  `json:"-"`
	StartsAt *string `json:"starts_at,omitempty"`
	EndsAt   *string `json:"ends_at,omitempty"`
	JobTag   *string `json:"job_tag,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartsAt != nil {
		if _, ok := validator.IsValidDateTime(*r.StartsAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "starts_at",
				Message: "starts_at must be an RFC3339 timestamp",
			})
		}
	}

	if r.EndsAt != nil {
		if _, ok := validator.IsValidDateTime(*r.EndsAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "ends_at",
				Message: "ends_at must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftFilter struct {
	EmployeeID    *string
	LocationID    *string
	StartDate     *string
	EndDate       *string
	PublishedOnly bool
	Page          int
	Limit         int
}

type ShiftResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LocationID   string  `json:"location_id"`
	LocationName *string `json:"location_name,omitempty"`
	StartsAt     string  `json:"starts_at"`
	EndsAt       string  `json:"ends_at"`
	JobTag       *string `json:"job_tag,omitempty"`
	Minutes      int     `json:"minutes"`
	Published    bool    `json:"published"`
	PublishedAt  *string `json:"published_at,omitempty"`
}

type ListShiftResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Shifts     []ShiftResponse `json:"shifts"`
}

// MapShiftToResponse converts a PlannedShift entity to ShiftResponse.
func MapShiftToResponse(s PlannedShift) ShiftResponse {
	var publishedAt *string
	if s.PublishedAt != nil {
		v := s.PublishedAt.UTC().Format(time.RFC3339)
		publishedAt = &v
	}

	return ShiftResponse{
		ID:           s.ID,
		EmployeeID:   s.EmployeeID,
		EmployeeName: s.EmployeeName,
		LocationID:   s.LocationID,
		LocationName: s.LocationName,
		StartsAt:     s.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:       s.EndsAt.UTC().Format(time.RFC3339),
		JobTag:       s.JobTag,
		Minutes:      s.Minutes(),
		Published:    s.Published(),
		PublishedAt:  publishedAt,
	}
}
