package punch

import (
	"time"

	"github.com/wfmlabs/workforce-backend-go/internal/pkg/validator"
)

type RecordPunchRequest struct {
	EmployeeID     string `json:"employee_id"`
	LocationID     string `json:"location_id"`
	Kind           string `json:"kind"`
	OccurredAt     string `json:"occurred_at"` // RFC3339; defaults to server time when empty
	Source         string `json:"source"`
	IdempotencyKey string `json:"idempotency_key"`
}

func (r *RecordPunchRequest) Validate() error {
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

	validKind := false
	for _, k := range AllKinds() {
		if r.Kind == string(k) {
			validKind = true
			break
		}
	}
	if !validKind {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of clock_in, clock_out, break_start, break_end",
		})
	}

	if !validator.IsEmpty(r.OccurredAt) {
		if _, ok := validator.IsValidDateTime(r.OccurredAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "occurred_at",
				Message: "occurred_at must be an RFC3339 timestamp",
			})
		}
	}

	if !validator.IsEmpty(r.Source) && !validator.IsInSlice(r.Source, []string{string(SourceKiosk), string(SourceAPI), string(SourceCorrection)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of kiosk, api, correction",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchFilter struct {
	EmployeeID *string
	LocationID *string
	Kind       *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
}

type PunchResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LocationID   string  `json:"location_id"`
	LocationName *string `json:"location_name,omitempty"`
	Kind         string  `json:"kind"`
	OccurredAt   string  `json:"occurred_at"`
	Source       string  `json:"source"`
	CreatedAt    string  `json:"created_at"`
}

type ListPunchResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Punches    []PunchResponse `json:"punches"`
}

// MapEventToResponse converts an Event entity to PunchResponse.
func MapEventToResponse(e Event) PunchResponse {
	return PunchResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		LocationID:   e.LocationID,
		LocationName: e.LocationName,
		Kind:         string(e.Kind),
		OccurredAt:   e.OccurredAt.UTC().Format(time.RFC3339),
		Source:       string(e.Source),
		CreatedAt:    e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
