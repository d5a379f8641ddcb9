package timesheet

import (
	"time"

	"github.com/wfmlabs/workforce-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	EmployeeID  string `json:"employee_id"`
	LocationID  string `json:"location_id"`
	PeriodStart string `json:"period_start"` // YYYY-MM-DD, inclusive
	PeriodEnd   string `json:"period_end"`   // YYYY-MM-DD, inclusive
	// OvertimeThresholdMinutes overrides the configured per-day threshold
	// when set.
	OvertimeThresholdMinutes *int `json:"overtime_threshold_minutes,omitempty"`
}

func (r *GenerateRequest) Validate() error {
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

	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_start",
			Message: "period_start must be a valid date (YYYY-MM-DD)",
		})
	}

	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_end",
			Message: "period_end must not be before period_start",
		})
	}

	if r.OvertimeThresholdMinutes != nil && *r.OvertimeThresholdMinutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_threshold_minutes",
			Message: "overtime_threshold_minutes must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BulkGenerateRequest struct {
	Tuples []GenerateRequest `json:"tuples"`
}

func (r *BulkGenerateRequest) Validate() error {
	if len(r.Tuples) == 0 {
		return validator.ValidationErrors{{
			Field:   "tuples",
			Message: "at least one tuple is required",
		}}
	}
	return nil
}

// GenerateForPeriodRequest triggers discovery of every employee/location
// pair with punches in the period, followed by a bulk run.
type GenerateForPeriodRequest struct {
	PeriodStart              string `json:"period_start"`
	PeriodEnd                string `json:"period_end"`
	OvertimeThresholdMinutes *int   `json:"overtime_threshold_minutes,omitempty"`
}

func (r *GenerateForPeriodRequest) Validate() error {
	probe := GenerateRequest{
		EmployeeID:               "-",
		LocationID:               "-",
		PeriodStart:              r.PeriodStart,
		PeriodEnd:                r.PeriodEnd,
		OvertimeThresholdMinutes: r.OvertimeThresholdMinutes,
	}
	return probe.Validate()
}

// TupleFailure itemizes one failed tuple in a bulk run.
type TupleFailure struct {
	EmployeeID  string `json:"employee_id"`
	LocationID  string `json:"location_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Error       string `json:"error"`
}

// BulkGenerateResponse reports a bulk run: counts plus itemized failures,
// never a single opaque failure for the whole batch.
type BulkGenerateResponse struct {
	Succeeded  int                 `json:"succeeded"`
	Failed     int                 `json:"failed"`
	Timesheets []TimesheetResponse `json:"timesheets"`
	Failures   []TupleFailure      `json:"failures,omitempty"`
}

type UpdateNotesRequest struct {
	ID    string `json:"-"`
	Notes string `json:"notes"`
}

func (r *UpdateNotesRequest) Validate() error {
	if len(r.Notes) > 2000 {
		return validator.ValidationErrors{{
			Field:   "notes",
			Message: "notes must not exceed 2000 characters",
		}}
	}
	return nil
}

type TimesheetFilter struct {
	EmployeeID  *string
	LocationID  *string
	Status      *string
	PeriodStart *string
	PeriodEnd   *string
	Page        int
	Limit       int
}

// HoursTotals is Totals converted to hours at the configured precision.
type HoursTotals struct {
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	BreakHours    float64 `json:"break_hours"`
	PlannedHours  float64 `json:"planned_hours"`
	VarianceHours float64 `json:"variance_hours"`
	TotalHours    float64 `json:"total_hours"`
}

type TimesheetResponse struct {
	ID            string      `json:"id"`
	EmployeeID    string      `json:"employee_id"`
	EmployeeName  *string     `json:"employee_name,omitempty"`
	EmployeeEmail *string     `json:"employee_email,omitempty"`
	LocationID    string      `json:"location_id"`
	LocationName  *string     `json:"location_name,omitempty"`
	PeriodStart   string      `json:"period_start"`
	PeriodEnd     string      `json:"period_end"`
	Totals        Totals      `json:"totals"`
	Hours         HoursTotals `json:"hours"`
	Status        string      `json:"status"`
	Anomalies     []Anomaly   `json:"anomalies,omitempty"`
	Notes         *string     `json:"notes,omitempty"`
	ApprovedBy    *string     `json:"approved_by,omitempty"`
	ApprovedAt    *string     `json:"approved_at,omitempty"`
	LockedAt      *string     `json:"locked_at,omitempty"`
	UpdatedAt     string      `json:"updated_at"`
}

type ListTimesheetResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Timesheets []TimesheetResponse `json:"timesheets"`
}

// FormatPeriodDate renders a period boundary for responses and exports.
func FormatPeriodDate(t time.Time) string {
	return t.Format("2006-01-02")
}
