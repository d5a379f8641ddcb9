package timesheet

import (
	"context"
)

// Repository defines data access for timesheets.
// All methods take companyID to prevent cross-company data access.
type Repository interface {
	// Upsert inserts or overwrites the timesheet for its
	// (employee, location, period) key. Re-aggregation of a draft or
	// approved record overwrites totals and anomalies; a locked record
	// is never touched and the write returns ErrTimesheetLocked.
	Upsert(ctx context.Context, ts Timesheet) (Timesheet, error)

	GetByID(ctx context.Context, id string, companyID string) (Timesheet, error)

	// GetByKey fetches by the natural key. Period bounds use the
	// YYYY-MM-DD date form.
	GetByKey(ctx context.Context, employeeID, locationID, periodStart, periodEnd string, companyID string) (*Timesheet, error)

	List(ctx context.Context, filter TimesheetFilter, companyID string) ([]Timesheet, int64, error)

	// Approve transitions draft -> approved. Returns ErrTimesheetApproved
	// when already approved and ErrTimesheetLocked when locked.
	Approve(ctx context.Context, id string, companyID string, approverID string) (Timesheet, error)

	// Lock transitions approved -> locked. Returns ErrTimesheetNotApproved
	// for drafts and ErrTimesheetLocked when already locked.
	Lock(ctx context.Context, id string, companyID string) (Timesheet, error)

	// UpdateNotes sets free-text notes; rejected once approved_at is set.
	UpdateNotes(ctx context.Context, id string, companyID string, notes string) error
}

// Service is the timesheet surface used by handlers and the CLI.
type Service interface {
	Generate(ctx context.Context, companyID string, req GenerateRequest) (TimesheetResponse, error)
	GenerateBulk(ctx context.Context, companyID string, req BulkGenerateRequest) (BulkGenerateResponse, error)
	GenerateForPeriod(ctx context.Context, companyID string, req GenerateForPeriodRequest) (BulkGenerateResponse, error)
	Get(ctx context.Context, companyID string, id string) (TimesheetResponse, error)
	List(ctx context.Context, companyID string, filter TimesheetFilter) (ListTimesheetResponse, error)
	Approve(ctx context.Context, companyID string, id string, approverID string) (TimesheetResponse, error)
	Lock(ctx context.Context, companyID string, id string) (TimesheetResponse, error)
	UpdateNotes(ctx context.Context, companyID string, req UpdateNotesRequest) (TimesheetResponse, error)
}
