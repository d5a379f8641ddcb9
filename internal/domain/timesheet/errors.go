package timesheet

import "errors"

// Timesheet domain errors
var (
	ErrTimesheetNotFound = errors.New("timesheet not found")

	// Status machine conflicts. Locked and approved are reported
	// distinctly so batch runs can itemize them.
	ErrTimesheetLocked      = errors.New("timesheet is locked and cannot be modified")
	ErrTimesheetApproved    = errors.New("timesheet has already been approved")
	ErrTimesheetNotApproved = errors.New("timesheet must be approved before locking")

	ErrEmployeeNotFound = errors.New("employee not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidPeriod    = errors.New("period end must not be before period start")
)
