package punch

import "errors"

// Punch domain errors
var (
	ErrPunchNotFound    = errors.New("punch event not found")
	ErrInvalidKind      = errors.New("invalid punch kind")
	ErrFutureTimestamp  = errors.New("punch timestamp is in the future")
	ErrDuplicatePunch   = errors.New("punch with this idempotency key already recorded")
	ErrEmployeeNotFound = errors.New("employee not found for punch")
	ErrLocationNotFound = errors.New("location not found for punch")
	ErrLocationMismatch = errors.New("employee and location belong to different companies")
)
