package location

import "errors"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidTimezone  = errors.New("location timezone is not a valid IANA zone name")
)
