package shift

import "errors"

// Planned shift domain errors
var (
	ErrShiftNotFound         = errors.New("planned shift not found")
	ErrShiftAlreadyPublished = errors.New("planned shift is already published")
	ErrShiftPublished        = errors.New("published shifts cannot be modified")
	ErrInvalidInterval       = errors.New("shift end must be after shift start")
)
