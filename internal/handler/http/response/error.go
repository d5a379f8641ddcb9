package response

import (
	"errors"
	"net/http"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/auth"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/employee"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/location"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/notification"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/punch"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/shift"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/user"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrPermissionDenied):
		Forbidden(w, "Permission denied")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrTimesheetLocked):
		Conflict(w, "Timesheet is locked")
	case errors.Is(err, timesheet.ErrTimesheetApproved):
		Conflict(w, "Timesheet already approved")
	case errors.Is(err, timesheet.ErrTimesheetNotApproved):
		Conflict(w, "Timesheet must be approved first")
	case errors.Is(err, timesheet.ErrInvalidPeriod):
		BadRequest(w, "Invalid period", nil)
	case errors.Is(err, timesheet.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, timesheet.ErrLocationNotFound):
		NotFound(w, "Location not found")

	// Punch domain errors
	case errors.Is(err, punch.ErrPunchNotFound):
		NotFound(w, "Punch event not found")
	case errors.Is(err, punch.ErrDuplicatePunch):
		Conflict(w, "Punch already recorded")
	case errors.Is(err, punch.ErrFutureTimestamp):
		BadRequest(w, "Punch timestamp is in the future", nil)
	case errors.Is(err, punch.ErrInvalidKind):
		BadRequest(w, "Invalid punch kind", nil)
	case errors.Is(err, punch.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, punch.ErrLocationNotFound):
		NotFound(w, "Location not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Planned shift not found")
	case errors.Is(err, shift.ErrShiftAlreadyPublished):
		Conflict(w, "Shift already published")
	case errors.Is(err, shift.ErrShiftPublished):
		Conflict(w, "Published shifts are immutable")
	case errors.Is(err, shift.ErrInvalidInterval):
		BadRequest(w, "Shift interval is invalid", nil)

	// Supporting domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, location.ErrInvalidTimezone):
		BadRequest(w, "Location timezone is not a valid IANA zone name", nil)
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
