package location

import (
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/validator"
)

type CreateLocationRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"` // IANA zone name
}

func (r *CreateLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidTimezone(r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA zone name",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LocationResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Timezone  string `json:"timezone"`
	CreatedAt string `json:"created_at"`
}

type ListLocationResponse struct {
	Locations []LocationResponse `json:"locations"`
}
