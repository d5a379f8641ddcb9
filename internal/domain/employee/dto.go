package employee

import (
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	EmploymentStatus string `json:"employment_status"`
	CreatedAt        string `json:"created_at"`
}

type ListEmployeeResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}
