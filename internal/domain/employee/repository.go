package employee

import (
	"context"
)

// Repository defines data access for employees.
type Repository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	ListActive(ctx context.Context, companyID string) ([]Employee, error)

	Create(ctx context.Context, emp Employee) (Employee, error)
}

// Service is the employee roster surface used by handlers.
type Service interface {
	CreateEmployee(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, companyID string) (ListEmployeeResponse, error)
}
