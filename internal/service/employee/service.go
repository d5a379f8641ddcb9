package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/employee"
)

type ServiceImpl struct {
	repo employee.Repository
}

func NewEmployeeService(repo employee.Repository) employee.Service {
	return &ServiceImpl{repo: repo}
}

// CreateEmployee implements employee.Service.
func (s *ServiceImpl) CreateEmployee(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.repo.Create(ctx, employee.Employee{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		FullName:         req.FullName,
		Email:            req.Email,
		EmploymentStatus: employee.StatusActive,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmailExists) {
			return employee.EmployeeResponse{}, employee.ErrEmailExists
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return mapToResponse(created), nil
}

// ListEmployees implements employee.Service: active employees only.
func (s *ServiceImpl) ListEmployees(ctx context.Context, companyID string) (employee.ListEmployeeResponse, error) {
	employees, err := s.repo.ListActive(ctx, companyID)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapToResponse(emp))
	}

	return employee.ListEmployeeResponse{Employees: responses}, nil
}

func mapToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:               emp.ID,
		FullName:         emp.FullName,
		Email:            emp.Email,
		EmploymentStatus: string(emp.EmploymentStatus),
		CreatedAt:        emp.CreatedAt.UTC().Format(time.RFC3339),
	}
}
