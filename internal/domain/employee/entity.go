package employee

import (
	"time"
)

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

// Employee is a worker whose punches and planned shifts feed timesheets.
type Employee struct {
	ID               string
	CompanyID        string
	FullName         string
	Email            string
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}
