package user

import "time"

type Role string

const (
	RoleOwner   Role = "owner"   // Company owner - full access
	RoleManager Role = "manager" // Can approve and lock timesheets
	RoleStaff   Role = "staff"   // Regular employee
)

type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsOwner checks if user is company owner
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// IsManager checks if user is manager or owner
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleOwner
}
