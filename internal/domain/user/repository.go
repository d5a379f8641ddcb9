package user

import (
	"context"
)

// Repository defines data access for users.
type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)

	GetByEmail(ctx context.Context, email string) (User, error)

	// ListManagers returns users with the manager or owner role, the
	// audience for anomaly and approval notifications.
	ListManagers(ctx context.Context, companyID string) ([]User, error)

	Create(ctx context.Context, u User) (User, error)
}
