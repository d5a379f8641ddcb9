package location

import (
	"context"
)

// Repository defines data access for locations.
type Repository interface {
	GetByID(ctx context.Context, id string, companyID string) (Location, error)

	// GetTimezone returns the IANA timezone name for a location.
	GetTimezone(ctx context.Context, id string, companyID string) (string, error)

	List(ctx context.Context, companyID string) ([]Location, error)

	Create(ctx context.Context, loc Location) (Location, error)
}

// Service is the work-site management surface used by handlers.
type Service interface {
	CreateLocation(ctx context.Context, companyID string, req CreateLocationRequest) (LocationResponse, error)
	ListLocations(ctx context.Context, companyID string) (ListLocationResponse, error)
}
