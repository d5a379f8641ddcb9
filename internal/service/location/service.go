package location

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/location"
)

type ServiceImpl struct {
	repo location.Repository
}

func NewLocationService(repo location.Repository) location.Service {
	return &ServiceImpl{repo: repo}
}

// CreateLocation implements location.Service. The timezone is validated
// as a loadable IANA zone before the row is written; aggregation relies
// on it resolving.
func (s *ServiceImpl) CreateLocation(ctx context.Context, companyID string, req location.CreateLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	created, err := s.repo.Create(ctx, location.Location{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      req.Name,
		Timezone:  req.Timezone,
	})
	if err != nil {
		return location.LocationResponse{}, fmt.Errorf("failed to create location: %w", err)
	}

	return mapToResponse(created), nil
}

// ListLocations implements location.Service.
func (s *ServiceImpl) ListLocations(ctx context.Context, companyID string) (location.ListLocationResponse, error) {
	locations, err := s.repo.List(ctx, companyID)
	if err != nil {
		return location.ListLocationResponse{}, fmt.Errorf("failed to list locations: %w", err)
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, mapToResponse(loc))
	}

	return location.ListLocationResponse{Locations: responses}, nil
}

func mapToResponse(loc location.Location) location.LocationResponse {
	return location.LocationResponse{
		ID:        loc.ID,
		Name:      loc.Name,
		Timezone:  loc.Timezone,
		CreatedAt: loc.CreatedAt.UTC().Format(time.RFC3339),
	}
}
