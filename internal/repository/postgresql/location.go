package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/location"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/database"
)

type locationRepository struct {
	db *database.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *database.DB) location.Repository {
	return &locationRepository{db: db}
}

// GetByID retrieves a location by ID
func (r *locationRepository) GetByID(ctx context.Context, id string, companyID string) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, timezone, created_at, updated_at
		FROM locations
		WHERE id = $1 AND company_id = $2
	`

	var loc location.Location
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&loc.ID, &loc.CompanyID, &loc.Name, &loc.Timezone,
		&loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return location.Location{}, location.ErrLocationNotFound
		}
		return location.Location{}, fmt.Errorf("failed to get location: %w", err)
	}

	return loc, nil
}

// GetTimezone returns the IANA timezone name for a location.
func (r *locationRepository) GetTimezone(ctx context.Context, id string, companyID string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT timezone FROM locations WHERE id = $1 AND company_id = $2`

	var tz string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&tz)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", location.ErrLocationNotFound
		}
		return "", fmt.Errorf("failed to get location timezone: %w", err)
	}

	return tz, nil
}

// List returns all locations for a company
func (r *locationRepository) List(ctx context.Context, companyID string) ([]location.Location, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, timezone, created_at, updated_at
		FROM locations
		WHERE company_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var locations []location.Location
	for rows.Next() {
		var loc location.Location
		if err := rows.Scan(
			&loc.ID, &loc.CompanyID, &loc.Name, &loc.Timezone,
			&loc.CreatedAt, &loc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locations: %w", err)
	}

	return locations, nil
}

// Create inserts a new location
func (r *locationRepository) Create(ctx context.Context, loc location.Location) (location.Location, error) {
	q := GetQuerier(ctx, r.db)

	if loc.ID == "" {
		loc.ID = uuid.New().String()
	}

	query := `
		INSERT INTO locations (id, company_id, name, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, loc.ID, loc.CompanyID, loc.Name, loc.Timezone).
		Scan(&loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return location.Location{}, fmt.Errorf("failed to create location: %w", err)
	}

	return loc, nil
}
