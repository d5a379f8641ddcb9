package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/shift"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/database"
)

type plannedShiftRepository struct {
	db *database.DB
}

// NewPlannedShiftRepository creates a new planned shift repository
func NewPlannedShiftRepository(db *database.DB) shift.PlannedShiftRepository {
	return &plannedShiftRepository{db: db}
}

// Create inserts a new planned shift
func (r *plannedShiftRepository) Create(ctx context.Context, s shift.PlannedShift) (shift.PlannedShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO planned_shifts (id, company_id, employee_id, location_id, starts_at, ends_at, job_tag, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.CompanyID, s.EmployeeID, s.LocationID,
		s.StartsAt, s.EndsAt, s.JobTag,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.PlannedShift{}, fmt.Errorf("failed to create planned shift: %w", err)
	}

	return s, nil
}

// GetByID retrieves a planned shift by ID
func (r *plannedShiftRepository) GetByID(ctx context.Context, id string, companyID string) (shift.PlannedShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.company_id, s.employee_id, s.location_id,
		       s.starts_at, s.ends_at, s.job_tag, s.published_at,
		       s.created_at, s.updated_at, e.full_name, l.name
		FROM planned_shifts s
		JOIN employees e ON e.id = s.employee_id
		JOIN locations l ON l.id = s.location_id
		WHERE s.id = $1 AND s.company_id = $2
	`

	var s shift.PlannedShift
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.LocationID,
		&s.StartsAt, &s.EndsAt, &s.JobTag, &s.PublishedAt,
		&s.CreatedAt, &s.UpdatedAt, &s.EmployeeName, &s.LocationName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.PlannedShift{}, shift.ErrShiftNotFound
		}
		return shift.PlannedShift{}, fmt.Errorf("failed to get planned shift: %w", err)
	}

	return s, nil
}

// Update modifies an unpublished shift. Published shifts are immutable.
func (r *plannedShiftRepository) Update(ctx context.Context, s shift.PlannedShift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE planned_shifts
		SET starts_at = $1, ends_at = $2, job_tag = $3, updated_at = NOW()
		WHERE id = $4 AND company_id = $5 AND published_at IS NULL
	`
	tag, err := q.Exec(ctx, query, s.StartsAt, s.EndsAt, s.JobTag, s.ID, s.CompanyID)
	if err != nil {
		return fmt.Errorf("failed to update planned shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftPublished
	}
	return nil
}

// Delete removes an unpublished shift
func (r *plannedShiftRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM planned_shifts WHERE id = $1 AND company_id = $2 AND published_at IS NULL`
	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete planned shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}

// Publish stamps published_at
func (r *plannedShiftRepository) Publish(ctx context.Context, id string, companyID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	current, err := r.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if current.Published() {
		return shift.ErrShiftAlreadyPublished
	}

	query := `
		UPDATE planned_shifts
		SET published_at = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND published_at IS NULL
	`
	tag, err := q.Exec(ctx, query, at, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to publish planned shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftAlreadyPublished
	}
	return nil
}

// List returns planned shifts with filters and pagination
func (r *plannedShiftRepository) List(ctx context.Context, filter shift.ShiftFilter, companyID string) ([]shift.PlannedShift, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE s.company_id = $1"
	args := []interface{}{companyID}
	argPos := 2

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND s.employee_id = $%d", argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.LocationID != nil {
		where += fmt.Sprintf(" AND s.location_id = $%d", argPos)
		args = append(args, *filter.LocationID)
		argPos++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND s.ends_at >= $%d::date", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND s.starts_at < ($%d::date + INTERVAL '1 day')", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}
	if filter.PublishedOnly {
		where += " AND s.published_at IS NOT NULL"
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM planned_shifts s %s`, where)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count planned shifts: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT s.id, s.company_id, s.employee_id, s.location_id,
		       s.starts_at, s.ends_at, s.job_tag, s.published_at,
		       s.created_at, s.updated_at, e.full_name, l.name
		FROM planned_shifts s
		JOIN employees e ON e.id = s.employee_id
		JOIN locations l ON l.id = s.location_id
		%s
		ORDER BY s.starts_at ASC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list planned shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.PlannedShift
	for rows.Next() {
		var s shift.PlannedShift
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.EmployeeID, &s.LocationID,
			&s.StartsAt, &s.EndsAt, &s.JobTag, &s.PublishedAt,
			&s.CreatedAt, &s.UpdatedAt, &s.EmployeeName, &s.LocationName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan planned shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate planned shifts: %w", err)
	}

	return shifts, total, nil
}

// ListOverlapping returns published shifts for one employee/location pair
// overlapping [from, to), ordered by starts_at.
func (r *plannedShiftRepository) ListOverlapping(ctx context.Context, employeeID, locationID string, from, to time.Time, companyID string) ([]shift.PlannedShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, location_id,
		       starts_at, ends_at, job_tag, published_at,
		       created_at, updated_at
		FROM planned_shifts
		WHERE employee_id = $1 AND location_id = $2
		  AND starts_at < $4 AND ends_at > $3
		  AND company_id = $5
		  AND published_at IS NOT NULL
		ORDER BY starts_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, locationID, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.PlannedShift
	for rows.Next() {
		var s shift.PlannedShift
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.EmployeeID, &s.LocationID,
			&s.StartsAt, &s.EndsAt, &s.JobTag, &s.PublishedAt,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan planned shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate planned shifts: %w", err)
	}

	return shifts, nil
}
