package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/punch"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/database"
)

type punchRepository struct {
	db *database.DB
}

// NewPunchRepository creates a new punch event repository
func NewPunchRepository(db *database.DB) punch.EventRepository {
	return &punchRepository{db: db}
}

// Create inserts a new punch event. The unique index on
// (company_id, idempotency_key) turns kiosk retries into ErrDuplicatePunch.
func (r *punchRepository) Create(ctx context.Context, event punch.Event) (punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punch_events (id, company_id, employee_id, location_id, kind, occurred_at, source, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.CompanyID,
		event.EmployeeID,
		event.LocationID,
		string(event.Kind),
		event.OccurredAt,
		string(event.Source),
		event.IdempotencyKey,
	).Scan(&event.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return punch.Event{}, punch.ErrDuplicatePunch
		}
		return punch.Event{}, fmt.Errorf("failed to create punch event: %w", err)
	}

	return event, nil
}

// GetByIdempotencyKey fetches a previously recorded punch, if any.
func (r *punchRepository) GetByIdempotencyKey(ctx context.Context, key string, companyID string) (*punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, location_id, kind, occurred_at, source, idempotency_key, created_at
		FROM punch_events
		WHERE idempotency_key = $1 AND company_id = $2
	`

	var e punch.Event
	var kind, source string
	err := q.QueryRow(ctx, query, key, companyID).Scan(
		&e.ID, &e.CompanyID, &e.EmployeeID, &e.LocationID,
		&kind, &e.OccurredAt, &source, &e.IdempotencyKey, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get punch by idempotency key: %w", err)
	}
	e.Kind = punch.Kind(kind)
	e.Source = punch.Source(source)
	return &e, nil
}

// ListForAggregation returns events for one employee/location pair in
// [from, to), ordered by occurred_at ascending.
func (r *punchRepository) ListForAggregation(ctx context.Context, employeeID, locationID string, from, to time.Time, companyID string) ([]punch.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, location_id, kind, occurred_at, source, idempotency_key, created_at
		FROM punch_events
		WHERE employee_id = $1 AND location_id = $2
		  AND occurred_at >= $3 AND occurred_at < $4
		  AND company_id = $5
		ORDER BY occurred_at ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, locationID, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list punch events: %w", err)
	}
	defer rows.Close()

	var events []punch.Event
	for rows.Next() {
		var e punch.Event
		var kind, source string
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.EmployeeID, &e.LocationID,
			&kind, &e.OccurredAt, &source, &e.IdempotencyKey, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		e.Kind = punch.Kind(kind)
		e.Source = punch.Source(source)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch events: %w", err)
	}

	return events, nil
}

// List returns punch events with filters and pagination.
func (r *punchRepository) List(ctx context.Context, filter punch.PunchFilter, companyID string) ([]punch.Event, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE p.company_id = $1"
	args := []interface{}{companyID}
	argPos := 2

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND p.employee_id = $%d", argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.LocationID != nil {
		where += fmt.Sprintf(" AND p.location_id = $%d", argPos)
		args = append(args, *filter.LocationID)
		argPos++
	}
	if filter.Kind != nil {
		where += fmt.Sprintf(" AND p.kind = $%d", argPos)
		args = append(args, *filter.Kind)
		argPos++
	}
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND p.occurred_at >= $%d::date", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND p.occurred_at < ($%d::date + INTERVAL '1 day')", argPos)
		args = append(args, *filter.EndDate)
		argPos++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM punch_events p %s`, where)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count punch events: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT p.id, p.company_id, p.employee_id, p.location_id, p.kind,
		       p.occurred_at, p.source, p.idempotency_key, p.created_at,
		       e.full_name, l.name
		FROM punch_events p
		JOIN employees e ON e.id = p.employee_id
		JOIN locations l ON l.id = p.location_id
		%s
		ORDER BY p.occurred_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list punch events: %w", err)
	}
	defer rows.Close()

	var events []punch.Event
	for rows.Next() {
		var e punch.Event
		var kind, source string
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.EmployeeID, &e.LocationID, &kind,
			&e.OccurredAt, &source, &e.IdempotencyKey, &e.CreatedAt,
			&e.EmployeeName, &e.LocationName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan punch event: %w", err)
		}
		e.Kind = punch.Kind(kind)
		e.Source = punch.Source(source)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate punch events: %w", err)
	}

	return events, total, nil
}

// DistinctPairs returns every (employee, location) pair with at least one
// punch in [from, to).
func (r *punchRepository) DistinctPairs(ctx context.Context, from, to time.Time, companyID string) ([]punch.Pair, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id, location_id
		FROM punch_events
		WHERE company_id = $1 AND occurred_at >= $2 AND occurred_at < $3
		ORDER BY employee_id, location_id
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct punch pairs: %w", err)
	}
	defer rows.Close()

	var pairs []punch.Pair
	for rows.Next() {
		var p punch.Pair
		if err := rows.Scan(&p.EmployeeID, &p.LocationID); err != nil {
			return nil, fmt.Errorf("failed to scan punch pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch pairs: %w", err)
	}

	return pairs, nil
}

// StaleOpenSessions returns pairs whose latest punch is not a clock_out
// and is older than the cutoff.
func (r *punchRepository) StaleOpenSessions(ctx context.Context, cutoff time.Time, companyID string) ([]punch.OpenSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT ON (employee_id, location_id)
		       employee_id, location_id, kind, occurred_at
		FROM punch_events
		WHERE company_id = $1
		ORDER BY employee_id, location_id, occurred_at DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest punches: %w", err)
	}
	defer rows.Close()

	var sessions []punch.OpenSession
	for rows.Next() {
		var s punch.OpenSession
		var kind string
		if err := rows.Scan(&s.EmployeeID, &s.LocationID, &kind, &s.LastPunch); err != nil {
			return nil, fmt.Errorf("failed to scan open session: %w", err)
		}
		s.LastKind = punch.Kind(kind)
		if s.LastKind != punch.KindClockOut && s.LastPunch.Before(cutoff) {
			sessions = append(sessions, s)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open sessions: %w", err)
	}

	return sessions, nil
}

// DistinctCompanyIDs returns every company with at least one punch in
// [from, to).
func (r *punchRepository) DistinctCompanyIDs(ctx context.Context, from, to time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT company_id
		FROM punch_events
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY company_id
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct companies: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate company ids: %w", err)
	}

	return ids, nil
}
