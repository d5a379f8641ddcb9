package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

const timesheetColumns = `
	t.id, t.company_id, t.employee_id, t.location_id,
	t.period_start, t.period_end,
	t.regular_minutes, t.overtime_minutes, t.break_minutes,
	t.planned_minutes, t.variance_minutes, t.days_worked,
	t.status, t.anomalies, t.notes,
	t.approved_by, t.approved_at, t.locked_at,
	t.created_at, t.updated_at,
	e.full_name, e.email, l.name
`

const timesheetJoins = `
	JOIN employees e ON e.id = t.employee_id
	JOIN locations l ON l.id = t.location_id
`

// Upsert inserts or overwrites the timesheet for its natural key. Only
// totals and anomalies are overwritten; status, notes and the approval
// columns survive re-aggregation. A locked row is never touched.
func (r *timesheetRepository) Upsert(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	if ts.ID == "" {
		ts.ID = uuid.New().String()
	}

	anomaliesJSON, err := json.Marshal(ts.Anomalies)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to marshal anomalies: %w", err)
	}

	query := `
		INSERT INTO timesheets (
			id, company_id, employee_id, location_id, period_start, period_end,
			regular_minutes, overtime_minutes, break_minutes,
			planned_minutes, variance_minutes, days_worked,
			status, anomalies, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		ON CONFLICT (company_id, employee_id, location_id, period_start, period_end)
		DO UPDATE SET
			regular_minutes = EXCLUDED.regular_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			break_minutes = EXCLUDED.break_minutes,
			planned_minutes = EXCLUDED.planned_minutes,
			variance_minutes = EXCLUDED.variance_minutes,
			days_worked = EXCLUDED.days_worked,
			anomalies = EXCLUDED.anomalies,
			updated_at = NOW()
		WHERE timesheets.status != 'locked'
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		ts.ID,
		ts.CompanyID,
		ts.EmployeeID,
		ts.LocationID,
		ts.PeriodStart,
		ts.PeriodEnd,
		ts.Totals.RegularMinutes,
		ts.Totals.OvertimeMinutes,
		ts.Totals.BreakMinutes,
		ts.Totals.PlannedMinutes,
		ts.Totals.VarianceMinutes,
		ts.Totals.DaysWorked,
		string(timesheet.StatusDraft),
		anomaliesJSON,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The conflict row exists but the WHERE guard filtered it out.
			return timesheet.Timesheet{}, timesheet.ErrTimesheetLocked
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to upsert timesheet: %w", err)
	}

	return r.GetByID(ctx, id, ts.CompanyID)
}

// GetByID retrieves a timesheet by ID
func (r *timesheetRepository) GetByID(ctx context.Context, id string, companyID string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM timesheets t
		%s
		WHERE t.id = $1 AND t.company_id = $2
	`, timesheetColumns, timesheetJoins)

	row := q.QueryRow(ctx, query, id, companyID)
	ts, err := scanTimesheet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet: %w", err)
	}
	return ts, nil
}

// GetByKey fetches by the natural key.
func (r *timesheetRepository) GetByKey(ctx context.Context, employeeID, locationID, periodStart, periodEnd string, companyID string) (*timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM timesheets t
		%s
		WHERE t.employee_id = $1 AND t.location_id = $2
		  AND t.period_start = $3 AND t.period_end = $4
		  AND t.company_id = $5
	`, timesheetColumns, timesheetJoins)

	row := q.QueryRow(ctx, query, employeeID, locationID, periodStart, periodEnd, companyID)
	ts, err := scanTimesheet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get timesheet by key: %w", err)
	}
	return &ts, nil
}

// List returns timesheets with filters and pagination
func (r *timesheetRepository) List(ctx context.Context, filter timesheet.TimesheetFilter, companyID string) ([]timesheet.Timesheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE t.company_id = $1"
	args := []interface{}{companyID}
	argPos := 2

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND t.employee_id = $%d", argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.LocationID != nil {
		where += fmt.Sprintf(" AND t.location_id = $%d", argPos)
		args = append(args, *filter.LocationID)
		argPos++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND t.status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.PeriodStart != nil {
		where += fmt.Sprintf(" AND t.period_start >= $%d", argPos)
		args = append(args, *filter.PeriodStart)
		argPos++
	}
	if filter.PeriodEnd != nil {
		where += fmt.Sprintf(" AND t.period_end <= $%d", argPos)
		args = append(args, *filter.PeriodEnd)
		argPos++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM timesheets t %s`, where)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheets: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s
		FROM timesheets t
		%s
		%s
		ORDER BY t.period_start DESC, e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, timesheetColumns, timesheetJoins, where, argPos, argPos+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		sheets = append(sheets, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate timesheets: %w", err)
	}

	return sheets, total, nil
}

// Approve transitions draft -> approved.
func (r *timesheetRepository) Approve(ctx context.Context, id string, companyID string, approverID string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	current, err := r.GetByID(ctx, id, companyID)
	if err != nil {
		return timesheet.Timesheet{}, err
	}
	switch current.Status {
	case timesheet.StatusLocked:
		return timesheet.Timesheet{}, timesheet.ErrTimesheetLocked
	case timesheet.StatusApproved:
		return timesheet.Timesheet{}, timesheet.ErrTimesheetApproved
	}

	query := `
		UPDATE timesheets
		SET status = $1, approved_by = $2, approved_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND company_id = $4 AND status = 'draft'
	`
	tag, err := q.Exec(ctx, query, string(timesheet.StatusApproved), approverID, id, companyID)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to approve timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Status changed between the read and the write.
		return timesheet.Timesheet{}, timesheet.ErrTimesheetApproved
	}

	return r.GetByID(ctx, id, companyID)
}

// Lock transitions approved -> locked.
func (r *timesheetRepository) Lock(ctx context.Context, id string, companyID string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	current, err := r.GetByID(ctx, id, companyID)
	if err != nil {
		return timesheet.Timesheet{}, err
	}
	switch current.Status {
	case timesheet.StatusLocked:
		return timesheet.Timesheet{}, timesheet.ErrTimesheetLocked
	case timesheet.StatusDraft:
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotApproved
	}

	query := `
		UPDATE timesheets
		SET status = $1, locked_at = NOW(), updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND status = 'approved'
	`
	tag, err := q.Exec(ctx, query, string(timesheet.StatusLocked), id, companyID)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to lock timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetLocked
	}

	return r.GetByID(ctx, id, companyID)
}

// UpdateNotes sets free-text notes on a draft timesheet.
func (r *timesheetRepository) UpdateNotes(ctx context.Context, id string, companyID string, notes string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET notes = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND approved_at IS NULL
	`
	tag, err := q.Exec(ctx, query, notes, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update notes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}
	return nil
}

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	var periodStart, periodEnd time.Time
	var status string
	var anomaliesJSON []byte

	err := row.Scan(
		&ts.ID,
		&ts.CompanyID,
		&ts.EmployeeID,
		&ts.LocationID,
		&periodStart,
		&periodEnd,
		&ts.Totals.RegularMinutes,
		&ts.Totals.OvertimeMinutes,
		&ts.Totals.BreakMinutes,
		&ts.Totals.PlannedMinutes,
		&ts.Totals.VarianceMinutes,
		&ts.Totals.DaysWorked,
		&status,
		&anomaliesJSON,
		&ts.Notes,
		&ts.ApprovedBy,
		&ts.ApprovedAt,
		&ts.LockedAt,
		&ts.CreatedAt,
		&ts.UpdatedAt,
		&ts.EmployeeName,
		&ts.EmployeeEmail,
		&ts.LocationName,
	)
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	ts.PeriodStart = periodStart
	ts.PeriodEnd = periodEnd
	ts.Status = timesheet.Status(status)

	if len(anomaliesJSON) > 0 {
		if err := json.Unmarshal(anomaliesJSON, &ts.Anomalies); err != nil {
			return timesheet.Timesheet{}, fmt.Errorf("failed to unmarshal anomalies: %w", err)
		}
	}

	return ts, nil
}
