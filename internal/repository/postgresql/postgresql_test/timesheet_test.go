package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
	"github.com/wfmlabs/workforce-backend-go/internal/repository/postgresql"
)

func newDraft(companyID, employeeID, locationID string) timesheet.Timesheet {
	return timesheet.Timesheet{
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		LocationID:  locationID,
		PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Totals: timesheet.Totals{
			RegularMinutes:  480,
			OvertimeMinutes: 60,
			BreakMinutes:    30,
			PlannedMinutes:  480,
			VarianceMinutes: 60,
			DaysWorked:      1,
		},
		Status: timesheet.StatusDraft,
	}
}

func TestTimesheetRepository_UpsertOverwritesTotals(t *testing.T) {
	db := requireTestDB(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID, locationID := seedEmployeeAndLocation(t, db, companyID, "UTC")

	repo := postgresql.NewTimesheetRepository(db)

	first, err := repo.Upsert(ctx, newDraft(companyID, employeeID, locationID))
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusDraft, first.Status)
	assert.Equal(t, 480, first.Totals.RegularMinutes)

	// Re-aggregation of the same key overwrites totals, not duplicates.
	second := newDraft(companyID, employeeID, locationID)
	second.Totals.RegularMinutes = 400
	second.Totals.VarianceMinutes = -20
	updated, err := repo.Upsert(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, 400, updated.Totals.RegularMinutes)
	assert.Equal(t, -20, updated.Totals.VarianceMinutes)

	_, total, err := repo.List(ctx, timesheet.TimesheetFilter{Page: 1, Limit: 10}, companyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTimesheetRepository_UpsertPreservesStatusAndNotes(t *testing.T) {
	db := requireTestDB(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID, locationID := seedEmployeeAndLocation(t, db, companyID, "UTC")

	repo := postgresql.NewTimesheetRepository(db)

	created, err := repo.Upsert(ctx, newDraft(companyID, employeeID, locationID))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateNotes(ctx, created.ID, companyID, "double check overtime"))

	approverID := uuid.New().String()
	approved, err := repo.Approve(ctx, created.ID, companyID, approverID)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	// Re-aggregation must not reset status, notes, or approval fields.
	refreshed, err := repo.Upsert(ctx, newDraft(companyID, employeeID, locationID))
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusApproved, refreshed.Status)
	require.NotNil(t, refreshed.Notes)
	assert.Equal(t, "double check overtime", *refreshed.Notes)
	require.NotNil(t, refreshed.ApprovedBy)
	assert.Equal(t, approverID, *refreshed.ApprovedBy)
}

func TestTimesheetRepository_UpsertRejectsLocked(t *testing.T) {
	db := requireTestDB(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID, locationID := seedEmployeeAndLocation(t, db, companyID, "UTC")

	repo := postgresql.NewTimesheetRepository(db)

	created, err := repo.Upsert(ctx, newDraft(companyID, employeeID, locationID))
	require.NoError(t, err)

	_, err = repo.Approve(ctx, created.ID, companyID, uuid.New().String())
	require.NoError(t, err)
	_, err = repo.Lock(ctx, created.ID, companyID)
	require.NoError(t, err)

	_, err = repo.Upsert(ctx, newDraft(companyID, employeeID, locationID))
	assert.ErrorIs(t, err, timesheet.ErrTimesheetLocked)
}

func TestTimesheetRepository_StatusMachine(t *testing.T) {
	db := requireTestDB(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID, locationID := seedEmployeeAndLocation(t, db, companyID, "UTC")

	repo := postgresql.NewTimesheetRepository(db)

	created, err := repo.Upsert(ctx, newDraft(companyID, employeeID, locationID))
	require.NoError(t, err)

	// Lock before approve is refused.
	_, err = repo.Lock(ctx, created.ID, companyID)
	assert.ErrorIs(t, err, timesheet.ErrTimesheetNotApproved)

	approverID := uuid.New().String()
	_, err = repo.Approve(ctx, created.ID, companyID, approverID)
	require.NoError(t, err)

	// Approving twice is a conflict, not a silent no-op.
	_, err = repo.Approve(ctx, created.ID, companyID, approverID)
	assert.ErrorIs(t, err, timesheet.ErrTimesheetApproved)

	// Notes are frozen once approved.
	err = repo.UpdateNotes(ctx, created.ID, companyID, "too late")
	assert.Error(t, err)

	locked, err := repo.Lock(ctx, created.ID, companyID)
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusLocked, locked.Status)
	require.NotNil(t, locked.LockedAt)

	_, err = repo.Lock(ctx, created.ID, companyID)
	assert.ErrorIs(t, err, timesheet.ErrTimesheetLocked)
	_, err = repo.Approve(ctx, created.ID, companyID, approverID)
	assert.ErrorIs(t, err, timesheet.ErrTimesheetLocked)
}

func TestTimesheetRepository_GetByKey(t *testing.T) {
	db := requireTestDB(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID, locationID := seedEmployeeAndLocation(t, db, companyID, "UTC")

	repo := postgresql.NewTimesheetRepository(db)

	missing, err := repo.GetByKey(ctx, employeeID, locationID, "2024-01-01", "2024-01-31", companyID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := repo.Upsert(ctx, newDraft(companyID, employeeID, locationID))
	require.NoError(t, err)

	found, err := repo.GetByKey(ctx, employeeID, locationID, "2024-01-01", "2024-01-31", companyID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	// Cross-company access sees nothing.
	otherCompany, err := repo.GetByKey(ctx, employeeID, locationID, "2024-01-01", "2024-01-31", uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, otherCompany)
}
