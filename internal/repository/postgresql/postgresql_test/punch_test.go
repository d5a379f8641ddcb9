package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/punch"
	"github.com/wfmlabs/workforce-backend-go/internal/repository/postgresql"
)

func newPunch(companyID, employeeID, locationID string, kind punch.Kind, occurredAt time.Time) punch.Event {
	return punch.Event{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		EmployeeID:     employeeID,
		LocationID:     locationID,
		Kind:           kind,
		OccurredAt:     occurredAt,
		Source:         punch.SourceKiosk,
		IdempotencyKey: uuid.New().String(),
	}
}

func TestPunchRepository_DuplicateIdempotencyKey(t *testing.T) {
	db := requireTestDB(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID, locationID := seedEmployeeAndLocation(t, db, companyID, "UTC")

	repo := postgresql.NewPunchRepository(db)

	event := newPunch(companyID, employeeID, locationID, punch.KindClockIn, time.Now().UTC())
	_, err := repo.Create(ctx, event)
	require.NoError(t, err)

	// A kiosk retry reuses the same key and must not produce a second row.
	retry := event
	retry.ID = uuid.New().String()
	_, err = repo.Create(ctx, retry)
	assert.ErrorIs(t, err, punch.ErrDuplicatePunch)

	found, err := repo.GetByIdempotencyKey(ctx, event.IdempotencyKey, companyID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, event.ID, found.ID)
}

func TestPunchRepository_ListForAggregationOrdersAndBounds(t *testing.T) {
	db := requireTestDB(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID, locationID := seedEmployeeAndLocation(t, db, companyID, "UTC")

	repo := postgresql.NewPunchRepository(db)

	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	// Insert intentionally out of chronological order.
	for _, e := range []punch.Event{
		newPunch(companyID, employeeID, locationID, punch.KindClockOut, base.Add(8*time.Hour)),
		newPunch(companyID, employeeID, locationID, punch.KindClockIn, base),
		newPunch(companyID, employeeID, locationID, punch.KindClockIn, base.AddDate(0, 1, 0)), // outside window
	} {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	events, err := repo.ListForAggregation(ctx, employeeID, locationID,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		companyID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, punch.KindClockIn, events[0].Kind)
	assert.Equal(t, punch.KindClockOut, events[1].Kind)
}

func TestPunchRepository_DistinctPairs(t *testing.T) {
	db := requireTestDB(t)
	truncateAll(t, db)

	ctx := context.Background()
	companyID := uuid.New().String()
	employeeID, locationID := seedEmployeeAndLocation(t, db, companyID, "UTC")
	otherEmployeeID, otherLocationID := seedEmployeeAndLocation(t, db, companyID, "UTC")

	repo := postgresql.NewPunchRepository(db)

	at := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	for _, e := range []punch.Event{
		newPunch(companyID, employeeID, locationID, punch.KindClockIn, at),
		newPunch(companyID, employeeID, locationID, punch.KindClockOut, at.Add(4*time.Hour)),
		newPunch(companyID, otherEmployeeID, otherLocationID, punch.KindClockIn, at),
	} {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	pairs, err := repo.DistinctPairs(ctx,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		companyID)
	require.NoError(t, err)
	assert.Len(t, pairs, 2)
}
