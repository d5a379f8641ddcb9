package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wfmlabs/workforce-backend-go/internal/pkg/database"
)

var (
	testDB     *database.DB
	testDBErr  error
	testDBOnce sync.Once
)

// requireTestDB connects to the database named by TEST_DATABASE_URL.
// Tests are skipped when the variable is unset.
func requireTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	testDBOnce.Do(func() {
		testDB, testDBErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, testDBErr, "failed to connect to test database")

	return testDB
}

// truncateAll wipes every table touched by the repository tests.
func truncateAll(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	tables := []string{
		"notifications",
		"timesheets",
		"planned_shifts",
		"punch_events",
		"users",
		"employees",
		"locations",
	}

	for _, table := range tables {
		_, err := db.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

// seedEmployeeAndLocation inserts the minimum rows a timesheet or punch
// row needs to satisfy its foreign keys. Returns (employeeID, locationID).
func seedEmployeeAndLocation(t *testing.T, db *database.DB, companyID string, timezone string) (string, string) {
	t.Helper()
	ctx := context.Background()

	employeeID := uuid.New().String()
	locationID := uuid.New().String()

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO employees (id, company_id, full_name, email, employment_status, created_at, updated_at)
		VALUES ($1, $2, 'Dana Smith', $3, 'active', NOW(), NOW())
	`, employeeID, companyID, employeeID+"@example.com")
	require.NoError(t, err)

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO locations (id, company_id, name, timezone, created_at, updated_at)
		VALUES ($1, $2, 'Main Site', $3, NOW(), NOW())
	`, locationID, companyID, timezone)
	require.NoError(t, err)

	return employeeID, locationID
}
