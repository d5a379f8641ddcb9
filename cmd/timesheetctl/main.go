package main

import (
	"fmt"
	"os"

	"github.com/wfmlabs/workforce-backend-go/internal/cli"
	"github.com/wfmlabs/workforce-backend-go/internal/config"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/database"
	"github.com/wfmlabs/workforce-backend-go/internal/repository/postgresql"
	exportService "github.com/wfmlabs/workforce-backend-go/internal/service/export"
	notificationService "github.com/wfmlabs/workforce-backend-go/internal/service/notification"
	timesheetService "github.com/wfmlabs/workforce-backend-go/internal/service/timesheet"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	shiftRepo := postgresql.NewPlannedShiftRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	notificationSvc := notificationService.NewNotificationService(notificationRepo)
	timesheetSvc := timesheetService.NewTimesheetService(
		db,
		timesheetRepo,
		punchRepo,
		shiftRepo,
		employeeRepo,
		locationRepo,
		userRepo,
		notificationSvc,
		cfg.Timesheet.OvertimeThresholdMinutes,
		cfg.Timesheet.HoursPrecision,
	)
	exportSvc := exportService.NewExportService(timesheetSvc, cfg.Export.DefaultFields)

	app := &cli.App{
		Timesheets: timesheetSvc,
		Exports:    exportSvc,
	}

	return cli.NewRootCmd(app).Execute()
}
