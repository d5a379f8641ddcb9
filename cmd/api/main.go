package main

import (
	"fmt"
	"net/http"

	"github.com/wfmlabs/workforce-backend-go/internal/config"
	appHTTP "github.com/wfmlabs/workforce-backend-go/internal/handler/http"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/cron"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/database"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/jwt"
	"github.com/wfmlabs/workforce-backend-go/internal/repository/postgresql"
	authService "github.com/wfmlabs/workforce-backend-go/internal/service/auth"
	employeeService "github.com/wfmlabs/workforce-backend-go/internal/service/employee"
	exportService "github.com/wfmlabs/workforce-backend-go/internal/service/export"
	locationService "github.com/wfmlabs/workforce-backend-go/internal/service/location"
	notificationService "github.com/wfmlabs/workforce-backend-go/internal/service/notification"
	punchService "github.com/wfmlabs/workforce-backend-go/internal/service/punch"
	shiftService "github.com/wfmlabs/workforce-backend-go/internal/service/shift"
	timesheetService "github.com/wfmlabs/workforce-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	shiftRepo := postgresql.NewPlannedShiftRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	notificationSvc := notificationService.NewNotificationService(notificationRepo)
	authSvc := authService.NewAuthService(userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	locationSvc := locationService.NewLocationService(locationRepo)
	punchSvc := punchService.NewEventService(punchRepo, employeeRepo, locationRepo)
	shiftSvc := shiftService.NewPlannedShiftService(shiftRepo, employeeRepo, locationRepo)
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

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	punchHandler := appHTTP.NewPunchHandler(punchSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc, exportSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	locationHandler := appHTTP.NewLocationHandler(locationSvc)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		jobs := cron.NewTimesheetJobs(timesheetSvc, punchRepo, userRepo, notificationSvc, cfg.Timesheet.StaleSessionAfterDays)
		jobs.Register(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		punchHandler,
		shiftHandler,
		timesheetHandler,
		notificationHandler,
		employeeHandler,
		locationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
