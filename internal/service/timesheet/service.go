package timesheet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/employee"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/location"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/notification"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/punch"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/shift"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/user"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/database"
	"github.com/wfmlabs/workforce-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type ServiceImpl struct {
	db              *database.DB
	timesheetRepo   timesheet.Repository
	punchRepo       punch.EventRepository
	shiftRepo       shift.PlannedShiftRepository
	employeeRepo    employee.Repository
	locationRepo    location.Repository
	userRepo        user.Repository
	notificationSvc notification.Service
	aggregator      *Aggregator

	defaultThresholdMinutes int
	hoursPrecision          int
}

func NewTimesheetService(
	db *database.DB,
	timesheetRepo timesheet.Repository,
	punchRepo punch.EventRepository,
	shiftRepo shift.PlannedShiftRepository,
	employeeRepo employee.Repository,
	locationRepo location.Repository,
	userRepo user.Repository,
	notificationSvc notification.Service,
	defaultThresholdMinutes int,
	hoursPrecision int,
) timesheet.Service {
	if defaultThresholdMinutes <= 0 {
		defaultThresholdMinutes = DefaultOvertimeThresholdMinutes
	}
	if hoursPrecision < 0 {
		hoursPrecision = DefaultHoursPrecision
	}
	return &ServiceImpl{
		db:                      db,
		timesheetRepo:           timesheetRepo,
		punchRepo:               punchRepo,
		shiftRepo:               shiftRepo,
		employeeRepo:            employeeRepo,
		locationRepo:            locationRepo,
		userRepo:                userRepo,
		notificationSvc:         notificationSvc,
		aggregator:              NewAggregator(),
		defaultThresholdMinutes: defaultThresholdMinutes,
		hoursPrecision:          hoursPrecision,
	}
}

// Generate implements timesheet.Service.
func (s *ServiceImpl) Generate(ctx context.Context, companyID string, req timesheet.GenerateRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return timesheet.TimesheetResponse{}, timesheet.ErrEmployeeNotFound
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	tzName, err := s.locationRepo.GetTimezone(ctx, req.LocationID, companyID)
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			return timesheet.TimesheetResponse{}, timesheet.ErrLocationNotFound
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get location timezone: %w", err)
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("%w: %q", location.ErrInvalidTimezone, tzName)
	}

	existing, err := s.timesheetRepo.GetByKey(ctx, req.EmployeeID, req.LocationID, req.PeriodStart, req.PeriodEnd, companyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to check existing timesheet: %w", err)
	}
	if existing != nil && existing.Status == timesheet.StatusLocked {
		return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetLocked
	}

	// One day of lookback and lookahead so sessions crossing the period
	// boundary resolve inside the state machine.
	windowStart := time.Date(periodStart.Year(), periodStart.Month(), periodStart.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	windowEnd := time.Date(periodEnd.Year(), periodEnd.Month(), periodEnd.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 2)

	events, err := s.punchRepo.ListForAggregation(ctx, req.EmployeeID, req.LocationID, windowStart.UTC(), windowEnd.UTC(), companyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("punch event source unavailable: %w", err)
	}

	shifts, err := s.shiftRepo.ListOverlapping(ctx, req.EmployeeID, req.LocationID, windowStart.UTC(), windowEnd.UTC(), companyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("planned shift source unavailable: %w", err)
	}

	threshold := s.defaultThresholdMinutes
	if req.OvertimeThresholdMinutes != nil {
		threshold = *req.OvertimeThresholdMinutes
	}

	totals, anomalies := s.aggregator.Aggregate(events, shifts, periodStart, periodEnd, AggregateOptions{
		OvertimeThresholdMinutes: threshold,
		Location:                 loc,
		EvaluatedAt:              time.Now().UTC(),
	})

	ts := timesheet.Timesheet{
		CompanyID:   companyID,
		EmployeeID:  req.EmployeeID,
		LocationID:  req.LocationID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Totals:      totals,
		Status:      timesheet.StatusDraft,
		Anomalies:   anomalies,
	}

	// The upsert and the anomaly fan-out commit or roll back together.
	var saved timesheet.Timesheet
	err = s.withTx(ctx, func(txCtx context.Context) error {
		saved, err = s.timesheetRepo.Upsert(txCtx, ts)
		if err != nil {
			return err
		}
		if len(anomalies) > 0 {
			s.notifyManagers(txCtx, companyID, notification.TypeAggregationAnomaly,
				"Timesheet anomalies detected",
				fmt.Sprintf("%d anomalies found aggregating %s for %s to %s", len(anomalies), emp.FullName, req.PeriodStart, req.PeriodEnd),
				map[string]interface{}{
					"timesheet_id": saved.ID,
					"employee_id":  req.EmployeeID,
					"location_id":  req.LocationID,
				})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, timesheet.ErrTimesheetLocked) {
			return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetLocked
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to upsert timesheet: %w", err)
	}
	saved.EmployeeName = &emp.FullName
	saved.EmployeeEmail = &emp.Email

	return s.mapToResponse(saved), nil
}

// withTx runs fn inside a database transaction; repositories pick the
// transaction up through the querier context. A nil db runs fn directly.
func (s *ServiceImpl) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

// GenerateBulk implements timesheet.Service. Each tuple succeeds or fails
// independently; the batch never aborts as a whole.
func (s *ServiceImpl) GenerateBulk(ctx context.Context, companyID string, req timesheet.BulkGenerateRequest) (timesheet.BulkGenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.BulkGenerateResponse{}, err
	}

	resp := timesheet.BulkGenerateResponse{}
	for _, tuple := range req.Tuples {
		result, err := s.Generate(ctx, companyID, tuple)
		if err != nil {
			resp.Failed++
			resp.Failures = append(resp.Failures, timesheet.TupleFailure{
				EmployeeID:  tuple.EmployeeID,
				LocationID:  tuple.LocationID,
				PeriodStart: tuple.PeriodStart,
				PeriodEnd:   tuple.PeriodEnd,
				Error:       err.Error(),
			})
			continue
		}
		resp.Succeeded++
		resp.Timesheets = append(resp.Timesheets, result)
	}

	return resp, nil
}

// GenerateForPeriod implements timesheet.Service: discover every
// employee/location pair that punched in the period and bulk-generate.
func (s *ServiceImpl) GenerateForPeriod(ctx context.Context, companyID string, req timesheet.GenerateForPeriodRequest) (timesheet.BulkGenerateResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.BulkGenerateResponse{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	// Discovery window in UTC; per-location day bounds are refined by the
	// individual runs.
	pairs, err := s.punchRepo.DistinctPairs(ctx, periodStart.AddDate(0, 0, -1), periodEnd.AddDate(0, 0, 2), companyID)
	if err != nil {
		return timesheet.BulkGenerateResponse{}, fmt.Errorf("punch event source unavailable: %w", err)
	}

	bulk := timesheet.BulkGenerateRequest{}
	for _, p := range pairs {
		bulk.Tuples = append(bulk.Tuples, timesheet.GenerateRequest{
			EmployeeID:               p.EmployeeID,
			LocationID:               p.LocationID,
			PeriodStart:              req.PeriodStart,
			PeriodEnd:                req.PeriodEnd,
			OvertimeThresholdMinutes: req.OvertimeThresholdMinutes,
		})
	}
	if len(bulk.Tuples) == 0 {
		return timesheet.BulkGenerateResponse{}, nil
	}

	return s.GenerateBulk(ctx, companyID, bulk)
}

// Get implements timesheet.Service.
func (s *ServiceImpl) Get(ctx context.Context, companyID string, id string) (timesheet.TimesheetResponse, error) {
	ts, err := s.timesheetRepo.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, timesheet.ErrTimesheetNotFound) {
			return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get timesheet: %w", err)
	}
	return s.mapToResponse(ts), nil
}

// List implements timesheet.Service.
func (s *ServiceImpl) List(ctx context.Context, companyID string, filter timesheet.TimesheetFilter) (timesheet.ListTimesheetResponse, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	sheets, total, err := s.timesheetRepo.List(ctx, filter, companyID)
	if err != nil {
		return timesheet.ListTimesheetResponse{}, fmt.Errorf("failed to list timesheets: %w", err)
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(sheets))
	for _, ts := range sheets {
		responses = append(responses, s.mapToResponse(ts))
	}

	return timesheet.ListTimesheetResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Timesheets: responses,
	}, nil
}

// Approve implements timesheet.Service.
func (s *ServiceImpl) Approve(ctx context.Context, companyID string, id string, approverID string) (timesheet.TimesheetResponse, error) {
	ts, err := s.timesheetRepo.Approve(ctx, id, companyID, approverID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	s.notifyManagers(ctx, companyID, notification.TypeTimesheetApproved,
		"Timesheet approved",
		fmt.Sprintf("Timesheet %s to %s approved", timesheet.FormatPeriodDate(ts.PeriodStart), timesheet.FormatPeriodDate(ts.PeriodEnd)),
		map[string]interface{}{"timesheet_id": ts.ID, "approved_by": approverID})

	return s.mapToResponse(ts), nil
}

// Lock implements timesheet.Service.
func (s *ServiceImpl) Lock(ctx context.Context, companyID string, id string) (timesheet.TimesheetResponse, error) {
	ts, err := s.timesheetRepo.Lock(ctx, id, companyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	s.notifyManagers(ctx, companyID, notification.TypeTimesheetLocked,
		"Timesheet locked",
		fmt.Sprintf("Timesheet %s to %s locked for payroll", timesheet.FormatPeriodDate(ts.PeriodStart), timesheet.FormatPeriodDate(ts.PeriodEnd)),
		map[string]interface{}{"timesheet_id": ts.ID})

	return s.mapToResponse(ts), nil
}

// UpdateNotes implements timesheet.Service. Notes are settable only while
// the timesheet is still a draft.
func (s *ServiceImpl) UpdateNotes(ctx context.Context, companyID string, req timesheet.UpdateNotesRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	ts, err := s.timesheetRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	switch ts.Status {
	case timesheet.StatusLocked:
		return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetLocked
	case timesheet.StatusApproved:
		return timesheet.TimesheetResponse{}, timesheet.ErrTimesheetApproved
	}

	if err := s.timesheetRepo.UpdateNotes(ctx, req.ID, companyID, req.Notes); err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to update notes: %w", err)
	}

	updated, err := s.timesheetRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get updated timesheet: %w", err)
	}
	return s.mapToResponse(updated), nil
}

func (s *ServiceImpl) notifyManagers(ctx context.Context, companyID string, typ notification.Type, title, message string, data map[string]interface{}) {
	if s.notificationSvc == nil {
		return
	}
	managers, err := s.userRepo.ListManagers(ctx, companyID)
	if err != nil {
		return
	}
	for _, m := range managers {
		_ = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
			CompanyID:   companyID,
			RecipientID: m.ID,
			Type:        typ,
			Title:       title,
			Message:     message,
			Data:        data,
		})
	}
}

func (s *ServiceImpl) mapToResponse(ts timesheet.Timesheet) timesheet.TimesheetResponse {
	var approvedAt, lockedAt *string
	if ts.ApprovedAt != nil {
		v := ts.ApprovedAt.UTC().Format(time.RFC3339)
		approvedAt = &v
	}
	if ts.LockedAt != nil {
		v := ts.LockedAt.UTC().Format(time.RFC3339)
		lockedAt = &v
	}

	return timesheet.TimesheetResponse{
		ID:            ts.ID,
		EmployeeID:    ts.EmployeeID,
		EmployeeName:  ts.EmployeeName,
		EmployeeEmail: ts.EmployeeEmail,
		LocationID:    ts.LocationID,
		LocationName:  ts.LocationName,
		PeriodStart:   timesheet.FormatPeriodDate(ts.PeriodStart),
		PeriodEnd:     timesheet.FormatPeriodDate(ts.PeriodEnd),
		Totals:        ts.Totals,
		Hours:         HoursFromTotals(ts.Totals, s.hoursPrecision),
		Status:        string(ts.Status),
		Anomalies:     ts.Anomalies,
		Notes:         ts.Notes,
		ApprovedBy:    ts.ApprovedBy,
		ApprovedAt:    approvedAt,
		LockedAt:      lockedAt,
		UpdatedAt:     ts.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
