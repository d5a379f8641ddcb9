package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/employee"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/location"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/notification"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/punch"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/shift"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/user"
)

type stubTimesheetRepo struct {
	timesheet.Repository

	// employee IDs whose existing row is locked
	locked map[string]bool
	// employee IDs whose upsert hits a row locked after the pre-check
	lockedAtUpsert map[string]bool
	upserted       []timesheet.Timesheet
}

func (r *stubTimesheetRepo) GetByKey(ctx context.Context, employeeID, locationID, periodStart, periodEnd string, companyID string) (*timesheet.Timesheet, error) {
	if r.locked[employeeID] {
		return &timesheet.Timesheet{
			EmployeeID: employeeID,
			LocationID: locationID,
			Status:     timesheet.StatusLocked,
		}, nil
	}
	return nil, nil
}

func (r *stubTimesheetRepo) Upsert(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	if r.lockedAtUpsert[ts.EmployeeID] {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetLocked
	}
	ts.ID = "ts-" + ts.EmployeeID
	r.upserted = append(r.upserted, ts)
	return ts, nil
}

type stubPunchRepo struct {
	punch.EventRepository

	events []punch.Event
	pairs  []punch.Pair
}

func (r *stubPunchRepo) ListForAggregation(ctx context.Context, employeeID, locationID string, from, to time.Time, companyID string) ([]punch.Event, error) {
	return r.events, nil
}

func (r *stubPunchRepo) DistinctPairs(ctx context.Context, from, to time.Time, companyID string) ([]punch.Pair, error) {
	return r.pairs, nil
}

type stubShiftRepo struct {
	shift.PlannedShiftRepository
}

func (r *stubShiftRepo) ListOverlapping(ctx context.Context, employeeID, locationID string, from, to time.Time, companyID string) ([]shift.PlannedShift, error) {
	return nil, nil
}

type stubEmployeeRepo struct {
	employee.Repository
}

func (r *stubEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	if id == "emp-missing" {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, CompanyID: companyID, FullName: "Dana Smith", Email: id + "@example.com"}, nil
}

type stubLocationRepo struct {
	location.Repository
}

func (r *stubLocationRepo) GetTimezone(ctx context.Context, id string, companyID string) (string, error) {
	return "UTC", nil
}

type stubUserRepo struct {
	user.Repository
}

func (r *stubUserRepo) ListManagers(ctx context.Context, companyID string) ([]user.User, error) {
	return []user.User{{ID: "mgr-1", CompanyID: companyID, Role: user.RoleManager}}, nil
}

type stubNotificationService struct {
	queued []notification.CreateNotificationRequest
}

func (s *stubNotificationService) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	s.queued = append(s.queued, req)
	return nil
}

func (s *stubNotificationService) List(ctx context.Context, companyID string, recipientID string, filter notification.NotificationFilter) (notification.ListNotificationResponse, error) {
	return notification.ListNotificationResponse{}, nil
}

func (s *stubNotificationService) MarkRead(ctx context.Context, companyID string, recipientID string, id string) error {
	return nil
}

func (s *stubNotificationService) MarkAllRead(ctx context.Context, companyID string, recipientID string) error {
	return nil
}

func newStubService(tsRepo *stubTimesheetRepo, punchRepo *stubPunchRepo, notifSvc *stubNotificationService) timesheet.Service {
	return NewTimesheetService(
		nil,
		tsRepo,
		punchRepo,
		&stubShiftRepo{},
		&stubEmployeeRepo{},
		&stubLocationRepo{},
		&stubUserRepo{},
		notifSvc,
		480,
		2,
	)
}

func generateReq(employeeID string) timesheet.GenerateRequest {
	return timesheet.GenerateRequest{
		EmployeeID:  employeeID,
		LocationID:  "loc-1",
		PeriodStart: "2025-03-01",
		PeriodEnd:   "2025-03-31",
	}
}

func TestGenerateRejectsLockedTimesheet(t *testing.T) {
	tsRepo := &stubTimesheetRepo{locked: map[string]bool{"emp-1": true}}
	svc := newStubService(tsRepo, &stubPunchRepo{}, &stubNotificationService{})

	_, err := svc.Generate(context.Background(), "co-1", generateReq("emp-1"))

	if !errors.Is(err, timesheet.ErrTimesheetLocked) {
		t.Fatalf("expected ErrTimesheetLocked, got %v", err)
	}
	if len(tsRepo.upserted) != 0 {
		t.Errorf("locked timesheet must not be written, got %d upserts", len(tsRepo.upserted))
	}
}

func TestGenerateRejectsLockAfterPreCheck(t *testing.T) {
	// The row gets locked between the pre-check and the write; the store
	// guard surfaces the same conflict.
	tsRepo := &stubTimesheetRepo{lockedAtUpsert: map[string]bool{"emp-1": true}}
	svc := newStubService(tsRepo, &stubPunchRepo{}, &stubNotificationService{})

	_, err := svc.Generate(context.Background(), "co-1", generateReq("emp-1"))

	if !errors.Is(err, timesheet.ErrTimesheetLocked) {
		t.Fatalf("expected ErrTimesheetLocked, got %v", err)
	}
}

func TestGenerateBulkPartialFailure(t *testing.T) {
	tsRepo := &stubTimesheetRepo{locked: map[string]bool{"emp-locked": true}}
	svc := newStubService(tsRepo, &stubPunchRepo{}, &stubNotificationService{})

	resp, err := svc.GenerateBulk(context.Background(), "co-1", timesheet.BulkGenerateRequest{
		Tuples: []timesheet.GenerateRequest{
			generateReq("emp-1"),
			generateReq("emp-locked"),
			generateReq("emp-2"),
		},
	})
	if err != nil {
		t.Fatalf("a failing tuple must not fail the batch, got %v", err)
	}

	if resp.Succeeded != 2 {
		t.Errorf("succeeded = %d, want 2", resp.Succeeded)
	}
	if resp.Failed != 1 {
		t.Errorf("failed = %d, want 1", resp.Failed)
	}
	if len(resp.Timesheets) != 2 {
		t.Errorf("timesheets = %d, want 2", len(resp.Timesheets))
	}

	if len(resp.Failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(resp.Failures))
	}
	failure := resp.Failures[0]
	if failure.EmployeeID != "emp-locked" {
		t.Errorf("failure employee = %s, want emp-locked", failure.EmployeeID)
	}
	if failure.PeriodStart != "2025-03-01" || failure.PeriodEnd != "2025-03-31" {
		t.Errorf("failure period = %s to %s, want 2025-03-01 to 2025-03-31", failure.PeriodStart, failure.PeriodEnd)
	}
	if failure.Error == "" {
		t.Errorf("failure must carry the tuple's error message")
	}

	// The tuple after the failure still ran.
	if len(tsRepo.upserted) != 2 {
		t.Fatalf("upserts = %d, want 2", len(tsRepo.upserted))
	}
	if tsRepo.upserted[1].EmployeeID != "emp-2" {
		t.Errorf("last upsert employee = %s, want emp-2", tsRepo.upserted[1].EmployeeID)
	}
}

func TestGenerateBulkMissingEmployeeItemized(t *testing.T) {
	tsRepo := &stubTimesheetRepo{}
	svc := newStubService(tsRepo, &stubPunchRepo{}, &stubNotificationService{})

	resp, err := svc.GenerateBulk(context.Background(), "co-1", timesheet.BulkGenerateRequest{
		Tuples: []timesheet.GenerateRequest{
			generateReq("emp-missing"),
			generateReq("emp-1"),
		},
	})
	if err != nil {
		t.Fatalf("GenerateBulk returned error: %v", err)
	}

	if resp.Succeeded != 1 || resp.Failed != 1 {
		t.Errorf("succeeded/failed = %d/%d, want 1/1", resp.Succeeded, resp.Failed)
	}
	if len(resp.Failures) != 1 || resp.Failures[0].EmployeeID != "emp-missing" {
		t.Errorf("expected itemized failure for emp-missing, got %+v", resp.Failures)
	}
}

func TestGenerateBulkRequiresTuples(t *testing.T) {
	svc := newStubService(&stubTimesheetRepo{}, &stubPunchRepo{}, &stubNotificationService{})

	_, err := svc.GenerateBulk(context.Background(), "co-1", timesheet.BulkGenerateRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty tuple list")
	}
}

func TestGenerateForPeriodDiscoversPairs(t *testing.T) {
	tsRepo := &stubTimesheetRepo{locked: map[string]bool{"emp-locked": true}}
	punchRepo := &stubPunchRepo{pairs: []punch.Pair{
		{EmployeeID: "emp-1", LocationID: "loc-1"},
		{EmployeeID: "emp-locked", LocationID: "loc-1"},
	}}
	svc := newStubService(tsRepo, punchRepo, &stubNotificationService{})

	resp, err := svc.GenerateForPeriod(context.Background(), "co-1", timesheet.GenerateForPeriodRequest{
		PeriodStart: "2025-03-01",
		PeriodEnd:   "2025-03-31",
	})
	if err != nil {
		t.Fatalf("GenerateForPeriod returned error: %v", err)
	}

	if resp.Succeeded != 1 || resp.Failed != 1 {
		t.Errorf("succeeded/failed = %d/%d, want 1/1", resp.Succeeded, resp.Failed)
	}
}

func TestGenerateQueuesAnomalyNotifications(t *testing.T) {
	tsRepo := &stubTimesheetRepo{}
	// A lone clock_out is an invalid transition and must surface as an
	// anomaly without failing the run.
	punchRepo := &stubPunchRepo{events: []punch.Event{
		{ID: "ev-1", Kind: punch.KindClockOut, OccurredAt: time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)},
	}}
	notifSvc := &stubNotificationService{}
	svc := newStubService(tsRepo, punchRepo, notifSvc)

	resp, err := svc.Generate(context.Background(), "co-1", generateReq("emp-1"))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(resp.Anomalies) != 1 {
		t.Fatalf("anomalies = %d, want 1", len(resp.Anomalies))
	}

	if len(notifSvc.queued) != 1 {
		t.Fatalf("queued notifications = %d, want 1", len(notifSvc.queued))
	}
	if notifSvc.queued[0].Type != notification.TypeAggregationAnomaly {
		t.Errorf("notification type = %s, want %s", notifSvc.queued[0].Type, notification.TypeAggregationAnomaly)
	}
	if notifSvc.queued[0].RecipientID != "mgr-1" {
		t.Errorf("notification recipient = %s, want mgr-1", notifSvc.queued[0].RecipientID)
	}
}
