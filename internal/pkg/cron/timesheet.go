package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/notification"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/punch"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/timesheet"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/user"
)

// TimesheetJobs bundles the nightly background work: re-aggregating draft
// timesheets for the running month and flagging punch sessions left open.
type TimesheetJobs struct {
	timesheetSvc    timesheet.Service
	punchRepo       punch.EventRepository
	userRepo        user.Repository
	notificationSvc notification.Service

	staleAfter time.Duration
}

func NewTimesheetJobs(
	timesheetSvc timesheet.Service,
	punchRepo punch.EventRepository,
	userRepo user.Repository,
	notificationSvc notification.Service,
	staleAfterDays int,
) *TimesheetJobs {
	if staleAfterDays <= 0 {
		staleAfterDays = 2
	}
	return &TimesheetJobs{
		timesheetSvc:    timesheetSvc,
		punchRepo:       punchRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		staleAfter:      time.Duration(staleAfterDays) * 24 * time.Hour,
	}
}

// Register adds both jobs to the scheduler on a daily interval.
func (j *TimesheetJobs) Register(s *Scheduler) {
	s.AddJob("refresh_draft_timesheets", 24*time.Hour, j.RefreshDraftTimesheets)
	s.AddJob("flag_stale_open_sessions", 24*time.Hour, j.FlagStaleOpenSessions)
}

// RefreshDraftTimesheets re-aggregates the current calendar month for every
// company with punches in it. The upsert preserves status and notes, and
// locked rows are refused and counted rather than failing the run.
func (j *TimesheetJobs) RefreshDraftTimesheets(ctx context.Context) error {
	now := time.Now().UTC()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	companies, err := j.punchRepo.DistinctCompanyIDs(ctx, periodStart.AddDate(0, 0, -1), periodEnd.AddDate(0, 0, 2))
	if err != nil {
		return fmt.Errorf("failed to discover companies: %w", err)
	}

	var succeeded, failed int
	for _, companyID := range companies {
		result, err := j.timesheetSvc.GenerateForPeriod(ctx, companyID, timesheet.GenerateForPeriodRequest{
			PeriodStart: periodStart.Format("2006-01-02"),
			PeriodEnd:   periodEnd.Format("2006-01-02"),
		})
		if err != nil {
			slog.ErrorContext(ctx, "timesheet refresh failed for company",
				slog.String("company_id", companyID),
				slog.Any("error", err))
			continue
		}
		succeeded += result.Succeeded
		failed += result.Failed
	}

	slog.InfoContext(ctx, "draft timesheet refresh finished",
		slog.Int("companies", len(companies)),
		slog.Int("succeeded", succeeded),
		slog.Int("failed", failed))

	return nil
}

// FlagStaleOpenSessions notifies managers about sessions whose last punch
// is older than the cutoff and not a clock_out. Punches are immutable, so
// the job flags rather than closes them.
func (j *TimesheetJobs) FlagStaleOpenSessions(ctx context.Context) error {
	now := time.Now().UTC()
	cutoff := now.Add(-j.staleAfter)

	// Look back far enough to catch sessions opened before the cutoff.
	companies, err := j.punchRepo.DistinctCompanyIDs(ctx, cutoff.AddDate(0, -1, 0), now)
	if err != nil {
		return fmt.Errorf("failed to discover companies: %w", err)
	}

	var flagged int
	for _, companyID := range companies {
		sessions, err := j.punchRepo.StaleOpenSessions(ctx, cutoff, companyID)
		if err != nil {
			slog.ErrorContext(ctx, "stale session scan failed for company",
				slog.String("company_id", companyID),
				slog.Any("error", err))
			continue
		}
		if len(sessions) == 0 {
			continue
		}

		managers, err := j.userRepo.ListManagers(ctx, companyID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to resolve notification recipients",
				slog.String("company_id", companyID),
				slog.Any("error", err))
			continue
		}

		for _, session := range sessions {
			flagged++
			for _, m := range managers {
				_ = j.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
					CompanyID:   companyID,
					RecipientID: m.ID,
					Type:        notification.TypeStaleOpenSession,
					Title:       "Open punch session needs review",
					Message: fmt.Sprintf("Last punch %s at %s with no clock_out since",
						session.LastKind, session.LastPunch.Format(time.RFC3339)),
					Data: map[string]interface{}{
						"employee_id": session.EmployeeID,
						"location_id": session.LocationID,
						"last_kind":   string(session.LastKind),
						"last_punch":  session.LastPunch.Format(time.RFC3339),
					},
				})
			}
		}
	}

	slog.InfoContext(ctx, "stale open session scan finished",
		slog.Int("companies", len(companies)),
		slog.Int("flagged", flagged))

	return nil
}
