package punch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/employee"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/location"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/punch"
)

type EventServiceImpl struct {
	punchRepo    punch.EventRepository
	employeeRepo employee.Repository
	locationRepo location.Repository
}

func NewEventService(
	punchRepo punch.EventRepository,
	employeeRepo employee.Repository,
	locationRepo location.Repository,
) punch.EventService {
	return &EventServiceImpl{
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		locationRepo: locationRepo,
	}
}

// RecordPunch implements punch.EventService. Punches are accepted in any
// order; sequencing problems surface later as aggregation anomalies, not
// as rejections here.
func (s *EventServiceImpl) RecordPunch(ctx context.Context, companyID string, req punch.RecordPunchRequest) (punch.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return punch.PunchResponse{}, punch.ErrEmployeeNotFound
		}
		return punch.PunchResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if _, err := s.locationRepo.GetByID(ctx, req.LocationID, companyID); err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			return punch.PunchResponse{}, punch.ErrLocationNotFound
		}
		return punch.PunchResponse{}, fmt.Errorf("failed to get location: %w", err)
	}

	now := time.Now().UTC()
	occurredAt := now
	if req.OccurredAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			return punch.PunchResponse{}, fmt.Errorf("failed to parse occurred_at: %w", err)
		}
		occurredAt = parsed.UTC()
	}
	// Five minutes of tolerance for kiosk clock drift.
	if occurredAt.After(now.Add(5 * time.Minute)) {
		return punch.PunchResponse{}, punch.ErrFutureTimestamp
	}

	source := punch.Source(req.Source)
	if req.Source == "" {
		source = punch.SourceAPI
	}

	key := req.IdempotencyKey
	if key == "" {
		key = uuid.New().String()
	} else {
		existing, err := s.punchRepo.GetByIdempotencyKey(ctx, key, companyID)
		if err != nil {
			return punch.PunchResponse{}, fmt.Errorf("failed to check idempotency key: %w", err)
		}
		if existing != nil {
			return punch.MapEventToResponse(*existing), nil
		}
	}

	event := punch.Event{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		EmployeeID:     req.EmployeeID,
		LocationID:     req.LocationID,
		Kind:           punch.Kind(req.Kind),
		OccurredAt:     occurredAt,
		Source:         source,
		IdempotencyKey: key,
	}

	created, err := s.punchRepo.Create(ctx, event)
	if err != nil {
		if errors.Is(err, punch.ErrDuplicatePunch) {
			return punch.PunchResponse{}, punch.ErrDuplicatePunch
		}
		return punch.PunchResponse{}, fmt.Errorf("failed to create punch event: %w", err)
	}

	return punch.MapEventToResponse(created), nil
}

// ListPunches implements punch.EventService.
func (s *EventServiceImpl) ListPunches(ctx context.Context, companyID string, filter punch.PunchFilter) (punch.ListPunchResponse, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	events, total, err := s.punchRepo.List(ctx, filter, companyID)
	if err != nil {
		return punch.ListPunchResponse{}, fmt.Errorf("failed to list punch events: %w", err)
	}

	responses := make([]punch.PunchResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, punch.MapEventToResponse(e))
	}

	return punch.ListPunchResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Punches:    responses,
	}, nil
}
