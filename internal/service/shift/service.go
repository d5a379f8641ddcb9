package shift

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/employee"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/location"
	"github.com/wfmlabs/workforce-backend-go/internal/domain/shift"
)

type PlannedShiftServiceImpl struct {
	shiftRepo    shift.PlannedShiftRepository
	employeeRepo employee.Repository
	locationRepo location.Repository
}

func NewPlannedShiftService(
	shiftRepo shift.PlannedShiftRepository,
	employeeRepo employee.Repository,
	locationRepo location.Repository,
) shift.PlannedShiftService {
	return &PlannedShiftServiceImpl{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		locationRepo: locationRepo,
	}
}

// CreateShift implements shift.PlannedShiftService. Shifts start out
// unpublished and only count toward planned minutes after publishing.
func (s *PlannedShiftServiceImpl) CreateShift(ctx context.Context, companyID string, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return shift.ShiftResponse{}, employee.ErrEmployeeNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if _, err := s.locationRepo.GetByID(ctx, req.LocationID, companyID); err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			return shift.ShiftResponse{}, location.ErrLocationNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get location: %w", err)
	}

	startsAt, _ := time.Parse(time.RFC3339, req.StartsAt)
	endsAt, _ := time.Parse(time.RFC3339, req.EndsAt)

	created, err := s.shiftRepo.Create(ctx, shift.PlannedShift{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		LocationID: req.LocationID,
		StartsAt:   startsAt.UTC(),
		EndsAt:     endsAt.UTC(),
		JobTag:     req.JobTag,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return shift.MapShiftToResponse(created), nil
}

// UpdateShift implements shift.PlannedShiftService.
func (s *PlannedShiftServiceImpl) UpdateShift(ctx context.Context, companyID string, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.shiftRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if existing.Published() {
		return shift.ShiftResponse{}, shift.ErrShiftPublished
	}

	if req.StartsAt != nil {
		t, _ := time.Parse(time.RFC3339, *req.StartsAt)
		existing.StartsAt = t.UTC()
	}
	if req.EndsAt != nil {
		t, _ := time.Parse(time.RFC3339, *req.EndsAt)
		existing.EndsAt = t.UTC()
	}
	if req.JobTag != nil {
		existing.JobTag = req.JobTag
	}
	if !existing.EndsAt.After(existing.StartsAt) {
		return shift.ShiftResponse{}, shift.ErrInvalidInterval
	}

	if err := s.shiftRepo.Update(ctx, existing); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	updated, err := s.shiftRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to get updated shift: %w", err)
	}
	return shift.MapShiftToResponse(updated), nil
}

// DeleteShift implements shift.PlannedShiftService. Published shifts are
// immutable reference data and cannot be deleted.
func (s *PlannedShiftServiceImpl) DeleteShift(ctx context.Context, companyID string, id string) error {
	existing, err := s.shiftRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if existing.Published() {
		return shift.ErrShiftPublished
	}
	if err := s.shiftRepo.Delete(ctx, id, companyID); err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// PublishShift implements shift.PlannedShiftService.
func (s *PlannedShiftServiceImpl) PublishShift(ctx context.Context, companyID string, id string) (shift.ShiftResponse, error) {
	if err := s.shiftRepo.Publish(ctx, id, companyID, time.Now().UTC()); err != nil {
		return shift.ShiftResponse{}, err
	}

	published, err := s.shiftRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to get published shift: %w", err)
	}
	return shift.MapShiftToResponse(published), nil
}

// GetShift implements shift.PlannedShiftService.
func (s *PlannedShiftServiceImpl) GetShift(ctx context.Context, companyID string, id string) (shift.ShiftResponse, error) {
	found, err := s.shiftRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.MapShiftToResponse(found), nil
}

// ListShifts implements shift.PlannedShiftService.
func (s *PlannedShiftServiceImpl) ListShifts(ctx context.Context, companyID string, filter shift.ShiftFilter) (shift.ListShiftResponse, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	shifts, total, err := s.shiftRepo.List(ctx, filter, companyID)
	if err != nil {
		return shift.ListShiftResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, shift.MapShiftToResponse(sh))
	}

	return shift.ListShiftResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Shifts:     responses,
	}, nil
}
