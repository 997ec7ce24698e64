package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/app/repositories"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
	"github.com/yigit/hostelcare/internal/pkg/helpers"
)

// AllocationService allocates and vacates rooms
type AllocationService struct {
	store  repositories.Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewAllocationService creates a new AllocationService
func NewAllocationService(store repositories.Store, logger zerolog.Logger) *AllocationService {
	return &AllocationService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// AllocateRoom gives a student a bed in a room. The room row is locked first, so two
// allocations racing for the last bed are serialized and only one succeeds.
func (s *AllocationService) AllocateRoom(ctx context.Context, studentID string, roomID int64, academicYear string) (*models.Allocation, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, apperrors.NewValidationError("student_id is required")
	}
	if roomID <= 0 {
		return nil, apperrors.NewValidationError("room_id must be a positive integer")
	}
	academicYear = strings.TrimSpace(academicYear)
	if academicYear == "" {
		academicYear = helpers.AcademicYear(s.now())
	}

	allocation := &models.Allocation{
		StudentID:    studentID,
		RoomID:       roomID,
		AcademicYear: academicYear,
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		room, err := repos.Hostels.GetRoomForUpdate(ctx, roomID)
		if err != nil {
			return err
		}

		if _, err := repos.Students.GetByID(ctx, studentID); err != nil {
			return err
		}

		_, err = repos.Allocations.GetActiveByStudent(ctx, studentID, true)
		switch {
		case err == nil:
			return apperrors.ErrActiveAllocationExists
		case !errors.Is(err, apperrors.ErrActiveAllocationMissing):
			return err
		}

		if room.IsFull() {
			return apperrors.ErrRoomFull
		}

		if err := repos.Allocations.Create(ctx, allocation); err != nil {
			return err
		}
		return repos.Hostels.AdjustOccupancy(ctx, roomID, 1)
	})
	if err != nil {
		s.logFailure(err, "Room allocation failed", studentID, roomID)
		return nil, err
	}

	s.logger.Info().
		Str("studentId", studentID).
		Int64("roomId", roomID).
		Int64("allocationId", allocation.AllocationID).
		Str("academicYear", academicYear).
		Msg("Room allocated")
	return allocation, nil
}

// EndAllocation vacates the student's current room
func (s *AllocationService) EndAllocation(ctx context.Context, studentID string) error {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return apperrors.NewValidationError("student_id is required")
	}

	var roomID int64
	err := s.store.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		current, err := repos.Allocations.GetActiveByStudent(ctx, studentID, false)
		if err != nil {
			return err
		}
		roomID = current.RoomID

		// Lock order matches AllocateRoom: room first, then allocation.
		if _, err := repos.Hostels.GetRoomForUpdate(ctx, current.RoomID); err != nil {
			return err
		}
		locked, err := repos.Allocations.GetActiveByStudent(ctx, studentID, true)
		if err != nil {
			return err
		}
		if locked.AllocationID != current.AllocationID || locked.RoomID != current.RoomID {
			return apperrors.NewConflictError("allocation changed while it was being ended")
		}

		if err := repos.Allocations.End(ctx, locked.AllocationID, s.now().UTC()); err != nil {
			return err
		}
		return repos.Hostels.AdjustOccupancy(ctx, locked.RoomID, -1)
	})
	if err != nil {
		s.logFailure(err, "Ending allocation failed", studentID, roomID)
		return err
	}

	s.logger.Info().Str("studentId", studentID).Int64("roomId", roomID).Msg("Allocation ended")
	return nil
}

func (s *AllocationService) logFailure(err error, msg, studentID string, roomID int64) {
	event := s.logger.Error()
	if apperrors.IsClientError(err) {
		event = s.logger.Warn()
	}
	event.Err(err).Str("studentId", studentID).Int64("roomId", roomID).Msg(msg)
}
