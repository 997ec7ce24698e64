package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/app/repositories"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
)

// SwapService runs the room swap request lifecycle
type SwapService struct {
	store  repositories.Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewSwapService creates a new SwapService
func NewSwapService(store repositories.Store, logger zerolog.Logger) *SwapService {
	return &SwapService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SubmitSwapRequest files a Pending swap between two actively allocated students,
// recording the rooms they hold right now.
func (s *SwapService) SubmitSwapRequest(ctx context.Context, requesterID, targetID, reason string) (int64, error) {
	requesterID = strings.TrimSpace(requesterID)
	targetID = strings.TrimSpace(targetID)
	if requesterID == "" || targetID == "" {
		return 0, apperrors.NewValidationError("requester_id and target_id are required")
	}
	if requesterID == targetID {
		return 0, apperrors.NewValidationError("a student cannot swap with themselves")
	}

	swap := &models.SwapRequest{
		RequesterID: requesterID,
		TargetID:    targetID,
		Reason:      strings.TrimSpace(reason),
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		allocations, err := repos.Allocations.LockActiveForStudents(ctx, requesterID, targetID)
		if err != nil {
			return err
		}
		if len(allocations) != 2 {
			return apperrors.ErrSwapNeedsAllocations
		}

		for _, a := range allocations {
			if a.StudentID == requesterID {
				swap.RequesterRoomID = a.RoomID
			} else {
				swap.TargetRoomID = a.RoomID
			}
		}
		if swap.RequesterRoomID == swap.TargetRoomID {
			return apperrors.NewValidationError("students already share a room")
		}

		return repos.SwapRequests.Create(ctx, swap)
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("requesterId", requesterID).Str("targetId", targetID).Msg("Swap request rejected")
		return 0, err
	}

	s.logger.Info().Int64("swapId", swap.SwapID).Str("requesterId", requesterID).Str("targetId", targetID).Msg("Swap request submitted")
	return swap.SwapID, nil
}

// ApproveSwap exchanges the two students' rooms and marks the request Approved.
// The request fails as stale if either student has moved since it was filed.
func (s *SwapService) ApproveSwap(ctx context.Context, swapID int64, adminUsername string) error {
	if swapID <= 0 {
		return apperrors.NewValidationError("swap_id must be a positive integer")
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		swap, err := lockPendingSwap(ctx, repos, swapID)
		if err != nil {
			return err
		}

		allocations, err := repos.Allocations.LockActiveForStudents(ctx, swap.RequesterID, swap.TargetID)
		if err != nil {
			return err
		}
		if len(allocations) != 2 {
			return apperrors.ErrSwapStale
		}

		var requester, target models.Allocation
		for _, a := range allocations {
			if a.StudentID == swap.RequesterID {
				requester = a
			} else {
				target = a
			}
		}
		if requester.RoomID != swap.RequesterRoomID || target.RoomID != swap.TargetRoomID {
			return apperrors.ErrSwapStale
		}

		if err := repos.Allocations.UpdateRoom(ctx, requester.AllocationID, target.RoomID); err != nil {
			return err
		}
		if err := repos.Allocations.UpdateRoom(ctx, target.AllocationID, requester.RoomID); err != nil {
			return err
		}
		return repos.SwapRequests.Resolve(ctx, swapID, models.SwapApproved, adminUsername, nil, s.now().UTC())
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("swapId", swapID).Str("admin", adminUsername).Msg("Swap approval failed")
		return err
	}

	s.logger.Info().Int64("swapId", swapID).Str("admin", adminUsername).Msg("Swap approved")
	return nil
}

// RejectSwap marks a Pending request Rejected. Allocations are not touched.
func (s *SwapService) RejectSwap(ctx context.Context, swapID int64, adminUsername, remarks string) error {
	if swapID <= 0 {
		return apperrors.NewValidationError("swap_id must be a positive integer")
	}

	var remarksPtr *string
	if r := strings.TrimSpace(remarks); r != "" {
		remarksPtr = &r
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if _, err := lockPendingSwap(ctx, repos, swapID); err != nil {
			return err
		}
		return repos.SwapRequests.Resolve(ctx, swapID, models.SwapRejected, adminUsername, remarksPtr, s.now().UTC())
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("swapId", swapID).Str("admin", adminUsername).Msg("Swap rejection failed")
		return err
	}

	s.logger.Info().Int64("swapId", swapID).Str("admin", adminUsername).Msg("Swap rejected")
	return nil
}

func lockPendingSwap(ctx context.Context, repos *repositories.Repositories, swapID int64) (*models.SwapRequest, error) {
	swap, err := repos.SwapRequests.GetByID(ctx, swapID, true)
	if err != nil {
		return nil, err
	}
	if swap.Status != models.SwapPending {
		return nil, apperrors.ErrSwapAlreadyResolved
	}
	return swap, nil
}

// ListForStudent lists swaps the student is part of
func (s *SwapService) ListForStudent(ctx context.Context, studentID string) ([]models.SwapRequestView, error) {
	return s.store.Repos().SwapRequests.ListForStudent(ctx, studentID)
}

// List lists all swaps, optionally filtered by status
func (s *SwapService) List(ctx context.Context, status string) ([]models.SwapRequestView, error) {
	filter := models.SwapFilter{Status: models.SwapStatus(strings.TrimSpace(status))}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationError("status must be one of Pending, Approved, Rejected")
	}
	return s.store.Repos().SwapRequests.List(ctx, filter)
}
