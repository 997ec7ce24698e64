package services

import (
	"context"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/app/repositories"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
)

// HostelService serves the hostel and room listings
type HostelService struct {
	store repositories.Store
}

// NewHostelService creates a new HostelService
func NewHostelService(store repositories.Store) *HostelService {
	return &HostelService{store: store}
}

// ListHostels lists hostels with capacity and occupancy totals
func (s *HostelService) ListHostels(ctx context.Context) ([]models.HostelSummary, error) {
	return s.store.Repos().Hostels.ListSummaries(ctx)
}

// ListRooms lists the rooms of a hostel
func (s *HostelService) ListRooms(ctx context.Context, hostelID int64) ([]models.RoomView, error) {
	if hostelID <= 0 {
		return nil, apperrors.NewValidationError("hostel id must be a positive integer")
	}
	return s.store.Repos().Hostels.ListRooms(ctx, hostelID)
}

// ListAvailableRooms lists rooms with free beds
func (s *HostelService) ListAvailableRooms(ctx context.Context) ([]models.RoomView, error) {
	return s.store.Repos().Hostels.ListAvailableRooms(ctx)
}
