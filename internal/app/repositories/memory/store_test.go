package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/app/repositories"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
)

func seedRoom(t *testing.T, s *Store, capacity int) models.Room {
	t.Helper()
	ctx := context.Background()
	h := &models.Hostel{HostelName: "North", GenderType: "Male"}
	require.NoError(t, s.Repos().Hostels.CreateHostel(ctx, h))
	room := &models.Room{HostelID: h.HostelID, RoomNumber: "101", Capacity: capacity}
	require.NoError(t, s.Repos().Hostels.CreateRoom(ctx, room))
	return *room
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	room := seedRoom(t, s, 2)
	require.NoError(t, s.Repos().Students.Create(ctx, &models.Student{StudentID: "S1", Email: "s1@x.edu"}))

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		require.NoError(t, repos.Allocations.Create(ctx, &models.Allocation{StudentID: "S1", RoomID: room.RoomID}))
		require.NoError(t, repos.Hostels.AdjustOccupancy(ctx, room.RoomID, 1))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := s.Room(room.RoomID)
	assert.Equal(t, 0, got.CurrentOccupancy)
	assert.Empty(t, s.Allocations())
}

func TestOneActiveAllocationPerStudent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	room := seedRoom(t, s, 2)
	require.NoError(t, s.Repos().Students.Create(ctx, &models.Student{StudentID: "S1", Email: "s1@x.edu"}))

	require.NoError(t, s.Repos().Allocations.Create(ctx, &models.Allocation{StudentID: "S1", RoomID: room.RoomID}))
	err := s.Repos().Allocations.Create(ctx, &models.Allocation{StudentID: "S1", RoomID: room.RoomID})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAdjustOccupancyBounds(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	room := seedRoom(t, s, 1)

	require.NoError(t, s.Repos().Hostels.AdjustOccupancy(ctx, room.RoomID, 1))
	assert.ErrorIs(t, s.Repos().Hostels.AdjustOccupancy(ctx, room.RoomID, 1), apperrors.ErrRoomFull)
	require.NoError(t, s.Repos().Hostels.AdjustOccupancy(ctx, room.RoomID, -1))
	assert.Error(t, s.Repos().Hostels.AdjustOccupancy(ctx, room.RoomID, -1))
}

func TestStudentUniqueness(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Repos().Students.Create(ctx, &models.Student{StudentID: "S1", Email: "a@x.edu"}))

	err := s.Repos().Students.Create(ctx, &models.Student{StudentID: "S1", Email: "b@x.edu"})
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)

	err = s.Repos().Students.Create(ctx, &models.Student{StudentID: "S2", Email: "A@x.edu"})
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
}
