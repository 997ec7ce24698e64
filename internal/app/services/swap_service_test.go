package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
)

type swapScenario struct {
	*fixture
	alloc *AllocationService
	swaps *SwapService
	roomA models.Room
	roomB models.Room
	roomC models.Room
}

// newSwapScenario puts S001 in room A and S002 in room B, with room C empty
func newSwapScenario(t *testing.T) *swapScenario {
	t.Helper()
	f := newFixture(t)
	h := f.hostel(t, "North", "Male")
	sc := &swapScenario{
		fixture: f,
		alloc:   NewAllocationService(f.store, testLogger),
		swaps:   NewSwapService(f.store, testLogger),
		roomA:   f.room(t, h.HostelID, "101", 2),
		roomB:   f.room(t, h.HostelID, "102", 2),
		roomC:   f.room(t, h.HostelID, "103", 2),
	}
	f.student(t, "S001", "Male")
	f.student(t, "S002", "Male")
	_, err := sc.alloc.AllocateRoom(f.ctx, "S001", sc.roomA.RoomID, "")
	require.NoError(t, err)
	_, err = sc.alloc.AllocateRoom(f.ctx, "S002", sc.roomB.RoomID, "")
	require.NoError(t, err)
	return sc
}

func TestSubmitSwapRecordsCurrentRooms(t *testing.T) {
	sc := newSwapScenario(t)

	id, err := sc.swaps.SubmitSwapRequest(sc.ctx, "S001", "S002", "closer to lab")
	require.NoError(t, err)

	swap, ok := sc.store.SwapRequest(id)
	require.True(t, ok)
	assert.Equal(t, models.SwapPending, swap.Status)
	assert.Equal(t, sc.roomA.RoomID, swap.RequesterRoomID)
	assert.Equal(t, sc.roomB.RoomID, swap.TargetRoomID)
}

func TestSubmitSwapValidation(t *testing.T) {
	sc := newSwapScenario(t)
	sc.student(t, "S003", "Male")

	_, err := sc.swaps.SubmitSwapRequest(sc.ctx, "S001", "S001", "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = sc.swaps.SubmitSwapRequest(sc.ctx, "S001", "", "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = sc.swaps.SubmitSwapRequest(sc.ctx, "S001", "S003", "")
	assert.ErrorIs(t, err, apperrors.ErrSwapNeedsAllocations)

	_, err = sc.alloc.AllocateRoom(sc.ctx, "S003", sc.roomA.RoomID, "")
	require.NoError(t, err)
	_, err = sc.swaps.SubmitSwapRequest(sc.ctx, "S001", "S003", "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestApproveSwapExchangesRooms(t *testing.T) {
	sc := newSwapScenario(t)
	id, err := sc.swaps.SubmitSwapRequest(sc.ctx, "S001", "S002", "")
	require.NoError(t, err)

	require.NoError(t, sc.swaps.ApproveSwap(sc.ctx, id, "warden"))

	assert.Equal(t, sc.roomB.RoomID, sc.activeRoom(t, "S001"))
	assert.Equal(t, sc.roomA.RoomID, sc.activeRoom(t, "S002"))
	assert.Equal(t, 1, sc.occupancy(t, sc.roomA.RoomID))
	assert.Equal(t, 1, sc.occupancy(t, sc.roomB.RoomID))

	swap, _ := sc.store.SwapRequest(id)
	assert.Equal(t, models.SwapApproved, swap.Status)
	require.NotNil(t, swap.ResolvedBy)
	assert.Equal(t, "warden", *swap.ResolvedBy)
	assert.NotNil(t, swap.ResolvedDate)

	err = sc.swaps.ApproveSwap(sc.ctx, id, "warden")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	assert.Equal(t, sc.roomB.RoomID, sc.activeRoom(t, "S001"))
}

func TestApproveStaleSwapFailsWithoutChanges(t *testing.T) {
	sc := newSwapScenario(t)
	id, err := sc.swaps.SubmitSwapRequest(sc.ctx, "S001", "S002", "")
	require.NoError(t, err)

	require.NoError(t, sc.alloc.EndAllocation(sc.ctx, "S002"))
	_, err = sc.alloc.AllocateRoom(sc.ctx, "S002", sc.roomC.RoomID, "")
	require.NoError(t, err)

	err = sc.swaps.ApproveSwap(sc.ctx, id, "warden")
	assert.ErrorIs(t, err, apperrors.ErrSwapStale)

	assert.Equal(t, sc.roomA.RoomID, sc.activeRoom(t, "S001"))
	assert.Equal(t, sc.roomC.RoomID, sc.activeRoom(t, "S002"))
	swap, _ := sc.store.SwapRequest(id)
	assert.Equal(t, models.SwapPending, swap.Status)
}

func TestApproveUnknownSwap(t *testing.T) {
	sc := newSwapScenario(t)
	err := sc.swaps.ApproveSwap(sc.ctx, 999, "warden")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	err = sc.swaps.ApproveSwap(sc.ctx, 0, "warden")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRejectSwapLeavesAllocations(t *testing.T) {
	sc := newSwapScenario(t)
	id, err := sc.swaps.SubmitSwapRequest(sc.ctx, "S001", "S002", "")
	require.NoError(t, err)

	require.NoError(t, sc.swaps.RejectSwap(sc.ctx, id, "warden", "  no  "))

	swap, _ := sc.store.SwapRequest(id)
	assert.Equal(t, models.SwapRejected, swap.Status)
	require.NotNil(t, swap.AdminRemarks)
	assert.Equal(t, "no", *swap.AdminRemarks)
	assert.Equal(t, sc.roomA.RoomID, sc.activeRoom(t, "S001"))

	err = sc.swaps.ApproveSwap(sc.ctx, id, "warden")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	err = sc.swaps.RejectSwap(sc.ctx, id, "warden", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestListSwapsOrdersPendingFirst(t *testing.T) {
	sc := newSwapScenario(t)
	first, err := sc.swaps.SubmitSwapRequest(sc.ctx, "S001", "S002", "")
	require.NoError(t, err)
	require.NoError(t, sc.swaps.RejectSwap(sc.ctx, first, "warden", ""))
	second, err := sc.swaps.SubmitSwapRequest(sc.ctx, "S002", "S001", "")
	require.NoError(t, err)

	all, err := sc.swaps.List(sc.ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second, all[0].SwapID)
	assert.Equal(t, "Student S002", all[0].RequesterName)
	assert.Equal(t, "102", all[0].RequesterRoom)

	pending, err := sc.swaps.List(sc.ctx, "Pending")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	mine, err := sc.swaps.ListForStudent(sc.ctx, "S001")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = sc.swaps.List(sc.ctx, "Maybe")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
