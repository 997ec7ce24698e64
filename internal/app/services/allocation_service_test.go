package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
)

func TestAllocateRoomIncrementsOccupancy(t *testing.T) {
	f := newFixture(t)
	h := f.hostel(t, "North", "Male")
	r := f.room(t, h.HostelID, "101", 2)
	f.student(t, "S001", "Male")

	svc := NewAllocationService(f.store, testLogger)
	a, err := svc.AllocateRoom(f.ctx, "S001", r.RoomID, "2025-2026")
	require.NoError(t, err)

	assert.NotZero(t, a.AllocationID)
	assert.Equal(t, models.AllocationActive, a.Status)
	assert.Equal(t, 1, f.occupancy(t, r.RoomID))
}

func TestAllocateRoomDefaultsAcademicYear(t *testing.T) {
	f := newFixture(t)
	h := f.hostel(t, "North", "Male")
	r := f.room(t, h.HostelID, "101", 2)
	f.student(t, "S001", "Male")

	svc := NewAllocationService(f.store, testLogger)
	svc.now = func() time.Time { return time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC) }

	a, err := svc.AllocateRoom(f.ctx, "S001", r.RoomID, "")
	require.NoError(t, err)
	assert.Equal(t, "2025-2026", a.AcademicYear)
}

func TestAllocateRoomRejectsSecondActiveAllocation(t *testing.T) {
	f := newFixture(t)
	h := f.hostel(t, "North", "Male")
	r1 := f.room(t, h.HostelID, "101", 2)
	r2 := f.room(t, h.HostelID, "102", 2)
	f.student(t, "S001", "Male")

	svc := NewAllocationService(f.store, testLogger)
	_, err := svc.AllocateRoom(f.ctx, "S001", r1.RoomID, "")
	require.NoError(t, err)

	_, err = svc.AllocateRoom(f.ctx, "S001", r2.RoomID, "")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 1, f.occupancy(t, r1.RoomID))
	assert.Equal(t, 0, f.occupancy(t, r2.RoomID))
}

func TestAllocateRoomFull(t *testing.T) {
	f := newFixture(t)
	h := f.hostel(t, "North", "Male")
	r := f.room(t, h.HostelID, "101", 1)
	f.student(t, "S001", "Male")
	f.student(t, "S002", "Male")

	svc := NewAllocationService(f.store, testLogger)
	_, err := svc.AllocateRoom(f.ctx, "S001", r.RoomID, "")
	require.NoError(t, err)

	_, err = svc.AllocateRoom(f.ctx, "S002", r.RoomID, "")
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)
	assert.Equal(t, 1, f.occupancy(t, r.RoomID))
}

func TestAllocateRoomValidationAndMissingRows(t *testing.T) {
	f := newFixture(t)
	h := f.hostel(t, "North", "Male")
	r := f.room(t, h.HostelID, "101", 1)
	svc := NewAllocationService(f.store, testLogger)

	_, err := svc.AllocateRoom(f.ctx, " ", r.RoomID, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.AllocateRoom(f.ctx, "S001", 0, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.AllocateRoom(f.ctx, "S404", r.RoomID, "")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	f.student(t, "S001", "Male")
	_, err = svc.AllocateRoom(f.ctx, "S001", r.RoomID+100, "")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestConcurrentAllocationsNeverOverfillRoom(t *testing.T) {
	f := newFixture(t)
	h := f.hostel(t, "North", "Male")
	r := f.room(t, h.HostelID, "101", 2)
	ids := []string{"S001", "S002", "S003", "S004", "S005"}
	for _, id := range ids {
		f.student(t, id, "Male")
	}

	svc := NewAllocationService(f.store, testLogger)
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AllocateRoom(f.ctx, id, r.RoomID, ""); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 2, f.occupancy(t, r.RoomID))
}

func TestEndAllocationDecrementsOccupancy(t *testing.T) {
	f := newFixture(t)
	h := f.hostel(t, "North", "Male")
	r := f.room(t, h.HostelID, "101", 2)
	f.student(t, "S001", "Male")

	svc := NewAllocationService(f.store, testLogger)
	_, err := svc.AllocateRoom(f.ctx, "S001", r.RoomID, "")
	require.NoError(t, err)

	require.NoError(t, svc.EndAllocation(f.ctx, "S001"))
	assert.Equal(t, 0, f.occupancy(t, r.RoomID))

	all := f.store.Allocations()
	require.Len(t, all, 1)
	assert.Equal(t, models.AllocationEnded, all[0].Status)
	assert.NotNil(t, all[0].EndDate)

	err = svc.EndAllocation(f.ctx, "S001")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	// the bed is free again
	_, err = svc.AllocateRoom(f.ctx, "S001", r.RoomID, "")
	assert.NoError(t, err)
}
