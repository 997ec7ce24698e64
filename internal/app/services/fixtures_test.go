package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/hostelcare/internal/app/models"
	"github.com/yigit/hostelcare/internal/app/repositories/memory"
	"github.com/yigit/hostelcare/internal/pkg/auth"
)

func init() {
	auth.BcryptCost = bcrypt.MinCost
}

var testLogger = zerolog.New(io.Discard)

type fixture struct {
	store *memory.Store
	ctx   context.Context
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: memory.NewStore(),
		ctx:   context.Background(),
		clock: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
	}
	f.store.SetClock(func() time.Time {
		f.clock = f.clock.Add(time.Second)
		return f.clock
	})
	return f
}

func (f *fixture) hostel(t *testing.T, name, gender string) models.Hostel {
	t.Helper()
	h := &models.Hostel{HostelName: name, GenderType: gender, WardenName: "Warden " + name}
	require.NoError(t, f.store.Repos().Hostels.CreateHostel(f.ctx, h))
	return *h
}

func (f *fixture) room(t *testing.T, hostelID int64, number string, capacity int) models.Room {
	t.Helper()
	r := &models.Room{HostelID: hostelID, RoomNumber: number, Floor: 1, Capacity: capacity, RoomType: "Double"}
	require.NoError(t, f.store.Repos().Hostels.CreateRoom(f.ctx, r))
	return *r
}

func (f *fixture) student(t *testing.T, id, gender string) models.Student {
	t.Helper()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	s := &models.Student{
		StudentID:    id,
		Name:         "Student " + id,
		Email:        id + "@college.edu",
		PasswordHash: hash,
		Department:   "CSE",
		Year:         2,
		Gender:       gender,
	}
	require.NoError(t, f.store.Repos().Students.Create(f.ctx, s))
	return *s
}

func (f *fixture) occupancy(t *testing.T, roomID int64) int {
	t.Helper()
	r, ok := f.store.Room(roomID)
	require.True(t, ok)
	return r.CurrentOccupancy
}

func (f *fixture) activeRoom(t *testing.T, studentID string) int64 {
	t.Helper()
	a, err := f.store.Repos().Allocations.GetActiveByStudent(f.ctx, studentID, false)
	require.NoError(t, err)
	return a.RoomID
}
