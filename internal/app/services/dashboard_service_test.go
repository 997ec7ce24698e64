package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStats struct {
	mock.Mock
}

func (m *mockStats) count(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStats) CountStudents(ctx context.Context) (int64, error) {
	return m.count(ctx, "students")
}

func (m *mockStats) CountAllocatedStudents(ctx context.Context) (int64, error) {
	return m.count(ctx, "allocated")
}

func (m *mockStats) CountRooms(ctx context.Context) (int64, error) {
	return m.count(ctx, "rooms")
}

func (m *mockStats) CountOccupiedRooms(ctx context.Context) (int64, error) {
	return m.count(ctx, "occupied")
}

func (m *mockStats) CountPendingSwaps(ctx context.Context) (int64, error) {
	return m.count(ctx, "swaps")
}

func (m *mockStats) CountOpenComplaints(ctx context.Context) (int64, error) {
	return m.count(ctx, "complaints")
}

func TestDashboardStatsAllCounters(t *testing.T) {
	stats := new(mockStats)
	stats.On("count", mock.Anything, "students").Return(int64(120), nil)
	stats.On("count", mock.Anything, "allocated").Return(int64(100), nil)
	stats.On("count", mock.Anything, "rooms").Return(int64(60), nil)
	stats.On("count", mock.Anything, "occupied").Return(int64(55), nil)
	stats.On("count", mock.Anything, "swaps").Return(int64(3), nil)
	stats.On("count", mock.Anything, "complaints").Return(int64(7), nil)

	got := NewDashboardService(stats, testLogger).Stats(context.Background())

	require.NotNil(t, got.TotalStudents)
	assert.Equal(t, int64(120), *got.TotalStudents)
	assert.Equal(t, int64(100), *got.AllocatedStudents)
	assert.Equal(t, int64(60), *got.TotalRooms)
	assert.Equal(t, int64(55), *got.OccupiedRooms)
	assert.Equal(t, int64(3), *got.PendingSwaps)
	assert.Equal(t, int64(7), *got.PendingComplaints)
	assert.Empty(t, got.Unavailable)
	stats.AssertExpectations(t)
}

func TestDashboardStatsOmitsFailedCounter(t *testing.T) {
	stats := new(mockStats)
	stats.On("count", mock.Anything, "students").Return(int64(5), nil)
	stats.On("count", mock.Anything, "allocated").Return(int64(4), nil)
	stats.On("count", mock.Anything, "rooms").Return(int64(0), errors.New("connection reset"))
	stats.On("count", mock.Anything, "occupied").Return(int64(2), nil)
	stats.On("count", mock.Anything, "swaps").Return(int64(0), nil)
	stats.On("count", mock.Anything, "complaints").Return(int64(1), nil)

	got := NewDashboardService(stats, testLogger).Stats(context.Background())

	assert.Nil(t, got.TotalRooms)
	assert.Equal(t, []string{"totalRooms"}, got.Unavailable)
	require.NotNil(t, got.PendingSwaps)
	assert.Equal(t, int64(0), *got.PendingSwaps)
	assert.Equal(t, int64(5), *got.TotalStudents)
	stats.AssertExpectations(t)
}

func TestDashboardStatsAgainstMemoryStore(t *testing.T) {
	sc := newSwapScenario(t)
	_, err := sc.swaps.SubmitSwapRequest(sc.ctx, "S001", "S002", "")
	require.NoError(t, err)
	sc.student(t, "S003", "Male")

	got := NewDashboardService(sc.store.Repos().Stats, testLogger).Stats(sc.ctx)

	assert.Equal(t, int64(3), *got.TotalStudents)
	assert.Equal(t, int64(2), *got.AllocatedStudents)
	assert.Equal(t, int64(3), *got.TotalRooms)
	assert.Equal(t, int64(2), *got.OccupiedRooms)
	assert.Equal(t, int64(1), *got.PendingSwaps)
	assert.Equal(t, int64(0), *got.PendingComplaints)
}
