package repositories

import (
	"context"
	"fmt"
)

// StatsRepository runs the dashboard count queries
type StatsRepository struct {
	db DBTX
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) count(ctx context.Context, name, query string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting %s: %w", name, err)
	}
	return n, nil
}

// CountStudents counts all students
func (r *StatsRepository) CountStudents(ctx context.Context) (int64, error) {
	return r.count(ctx, "students", `SELECT COUNT(*) FROM students`)
}

// CountAllocatedStudents counts students holding an active allocation
func (r *StatsRepository) CountAllocatedStudents(ctx context.Context) (int64, error) {
	return r.count(ctx, "allocated students", `SELECT COUNT(DISTINCT student_id) FROM allocations WHERE status = 'Active'`)
}

// CountRooms counts all rooms
func (r *StatsRepository) CountRooms(ctx context.Context) (int64, error) {
	return r.count(ctx, "rooms", `SELECT COUNT(*) FROM rooms`)
}

// CountOccupiedRooms counts rooms with at least one active allocation
func (r *StatsRepository) CountOccupiedRooms(ctx context.Context) (int64, error) {
	return r.count(ctx, "occupied rooms", `SELECT COUNT(DISTINCT room_id) FROM allocations WHERE status = 'Active'`)
}

// CountPendingSwaps counts swap requests awaiting a decision
func (r *StatsRepository) CountPendingSwaps(ctx context.Context) (int64, error) {
	return r.count(ctx, "pending swaps", `SELECT COUNT(*) FROM swap_requests WHERE status = 'Pending'`)
}

// CountOpenComplaints counts complaints that are Pending or In Progress
func (r *StatsRepository) CountOpenComplaints(ctx context.Context) (int64, error) {
	return r.count(ctx, "open complaints", `SELECT COUNT(*) FROM complaints WHERE status IN ('Pending', 'In Progress')`)
}
