package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/hostelcare/internal/app/models/dto"
	"github.com/yigit/hostelcare/internal/app/repositories"
)

// DashboardService assembles the admin dashboard counters
type DashboardService struct {
	stats  repositories.IStatsRepository
	logger zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(stats repositories.IStatsRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		stats:  stats,
		logger: logger,
	}
}

type statCounter struct {
	name  string
	count func(context.Context) (int64, error)
	dst   func(*dto.DashboardStats, *int64)
}

func (s *DashboardService) counters() []statCounter {
	return []statCounter{
		{"totalStudents", s.stats.CountStudents, func(d *dto.DashboardStats, v *int64) { d.TotalStudents = v }},
		{"allocatedStudents", s.stats.CountAllocatedStudents, func(d *dto.DashboardStats, v *int64) { d.AllocatedStudents = v }},
		{"totalRooms", s.stats.CountRooms, func(d *dto.DashboardStats, v *int64) { d.TotalRooms = v }},
		{"occupiedRooms", s.stats.CountOccupiedRooms, func(d *dto.DashboardStats, v *int64) { d.OccupiedRooms = v }},
		{"pendingSwaps", s.stats.CountPendingSwaps, func(d *dto.DashboardStats, v *int64) { d.PendingSwaps = v }},
		{"pendingComplaints", s.stats.CountOpenComplaints, func(d *dto.DashboardStats, v *int64) { d.PendingComplaints = v }},
	}
}

// Stats runs the six count queries concurrently and returns once all have finished.
// A failed count is omitted and its name listed in Unavailable; the rest are returned.
func (s *DashboardService) Stats(ctx context.Context) *dto.DashboardStats {
	counters := s.counters()

	type result struct {
		value int64
		err   error
	}
	results := make([]result, len(counters))

	// A plain Group: one failing count must not cancel the others.
	var g errgroup.Group
	for i, c := range counters {
		g.Go(func() error {
			v, err := c.count(ctx)
			results[i] = result{value: v, err: err}
			if err != nil {
				return fmt.Errorf("%s: %w", c.name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn().Err(err).Msg("Dashboard returned partial results")
	}

	stats := &dto.DashboardStats{}
	for i, c := range counters {
		if results[i].err != nil {
			s.logger.Error().Err(results[i].err).Str("counter", c.name).Msg("Dashboard count failed")
			stats.Unavailable = append(stats.Unavailable, c.name)
			continue
		}
		v := results[i].value
		c.dst(stats, &v)
	}
	return stats
}
