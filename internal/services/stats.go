package services

import (
	"context"
	"fmt"
	"time"

	"conferencehub/internal/domain"
)

const (
	recentLimit  = 10
	newUsersDays = 7
)

type statsService struct {
	statsRepo      domain.StatsRepository
	contextTimeout time.Duration
	now            func() time.Time
}

// NewStatsService returns the read-only aggregator behind the admin dashboard and statistics pages.
func NewStatsService(statsRepo domain.StatsRepository, timeout time.Duration) domain.StatsService {
	return &statsService{statsRepo: statsRepo, contextTimeout: timeout, now: time.Now}
}

func (s *statsService) Dashboard(ctx context.Context, actor *domain.Profile) (*domain.DashboardStats, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		out = &domain.DashboardStats{}
		err error
	)
	if out.TotalUsers, err = s.statsRepo.CountProfiles(ctx); err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}
	if out.NewUsersWeek, err = s.statsRepo.CountProfilesSince(ctx, weekStart(s.now())); err != nil {
		return nil, fmt.Errorf("count new profiles: %w", err)
	}
	if out.TotalConferences, err = s.statsRepo.CountConferences(ctx); err != nil {
		return nil, fmt.Errorf("count conferences: %w", err)
	}
	if out.ConferencesByStatus, err = s.statsRepo.ConferencesByStatus(ctx); err != nil {
		return nil, fmt.Errorf("count conferences by status: %w", err)
	}
	for _, sc := range out.ConferencesByStatus {
		switch sc.Status {
		case domain.ConferencePending:
			out.PendingConferences = sc.Count
		case domain.ConferenceActive:
			out.ActiveConferences = sc.Count
		}
	}
	if out.TotalRatings, err = s.statsRepo.CountRatings(ctx); err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}
	if out.PendingRequests, err = s.statsRepo.CountPendingRequests(ctx); err != nil {
		return nil, fmt.Errorf("count pending requests: %w", err)
	}
	if out.RecentConferences, err = s.statsRepo.RecentConferences(ctx, recentLimit); err != nil {
		return nil, fmt.Errorf("recent conferences: %w", err)
	}
	if out.RecentUsers, err = s.statsRepo.RecentProfiles(ctx, recentLimit); err != nil {
		return nil, fmt.Errorf("recent profiles: %w", err)
	}
	return out, nil
}

func (s *statsService) Platform(ctx context.Context, actor *domain.Profile) (*domain.PlatformStats, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		out = &domain.PlatformStats{}
		err error
	)
	if out.Totals.TotalUsers, err = s.statsRepo.CountProfiles(ctx); err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}
	if out.Totals.TotalConferences, err = s.statsRepo.CountConferences(ctx); err != nil {
		return nil, fmt.Errorf("count conferences: %w", err)
	}
	if out.Totals.TotalRatings, err = s.statsRepo.CountRatings(ctx); err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}

	registered, attended, err := s.statsRepo.CountAttendance(ctx)
	if err != nil {
		return nil, fmt.Errorf("count attendance: %w", err)
	}
	out.Totals.TotalAttendances = registered
	out.Attendance = domain.AttendanceStats{
		TotalRegistered: registered,
		TotalAttended:   attended,
		AttendanceRate:  domain.AttendanceRate(attended, registered),
	}

	if out.UserStats, err = s.statsRepo.ProfilesByRole(ctx); err != nil {
		return nil, fmt.Errorf("count profiles by role: %w", err)
	}
	if out.ConferenceStats, err = s.statsRepo.ConferencesByStatus(ctx); err != nil {
		return nil, fmt.Errorf("count conferences by status: %w", err)
	}
	if out.Monthly, err = s.statsRepo.ConferencesByMonth(ctx, s.now().Year()); err != nil {
		return nil, fmt.Errorf("count conferences by month: %w", err)
	}
	return out, nil
}

// weekStart is midnight of the day a week before now, in now's location.
func weekStart(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-newUsersDays, 0, 0, 0, 0, now.Location())
}
