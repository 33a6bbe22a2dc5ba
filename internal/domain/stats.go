package domain

import (
	"context"
	"math"
	"time"
)

// StatusCount is the number of conferences in one status.
type StatusCount struct {
	Status ConferenceStatus `json:"status"`
	Label  string           `json:"label"`
	Count  int              `json:"count"`
}

// RoleCount is the number of profiles holding one role, and how many of them are approved.
type RoleCount struct {
	Role     Role   `json:"role"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Approved int    `json:"approved"`
}

// MonthlyCount is the number of conferences created in one calendar month (1–12).
type MonthlyCount struct {
	Month int `json:"month"`
	Count int `json:"count"`
}

// AttendanceStats summarizes registrations against check-ins.
type AttendanceStats struct {
	TotalRegistered int     `json:"total_registered"`
	TotalAttended   int     `json:"total_attended"`
	AttendanceRate  float64 `json:"attendance_rate"`
}

// AttendanceRate returns attended/registered as a percentage rounded to one decimal, or 0 when nobody registered.
func AttendanceRate(attended, registered int) float64 {
	if registered <= 0 {
		return 0
	}
	return RoundOneDecimal(float64(attended) / float64(registered) * 100)
}

// RoundOneDecimal rounds v half away from zero to one decimal place.
func RoundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

// DashboardStats is the point-in-time admin dashboard.
type DashboardStats struct {
	TotalUsers          int                `json:"total_users"`
	NewUsersWeek        int                `json:"new_users_week"`
	TotalConferences    int                `json:"total_conferences"`
	PendingConferences  int                `json:"pending_conferences"`
	ActiveConferences   int                `json:"active_conferences"`
	ConferencesByStatus []StatusCount      `json:"conferences_by_status"`
	TotalRatings        int                `json:"total_ratings"`
	PendingRequests     int                `json:"pending_requests"`
	RecentConferences   []*Conference      `json:"recent_conferences"`
	RecentUsers         []*ProfileWithUser `json:"recent_users"`
}

// PlatformTotals are the headline counts of the statistics page.
type PlatformTotals struct {
	TotalUsers       int `json:"total_users"`
	TotalConferences int `json:"total_conferences"`
	TotalRatings     int `json:"total_ratings"`
	TotalAttendances int `json:"total_attendances"`
}

// PlatformStats is the full statistics page.
type PlatformStats struct {
	Totals          PlatformTotals  `json:"totals"`
	UserStats       []RoleCount     `json:"user_stats"`
	ConferenceStats []StatusCount   `json:"conference_stats"`
	Monthly         []MonthlyCount  `json:"monthly"`
	Attendance      AttendanceStats `json:"attendance"`
}

// StatsRepository runs the read-only aggregate queries behind dashboards and statistics.
type StatsRepository interface {
	CountProfiles(ctx context.Context) (int, error)
	CountProfilesSince(ctx context.Context, since time.Time) (int, error)
	CountConferences(ctx context.Context) (int, error)
	CountRatings(ctx context.Context) (int, error)
	CountPendingRequests(ctx context.Context) (int, error)
	// CountAttendance returns the number of registrations and how many were marked attended.
	CountAttendance(ctx context.Context) (registered, attended int, err error)
	ConferencesByStatus(ctx context.Context) ([]StatusCount, error)
	ProfilesByRole(ctx context.Context) ([]RoleCount, error)
	// ConferencesByMonth groups conferences created in year by month, ascending. Empty months are absent.
	ConferencesByMonth(ctx context.Context, year int) ([]MonthlyCount, error)
	RecentConferences(ctx context.Context, limit int) ([]*Conference, error)
	RecentProfiles(ctx context.Context, limit int) ([]*ProfileWithUser, error)
}

// StatsService serves the admin dashboard and statistics pages.
type StatsService interface {
	Dashboard(ctx context.Context, actor *Profile) (*DashboardStats, error)
	Platform(ctx context.Context, actor *Profile) (*PlatformStats, error)
}
