package domain

import (
	"context"
	"time"
)

// Attendance is the registration and check-in record of one profile at one conference.
// swagger:model Attendance
type Attendance struct {
	ID           string     `json:"id"`
	ConferenceID string     `json:"conference_id"`
	ProfileID    string     `json:"profile_id"`
	Attended     bool       `json:"attended"`
	RegisteredAt time.Time  `json:"registered_at"`
	AttendedAt   *time.Time `json:"attended_at"`
}

// NewAttendance creates a registration that has not been checked in yet.
func NewAttendance(conferenceID, profileID string, registeredAt time.Time) *Attendance {
	return &Attendance{
		ConferenceID: conferenceID,
		ProfileID:    profileID,
		RegisteredAt: registeredAt,
	}
}

// AttendanceRepository defines storage operations for attendance.
type AttendanceRepository interface {
	// Register inserts the attendance and bumps the conference's current_attendees in one transaction.
	// Returns ErrAlreadyRegistered on a duplicate and ErrConferenceFull when capacity is reached.
	Register(ctx context.Context, a *Attendance) error
	MarkAttended(ctx context.Context, conferenceID, profileID string, at time.Time) (*Attendance, error)
}

// AttendanceService covers registration and check-in.
type AttendanceService interface {
	Register(ctx context.Context, actor *Profile, conferenceID string) (*Attendance, error)
	MarkAttended(ctx context.Context, actor *Profile, conferenceID, profileID string) (*Attendance, error)
}
