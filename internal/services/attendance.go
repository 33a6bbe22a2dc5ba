package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencehub/internal/domain"
)

type attendanceService struct {
	attendanceRepo domain.AttendanceRepository
	conferenceRepo domain.ConferenceRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewAttendanceService(attendanceRepo domain.AttendanceRepository, conferenceRepo domain.ConferenceRepository, timeout time.Duration) domain.AttendanceService {
	return &attendanceService{attendanceRepo: attendanceRepo, conferenceRepo: conferenceRepo, contextTimeout: timeout, now: time.Now}
}

// Register signs the actor up for an approved or active conference.
func (s *attendanceService) Register(ctx context.Context, actor *domain.Profile, conferenceID string) (*domain.Attendance, error) {
	if err := requireProfile(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.Status != domain.ConferenceApproved && conf.Status != domain.ConferenceActive {
		return nil, fmt.Errorf("%w: conference is not open for registration", domain.ErrInvalidInput)
	}

	a := domain.NewAttendance(conf.ID, actor.ID, s.now())
	if err := s.attendanceRepo.Register(ctx, a); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) || errors.Is(err, domain.ErrConferenceFull) {
			return nil, err
		}
		return nil, fmt.Errorf("register attendance: %w", err)
	}
	return a, nil
}

// MarkAttended checks a registered profile in. Allowed for admins and the conference organizer.
func (s *attendanceService) MarkAttended(ctx context.Context, actor *domain.Profile, conferenceID, profileID string) (*domain.Attendance, error) {
	if err := requireProfile(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if !actor.IsAdmin() && conf.OrganizerID != actor.ID {
		return nil, domain.ErrForbidden
	}

	a, err := s.attendanceRepo.MarkAttended(ctx, conf.ID, profileID, s.now())
	if err != nil {
		return nil, fmt.Errorf("mark attended: %w", err)
	}
	return a, nil
}
