package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

const (
	maxTitleLen   = 200
	upcomingLimit = 6
)

type conferenceService struct {
	conferenceRepo domain.ConferenceRepository
	categoryRepo   domain.CategoryRepository
	cityRepo       domain.CityRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewConferenceService(
	conferenceRepo domain.ConferenceRepository,
	categoryRepo domain.CategoryRepository,
	cityRepo domain.CityRepository,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo: conferenceRepo,
		categoryRepo:   categoryRepo,
		cityRepo:       cityRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// Create proposes a conference. It starts pending and an approval request is
// filed with it in the same transaction.
func (s *conferenceService) Create(ctx context.Context, actor *domain.Profile, in domain.CreateConferenceInput) (*domain.Conference, error) {
	if err := requireProfile(actor); err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleOrganizer && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "" || len([]rune(title)) > maxTitleLen:
		return nil, fmt.Errorf("%w: title must be between 1 and %d characters", domain.ErrInvalidInput, maxTitleLen)
	case in.StartDate.IsZero() || in.EndDate.IsZero():
		return nil, fmt.Errorf("%w: start and end dates are required", domain.ErrInvalidInput)
	case in.EndDate.Before(in.StartDate):
		return nil, fmt.Errorf("%w: end date must not be before start date", domain.ErrInvalidInput)
	case in.MaxAttendees < 0:
		return nil, fmt.Errorf("%w: max attendees must not be negative", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			return nil, lookupErr("category", err)
		}
	}
	if in.CityID != nil {
		if _, err := s.cityRepo.GetByID(ctx, *in.CityID); err != nil {
			return nil, lookupErr("city", err)
		}
	}

	now := s.now()
	c := domain.NewConference(actor.ID, title, strings.TrimSpace(in.Description), strings.TrimSpace(in.Location),
		in.StartDate, in.EndDate, in.MaxAttendees, now)
	c.CategoryID = in.CategoryID
	c.CityID = in.CityID

	req := domain.NewConferenceRequest("", actor.ID, domain.RequestTypeApproval, "", now)
	if err := s.conferenceRepo.CreateWithRequest(ctx, c, req); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}
	return c, nil
}

func (s *conferenceService) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.conferenceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	return c, nil
}

func (s *conferenceService) List(ctx context.Context) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.conferenceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	return list, nil
}

// Upcoming returns the soonest approved or active conferences that have not started yet.
func (s *conferenceService) Upcoming(ctx context.Context) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, err := s.conferenceRepo.ListUpcoming(ctx, s.now(), upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming conferences: %w", err)
	}
	return list, nil
}

// lookupErr turns a missing referenced row into invalid input.
func lookupErr(what string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: unknown %s", domain.ErrInvalidInput, what)
	}
	return fmt.Errorf("get %s: %w", what, err)
}
