package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

type profileService struct {
	userRepo       domain.UserRepository
	profileRepo    domain.ProfileRepository
	cityRepo       domain.CityRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewProfileService(userRepo domain.UserRepository, profileRepo domain.ProfileRepository, cityRepo domain.CityRepository, timeout time.Duration) domain.ProfileService {
	return &profileService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		cityRepo:       cityRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// CurrentProfile returns nil without error when the user has no profile yet.
func (s *profileService) CurrentProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *profileService) GetMe(ctx context.Context, userID string) (*domain.ProfileWithUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.load(ctx, userID)
}

func (s *profileService) UpdateMe(ctx context.Context, userID string, in domain.ProfileUpdate) (*domain.ProfileWithUser, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	me, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, profile := me.User, me.Profile

	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email != "" && !emailRegexp.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		user.Email = email
	}
	setTrimmed(&user.FirstName, in.FirstName)
	setTrimmed(&user.LastName, in.LastName)
	setTrimmed(&profile.Phone, in.Phone)
	setTrimmed(&profile.Address, in.Address)
	setTrimmed(&profile.Bio, in.Bio)

	// An unknown city id leaves the current city unchanged.
	if in.CityID != nil && *in.CityID != "" {
		city, err := s.cityRepo.GetByID(ctx, *in.CityID)
		switch {
		case err == nil:
			profile.CityID = &city.ID
			me.City = city
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("get city: %w", err)
		}
	}

	user.UpdatedAt = s.now()
	if err := s.profileRepo.UpdateWithUser(ctx, user, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return me, nil
}

func (s *profileService) ListCities(ctx context.Context) ([]*domain.City, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	cities, err := s.cityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

func (s *profileService) load(ctx context.Context, userID string) (*domain.ProfileWithUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	profile, err := ensureProfile(ctx, s.profileRepo, userID, s.now())
	if err != nil {
		return nil, err
	}
	out := &domain.ProfileWithUser{Profile: profile, User: user}
	if profile.CityID != nil {
		city, err := s.cityRepo.GetByID(ctx, *profile.CityID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get city: %w", err)
		}
		out.City = city
	}
	return out, nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
