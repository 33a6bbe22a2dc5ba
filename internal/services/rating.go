package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

type ratingService struct {
	ratingRepo     domain.RatingRepository
	conferenceRepo domain.ConferenceRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewRatingService(ratingRepo domain.RatingRepository, conferenceRepo domain.ConferenceRepository, timeout time.Duration) domain.RatingService {
	return &ratingService{ratingRepo: ratingRepo, conferenceRepo: conferenceRepo, contextTimeout: timeout, now: time.Now}
}

// Rate records the actor's single rating of a conference.
func (s *ratingService) Rate(ctx context.Context, actor *domain.Profile, conferenceID string, value int, comment string) (*domain.Rating, error) {
	if err := requireProfile(actor); err != nil {
		return nil, err
	}
	if !domain.ValidRating(value) {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.conferenceRepo.GetByID(ctx, conferenceID); err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	r := &domain.Rating{
		ConferenceID: conferenceID,
		ProfileID:    actor.ID,
		Rating:       value,
		Comment:      strings.TrimSpace(comment),
		CreatedAt:    s.now(),
	}
	if err := s.ratingRepo.Create(ctx, r); err != nil {
		if errors.Is(err, domain.ErrAlreadyRated) {
			return nil, err
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}
	return r, nil
}

func (s *ratingService) ListForConference(ctx context.Context, conferenceID string) (*domain.ConferenceRatings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	ratings, err := s.ratingRepo.ListByConference(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return &domain.ConferenceRatings{
		Conference: conf,
		Ratings:    ratings,
		Average:    averageRating(ratings),
	}, nil
}

func averageRating(ratings []*domain.RatingWithAuthor) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating.Rating
	}
	return domain.RoundOneDecimal(float64(sum) / float64(len(ratings)))
}
