package domain

import (
	"context"
	"strings"
	"time"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a 1–5 score with an optional comment, at most one per (conference, profile).
// swagger:model Rating
type Rating struct {
	ID           string    `json:"id"`
	ConferenceID string    `json:"conference_id"`
	ProfileID    string    `json:"profile_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRating reports whether v lies within [MinRating, MaxRating].
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// StarString renders a rating as filled stars followed by empty stars, always MaxRating runes long.
func StarString(v int) string {
	if v < 0 {
		v = 0
	}
	if v > MaxRating {
		v = MaxRating
	}
	return strings.Repeat("★", v) + strings.Repeat("☆", MaxRating-v)
}

// RatingWithAuthor is a rating joined with the rater's account names.
type RatingWithAuthor struct {
	Rating   *Rating `json:"rating"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
}

// ConferenceRatings is the ratings view of one conference.
type ConferenceRatings struct {
	Conference *Conference         `json:"conference"`
	Ratings    []*RatingWithAuthor `json:"ratings"`
	Average    float64             `json:"average"`
}

// RatingRepository defines storage operations for ratings.
type RatingRepository interface {
	// Create returns ErrAlreadyRated when the profile already rated the conference.
	Create(ctx context.Context, r *Rating) error
	// ListByConference returns the conference's ratings, newest first.
	ListByConference(ctx context.Context, conferenceID string) ([]*RatingWithAuthor, error)
}

// RatingService covers rating a conference and reading its ratings.
type RatingService interface {
	Rate(ctx context.Context, actor *Profile, conferenceID string, value int, comment string) (*Rating, error)
	ListForConference(ctx context.Context, conferenceID string) (*ConferenceRatings, error)
}
