package domain

import (
	"context"
	"time"
)

// ConferenceStatus is the lifecycle state of a conference.
type ConferenceStatus string

const (
	ConferencePending   ConferenceStatus = "pending"
	ConferenceApproved  ConferenceStatus = "approved"
	ConferenceRejected  ConferenceStatus = "rejected"
	ConferenceActive    ConferenceStatus = "active"
	ConferenceCompleted ConferenceStatus = "completed"
	ConferenceCancelled ConferenceStatus = "cancelled"
)

// ConferenceStatuses lists every status in display order.
var ConferenceStatuses = []ConferenceStatus{
	ConferencePending, ConferenceApproved, ConferenceRejected,
	ConferenceActive, ConferenceCompleted, ConferenceCancelled,
}

var conferenceStatusLabels = map[ConferenceStatus]string{
	ConferencePending:   "قيد الانتظار",
	ConferenceApproved:  "مقبول",
	ConferenceRejected:  "مرفوض",
	ConferenceActive:    "نشط",
	ConferenceCompleted: "منتهي",
	ConferenceCancelled: "ملغي",
}

// Valid reports whether s is one of the six known statuses.
func (s ConferenceStatus) Valid() bool {
	_, ok := conferenceStatusLabels[s]
	return ok
}

// Label returns the localized display label.
func (s ConferenceStatus) Label() string {
	if l, ok := conferenceStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Conference is the central schedulable entity organizers propose and admins approve.
// swagger:model Conference
type Conference struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	CategoryID       *string          `json:"category_id"`
	OrganizerID      string           `json:"organizer_id"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	Location         string           `json:"location"`
	CityID           *string          `json:"city_id"`
	MaxAttendees     int              `json:"max_attendees"`
	CurrentAttendees int              `json:"current_attendees"`
	Status           ConferenceStatus `json:"status"`
	IsFeatured       bool             `json:"is_featured"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// DefaultMaxAttendees is used when a conference is proposed without a capacity.
const DefaultMaxAttendees = 100

// NewConference returns a pending conference owned by organizerID.
func NewConference(organizerID, title, description, location string, startDate, endDate time.Time, maxAttendees int, now time.Time) *Conference {
	if maxAttendees <= 0 {
		maxAttendees = DefaultMaxAttendees
	}
	return &Conference{
		Title:        title,
		Description:  description,
		OrganizerID:  organizerID,
		StartDate:    startDate,
		EndDate:      endDate,
		Location:     location,
		MaxAttendees: maxAttendees,
		Status:       ConferencePending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ConferenceRepository defines storage operations for conferences.
type ConferenceRepository interface {
	// CreateWithRequest inserts the conference and its approval request atomically.
	CreateWithRequest(ctx context.Context, c *Conference, req *ConferenceRequest) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	// List returns every conference, newest first.
	List(ctx context.Context) ([]*Conference, error)
	// ListUpcoming returns approved or active conferences starting at or after from, soonest first.
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*Conference, error)
}

// CreateConferenceInput carries the conference proposal form.
type CreateConferenceInput struct {
	Title        string
	Description  string
	CategoryID   *string
	CityID       *string
	StartDate    time.Time
	EndDate      time.Time
	Location     string
	MaxAttendees int
}

// ConferenceService covers conference proposal and listing.
type ConferenceService interface {
	Create(ctx context.Context, actor *Profile, in CreateConferenceInput) (*Conference, error)
	GetByID(ctx context.Context, id string) (*Conference, error)
	List(ctx context.Context) ([]*Conference, error)
	Upcoming(ctx context.Context) ([]*Conference, error)
}
