package domain

import (
	"context"
	"time"
)

// Role is the profile type that gates mutating operations.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleSpeaker   Role = "speaker"
	RoleAttendee  Role = "attendee"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdmin, RoleOrganizer, RoleSpeaker, RoleAttendee}

var roleLabels = map[Role]string{
	RoleAdmin:     "مدير النظام",
	RoleOrganizer: "منظم المؤتمر",
	RoleSpeaker:   "متحدث",
	RoleAttendee:  "مشارك",
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the localized display label. Unknown roles render as their raw value.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}

// Profile extends a User account with conference-platform fields.
// swagger:model Profile
type Profile struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Role           Role      `json:"role"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	CityID         *string   `json:"city_id"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profile_picture"`
	IsApproved     bool      `json:"is_approved"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewProfile returns the default profile created on first login: attendee, not approved.
func NewProfile(userID string, createdAt time.Time) *Profile {
	return &Profile{
		UserID:    userID,
		Role:      RoleAttendee,
		CreatedAt: createdAt,
	}
}

// IsAdmin reports whether the profile holds the admin role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// ProfileWithUser bundles a profile with its account and optional city.
type ProfileWithUser struct {
	Profile *Profile `json:"profile"`
	User    *User    `json:"user"`
	City    *City    `json:"city"`
}

// ProfileRepository defines storage operations for profiles.
type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	// UpdateWithUser saves the account's names and email and the profile's contact fields in one transaction.
	UpdateWithUser(ctx context.Context, u *User, p *Profile) error
	SetApproved(ctx context.Context, id string, approved bool) error
	// ListWithUsers returns every profile joined with its account, newest first.
	ListWithUsers(ctx context.Context) ([]*ProfileWithUser, error)
}

// ProfileUpdate holds the editable fields of the profile form. Nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Bio       *string
	CityID    *string
}

// ProfileService exposes the current account's profile.
type ProfileService interface {
	// CurrentProfile returns the profile linked to userID, or nil when none exists yet.
	CurrentProfile(ctx context.Context, userID string) (*Profile, error)
	// GetMe returns the account and profile, creating the profile if it is missing.
	GetMe(ctx context.Context, userID string) (*ProfileWithUser, error)
	UpdateMe(ctx context.Context, userID string, in ProfileUpdate) (*ProfileWithUser, error)
	ListCities(ctx context.Context) ([]*City, error)
}

// UserAction is an admin action on a profile.
type UserAction string

const (
	UserActionApprove UserAction = "approve"
	UserActionReject  UserAction = "reject"
	UserActionDelete  UserAction = "delete"
)

// UserManagementService backs the admin user list.
type UserManagementService interface {
	ListUsers(ctx context.Context, actor *Profile) ([]*ProfileWithUser, error)
	ManageUser(ctx context.Context, actor *Profile, profileID string, action UserAction) error
}
