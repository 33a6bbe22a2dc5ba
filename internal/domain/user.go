package domain

import (
	"context"
	"strings"
	"time"
)

// User is the login account. Domain data lives on the linked Profile.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(username, email, firstName, lastName, passwordHash, salt string, createdAt, updatedAt time.Time) *User {
	return &User{
		Username:     username,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// FullName joins first and last name, trimming the gap when either is empty.
func (u *User) FullName() string {
	return JoinName(u.FirstName, u.LastName)
}

// JoinName joins a first and last name with a single space and trims the result.
func JoinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, username string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for account storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash, salt string) error
	Delete(ctx context.Context, id string) error
}

// SignUpInput carries the registration form.
type SignUpInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token   string   `json:"token"`
	User    *User    `json:"user"`
	Profile *Profile `json:"profile"`
	// Pending is true when the account still awaits admin approval.
	Pending bool `json:"pending_approval"`
}

// AuthService covers registration, login and password changes.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
