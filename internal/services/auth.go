package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

const (
	minPasswordLen = 8
	maxUsernameLen = 150
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	userRepo       domain.UserRepository
	profileRepo    domain.ProfileRepository
	hasher         domain.PasswordHasher
	issuer         domain.TokenIssuer
	emailService   domain.EmailService
	logger         *slog.Logger
	jwtExpiry      time.Duration
	contextTimeout time.Duration
	now            func() time.Time
}

// NewAuthService creates an AuthService. Profiles are not created at sign-up;
// Login creates the default profile the first time it is missing.
func NewAuthService(
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	emailService domain.EmailService,
	logger *slog.Logger,
	jwtExpiry, timeout time.Duration,
) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		hasher:         hasher,
		issuer:         issuer,
		emailService:   emailService,
		logger:         logger,
		jwtExpiry:      jwtExpiry,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *authService) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	switch {
	case username == "" || len([]rune(username)) > maxUsernameLen:
		return nil, fmt.Errorf("%w: username must be between 1 and %d characters", domain.ErrInvalidInput, maxUsernameLen)
	case email != "" && !emailRegexp.MatchString(email):
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	case len(in.Password) < minPasswordLen:
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := domain.NewUser(username, email, strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName), hash, salt, now, now)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if user.Email != "" {
		if err := s.emailService.SendWelcomeMessage(ctx, &domain.WelcomeMessageEmailData{
			Email:     user.Email,
			FirstName: user.FirstName,
			Username:  user.Username,
		}); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "err", err)
		}
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	profile, err := ensureProfile(ctx, s.profileRepo, user.ID, s.now())
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID, user.Username, profile.Role, s.jwtExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.LoginResult{
		Token:   token,
		User:    user,
		Profile: profile,
		Pending: !profile.IsApproved && !profile.IsAdmin(),
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, oldPassword); err != nil {
		return domain.ErrInvalidCredentials
	}
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash, salt); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ensureProfile returns the user's profile, creating the default one when it is missing.
func ensureProfile(ctx context.Context, repo domain.ProfileRepository, userID string, now time.Time) (*domain.Profile, error) {
	profile, err := repo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	profile = domain.NewProfile(userID, now)
	if err := repo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}
