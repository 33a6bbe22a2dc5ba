package services

import (
	"context"
	"fmt"
	"time"

	"conferencehub/internal/domain"
)

type userManagementService struct {
	userRepo       domain.UserRepository
	profileRepo    domain.ProfileRepository
	contextTimeout time.Duration
}

func NewUserManagementService(userRepo domain.UserRepository, profileRepo domain.ProfileRepository, timeout time.Duration) domain.UserManagementService {
	return &userManagementService{userRepo: userRepo, profileRepo: profileRepo, contextTimeout: timeout}
}

func (s *userManagementService) ListUsers(ctx context.Context, actor *domain.Profile) ([]*domain.ProfileWithUser, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	users, err := s.profileRepo.ListWithUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ManageUser approves, disables or deletes the account behind profileID.
// Deleting removes the account; its profile and owned rows cascade.
func (s *userManagementService) ManageUser(ctx context.Context, actor *domain.Profile, profileID string, action domain.UserAction) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	switch action {
	case domain.UserActionApprove, domain.UserActionReject, domain.UserActionDelete:
	default:
		return fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, action)
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	target, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}

	switch action {
	case domain.UserActionApprove:
		err = s.profileRepo.SetApproved(ctx, target.ID, true)
	case domain.UserActionReject:
		err = s.profileRepo.SetApproved(ctx, target.ID, false)
	case domain.UserActionDelete:
		if target.ID == actor.ID {
			return fmt.Errorf("%w: cannot delete your own account", domain.ErrInvalidInput)
		}
		err = s.userRepo.Delete(ctx, target.UserID)
	}
	if err != nil {
		return fmt.Errorf("%s user: %w", action, err)
	}
	return nil
}
