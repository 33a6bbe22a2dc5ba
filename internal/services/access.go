package services

import "conferencehub/internal/domain"

// RequireAdmin is the single gate in front of every administrative operation.
// It returns ErrProfileRequired when the caller has no profile yet and
// ErrForbidden for any role other than admin.
func RequireAdmin(actor *domain.Profile) error {
	if actor == nil {
		return domain.ErrProfileRequired
	}
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

// requireProfile is the weaker gate for member operations that only need a profile.
func requireProfile(actor *domain.Profile) error {
	if actor == nil {
		return domain.ErrProfileRequired
	}
	return nil
}
