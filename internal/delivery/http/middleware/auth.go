package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/domain"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	profileKey contextKey = "profile"
)

// SetUserID returns a context with the user ID set. Used by auth middleware.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// SetProfile returns a context carrying the caller's profile. p may be nil.
func SetProfile(ctx context.Context, p *domain.Profile) context.Context {
	return context.WithValue(ctx, profileKey, p)
}

// ProfileFromContext returns the caller's profile, or nil when the account has none yet.
func ProfileFromContext(ctx context.Context) *domain.Profile {
	p, _ := ctx.Value(profileKey).(*domain.Profile)
	return p
}

// ProfileLoader resolves the profile linked to an account.
type ProfileLoader interface {
	CurrentProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

// RequireAuth returns a wrapper that validates the Bearer token, sets the user ID in the
// request context, and loads the caller's profile into it.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, profiles ProfileLoader, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			profile, err := profiles.CurrentProfile(r.Context(), userID)
			if err != nil {
				logger.ErrorContext(r.Context(), "load profile failed", "user_id", userID, "err", err)
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, h.MsgInternal)
				return
			}
			ctx := SetProfile(SetUserID(r.Context(), userID), profile)
			next(w, r.WithContext(ctx))
		}
	}
}
