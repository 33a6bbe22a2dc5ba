package controllers

import (
	"log/slog"
	"net/http"

	h "conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"
)

// UpdateMeRequest is the request body for PATCH /users/me. Omitted fields are unchanged.
type UpdateMeRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=20"`
	Address   *string `json:"address"`
	Bio       *string `json:"bio"`
	CityID    *string `json:"city_id"`
}

// ChangePasswordRequest is the request body for POST /users/me/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// StatusResponse is the data payload of endpoints that only report an outcome.
type StatusResponse struct {
	Status string `json:"status"`
}

// StatusSuccessResponse is the success response envelope carrying a StatusResponse.
type StatusSuccessResponse struct {
	Data  *StatusResponse `json:"data"`
	Error *h.APIError     `json:"error"`
}

// MeSuccessResponse is the success response envelope for GET/PATCH /users/me (200).
type MeSuccessResponse struct {
	Data  *domain.ProfileWithUser `json:"data"`
	Error *h.APIError             `json:"error"`
}

// CitiesSuccessResponse is the success response envelope for GET /cities (200).
type CitiesSuccessResponse struct {
	Data  []*domain.City `json:"data"`
	Error *h.APIError    `json:"error"`
}

type ProfileController struct {
	Logger   *slog.Logger
	Profiles domain.ProfileService
	Auth     domain.AuthService
}

func NewProfileController(logger *slog.Logger, profiles domain.ProfileService, auth domain.AuthService) *ProfileController {
	return &ProfileController{
		Logger:   logger,
		Profiles: profiles,
		Auth:     auth,
	}
}

// GetMe godoc
// @Summary Get current user
// @Description Returns the authenticated account with its profile and city. Creates the default profile when missing.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.MeSuccessResponse "data contains user, profile, and city"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *ProfileController) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	me, err := c.Profiles.GetMe(r.Context(), userID)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, me)
}

// UpdateMe godoc
// @Summary Update current user
// @Description Updates names, email, phone, address, bio, and city. An unknown city_id is ignored.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateMeRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.MeSuccessResponse "data contains the updated user and profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [patch]
func (c *ProfileController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req UpdateMeRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	me, err := c.Profiles.UpdateMe(r.Context(), userID, domain.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Bio:       req.Bio,
		CityID:    req.CityID,
	})
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, me)
}

// ChangePassword godoc
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "Old and new password"
// @Success 200 {object} controllers.StatusSuccessResponse "data.status: password changed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (wrong old password)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/password [post]
func (c *ProfileController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Auth.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "password changed"})
}

// ListCities godoc
// @Summary List cities
// @Description Returns every city ordered by governorate and name.
// @Tags users
// @Produce json
// @Success 200 {object} controllers.CitiesSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /cities [get]
func (c *ProfileController) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := c.Profiles.ListCities(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, cities)
}
