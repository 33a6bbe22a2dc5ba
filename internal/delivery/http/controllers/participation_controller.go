package controllers

import (
	"net/http"

	h "conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"
)

// RateRequest is the request body for POST /conferences/{id}/ratings.
type RateRequest struct {
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment"`
}

// RatingsSuccessResponse is the success response envelope for GET /conferences/{id}/ratings (200).
type RatingsSuccessResponse struct {
	Data  *domain.ConferenceRatings `json:"data"`
	Error *h.APIError               `json:"error"`
}

// RatingSuccessResponse is the success response envelope for POST /conferences/{id}/ratings (201).
type RatingSuccessResponse struct {
	Data  *domain.Rating `json:"data"`
	Error *h.APIError    `json:"error"`
}

// AttendanceSuccessResponse is the success response envelope carrying one attendance record.
type AttendanceSuccessResponse struct {
	Data  *domain.Attendance `json:"data"`
	Error *h.APIError        `json:"error"`
}

// ListRatings godoc
// @Summary List conference ratings
// @Description Returns the conference, its ratings newest first, and the average rounded to one decimal.
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Success 200 {object} controllers.RatingsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/ratings [get]
func (c *ConferenceController) ListRatings(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	out, err := c.Ratings.ListForConference(r.Context(), id)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, out)
}

// Rate godoc
// @Summary Rate a conference
// @Description Records the caller's single 1–5 rating of a conference.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Param body body RateRequest true "Rating and optional comment"
// @Success 201 {object} controllers.RatingSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: profile_required"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already rated)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/ratings [post]
func (c *ConferenceController) Rate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	var req RateRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	rating, err := c.Ratings.Rate(r.Context(), middleware.ProfileFromContext(r.Context()), id, req.Rating, req.Comment)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, rating)
}

// Register godoc
// @Summary Register for a conference
// @Description Registers the caller for an approved or active conference with free capacity.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Success 201 {object} controllers.AttendanceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (not open for registration)"
// @Failure 403 {object} helpers.APIResponse "error.code: profile_required"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered or full)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/attendance [post]
func (c *ConferenceController) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	a, err := c.Attendance.Register(r.Context(), middleware.ProfileFromContext(r.Context()), id)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, a)
}

// MarkAttended godoc
// @Summary Check an attendee in
// @Description Marks a registered profile as attended. Allowed for admins and the conference organizer.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Param profileID path string true "Profile ID (UUID)"
// @Success 200 {object} controllers.AttendanceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (not registered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/attendance/{profileID}/attended [post]
func (c *ConferenceController) MarkAttended(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	profileID, ok := h.PathUUID(w, r, "profileID")
	if !ok {
		return
	}
	a, err := c.Attendance.MarkAttended(r.Context(), middleware.ProfileFromContext(r.Context()), id, profileID)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, a)
}
