package controllers

import (
	"log/slog"
	"net/http"
	"time"

	h "conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"
)

// CreateConferenceRequest is the request body for POST /conferences.
type CreateConferenceRequest struct {
	Title        string    `json:"title" validate:"required,max=200"`
	Description  string    `json:"description"`
	CategoryID   *string   `json:"category_id" validate:"omitempty,uuid"`
	CityID       *string   `json:"city_id" validate:"omitempty,uuid"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required"`
	Location     string    `json:"location" validate:"max=200"`
	MaxAttendees int       `json:"max_attendees" validate:"gte=0"`
}

// Validate implements Validator.
func (c CreateConferenceRequest) Validate() []string {
	if c.EndDate.Before(c.StartDate) {
		return []string{"end_date must not be before start_date"}
	}
	return nil
}

// SubmitRequestRequest is the request body for POST /conferences/{id}/requests.
type SubmitRequestRequest struct {
	RequestType string `json:"request_type" validate:"required,oneof=approval modification cancellation"`
	Details     string `json:"details"`
}

// ConferenceSuccessResponse is the success response envelope carrying one conference.
type ConferenceSuccessResponse struct {
	Data  *domain.Conference `json:"data"`
	Error *h.APIError        `json:"error"`
}

// ConferencesSuccessResponse is the success response envelope carrying a conference list.
type ConferencesSuccessResponse struct {
	Data  []*domain.Conference `json:"data"`
	Error *h.APIError          `json:"error"`
}

// ConferenceRequestSuccessResponse is the success response envelope carrying one request.
type ConferenceRequestSuccessResponse struct {
	Data  *domain.ConferenceRequest `json:"data"`
	Error *h.APIError               `json:"error"`
}

// ConferenceController serves conference browsing, proposals, ratings, and attendance.
type ConferenceController struct {
	Logger      *slog.Logger
	Conferences domain.ConferenceService
	Requests    domain.RequestService
	Ratings     domain.RatingService
	Attendance  domain.AttendanceService
}

func NewConferenceController(
	logger *slog.Logger,
	conferences domain.ConferenceService,
	requests domain.RequestService,
	ratings domain.RatingService,
	attendance domain.AttendanceService,
) *ConferenceController {
	return &ConferenceController{
		Logger:      logger,
		Conferences: conferences,
		Requests:    requests,
		Ratings:     ratings,
		Attendance:  attendance,
	}
}

// List godoc
// @Summary List conferences
// @Description Returns every conference, newest first.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ConferencesSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [get]
func (c *ConferenceController) List(w http.ResponseWriter, r *http.Request) {
	list, err := c.Conferences.List(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, list)
}

// Upcoming godoc
// @Summary Upcoming conferences
// @Description Returns the six soonest approved or active conferences that have not started yet.
// @Tags conferences
// @Produce json
// @Success 200 {object} controllers.ConferencesSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/upcoming [get]
func (c *ConferenceController) Upcoming(w http.ResponseWriter, r *http.Request) {
	list, err := c.Conferences.Upcoming(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, list)
}

// Get godoc
// @Summary Get a conference
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id} [get]
func (c *ConferenceController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	conf, err := c.Conferences.GetByID(r.Context(), id)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, conf)
}

// Create godoc
// @Summary Propose a conference
// @Description Organizers and admins propose a conference. It starts pending with an approval request filed in the same transaction.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateConferenceRequest true "Conference data"
// @Success 201 {object} controllers.ConferenceSuccessResponse "data contains the pending conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden or profile_required"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateConferenceRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	conf, err := c.Conferences.Create(r.Context(), middleware.ProfileFromContext(r.Context()), domain.CreateConferenceInput{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		CityID:       req.CityID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Location:     req.Location,
		MaxAttendees: req.MaxAttendees,
	})
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, conf)
}

// SubmitRequest godoc
// @Summary File a conference request
// @Description The conference organizer files an approval, modification, or cancellation request for admin review.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Param body body SubmitRequestRequest true "Request type and details"
// @Success 201 {object} controllers.ConferenceRequestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/requests [post]
func (c *ConferenceController) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	var req SubmitRequestRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	created, err := c.Requests.Submit(r.Context(), middleware.ProfileFromContext(r.Context()), id, req.RequestType, req.Details)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, created)
}
