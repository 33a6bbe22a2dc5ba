package controllers

import (
	"log/slog"
	"net/http"

	h "conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"
)

// CategoryRequest is the request body for creating or updating a category.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// DashboardSuccessResponse is the success response envelope for GET /admin/dashboard (200).
type DashboardSuccessResponse struct {
	Data  *domain.DashboardStats `json:"data"`
	Error *h.APIError            `json:"error"`
}

// StatisticsSuccessResponse is the success response envelope for GET /admin/statistics (200).
type StatisticsSuccessResponse struct {
	Data  *domain.PlatformStats `json:"data"`
	Error *h.APIError           `json:"error"`
}

// UsersSuccessResponse is the success response envelope for GET /admin/users (200).
type UsersSuccessResponse struct {
	Data  []*domain.ProfileWithUser `json:"data"`
	Error *h.APIError               `json:"error"`
}

// CategorySuccessResponse is the success response envelope carrying one category.
type CategorySuccessResponse struct {
	Data  *domain.Category `json:"data"`
	Error *h.APIError      `json:"error"`
}

// CategoriesSuccessResponse is the success response envelope carrying a category list.
type CategoriesSuccessResponse struct {
	Data  []*domain.Category `json:"data"`
	Error *h.APIError        `json:"error"`
}

// PendingRequestsSuccessResponse is the success response envelope for GET /admin/requests (200).
type PendingRequestsSuccessResponse struct {
	Data  []*domain.PendingRequest `json:"data"`
	Error *h.APIError              `json:"error"`
}

// SettingsSuccessResponse is the success response envelope for the settings endpoints (200).
type SettingsSuccessResponse struct {
	Data  *domain.SettingsView `json:"data"`
	Error *h.APIError          `json:"error"`
}

var userActionOutcome = map[domain.UserAction]string{
	domain.UserActionApprove: "approved",
	domain.UserActionReject:  "rejected",
	domain.UserActionDelete:  "deleted",
}

// AdminController serves the admin console. Every service behind it enforces the admin role.
type AdminController struct {
	Logger     *slog.Logger
	Stats      domain.StatsService
	Users      domain.UserManagementService
	Categories domain.CategoryService
	Requests   domain.RequestService
	Settings   domain.SettingsService
}

func NewAdminController(
	logger *slog.Logger,
	stats domain.StatsService,
	users domain.UserManagementService,
	categories domain.CategoryService,
	requests domain.RequestService,
	settings domain.SettingsService,
) *AdminController {
	return &AdminController{
		Logger:     logger,
		Stats:      stats,
		Users:      users,
		Categories: categories,
		Requests:   requests,
		Settings:   settings,
	}
}

// Dashboard godoc
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.DashboardSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Stats.Dashboard(r.Context(), middleware.ProfileFromContext(r.Context()))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, stats)
}

// Statistics godoc
// @Summary Platform statistics
// @Description Totals, per-role and per-status breakdowns, monthly conference counts for the current year, and the attendance rate.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.StatisticsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/statistics [get]
func (c *AdminController) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Stats.Platform(r.Context(), middleware.ProfileFromContext(r.Context()))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, stats)
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UsersSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.Users.ListUsers(r.Context(), middleware.ProfileFromContext(r.Context()))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, users)
}

// ManageUser godoc
// @Summary Approve, reject, or delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile ID (UUID)"
// @Param action path string true "approve, reject or delete"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users/{id}/{action} [post]
func (c *AdminController) ManageUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	action := domain.UserAction(r.PathValue("action"))
	if err := c.Users.ManageUser(r.Context(), middleware.ProfileFromContext(r.Context()), id, action); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: userActionOutcome[action]})
}

// ListCategories godoc
// @Summary List categories
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.CategoriesSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/categories [get]
func (c *AdminController) ListCategories(w http.ResponseWriter, r *http.Request) {
	list, err := c.Categories.List(r.Context(), middleware.ProfileFromContext(r.Context()))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, list)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CategoryRequest true "Category"
// @Success 201 {object} controllers.CategorySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/categories [post]
func (c *AdminController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	cat, err := c.Categories.Create(r.Context(), middleware.ProfileFromContext(r.Context()), req.Name, req.Description)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, cat)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID (UUID)"
// @Param body body CategoryRequest true "Category"
// @Success 200 {object} controllers.CategorySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/categories/{id} [put]
func (c *AdminController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	cat, err := c.Categories.Update(r.Context(), middleware.ProfileFromContext(r.Context()), id, req.Name, req.Description)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, cat)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Conferences in the category keep existing with no category.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID (UUID)"
// @Success 200 {object} controllers.StatusSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/categories/{id} [delete]
func (c *AdminController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Categories.Delete(r.Context(), middleware.ProfileFromContext(r.Context()), id); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// ListRequests godoc
// @Summary List pending conference requests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.PendingRequestsSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/requests [get]
func (c *AdminController) ListRequests(w http.ResponseWriter, r *http.Request) {
	list, err := c.Requests.ListPending(r.Context(), middleware.ProfileFromContext(r.Context()))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, list)
}

// ResolveRequest godoc
// @Summary Approve or reject a conference request
// @Description Moves the request and its conference together and notifies the requester by email.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID (UUID)"
// @Param action path string true "approve or reject"
// @Success 200 {object} controllers.ConferenceRequestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already resolved)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/requests/{id}/{action} [post]
func (c *AdminController) ResolveRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathUUID(w, r, "id")
	if !ok {
		return
	}
	action := domain.ReviewAction(r.PathValue("action"))
	resolved, err := c.Requests.Resolve(r.Context(), middleware.ProfileFromContext(r.Context()), id, action)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, resolved)
}

// GetSettings godoc
// @Summary Get system settings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SettingsSuccessResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/settings [get]
func (c *AdminController) GetSettings(w http.ResponseWriter, r *http.Request) {
	view, err := c.Settings.Get(r.Context(), middleware.ProfileFromContext(r.Context()))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, view)
}

// SaveSettings godoc
// @Summary Save system settings
// @Description Upserts the recognized keys (site_name, site_description, contact_email, contact_phone). Other keys are ignored.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body object true "Map of setting key to value"
// @Success 200 {object} controllers.SettingsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/settings [put]
func (c *AdminController) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	if !h.DecodeAndValidate(w, r, &body) {
		return
	}
	values := make(map[domain.SettingKey]string, len(body))
	for k, v := range body {
		values[domain.SettingKey(k)] = v
	}
	view, err := c.Settings.Save(r.Context(), middleware.ProfileFromContext(r.Context()), values)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, view)
}
