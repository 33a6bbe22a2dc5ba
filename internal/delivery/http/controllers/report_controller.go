package controllers

import (
	"log/slog"
	"net/http"

	h "conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"

	"github.com/getsentry/sentry-go"
)

// ExportSummarySuccessResponse is the success response envelope for GET /admin/reports without a type (200).
type ExportSummarySuccessResponse struct {
	Data  *domain.ExportSummary `json:"data"`
	Error *h.APIError           `json:"error"`
}

type ReportController struct {
	Logger  *slog.Logger
	Reports domain.ReportService
}

func NewReportController(logger *slog.Logger, reports domain.ReportService) *ReportController {
	return &ReportController{Logger: logger, Reports: reports}
}

// Export godoc
// @Summary Export a report
// @Description Without a type, returns the record counts shown on the export page.
// @Description With a type, downloads the users, conferences, or ratings report as an Excel workbook (default) or a UTF-8 CSV with BOM.
// @Tags reports
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Security BearerAuth
// @Param type query string false "users, conferences or ratings"
// @Param format query string false "excel (default) or csv"
// @Success 200 {object} controllers.ExportSummarySuccessResponse "when type is absent"
// @Success 200 {file} file "attachment when type is given"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid type or format)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/reports [get]
func (c *ReportController) Export(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ProfileFromContext(r.Context())
	q := r.URL.Query()
	if !q.Has("type") {
		summary, err := c.Reports.Summary(r.Context(), actor)
		if err != nil {
			h.WriteServiceError(w, r, c.Logger, err)
			return
		}
		h.WriteJSONSuccess(w, http.StatusOK, summary)
		return
	}

	format := q.Get("format")
	if format == "" {
		format = string(domain.FormatExcel)
	}
	file, err := c.Reports.Export(r.Context(), actor, q.Get("type"), format)
	if err != nil {
		if h.IsMapped(err) {
			h.WriteServiceError(w, r, c.Logger, err)
			return
		}
		c.Logger.ErrorContext(r.Context(), "report export failed", "type", q.Get("type"), "format", format, "err", err)
		captureException(r, err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, h.MsgExportFailed)
		return
	}
	h.WriteFile(w, file)
}

// captureException reports err to the request's Sentry hub when one is attached.
func captureException(r *http.Request, err error) {
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
