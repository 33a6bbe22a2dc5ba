package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"conferencehub/internal/domain"
)

// User-facing messages.
const (
	MsgForbidden          = "ليس لديك صلاحية للوصول إلى هذه الصفحة"
	MsgProfileRequired    = "يرجى تحديث الملف الشخصي"
	MsgInvalidCredentials = "اسم المستخدم أو كلمة المرور غير صحيحة"
	MsgInvalidReportType  = "نوع التقرير غير صالح"
	MsgInvalidFormat      = "تنسيق التصدير غير صالح"
	MsgExportFailed       = "خطأ في تصدير التقرير"
	MsgNotFound           = "العنصر المطلوب غير موجود"
	MsgInternal           = "حدث خطأ غير متوقع"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorMappings is checked in order; the first sentinel matched by errors.Is wins.
// An empty message means the error text itself is shown.
var errorMappings = []errorMapping{
	{domain.ErrProfileRequired, http.StatusForbidden, ErrCodeProfileRequired, MsgProfileRequired},
	{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, MsgForbidden},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, ErrCodeUnauthorized, MsgInvalidCredentials},
	{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound, MsgNotFound},
	{domain.ErrInvalidReportType, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidReportType},
	{domain.ErrInvalidFormat, http.StatusBadRequest, ErrCodeBadRequest, MsgInvalidFormat},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrCodeBadRequest, ""},
	{domain.ErrDuplicateUsername, http.StatusConflict, ErrCodeConflict, "اسم المستخدم مستخدم بالفعل"},
	{domain.ErrAlreadyRated, http.StatusConflict, ErrCodeConflict, "لقد قمت بتقييم هذا المؤتمر مسبقاً"},
	{domain.ErrAlreadyRegistered, http.StatusConflict, ErrCodeConflict, "أنت مسجل في هذا المؤتمر مسبقاً"},
	{domain.ErrConferenceFull, http.StatusConflict, ErrCodeConflict, "المؤتمر مكتمل العدد"},
	{domain.ErrRequestNotPending, http.StatusConflict, ErrCodeConflict, "تمت معالجة هذا الطلب مسبقاً"},
}

// WriteServiceError maps a service error to its HTTP response. Errors that match
// no sentinel are logged and answered with 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			WriteJSONError(w, m.status, m.code, msg)
			return
		}
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, MsgInternal)
}

// IsMapped reports whether err matches one of the known service sentinels.
func IsMapped(err error) bool {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return true
		}
	}
	return false
}
