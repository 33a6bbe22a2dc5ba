package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"conferencehub/internal/domain"
	"conferencehub/internal/export"
)

// maxTextLen is the rune length free-text cells are truncated to.
const maxTextLen = 100

var (
	userReportColumns = []string{
		"اسم المستخدم", "الاسم الأول", "الاسم الأخير", "الاسم الكامل", "البريد الإلكتروني",
		"نوع المستخدم", "رقم الهاتف", "المدينة", "المحافظة", "مفعل", "تاريخ التسجيل",
	}
	conferenceReportColumns = []string{
		"عنوان المؤتمر", "وصف المؤتمر", "اسم المنظم", "الاسم الكامل للمنظم", "التصنيف",
		"تاريخ البدء", "تاريخ الانتهاء", "المكان", "المدينة", "الحالة",
		"الحد الأقصى", "عدد المشاركين الحالي", "مميز", "تاريخ الإنشاء",
	}
	ratingReportColumns = []string{
		"عنوان المؤتمر", "اسم المستخدم", "الاسم الكامل", "التقييم", "النجوم", "التعليق", "تاريخ التقييم",
	}
)

type reportService struct {
	reportRepo     domain.ReportRepository
	statsRepo      domain.StatsRepository
	contextTimeout time.Duration
	now            func() time.Time
}

// NewReportService returns the export aggregator. Every operation is admin only.
func NewReportService(reportRepo domain.ReportRepository, statsRepo domain.StatsRepository, timeout time.Duration) domain.ReportService {
	return &reportService{reportRepo: reportRepo, statsRepo: statsRepo, contextTimeout: timeout, now: time.Now}
}

func (s *reportService) Summary(ctx context.Context, actor *domain.Profile) (*domain.ExportSummary, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		out = &domain.ExportSummary{}
		err error
	)
	if out.TotalUsers, err = s.statsRepo.CountProfiles(ctx); err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}
	if out.TotalConferences, err = s.statsRepo.CountConferences(ctx); err != nil {
		return nil, fmt.Errorf("count conferences: %w", err)
	}
	if out.TotalRatings, err = s.statsRepo.CountRatings(ctx); err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}
	return out, nil
}

func (s *reportService) Build(ctx context.Context, actor *domain.Profile, kind string) (*domain.Report, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	k, err := domain.ParseReportKind(kind)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.build(ctx, k)
}

// Export builds the report and serializes it. Both query values are validated
// before any data is read.
func (s *reportService) Export(ctx context.Context, actor *domain.Profile, kind, format string) (*domain.ExportFile, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	k, err := domain.ParseReportKind(kind)
	if err != nil {
		return nil, err
	}
	f, err := domain.ParseExportFormat(format)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	report, err := s.build(ctx, k)
	if err != nil {
		return nil, err
	}
	file, err := export.Render(report, f, s.now())
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", k, err)
	}
	return file, nil
}

func (s *reportService) build(ctx context.Context, kind domain.ReportKind) (*domain.Report, error) {
	switch kind {
	case domain.ReportUsers:
		rows, err := s.reportRepo.UserRows(ctx)
		if err != nil {
			return nil, fmt.Errorf("load users report: %w", err)
		}
		return UsersReport(rows), nil
	case domain.ReportConferences:
		rows, err := s.reportRepo.ConferenceRows(ctx)
		if err != nil {
			return nil, fmt.Errorf("load conferences report: %w", err)
		}
		return ConferencesReport(rows), nil
	case domain.ReportRatings:
		rows, err := s.reportRepo.RatingRows(ctx)
		if err != nil {
			return nil, fmt.Errorf("load ratings report: %w", err)
		}
		return RatingsReport(rows), nil
	}
	return nil, domain.ErrInvalidReportType
}

// UsersReport projects profile rows into the users export.
func UsersReport(rows []domain.UserReportRow) *domain.Report {
	r := &domain.Report{Name: domain.ReportUsers.Title(), Columns: userReportColumns, Rows: make([][]any, 0, len(rows))}
	for _, u := range rows {
		r.Rows = append(r.Rows, []any{
			u.Username,
			u.FirstName,
			u.LastName,
			domain.JoinName(u.FirstName, u.LastName),
			u.Email,
			u.Role.Label(),
			u.Phone,
			u.CityName,
			u.Governorate,
			yesNo(u.IsApproved),
			timestamp(u.CreatedAt),
		})
	}
	return r
}

// ConferencesReport projects conference rows into the conferences export.
func ConferencesReport(rows []domain.ConferenceReportRow) *domain.Report {
	r := &domain.Report{Name: domain.ReportConferences.Title(), Columns: conferenceReportColumns, Rows: make([][]any, 0, len(rows))}
	for _, c := range rows {
		r.Rows = append(r.Rows, []any{
			c.Title,
			truncate(c.Description),
			c.OrganizerUsername,
			domain.JoinName(c.OrganizerFirstName, c.OrganizerLastName),
			c.CategoryName,
			timestamp(c.StartDate),
			timestamp(c.EndDate),
			c.Location,
			c.CityName,
			c.Status.Label(),
			c.MaxAttendees,
			c.CurrentAttendees,
			yesNo(c.IsFeatured),
			timestamp(c.CreatedAt),
		})
	}
	return r
}

// RatingsReport projects rating rows into the ratings export.
func RatingsReport(rows []domain.RatingReportRow) *domain.Report {
	r := &domain.Report{Name: domain.ReportRatings.Title(), Columns: ratingReportColumns, Rows: make([][]any, 0, len(rows))}
	for _, rt := range rows {
		r.Rows = append(r.Rows, []any{
			rt.ConferenceTitle,
			rt.Username,
			domain.JoinName(rt.FirstName, rt.LastName),
			rt.Rating,
			domain.StarString(rt.Rating),
			rt.Comment,
			timestamp(rt.CreatedAt),
		})
	}
	return r
}

func yesNo(b bool) string {
	if b {
		return "نعم"
	}
	return "لا"
}

// timestamp renders t in UTC without a zone suffix; the zero time is empty.
func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(export.TimeLayout)
}

// truncate shortens s to maxTextLen runes followed by "..." when it is longer.
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxTextLen {
		return s
	}
	return string([]rune(s)[:maxTextLen]) + "..."
}
