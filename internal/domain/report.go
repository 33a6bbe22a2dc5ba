package domain

import (
	"context"
	"time"
)

// ReportKind selects which export projection to build.
type ReportKind string

const (
	ReportUsers       ReportKind = "users"
	ReportConferences ReportKind = "conferences"
	ReportRatings     ReportKind = "ratings"
)

var reportTitles = map[ReportKind]string{
	ReportUsers:       "تقرير_المستخدمين",
	ReportConferences: "تقرير_المؤتمرات",
	ReportRatings:     "تقرير_التقييمات",
}

// ParseReportKind validates a report kind query value.
func ParseReportKind(s string) (ReportKind, error) {
	k := ReportKind(s)
	if _, ok := reportTitles[k]; !ok {
		return "", ErrInvalidReportType
	}
	return k, nil
}

// Title is the localized report name used in the download file name.
func (k ReportKind) Title() string {
	return reportTitles[k]
}

// ExportFormat selects the serializer.
type ExportFormat string

const (
	FormatExcel ExportFormat = "excel"
	FormatCSV   ExportFormat = "csv"
)

// ParseExportFormat validates a format query value.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(s); f {
	case FormatExcel, FormatCSV:
		return f, nil
	}
	return "", ErrInvalidFormat
}

// Report is a tabular projection: ordered rows whose cells line up with Columns.
type Report struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// ExportFile is a fully serialized download.
type ExportFile struct {
	FileName    string
	ContentType string
	Body        []byte
}

// ExportSummary is shown on the export page when no report is requested.
type ExportSummary struct {
	TotalUsers       int `json:"total_users"`
	TotalConferences int `json:"total_conferences"`
	TotalRatings     int `json:"total_ratings"`
}

// UserReportRow is one profile flattened with its account and city.
type UserReportRow struct {
	Username    string
	FirstName   string
	LastName    string
	Email       string
	Role        Role
	Phone       string
	CityName    string
	Governorate string
	IsApproved  bool
	CreatedAt   time.Time
}

// ConferenceReportRow is one conference flattened with organizer, category and city.
type ConferenceReportRow struct {
	Title              string
	Description        string
	OrganizerUsername  string
	OrganizerFirstName string
	OrganizerLastName  string
	CategoryName       string
	StartDate          time.Time
	EndDate            time.Time
	Location           string
	CityName           string
	Status             ConferenceStatus
	MaxAttendees       int
	CurrentAttendees   int
	IsFeatured         bool
	CreatedAt          time.Time
}

// RatingReportRow is one rating flattened with conference and rater.
type RatingReportRow struct {
	ConferenceTitle string
	Username        string
	FirstName       string
	LastName        string
	Rating          int
	Comment         string
	CreatedAt       time.Time
}

// ReportRepository reads full-table snapshots for export.
type ReportRepository interface {
	UserRows(ctx context.Context) ([]UserReportRow, error)
	ConferenceRows(ctx context.Context) ([]ConferenceReportRow, error)
	RatingRows(ctx context.Context) ([]RatingReportRow, error)
}

// ReportService builds and serializes exports.
type ReportService interface {
	Summary(ctx context.Context, actor *Profile) (*ExportSummary, error)
	Build(ctx context.Context, actor *Profile, kind string) (*Report, error)
	Export(ctx context.Context, actor *Profile, kind, format string) (*ExportFile, error)
}
