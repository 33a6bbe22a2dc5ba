package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	conferenceID = "6f1d3c2a-8b4e-4f7a-9c1d-2e3f4a5b6c7d"
	profileID    = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	requestID    = "d4c3b2a1-0f9e-4d8c-b7a6-5f4e3d2c1b0a"
	categoryID   = "11111111-2222-4333-8444-555555555555"
)

var (
	adminProfile     = &domain.Profile{ID: "prof-admin", UserID: "user-admin", Role: domain.RoleAdmin, IsApproved: true}
	organizerProfile = &domain.Profile{ID: "prof-org", UserID: "user-org", Role: domain.RoleOrganizer, IsApproved: true}
)

// withProfile attaches the authenticated user and profile the way RequireAuth does.
func withProfile(r *http.Request, p *domain.Profile) *http.Request {
	ctx := middleware.SetUserID(r.Context(), p.UserID)
	return r.WithContext(middleware.SetProfile(ctx, p))
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	return envelope
}

// decodeData re-decodes the envelope's data into dest.
func decodeData(t *testing.T, envelope helpers.APIResponse, dest any) {
	t.Helper()
	require.Nil(t, envelope.Error, "success response must have error nil")
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}

type fakeAuthService struct {
	signUpUser   *domain.User
	signUpErr    error
	lastSignUp   domain.SignUpInput
	loginResult  *domain.LoginResult
	loginErr     error
	lastUsername string
	lastPassword string
	changeErr    error
	lastChangeID string
	lastOld      string
	lastNew      string
}

func (f *fakeAuthService) SignUp(_ context.Context, in domain.SignUpInput) (*domain.User, error) {
	f.lastSignUp = in
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpUser, nil
}

func (f *fakeAuthService) Login(_ context.Context, username, password string) (*domain.LoginResult, error) {
	f.lastUsername, f.lastPassword = username, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAuthService) ChangePassword(_ context.Context, userID, oldPassword, newPassword string) error {
	f.lastChangeID, f.lastOld, f.lastNew = userID, oldPassword, newPassword
	return f.changeErr
}

type fakeProfileService struct {
	me         *domain.ProfileWithUser
	cities     []*domain.City
	err        error
	lastUserID string
	lastUpdate domain.ProfileUpdate
}

func (f *fakeProfileService) CurrentProfile(_ context.Context, userID string) (*domain.Profile, error) {
	f.lastUserID = userID
	if f.me == nil {
		return nil, f.err
	}
	return f.me.Profile, f.err
}

func (f *fakeProfileService) GetMe(_ context.Context, userID string) (*domain.ProfileWithUser, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.me, nil
}

func (f *fakeProfileService) UpdateMe(_ context.Context, userID string, in domain.ProfileUpdate) (*domain.ProfileWithUser, error) {
	f.lastUserID, f.lastUpdate = userID, in
	if f.err != nil {
		return nil, f.err
	}
	return f.me, nil
}

func (f *fakeProfileService) ListCities(context.Context) ([]*domain.City, error) {
	return f.cities, f.err
}

type fakeConferenceService struct {
	conference *domain.Conference
	list       []*domain.Conference
	err        error
	lastActor  *domain.Profile
	lastInput  domain.CreateConferenceInput
	lastID     string
	created    bool
}

func (f *fakeConferenceService) Create(_ context.Context, actor *domain.Profile, in domain.CreateConferenceInput) (*domain.Conference, error) {
	f.created = true
	f.lastActor, f.lastInput = actor, in
	if f.err != nil {
		return nil, f.err
	}
	return f.conference, nil
}

func (f *fakeConferenceService) GetByID(_ context.Context, id string) (*domain.Conference, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.conference, nil
}

func (f *fakeConferenceService) List(context.Context) ([]*domain.Conference, error) {
	return f.list, f.err
}

func (f *fakeConferenceService) Upcoming(context.Context) ([]*domain.Conference, error) {
	return f.list, f.err
}

type fakeRequestService struct {
	submitted        *domain.ConferenceRequest
	pending          []*domain.PendingRequest
	resolved         *domain.ConferenceRequest
	err              error
	lastActor        *domain.Profile
	lastConferenceID string
	lastType         string
	lastDetails      string
	lastRequestID    string
	lastAction       domain.ReviewAction
}

func (f *fakeRequestService) Submit(_ context.Context, actor *domain.Profile, conferenceID, requestType, details string) (*domain.ConferenceRequest, error) {
	f.lastActor, f.lastConferenceID, f.lastType, f.lastDetails = actor, conferenceID, requestType, details
	if f.err != nil {
		return nil, f.err
	}
	return f.submitted, nil
}

func (f *fakeRequestService) ListPending(_ context.Context, actor *domain.Profile) ([]*domain.PendingRequest, error) {
	f.lastActor = actor
	return f.pending, f.err
}

func (f *fakeRequestService) Resolve(_ context.Context, actor *domain.Profile, id string, action domain.ReviewAction) (*domain.ConferenceRequest, error) {
	f.lastActor, f.lastRequestID, f.lastAction = actor, id, action
	if f.err != nil {
		return nil, f.err
	}
	return f.resolved, nil
}

type fakeRatingService struct {
	rating           *domain.Rating
	ratings          *domain.ConferenceRatings
	err              error
	lastConferenceID string
	lastValue        int
	lastComment      string
}

func (f *fakeRatingService) Rate(_ context.Context, _ *domain.Profile, conferenceID string, value int, comment string) (*domain.Rating, error) {
	f.lastConferenceID, f.lastValue, f.lastComment = conferenceID, value, comment
	if f.err != nil {
		return nil, f.err
	}
	return f.rating, nil
}

func (f *fakeRatingService) ListForConference(_ context.Context, conferenceID string) (*domain.ConferenceRatings, error) {
	f.lastConferenceID = conferenceID
	if f.err != nil {
		return nil, f.err
	}
	return f.ratings, nil
}

type fakeAttendanceService struct {
	attendance       *domain.Attendance
	err              error
	lastActor        *domain.Profile
	lastConferenceID string
	lastProfileID    string
}

func (f *fakeAttendanceService) Register(_ context.Context, actor *domain.Profile, conferenceID string) (*domain.Attendance, error) {
	f.lastActor, f.lastConferenceID = actor, conferenceID
	if f.err != nil {
		return nil, f.err
	}
	return f.attendance, nil
}

func (f *fakeAttendanceService) MarkAttended(_ context.Context, actor *domain.Profile, conferenceID, profileID string) (*domain.Attendance, error) {
	f.lastActor, f.lastConferenceID, f.lastProfileID = actor, conferenceID, profileID
	if f.err != nil {
		return nil, f.err
	}
	return f.attendance, nil
}

type fakeStatsService struct {
	dashboard *domain.DashboardStats
	platform  *domain.PlatformStats
	err       error
}

func (f *fakeStatsService) Dashboard(_ context.Context, actor *domain.Profile) (*domain.DashboardStats, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return f.dashboard, f.err
}

func (f *fakeStatsService) Platform(_ context.Context, actor *domain.Profile) (*domain.PlatformStats, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return f.platform, f.err
}

type fakeUserManagementService struct {
	users         []*domain.ProfileWithUser
	err           error
	lastProfileID string
	lastAction    domain.UserAction
}

func (f *fakeUserManagementService) ListUsers(context.Context, *domain.Profile) ([]*domain.ProfileWithUser, error) {
	return f.users, f.err
}

func (f *fakeUserManagementService) ManageUser(_ context.Context, _ *domain.Profile, profileID string, action domain.UserAction) error {
	f.lastProfileID, f.lastAction = profileID, action
	return f.err
}

type fakeCategoryService struct {
	category    *domain.Category
	list        []*domain.Category
	err         error
	lastID      string
	lastName    string
	lastDesc    string
	deletedID   string
	createCalls int
}

func (f *fakeCategoryService) List(context.Context, *domain.Profile) ([]*domain.Category, error) {
	return f.list, f.err
}

func (f *fakeCategoryService) Create(_ context.Context, _ *domain.Profile, name, description string) (*domain.Category, error) {
	f.createCalls++
	f.lastName, f.lastDesc = name, description
	if f.err != nil {
		return nil, f.err
	}
	return f.category, nil
}

func (f *fakeCategoryService) Update(_ context.Context, _ *domain.Profile, id, name, description string) (*domain.Category, error) {
	f.lastID, f.lastName, f.lastDesc = id, name, description
	if f.err != nil {
		return nil, f.err
	}
	return f.category, nil
}

func (f *fakeCategoryService) Delete(_ context.Context, _ *domain.Profile, id string) error {
	f.deletedID = id
	return f.err
}

type fakeSettingsService struct {
	view       *domain.SettingsView
	err        error
	lastValues map[domain.SettingKey]string
}

func (f *fakeSettingsService) Get(context.Context, *domain.Profile) (*domain.SettingsView, error) {
	return f.view, f.err
}

func (f *fakeSettingsService) Save(_ context.Context, _ *domain.Profile, values map[domain.SettingKey]string) (*domain.SettingsView, error) {
	f.lastValues = values
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

type fakeReportService struct {
	summary       *domain.ExportSummary
	file          *domain.ExportFile
	err           error
	summaryCalled bool
	exportCalled  bool
	lastKind      string
	lastFormat    string
}

func (f *fakeReportService) Summary(context.Context, *domain.Profile) (*domain.ExportSummary, error) {
	f.summaryCalled = true
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func (f *fakeReportService) Build(_ context.Context, _ *domain.Profile, kind string) (*domain.Report, error) {
	f.lastKind = kind
	return nil, f.err
}

func (f *fakeReportService) Export(_ context.Context, _ *domain.Profile, kind, format string) (*domain.ExportFile, error) {
	f.exportCalled = true
	f.lastKind, f.lastFormat = kind, format
	if f.err != nil {
		return nil, f.err
	}
	return f.file, nil
}
