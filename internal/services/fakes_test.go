package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"conferencehub/internal/domain"
)

var fixedNow = time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func adminActor() *domain.Profile {
	return &domain.Profile{ID: "prof-admin", UserID: "user-admin", Role: domain.RoleAdmin, IsApproved: true}
}

func organizerActor() *domain.Profile {
	return &domain.Profile{ID: "prof-org", UserID: "user-org", Role: domain.RoleOrganizer, IsApproved: true}
}

func attendeeActor() *domain.Profile {
	return &domain.Profile{ID: "prof-att", UserID: "user-att", Role: domain.RoleAttendee}
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID    map[string]*domain.User
	nextID  int
	calls   int
	deleted []string
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[string]*domain.User), nextID: 1}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.calls++
	for _, existing := range f.byID {
		if existing.Username == u.Username {
			return domain.ErrDuplicateUsername
		}
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.calls++
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.calls++
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID, hash, salt string) error {
	f.calls++
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash, u.Salt = hash, salt
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.calls++
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeProfileRepo is an in-memory ProfileRepository for tests.
type fakeProfileRepo struct {
	byID      map[string]*domain.Profile
	nextID    int
	calls     int
	list      []*domain.ProfileWithUser
	savedUser *domain.User
	updateErr error
}

func newFakeProfileRepo(profiles ...*domain.Profile) *fakeProfileRepo {
	f := &fakeProfileRepo{byID: make(map[string]*domain.Profile), nextID: 1}
	for _, p := range profiles {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	f.calls++
	p.ID = fmt.Sprintf("prof-%d", f.nextID)
	f.nextID++
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	f.calls++
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	f.calls++
	for _, p := range f.byID {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) UpdateWithUser(_ context.Context, u *domain.User, p *domain.Profile) error {
	f.calls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.byID[p.ID] = p
	f.savedUser = u
	return nil
}

func (f *fakeProfileRepo) SetApproved(_ context.Context, id string, approved bool) error {
	f.calls++
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsApproved = approved
	return nil
}

func (f *fakeProfileRepo) ListWithUsers(context.Context) ([]*domain.ProfileWithUser, error) {
	f.calls++
	return f.list, nil
}

// fakeCityRepo is a fixed CityRepository for tests.
type fakeCityRepo struct {
	cities []*domain.City
	calls  int
}

func (f *fakeCityRepo) List(context.Context) ([]*domain.City, error) {
	f.calls++
	return f.cities, nil
}

func (f *fakeCityRepo) GetByID(_ context.Context, id string) (*domain.City, error) {
	f.calls++
	for _, c := range f.cities {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeCategoryRepo is an in-memory CategoryRepository for tests.
type fakeCategoryRepo struct {
	byID   map[string]*domain.Category
	nextID int
	calls  int
}

func newFakeCategoryRepo(categories ...*domain.Category) *fakeCategoryRepo {
	f := &fakeCategoryRepo{byID: make(map[string]*domain.Category), nextID: 1}
	for _, c := range categories {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	f.calls++
	c.ID = fmt.Sprintf("cat-%d", f.nextID)
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	f.calls++
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCategoryRepo) List(context.Context) ([]*domain.Category, error) {
	f.calls++
	out := make([]*domain.Category, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	f.calls++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	f.calls++
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeConferenceRepo is an in-memory ConferenceRepository for tests.
type fakeConferenceRepo struct {
	byID     map[string]*domain.Conference
	requests []*domain.ConferenceRequest
	nextID   int
	calls    int
	from     time.Time
	limit    int
}

func newFakeConferenceRepo(conferences ...*domain.Conference) *fakeConferenceRepo {
	f := &fakeConferenceRepo{byID: make(map[string]*domain.Conference), nextID: 1}
	for _, c := range conferences {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeConferenceRepo) CreateWithRequest(_ context.Context, c *domain.Conference, req *domain.ConferenceRequest) error {
	f.calls++
	c.ID = fmt.Sprintf("conf-%d", f.nextID)
	f.nextID++
	f.byID[c.ID] = c
	req.ConferenceID = c.ID
	req.ID = "req-" + c.ID
	f.requests = append(f.requests, req)
	return nil
}

func (f *fakeConferenceRepo) GetByID(_ context.Context, id string) (*domain.Conference, error) {
	f.calls++
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeConferenceRepo) List(context.Context) ([]*domain.Conference, error) {
	f.calls++
	out := make([]*domain.Conference, 0, len(f.byID))
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeConferenceRepo) ListUpcoming(_ context.Context, from time.Time, limit int) ([]*domain.Conference, error) {
	f.calls++
	f.from, f.limit = from, limit
	return nil, nil
}

// fakeRequestRepo records workflow calls for tests.
type fakeRequestRepo struct {
	pending    map[string]*domain.PendingRequest
	created    []*domain.ConferenceRequest
	calls      int
	resolveErr error

	resolvedWith domain.Resolution
	reviewer     string
	reviewedAt   time.Time
}

func newFakeRequestRepo(pending ...*domain.PendingRequest) *fakeRequestRepo {
	f := &fakeRequestRepo{pending: make(map[string]*domain.PendingRequest)}
	for _, p := range pending {
		f.pending[p.Request.ID] = p
	}
	return f
}

func (f *fakeRequestRepo) Create(_ context.Context, req *domain.ConferenceRequest) error {
	f.calls++
	req.ID = fmt.Sprintf("req-%d", len(f.created)+1)
	f.created = append(f.created, req)
	return nil
}

func (f *fakeRequestRepo) ListPending(context.Context) ([]*domain.PendingRequest, error) {
	f.calls++
	out := make([]*domain.PendingRequest, 0, len(f.pending))
	for _, p := range f.pending {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRequestRepo) Resolve(_ context.Context, requestID string, res domain.Resolution, reviewerID string, reviewedAt time.Time) (*domain.PendingRequest, error) {
	f.calls++
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	pr, ok := f.pending[requestID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if pr.Request.Status != domain.RequestPending {
		return nil, domain.ErrRequestNotPending
	}
	f.resolvedWith, f.reviewer, f.reviewedAt = res, reviewerID, reviewedAt
	pr.Request.Status = res.Request
	pr.Request.ReviewedBy = &reviewerID
	pr.Request.ReviewedAt = &reviewedAt
	return pr, nil
}

// fakeRatingRepo is an in-memory RatingRepository for tests.
type fakeRatingRepo struct {
	ratings []*domain.RatingWithAuthor
	calls   int
}

func (f *fakeRatingRepo) Create(_ context.Context, r *domain.Rating) error {
	f.calls++
	for _, existing := range f.ratings {
		if existing.Rating.ConferenceID == r.ConferenceID && existing.Rating.ProfileID == r.ProfileID {
			return domain.ErrAlreadyRated
		}
	}
	r.ID = fmt.Sprintf("rating-%d", len(f.ratings)+1)
	f.ratings = append(f.ratings, &domain.RatingWithAuthor{Rating: r})
	return nil
}

func (f *fakeRatingRepo) ListByConference(_ context.Context, conferenceID string) ([]*domain.RatingWithAuthor, error) {
	f.calls++
	var out []*domain.RatingWithAuthor
	for _, r := range f.ratings {
		if r.Rating.ConferenceID == conferenceID {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeAttendanceRepo records registrations for tests.
type fakeAttendanceRepo struct {
	registered  []*domain.Attendance
	registerErr error
	calls       int
}

func (f *fakeAttendanceRepo) Register(_ context.Context, a *domain.Attendance) error {
	f.calls++
	if f.registerErr != nil {
		return f.registerErr
	}
	a.ID = fmt.Sprintf("att-%d", len(f.registered)+1)
	f.registered = append(f.registered, a)
	return nil
}

func (f *fakeAttendanceRepo) MarkAttended(_ context.Context, conferenceID, profileID string, at time.Time) (*domain.Attendance, error) {
	f.calls++
	for _, a := range f.registered {
		if a.ConferenceID == conferenceID && a.ProfileID == profileID {
			a.Attended = true
			a.AttendedAt = &at
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeSettingRepo is an in-memory SettingRepository for tests.
type fakeSettingRepo struct {
	stored    map[domain.SettingKey]*domain.SystemSetting
	upsertErr error
	calls     int
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{stored: make(map[domain.SettingKey]*domain.SystemSetting)}
}

func (f *fakeSettingRepo) ListByKeys(_ context.Context, keys []domain.SettingKey) ([]*domain.SystemSetting, error) {
	f.calls++
	var out []*domain.SystemSetting
	for _, k := range keys {
		if s, ok := f.stored[k]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSettingRepo) UpsertAll(_ context.Context, settings []*domain.SystemSetting) error {
	f.calls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, s := range settings {
		f.stored[s.Key] = s
	}
	return nil
}

// fakeStatsRepo returns canned aggregates for tests.
type fakeStatsRepo struct {
	profiles, newProfiles, conferences, ratings, pendingRequests int
	registered, attended                                         int
	byStatus                                                     []domain.StatusCount
	byRole                                                       []domain.RoleCount
	byMonth                                                      []domain.MonthlyCount
	err                                                          error

	calls int
	since time.Time
	year  int
}

func (f *fakeStatsRepo) CountProfiles(context.Context) (int, error) {
	f.calls++
	return f.profiles, f.err
}

func (f *fakeStatsRepo) CountProfilesSince(_ context.Context, since time.Time) (int, error) {
	f.calls++
	f.since = since
	return f.newProfiles, f.err
}

func (f *fakeStatsRepo) CountConferences(context.Context) (int, error) {
	f.calls++
	return f.conferences, f.err
}

func (f *fakeStatsRepo) CountRatings(context.Context) (int, error) {
	f.calls++
	return f.ratings, f.err
}

func (f *fakeStatsRepo) CountPendingRequests(context.Context) (int, error) {
	f.calls++
	return f.pendingRequests, f.err
}

func (f *fakeStatsRepo) CountAttendance(context.Context) (int, int, error) {
	f.calls++
	return f.registered, f.attended, f.err
}

func (f *fakeStatsRepo) ConferencesByStatus(context.Context) ([]domain.StatusCount, error) {
	f.calls++
	return f.byStatus, f.err
}

func (f *fakeStatsRepo) ProfilesByRole(context.Context) ([]domain.RoleCount, error) {
	f.calls++
	return f.byRole, f.err
}

func (f *fakeStatsRepo) ConferencesByMonth(_ context.Context, year int) ([]domain.MonthlyCount, error) {
	f.calls++
	f.year = year
	return f.byMonth, f.err
}

func (f *fakeStatsRepo) RecentConferences(context.Context, int) ([]*domain.Conference, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeStatsRepo) RecentProfiles(context.Context, int) ([]*domain.ProfileWithUser, error) {
	f.calls++
	return nil, f.err
}

// fakeReportRepo returns canned export rows for tests.
type fakeReportRepo struct {
	users       []domain.UserReportRow
	conferences []domain.ConferenceReportRow
	ratings     []domain.RatingReportRow
	err         error
	calls       int
}

func (f *fakeReportRepo) UserRows(context.Context) ([]domain.UserReportRow, error) {
	f.calls++
	return f.users, f.err
}

func (f *fakeReportRepo) ConferenceRows(context.Context) ([]domain.ConferenceReportRow, error) {
	f.calls++
	return f.conferences, f.err
}

func (f *fakeReportRepo) RatingRows(context.Context) ([]domain.RatingReportRow, error) {
	f.calls++
	return f.ratings, f.err
}

// fakeHasher stores passwords in a reversible form so tests can assert on them.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) { return salt + ":" + password, nil }

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeIssuer struct {
	role domain.Role
}

func (f *fakeIssuer) Issue(userID, _ string, role domain.Role, _ time.Duration) (string, error) {
	f.role = role
	return "token-" + userID, nil
}

// fakeEmailService records outgoing emails for tests.
type fakeEmailService struct {
	welcome  []*domain.WelcomeMessageEmailData
	resolved []*domain.RequestResolvedEmailData
	err      error
}

func (f *fakeEmailService) SendWelcomeMessage(_ context.Context, data *domain.WelcomeMessageEmailData) error {
	f.welcome = append(f.welcome, data)
	return f.err
}

func (f *fakeEmailService) SendRequestResolved(_ context.Context, data *domain.RequestResolvedEmailData) error {
	f.resolved = append(f.resolved, data)
	return f.err
}

var errBoom = errors.New("boom")
