package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestRoleLabels(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid(), r)
		assert.NotEqual(t, string(r), r.Label(), "role %s has no label", r)
	}
	assert.Equal(t, "مدير النظام", RoleAdmin.Label())
	assert.False(t, Role("superuser").Valid())
	assert.Equal(t, "superuser", Role("superuser").Label())
}

func TestConferenceStatusLabels(t *testing.T) {
	require.Len(t, ConferenceStatuses, 6)
	for _, s := range ConferenceStatuses {
		assert.True(t, s.Valid(), s)
		assert.NotEqual(t, string(s), s.Label())
	}
	assert.Equal(t, "ملغي", ConferenceCancelled.Label())
	assert.False(t, ConferenceStatus("archived").Valid())
}

func TestRequestStatusLabels(t *testing.T) {
	assert.True(t, RequestPending.Valid())
	assert.Equal(t, "مرفوض", RequestRejected.Label())
	assert.False(t, RequestStatus("active").Valid())
}

func TestResolutionFor(t *testing.T) {
	res, ok := ResolutionFor(ReviewApprove)
	require.True(t, ok)
	assert.Equal(t, Resolution{Request: RequestApproved, Conference: ConferenceApproved}, res)

	res, ok = ResolutionFor(ReviewReject)
	require.True(t, ok)
	assert.Equal(t, Resolution{Request: RequestRejected, Conference: ConferenceRejected}, res)

	_, ok = ResolutionFor("postpone")
	assert.False(t, ok)
}

func TestParseReportKindAndFormat(t *testing.T) {
	k, err := ParseReportKind("ratings")
	require.NoError(t, err)
	assert.Equal(t, ReportRatings, k)
	assert.Equal(t, "تقرير_التقييمات", k.Title())

	_, err = ParseReportKind("payments")
	assert.ErrorIs(t, err, ErrInvalidReportType)

	f, err := ParseExportFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseExportFormat("pdf")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSettingLabels(t *testing.T) {
	require.Len(t, SettingKeys, 4)
	for _, k := range SettingKeys {
		assert.NotEmpty(t, k.Label(), k)
	}
}

func TestProfileDefaults(t *testing.T) {
	p := NewProfile("u1", fixedTime)
	assert.Equal(t, RoleAttendee, p.Role)
	assert.False(t, p.IsApproved)
	assert.False(t, p.IsAdmin())

	var nilProfile *Profile
	assert.False(t, nilProfile.IsAdmin())
	assert.True(t, (&Profile{Role: RoleAdmin}).IsAdmin())
}

func TestNewConferenceDefaults(t *testing.T) {
	c := NewConference("p1", "Go Summit", "", "Damascus", fixedTime, fixedTime, 0, fixedTime)
	assert.Equal(t, ConferencePending, c.Status)
	assert.Equal(t, DefaultMaxAttendees, c.MaxAttendees)
	assert.Equal(t, 0, c.CurrentAttendees)
}

func TestJoinName(t *testing.T) {
	assert.Equal(t, "Sara Haddad", JoinName("Sara", "Haddad"))
	assert.Equal(t, "Sara", JoinName("Sara", ""))
	assert.Equal(t, "", JoinName("", ""))
	assert.Equal(t, "Haddad", (&User{LastName: "Haddad"}).FullName())
}
