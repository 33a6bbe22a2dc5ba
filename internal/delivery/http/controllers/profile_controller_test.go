package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"conferencehub/internal/delivery/http/helpers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileController_GetMe(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeProfileService{me: &domain.ProfileWithUser{
			User:    &domain.User{ID: "user-org", Username: "organizer"},
			Profile: organizerProfile,
		}}
		ctrl := NewProfileController(testLogger, fake, &fakeAuthService{})
		req := withProfile(httptest.NewRequest(http.MethodGet, "/users/me", nil), organizerProfile)
		rr := httptest.NewRecorder()

		ctrl.GetMe(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var me domain.ProfileWithUser
		decodeData(t, decodeEnvelope(t, rr), &me)
		assert.Equal(t, "organizer", me.User.Username)
		assert.Equal(t, domain.RoleOrganizer, me.Profile.Role)
		assert.Equal(t, "user-org", fake.lastUserID)
	})

	t.Run("no user in context", func(t *testing.T) {
		ctrl := NewProfileController(testLogger, &fakeProfileService{}, &fakeAuthService{})
		rr := httptest.NewRecorder()

		ctrl.GetMe(rr, httptest.NewRequest(http.MethodGet, "/users/me", nil))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
	})
}

func TestProfileController_UpdateMe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		check      func(t *testing.T, in domain.ProfileUpdate)
	}{
		{
			name:       "partial update",
			body:       `{"first_name":"Omar","city_id":"` + categoryID + `"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, in domain.ProfileUpdate) {
				require.NotNil(t, in.FirstName)
				assert.Equal(t, "Omar", *in.FirstName)
				require.NotNil(t, in.CityID)
				assert.Nil(t, in.LastName)
				assert.Nil(t, in.Email)
			},
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "phone too long",
			body:       `{"phone":"012345678901234567890123"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProfileService{me: &domain.ProfileWithUser{Profile: organizerProfile}}
			ctrl := NewProfileController(testLogger, fake, &fakeAuthService{})
			req := withProfile(httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewBufferString(tt.body)), organizerProfile)
			rr := httptest.NewRecorder()

			ctrl.UpdateMe(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.check != nil {
				assert.Equal(t, "user-org", fake.lastUserID)
				tt.check(t, fake.lastUpdate)
			}
		})
	}
}

func TestProfileController_ChangePassword(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
	}{
		{name: "success", body: `{"old_password":"old-pass","new_password":"new-password"}`, wantStatus: http.StatusOK},
		{name: "new password too short", body: `{"old_password":"old-pass","new_password":"short"}`, wantStatus: http.StatusBadRequest},
		{name: "wrong old password", body: `{"old_password":"bad","new_password":"new-password"}`, fakeErr: domain.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthService{changeErr: tt.fakeErr}
			ctrl := NewProfileController(testLogger, &fakeProfileService{}, auth)
			req := httptest.NewRequest(http.MethodPost, "/users/me/password", bytes.NewBufferString(tt.body))
			req = req.WithContext(middleware.SetUserID(req.Context(), "user-1"))
			rr := httptest.NewRecorder()

			ctrl.ChangePassword(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var status StatusResponse
				decodeData(t, decodeEnvelope(t, rr), &status)
				assert.Equal(t, "password changed", status.Status)
				assert.Equal(t, "user-1", auth.lastChangeID)
				assert.Equal(t, "new-password", auth.lastNew)
			}
		})
	}
}

func TestProfileController_ListCities(t *testing.T) {
	fake := &fakeProfileService{cities: []*domain.City{{ID: "c1", Name: "دمشق", Governorate: "دمشق"}}}
	ctrl := NewProfileController(testLogger, fake, &fakeAuthService{})
	rr := httptest.NewRecorder()

	ctrl.ListCities(rr, httptest.NewRequest(http.MethodGet, "/cities", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var cities []domain.City
	decodeData(t, decodeEnvelope(t, rr), &cities)
	require.Len(t, cities, 1)
	assert.Equal(t, "دمشق", cities[0].Name)
}
