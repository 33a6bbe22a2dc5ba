package services

import (
	"context"
	"testing"
	"time"

	"conferencehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSettingsService(repo *fakeSettingRepo) *settingsService {
	svc := NewSettingsService(repo, time.Second).(*settingsService)
	svc.now = clock
	return svc
}

func TestSettingsService_Save(t *testing.T) {
	repo := newFakeSettingRepo()
	svc := newTestSettingsService(repo)

	view, err := svc.Save(context.Background(), adminActor(), map[domain.SettingKey]string{
		domain.SettingSiteName:     "  منصة المؤتمرات ",
		domain.SettingContactEmail: "info@example.com",
		"theme":                    "dark",
	})
	require.NoError(t, err)

	require.Len(t, repo.stored, len(domain.SettingKeys))
	assert.NotContains(t, repo.stored, domain.SettingKey("theme"))

	site := repo.stored[domain.SettingSiteName]
	assert.Equal(t, "منصة المؤتمرات", site.Value)
	assert.Equal(t, "اسم المنصة", site.Description)
	assert.Equal(t, fixedNow, site.UpdatedAt)
	require.NotNil(t, site.UpdatedBy)
	assert.Equal(t, "user-admin", *site.UpdatedBy)

	assert.Equal(t, "", repo.stored[domain.SettingContactPhone].Value)
	assert.Equal(t, "رقم التواصل", repo.stored[domain.SettingContactPhone].Description)

	assert.Equal(t, "info@example.com", view.Settings[domain.SettingContactEmail])
	assert.Len(t, view.Labels, len(domain.SettingKeys))
}

func TestSettingsService_Save_Error(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.upsertErr = errBoom
	svc := newTestSettingsService(repo)

	_, err := svc.Save(context.Background(), adminActor(), nil)
	assert.ErrorIs(t, err, errBoom)
}

func TestSettingsService_Get(t *testing.T) {
	repo := newFakeSettingRepo()
	repo.stored[domain.SettingSiteName] = &domain.SystemSetting{Key: domain.SettingSiteName, Value: "منصة"}
	svc := newTestSettingsService(repo)

	view, err := svc.Get(context.Background(), adminActor())
	require.NoError(t, err)
	assert.Equal(t, map[domain.SettingKey]string{domain.SettingSiteName: "منصة"}, view.Settings)
	assert.Equal(t, "بريد التواصل", view.Labels[domain.SettingContactEmail])
	assert.Len(t, view.Labels, 4)
}
