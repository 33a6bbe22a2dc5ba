package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"conferencehub/internal/domain"
)

type settingsService struct {
	settingRepo    domain.SettingRepository
	contextTimeout time.Duration
	now            func() time.Time
}

func NewSettingsService(settingRepo domain.SettingRepository, timeout time.Duration) domain.SettingsService {
	return &settingsService{settingRepo: settingRepo, contextTimeout: timeout, now: time.Now}
}

// Get returns the stored values of the recognized keys. Keys that were never saved are absent.
func (s *settingsService) Get(ctx context.Context, actor *domain.Profile) (*domain.SettingsView, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	stored, err := s.settingRepo.ListByKeys(ctx, domain.SettingKeys)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	view := newSettingsView()
	for _, st := range stored {
		view.Settings[st.Key] = st.Value
	}
	return view, nil
}

// Save writes all four recognized keys; a key missing from values is saved empty.
// Unrecognized keys are ignored.
func (s *settingsService) Save(ctx context.Context, actor *domain.Profile, values map[domain.SettingKey]string) (*domain.SettingsView, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now()
	updatedBy := actor.UserID
	view := newSettingsView()
	settings := make([]*domain.SystemSetting, 0, len(domain.SettingKeys))
	for _, key := range domain.SettingKeys {
		value := strings.TrimSpace(values[key])
		settings = append(settings, &domain.SystemSetting{
			Key:         key,
			Value:       value,
			Description: key.Label(),
			UpdatedAt:   now,
			UpdatedBy:   &updatedBy,
		})
		view.Settings[key] = value
	}
	if err := s.settingRepo.UpsertAll(ctx, settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return view, nil
}

func newSettingsView() *domain.SettingsView {
	labels := make(map[domain.SettingKey]string, len(domain.SettingKeys))
	for _, key := range domain.SettingKeys {
		labels[key] = key.Label()
	}
	return &domain.SettingsView{
		Settings: make(map[domain.SettingKey]string, len(domain.SettingKeys)),
		Labels:   labels,
	}
}
