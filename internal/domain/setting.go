package domain

import (
	"context"
	"time"
)

// SettingKey names one of the recognized system settings.
type SettingKey string

const (
	SettingSiteName        SettingKey = "site_name"
	SettingSiteDescription SettingKey = "site_description"
	SettingContactEmail    SettingKey = "contact_email"
	SettingContactPhone    SettingKey = "contact_phone"
)

// SettingKeys lists the recognized keys in form order.
var SettingKeys = []SettingKey{SettingSiteName, SettingSiteDescription, SettingContactEmail, SettingContactPhone}

var settingLabels = map[SettingKey]string{
	SettingSiteName:        "اسم المنصة",
	SettingSiteDescription: "وصف المنصة",
	SettingContactEmail:    "بريد التواصل",
	SettingContactPhone:    "رقم التواصل",
}

// Label returns the human-readable label stored alongside the setting.
func (k SettingKey) Label() string {
	return settingLabels[k]
}

// SystemSetting is a single key-value configuration row.
type SystemSetting struct {
	Key         SettingKey `json:"key"`
	Value       string     `json:"value"`
	Description string     `json:"description"`
	UpdatedAt   time.Time  `json:"updated_at"`
	UpdatedBy   *string    `json:"updated_by"`
}

// SettingsView is what the settings page shows: current values and labels for the recognized keys.
type SettingsView struct {
	Settings map[SettingKey]string `json:"settings"`
	Labels   map[SettingKey]string `json:"labels"`
}

// SettingRepository defines storage operations for system settings.
type SettingRepository interface {
	ListByKeys(ctx context.Context, keys []SettingKey) ([]*SystemSetting, error)
	// UpsertAll writes every setting in a single transaction.
	UpsertAll(ctx context.Context, settings []*SystemSetting) error
}

// SettingsService reads and saves the recognized settings.
type SettingsService interface {
	Get(ctx context.Context, actor *Profile) (*SettingsView, error)
	Save(ctx context.Context, actor *Profile, values map[SettingKey]string) (*SettingsView, error)
}
