package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_settings_store.go -package=mocks yukti-ai/internal/service SettingsStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_settings_service.go -package=mocks -mock_names=SettingsService=MockSettingsService yukti-ai/internal/service SettingsService

import (
	"context"
	"encoding/json"

	"yukti-ai/internal/contextutil"
	"yukti-ai/internal/conversation"
)

// SettingsKey is the key the settings record is persisted under.
const SettingsKey = "yuktiSettings"

// SettingsStore is a key-value store for persisted documents.
type SettingsStore interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put writes value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
}

// SettingsHolder holds the live settings record.
type SettingsHolder interface {
	Settings() conversation.Settings
	UpdateSettings(patch conversation.SettingsPatch) conversation.Settings
}

// SettingsService loads, reads and saves the sampling settings.
type SettingsService interface {
	// Load restores persisted settings into the live record. It never fails:
	// missing or malformed documents fall back to defaults.
	Load(ctx context.Context) conversation.Settings
	// Current returns the live settings.
	Current() conversation.Settings
	// Save persists patch merged onto the live settings, then applies it.
	// A failed save leaves the live settings unchanged.
	Save(ctx context.Context, patch conversation.SettingsPatch) (conversation.Settings, error)
}

type settingsService struct {
	store  SettingsStore
	holder SettingsHolder
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store SettingsStore, holder SettingsHolder) SettingsService {
	return &settingsService{
		store:  store,
		holder: holder,
	}
}

func (s *settingsService) Load(ctx context.Context) conversation.Settings {
	logger := contextutil.LoggerFromContext(ctx)

	raw, ok, err := s.store.Get(ctx, SettingsKey)
	if err != nil {
		logger.WarnContext(ctx, "failed to read stored settings, using current values", "error", err)
		return s.holder.Settings()
	}
	if !ok {
		logger.DebugContext(ctx, "no stored settings, using defaults")
		return s.holder.Settings()
	}

	patch, err := conversation.ParsePatch([]byte(raw))
	if err != nil {
		logger.WarnContext(ctx, "stored settings malformed, keeping valid fields", "error", err)
	}

	settings := s.holder.UpdateSettings(patch)
	logger.InfoContext(ctx, "settings loaded", "temperature", settings.Temperature, "max_length", settings.MaxLength)
	return settings
}

func (s *settingsService) Current() conversation.Settings {
	return s.holder.Settings()
}

func (s *settingsService) Save(ctx context.Context, patch conversation.SettingsPatch) (conversation.Settings, error) {
	logger := contextutil.LoggerFromContext(ctx)

	// The live record only changes once the merged document is stored.
	current := s.holder.Settings()
	data, err := json.Marshal(patch.Apply(current))
	if err != nil {
		return current, WrapError(err, "failed to encode settings")
	}
	if err := s.store.Put(ctx, SettingsKey, string(data)); err != nil {
		logger.ErrorContext(ctx, "failed to persist settings", "error", err)
		return current, WrapError(err, "failed to persist settings")
	}

	settings := s.holder.UpdateSettings(patch)

	logger.InfoContext(ctx, "settings saved", "temperature", settings.Temperature, "max_length", settings.MaxLength)
	return settings, nil
}
