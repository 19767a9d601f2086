package service

import (
	"context"
	"strconv"
	"time"

	"gather/internal/cache"
	"gather/internal/models"
	"gather/internal/observability"
	"gather/internal/repository"
)

// Built-in defaults used when a setting row is absent or unreadable.
const (
	DefaultPostExpirySeconds = 3600
	DefaultSearchRadiusKm    = 2.0
)

// SettingsService resolves runtime tunables with a redis cache in front of
// the settings table. Lookup failures degrade to the built-in default
// rather than failing the calling operation.
type SettingsService struct {
	settingRepo repository.SettingRepository
	logger      *observability.Logger
}

// NewSettingsService returns a new SettingsService.
func NewSettingsService(settingRepo repository.SettingRepository) *SettingsService {
	return &SettingsService{
		settingRepo: settingRepo,
		logger:      observability.GlobalLogger,
	}
}

func (s *SettingsService) lookup(ctx context.Context, key string) (string, bool) {
	if client := cache.GetClient(); client != nil {
		if val, err := client.Get(ctx, cache.SettingKey(key)).Result(); err == nil {
			return val, true
		}
	}

	setting, err := s.settingRepo.GetByKey(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "settings lookup failed", "key", key, "error", err)
		return "", false
	}
	if setting == nil {
		return "", false
	}

	if client := cache.GetClient(); client != nil {
		// Best effort; a failed SET just means the next read hits the DB.
		client.Set(ctx, cache.SettingKey(key), setting.Value, cache.SettingTTL)
	}
	return setting.Value, true
}

func (s *SettingsService) floatValue(ctx context.Context, key string, fallback float64) float64 {
	raw, ok := s.lookup(ctx, key)
	if !ok {
		return fallback
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val <= 0 {
		s.logger.WarnContext(ctx, "invalid setting value", "key", key, "value", raw)
		return fallback
	}
	return val
}

// PostExpiry returns the lifetime for newly created posts.
func (s *SettingsService) PostExpiry(ctx context.Context, premium bool) time.Duration {
	key := models.SettingPostExpiryNormal
	if premium {
		key = models.SettingPostExpiryPremium
	}
	seconds := s.floatValue(ctx, key, DefaultPostExpirySeconds)
	return time.Duration(seconds * float64(time.Second))
}

// SearchRadiusKm returns the maximum visibility radius for the user tier.
func (s *SettingsService) SearchRadiusKm(ctx context.Context, premium bool) float64 {
	key := models.SettingSearchRadiusNormal
	if premium {
		key = models.SettingSearchRadiusPremium
	}
	return s.floatValue(ctx, key, DefaultSearchRadiusKm)
}
