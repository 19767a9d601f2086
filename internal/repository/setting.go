package repository

import (
	"context"
	"errors"

	"gather/internal/models"

	"gorm.io/gorm"
)

// SettingRepository defines the interface for runtime settings
type SettingRepository interface {
	// GetByKey returns nil when the key has no row, so callers can fall
	// back to built-in defaults.
	GetByKey(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) error
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetByKey(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &setting, nil
}

func (r *settingRepository) Upsert(ctx context.Context, setting *models.Setting) error {
	existing, err := r.GetByKey(ctx, setting.Key)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := r.db.WithContext(ctx).Create(setting).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Setting{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"value":       setting.Value,
			"description": setting.Description,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
