package repository

import (
	"context"
	"errors"
	"time"

	"gather/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for the notification ledger.
// The (actor, recipient, type, target) tuple identifies a logical
// notification; toggling flows soft-delete and restore the same row rather
// than piling up duplicates.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	// FindByDetails returns the active row matching the tuple, or nil when
	// none exists. This is the canonical lookup before any mutation.
	FindByDetails(ctx context.Context, actorID, userID uint, kind models.NotificationType, targetID uint) (*models.Notification, error)
	// FindByDetailsAny is FindByDetails without the soft-delete filter, for
	// flows that restore a previously removed notification.
	FindByDetailsAny(ctx context.Context, actorID, userID uint, kind models.NotificationType, targetID uint) (*models.Notification, error)
	// Update persists the mutable fields of a loaded, modified row.
	Update(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	// SoftDeleteByRelatedPost removes all active notifications hanging off a
	// post, used by the post delete cascade.
	SoftDeleteByRelatedPost(ctx context.Context, postID uint, at time.Time) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Notification", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &notification, nil
}

func (r *notificationRepository) findByDetails(ctx context.Context, actorID, userID uint, kind models.NotificationType, targetID uint, includeDeleted bool) (*models.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("actor_id = ? AND user_id = ? AND type = ? AND target_id = ?", actorID, userID, kind, targetID)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}

	var notification models.Notification
	if err := query.First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &notification, nil
}

func (r *notificationRepository) FindByDetails(ctx context.Context, actorID, userID uint, kind models.NotificationType, targetID uint) (*models.Notification, error) {
	return r.findByDetails(ctx, actorID, userID, kind, targetID, false)
}

func (r *notificationRepository) FindByDetailsAny(ctx context.Context, actorID, userID uint, kind models.NotificationType, targetID uint) (*models.Notification, error) {
	return r.findByDetails(ctx, actorID, userID, kind, targetID, true)
}

func (r *notificationRepository) Update(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", notification.ID).
		Updates(map[string]interface{}{
			"user_id":    notification.UserID,
			"actor_id":   notification.ActorID,
			"message":    notification.Message,
			"is_read":    notification.IsRead,
			"expired_at": notification.ExpiredAt,
			"deleted_at": notification.DeletedAt,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND deleted_at IS NULL", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var notifications []models.Notification
	if err := base.Session(&gorm.Session{}).
		Preload("Actor").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND deleted_at IS NULL", userID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Notification", id)
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND deleted_at IS NULL", userID, false).
		Update("is_read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) SoftDeleteByRelatedPost(ctx context.Context, postID uint, at time.Time) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("related_post_id = ? AND deleted_at IS NULL", postID).
		Update("deleted_at", at).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
