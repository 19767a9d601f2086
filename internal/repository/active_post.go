package repository

import (
	"context"
	"errors"
	"time"

	"gather/internal/models"

	"gorm.io/gorm"
)

// ActivePostRepository maintains the denormalized active-post projection.
// Projection rows are hard-deleted, never soft-deleted.
type ActivePostRepository interface {
	Create(ctx context.Context, activePost *models.ActivePost) error
	GetByPostID(ctx context.Context, postID uint) (*models.ActivePost, error)
	Patch(ctx context.Context, postID uint, fields map[string]interface{}) error
	DeleteByPostID(ctx context.Context, postID uint) error
	// ListExpired returns projections whose deadline has passed.
	ListExpired(ctx context.Context, now time.Time) ([]models.ActivePost, error)
	// ListVisible answers "what's happening near me": the viewer's own posts
	// bypass the geo filter; public and friend posts must be in range.
	ListVisible(ctx context.Context, q VisibleQuery) ([]models.ActivePost, int64, error)
}

type activePostRepository struct {
	db *gorm.DB
}

// NewActivePostRepository creates a new active-post repository
func NewActivePostRepository(db *gorm.DB) ActivePostRepository {
	return &activePostRepository{db: db}
}

func (r *activePostRepository) Create(ctx context.Context, activePost *models.ActivePost) error {
	if err := r.db.WithContext(ctx).Create(activePost).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *activePostRepository) GetByPostID(ctx context.Context, postID uint) (*models.ActivePost, error) {
	var activePost models.ActivePost
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		First(&activePost).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Active post", postID)
		}
		return nil, models.NewInternalError(err)
	}
	return &activePost, nil
}

func (r *activePostRepository) Patch(ctx context.Context, postID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ActivePost{}).
		Where("post_id = ?", postID).
		Updates(fields).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *activePostRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.ActivePost{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *activePostRepository) ListExpired(ctx context.Context, now time.Time) ([]models.ActivePost, error) {
	var expired []models.ActivePost
	if err := r.db.WithContext(ctx).
		Where("expired_at <= ?", now).
		Find(&expired).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return expired, nil
}

func (r *activePostRepository) ListVisible(ctx context.Context, q VisibleQuery) ([]models.ActivePost, int64, error) {
	build := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&models.ActivePost{})
		if q.Category != "" {
			tx = tx.Where("selected_category LIKE ?", q.Category+"%")
		}

		geoCond, geoArgs := q.Geo.SQL()
		session := func() *gorm.DB { return tx.Session(&gorm.Session{NewDB: true}) }

		if q.ViewerID == 0 {
			return tx.Where("privacy = ?", models.PrivacyPublic).Where(geoCond, geoArgs...)
		}

		// Union of (owner, anywhere), (public, in range), (friend, in range).
		// The owner branch deliberately skips the geo filter: a user always
		// sees their own active posts regardless of location.
		union := session().Where("user_id = ?", q.ViewerID).
			Or(session().Where("privacy = ?", models.PrivacyPublic).Where(geoCond, geoArgs...))
		if len(q.FriendIDs) > 0 {
			union = union.Or(session().
				Where("privacy = ? AND user_id IN ?", models.PrivacyFriend, q.FriendIDs).
				Where(geoCond, geoArgs...))
		}
		return tx.Where(union)
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var activePosts []models.ActivePost
	if err := build().
		Preload("User").
		Order("created_at DESC").
		Limit(q.Limit).Offset(q.Offset).
		Find(&activePosts).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return activePosts, total, nil
}
