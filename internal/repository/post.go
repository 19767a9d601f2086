package repository

import (
	"context"
	"errors"
	"time"

	"gather/internal/geo"
	"gather/internal/models"

	"gorm.io/gorm"
)

// VisibleQuery carries the resolved inputs for a visibility-filtered list.
// ViewerID 0 means anonymous.
type VisibleQuery struct {
	ViewerID  uint
	FriendIDs []uint
	Geo       geo.Filter
	Category  string
	Limit     int
	Offset    int
}

// PostRepository defines the interface for canonical post operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// GetByID returns a post that is not soft-deleted. Expiry is not checked:
	// direct-by-id fetch ignores expiry but respects soft-delete.
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Patch(ctx context.Context, id uint, fields map[string]interface{}) error
	SoftDelete(ctx context.Context, id uint, at time.Time) error
	CountByUser(ctx context.Context, userID uint) (int64, error)
	// ListVisible applies the full listing filter: not deleted, not expired,
	// in range, and visible to the viewer per privacy and friendship.
	ListVisible(ctx context.Context, q VisibleQuery, now time.Time) ([]models.Post, int64, error)
	// ListByUser returns a user's posts as seen by the viewer in q. The owner
	// sees everything including expired posts; other viewers get the privacy
	// union plus the expiry filter.
	ListByUser(ctx context.Context, userID uint, q VisibleQuery, now time.Time) ([]models.Post, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("deleted_at IS NULL").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Patch(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", at).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// visibilityClause builds the privacy OR-union for a logged-in viewer.
func visibilityClause(db *gorm.DB, q VisibleQuery) *gorm.DB {
	if q.ViewerID == 0 {
		return db.Where("privacy = ?", models.PrivacyPublic)
	}
	cond := db.Session(&gorm.Session{NewDB: true}).
		Where("privacy = ?", models.PrivacyPublic).
		Or("user_id = ?", q.ViewerID)
	if len(q.FriendIDs) > 0 {
		cond = cond.Or("privacy = ? AND user_id IN ?", models.PrivacyFriend, q.FriendIDs)
	}
	return db.Where(cond)
}

func (r *postRepository) ListVisible(ctx context.Context, q VisibleQuery, now time.Time) ([]models.Post, int64, error) {
	build := func() *gorm.DB {
		tx := r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("deleted_at IS NULL AND expired_at > ?", now)
		if cond, args := q.Geo.SQL(); args != nil {
			tx = tx.Where(cond, args...)
		}
		if q.Category != "" {
			tx = tx.Where("selected_category LIKE ?", q.Category+"%")
		}
		return visibilityClause(tx, q)
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []models.Post
	if err := build().
		Preload("User").
		Order("created_at DESC").
		Limit(q.Limit).Offset(q.Offset).
		Find(&posts).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, q VisibleQuery, now time.Time) ([]models.Post, int64, error) {
	owner := q.ViewerID != 0 && q.ViewerID == userID
	build := func() *gorm.DB {
		tx := r.db.WithContext(ctx).
			Model(&models.Post{}).
			Where("user_id = ? AND deleted_at IS NULL", userID)
		// Owners see their full history including expired posts.
		if !owner {
			tx = tx.Where("expired_at > ?", now)
			tx = visibilityClause(tx, q)
		}
		return tx
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []models.Post
	if err := build().
		Preload("User").
		Order("created_at DESC").
		Limit(q.Limit).Offset(q.Offset).
		Find(&posts).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}
