package repository

import (
	"context"
	"errors"

	"gather/internal/models"

	"gorm.io/gorm"
)

// InteractionRepository defines the interface for like/dislike rows. The
// unique (user, post, type) index means toggling reuses existing rows, so
// lookups must include soft-deleted ones.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *models.Interaction) error
	// FindByType returns the row for (user, post, type) including
	// soft-deleted rows, or nil when none exists.
	FindByType(ctx context.Context, userID, postID uint, reaction models.InteractionType) (*models.Interaction, error)
	Save(ctx context.Context, interaction *models.Interaction) error
	// CountsByPost aggregates active likes, dislikes and approved joins.
	CountsByPost(ctx context.Context, postID uint) (*models.InteractionCounts, error)
	// ListUsersByPost pages through users with an active reaction of the
	// given type on the post, newest reaction first.
	ListUsersByPost(ctx context.Context, postID uint, reaction models.InteractionType, limit, offset int) ([]models.User, int64, error)
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	if err := r.db.WithContext(ctx).Create(interaction).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *interactionRepository) FindByType(ctx context.Context, userID, postID uint, reaction models.InteractionType) (*models.Interaction, error) {
	var interaction models.Interaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ? AND type = ?", userID, postID, reaction).
		First(&interaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &interaction, nil
}

func (r *interactionRepository) Save(ctx context.Context, interaction *models.Interaction) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("id = ?", interaction.ID).
		Updates(map[string]interface{}{
			"type":       interaction.Type,
			"deleted_at": interaction.DeletedAt,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *interactionRepository) CountsByPost(ctx context.Context, postID uint) (*models.InteractionCounts, error) {
	counts := &models.InteractionCounts{}

	count := func(reaction models.InteractionType) (int64, error) {
		var n int64
		err := r.db.WithContext(ctx).
			Model(&models.Interaction{}).
			Where("post_id = ? AND type = ? AND deleted_at IS NULL", postID, reaction).
			Count(&n).Error
		return n, err
	}

	var err error
	if counts.Like, err = count(models.InteractionLike); err != nil {
		return nil, models.NewInternalError(err)
	}
	if counts.Dislike, err = count(models.InteractionDislike); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("post_id = ? AND status = ? AND deleted_at IS NULL", postID, models.ParticipantApproved).
		Count(&counts.Join).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return counts, nil
}

func (r *interactionRepository) ListUsersByPost(ctx context.Context, postID uint, reaction models.InteractionType, limit, offset int) ([]models.User, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("interactions.post_id = ? AND interactions.type = ? AND interactions.deleted_at IS NULL", postID, reaction)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	if err := base.Session(&gorm.Session{}).
		Joins("JOIN users ON users.id = interactions.user_id AND users.deleted_at IS NULL").
		Order("interactions.created_at DESC").
		Limit(limit).Offset(offset).
		Select("users.*").
		Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}
