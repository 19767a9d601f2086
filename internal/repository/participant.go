package repository

import (
	"context"
	"errors"
	"time"

	"gather/internal/models"

	"gorm.io/gorm"
)

// ParticipantRepository defines the interface for join-request rows. The
// unique (post, user) index means the same row is reused across
// cancel/restore cycles, so updates go through Save on a loaded row.
type ParticipantRepository interface {
	CreatePending(ctx context.Context, postID, userID uint) (*models.Participant, error)
	// GetByID loads a participant regardless of soft-delete state.
	GetByID(ctx context.Context, id uint) (*models.Participant, error)
	// GetByPostAndUser returns the row for the pair including soft-deleted
	// rows, or nil when no row exists.
	GetByPostAndUser(ctx context.Context, postID, userID uint) (*models.Participant, error)
	Save(ctx context.Context, participant *models.Participant) error
	// CountApproved counts rows with status=approved and no soft-delete marker;
	// this is the capacity-check count.
	CountApproved(ctx context.Context, postID uint) (int64, error)
	ListByPostAndStatus(ctx context.Context, postID uint, status models.ParticipantStatus, limit, offset int) ([]models.Participant, int64, error)
	ListApprovedByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Participant, int64, error)
	SoftDeleteByPost(ctx context.Context, postID uint, at time.Time) error
}

type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) CreatePending(ctx context.Context, postID, userID uint) (*models.Participant, error) {
	participant := &models.Participant{
		PostID: postID,
		UserID: userID,
		Status: models.ParticipantPending,
	}
	if err := r.db.WithContext(ctx).Create(participant).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Preload("Post").First(participant, participant.ID).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return participant, nil
}

func (r *participantRepository) GetByID(ctx context.Context, id uint) (*models.Participant, error) {
	var participant models.Participant
	if err := r.db.WithContext(ctx).
		Preload("Post").Preload("User").
		First(&participant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Participant", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &participant, nil
}

func (r *participantRepository) GetByPostAndUser(ctx context.Context, postID, userID uint) (*models.Participant, error) {
	var participant models.Participant
	if err := r.db.WithContext(ctx).
		Preload("Post").
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&participant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &participant, nil
}

func (r *participantRepository) Save(ctx context.Context, participant *models.Participant) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("id = ?", participant.ID).
		Updates(map[string]interface{}{
			"status":     participant.Status,
			"deleted_at": participant.DeletedAt,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *participantRepository) CountApproved(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("post_id = ? AND status = ? AND deleted_at IS NULL", postID, models.ParticipantApproved).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *participantRepository) ListByPostAndStatus(ctx context.Context, postID uint, status models.ParticipantStatus, limit, offset int) ([]models.Participant, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("post_id = ? AND status = ? AND deleted_at IS NULL", postID, status)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var participants []models.Participant
	if err := base.Session(&gorm.Session{}).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&participants).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return participants, total, nil
}

func (r *participantRepository) ListApprovedByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Participant, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("user_id = ? AND status = ? AND deleted_at IS NULL", userID, models.ParticipantApproved)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var participants []models.Participant
	if err := base.Session(&gorm.Session{}).
		Preload("Post").Preload("Post.User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&participants).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return participants, total, nil
}

func (r *participantRepository) SoftDeleteByPost(ctx context.Context, postID uint, at time.Time) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Participant{}).
		Where("post_id = ? AND deleted_at IS NULL", postID).
		Update("deleted_at", at).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
