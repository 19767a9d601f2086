package repository

import (
	"context"
	"errors"

	"gather/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friend-request edge operations.
// Edges are directed; one row exists per unordered user pair.
type FriendRepository interface {
	Create(ctx context.Context, request *models.FriendRequest) error
	GetByID(ctx context.Context, id uint) (*models.FriendRequest, error)
	// GetDirected returns the edge from->to, or nil when absent.
	GetDirected(ctx context.Context, fromUserID, toUserID uint) (*models.FriendRequest, error)
	// GetAcceptedBetween returns the accepted edge between two users in either
	// direction, or nil when they are not friends.
	GetAcceptedBetween(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error)
	FriendIDs(ctx context.Context, userID uint) ([]uint, error)
	Friends(ctx context.Context, userID uint) ([]models.User, error)
	CountFriends(ctx context.Context, userID uint) (int64, error)
	PendingReceived(ctx context.Context, userID uint, limit, offset int) ([]models.FriendRequest, int64, error)
	PendingSent(ctx context.Context, userID uint, limit, offset int) ([]models.FriendRequest, int64, error)
	UpdateStatus(ctx context.Context, requestID uint, status models.FriendRequestStatus) error
	// Repoint rewrites the edge's direction and status in place, preserving the
	// unique-pair constraint when a rejected edge is reused in reverse.
	Repoint(ctx context.Context, requestID, fromUserID, toUserID uint, status models.FriendRequestStatus) error
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, request *models.FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).
		Preload("FromUser").Preload("ToUser").
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRepository) GetDirected(ctx context.Context, fromUserID, toUserID uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRepository) GetAcceptedBetween(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	var request models.FriendRequest
	if err := r.db.WithContext(ctx).
		Where("status = ? AND ((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?))",
			models.FriendRequestAccepted, userID1, userID2, userID2, userID1).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

func (r *friendRepository) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var edges []models.FriendRequest
	if err := r.db.WithContext(ctx).
		Select("from_user_id", "to_user_id").
		Where("status = ? AND (from_user_id = ? OR to_user_id = ?)",
			models.FriendRequestAccepted, userID, userID).
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	ids := make([]uint, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.CounterpartID(userID))
	}
	return ids, nil
}

func (r *friendRepository) Friends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN friend_requests fr ON (users.id = fr.from_user_id OR users.id = fr.to_user_id)").
		Where("fr.status = ? AND (fr.from_user_id = ? OR fr.to_user_id = ?) AND users.id != ?",
			models.FriendRequestAccepted, userID, userID, userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *friendRepository) CountFriends(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("status = ? AND (from_user_id = ? OR to_user_id = ?)",
			models.FriendRequestAccepted, userID, userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *friendRepository) PendingReceived(ctx context.Context, userID uint, limit, offset int) ([]models.FriendRequest, int64, error) {
	return r.pending(ctx, "to_user_id", userID, limit, offset)
}

func (r *friendRepository) PendingSent(ctx context.Context, userID uint, limit, offset int) ([]models.FriendRequest, int64, error) {
	return r.pending(ctx, "from_user_id", userID, limit, offset)
}

func (r *friendRepository) pending(ctx context.Context, column string, userID uint, limit, offset int) ([]models.FriendRequest, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where(column+" = ? AND status = ?", userID, models.FriendRequestPending)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var requests []models.FriendRequest
	if err := base.Session(&gorm.Session{}).
		Preload("FromUser").Preload("ToUser").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&requests).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return requests, total, nil
}

func (r *friendRepository) UpdateStatus(ctx context.Context, requestID uint, status models.FriendRequestStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("id = ?", requestID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) Repoint(ctx context.Context, requestID, fromUserID, toUserID uint, status models.FriendRequestStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"from_user_id": fromUserID,
			"to_user_id":   toUserID,
			"status":       status,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
