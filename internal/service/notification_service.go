package service

import (
	"context"
	"fmt"
	"time"

	"gather/internal/models"
	"gather/internal/observability"
	"gather/internal/repository"
)

// NotificationPublisher pushes a notification towards any live sockets the
// recipient holds. Delivery is best effort.
type NotificationPublisher interface {
	Publish(ctx context.Context, userID uint, notification *models.Notification) error
}

// AddNotificationInput describes a notification to record and push.
type AddNotificationInput struct {
	UserID        uint
	ActorID       uint
	Type          models.NotificationType
	TargetID      uint
	RelatedPostID *uint
	ExpiredAt     *time.Time
	Message       string
}

// NotificationService owns the notification ledger: recording entries,
// listing them for a user, and read-state bookkeeping.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	postRepo         repository.PostRepository
	publisher        NotificationPublisher
	logger           *observability.Logger
}

// NewNotificationService returns a new NotificationService. publisher may be
// nil, in which case notifications are recorded but not pushed.
func NewNotificationService(notificationRepo repository.NotificationRepository, postRepo repository.PostRepository, publisher NotificationPublisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		postRepo:         postRepo,
		publisher:        publisher,
		logger:           observability.GlobalLogger,
	}
}

// Add records a notification and pushes it to the recipient. When no expiry
// is given and the notification hangs off a post, the post's expiry is
// copied so the notification ages out with it.
func (s *NotificationService) Add(ctx context.Context, input AddNotificationInput) (*models.Notification, error) {
	expiredAt := input.ExpiredAt
	if expiredAt == nil && input.RelatedPostID != nil {
		post, err := s.postRepo.GetByID(ctx, *input.RelatedPostID)
		if err == nil {
			expiredAt = &post.ExpiredAt
		}
	}

	notification := &models.Notification{
		UserID:        input.UserID,
		ActorID:       input.ActorID,
		Type:          input.Type,
		TargetID:      input.TargetID,
		RelatedPostID: input.RelatedPostID,
		ExpiredAt:     expiredAt,
		Message:       input.Message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	s.Push(ctx, notification)
	return notification, nil
}

// Record is Add for callers whose own state change has already committed.
// The ledger write failing must not unwind the caller, so the error is
// logged at error level instead of returned.
func (s *NotificationService) Record(ctx context.Context, input AddNotificationInput) {
	if _, err := s.Add(ctx, input); err != nil {
		s.logger.ErrorContext(ctx, "notification record failed",
			"user_id", input.UserID,
			"actor_id", input.ActorID,
			"type", string(input.Type),
			"target_id", input.TargetID,
			"error", err,
		)
	}
}

// Refresh rewrites an existing ledger row and re-pushes it. As with Record,
// the caller's state change stands regardless, so failures are logged at
// error level and swallowed.
func (s *NotificationService) Refresh(ctx context.Context, notification *models.Notification) {
	if err := s.notificationRepo.Update(ctx, notification); err != nil {
		s.logger.ErrorContext(ctx, "notification refresh failed",
			"user_id", notification.UserID,
			"notification_id", notification.ID,
			"error", err,
		)
		return
	}
	s.Push(ctx, notification)
}

// Push sends a recorded notification to the recipient's live sockets.
// Failures are logged and swallowed; the ledger row is the source of truth.
func (s *NotificationService) Push(ctx context.Context, notification *models.Notification) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, notification.UserID, notification); err != nil {
		s.logger.WarnContext(ctx, "notification push failed",
			"user_id", notification.UserID,
			"notification_id", notification.ID,
			"error", err,
		)
		return
	}
	observability.NotificationsPublished.WithLabelValues(string(notification.Type)).Inc()
}

// List returns the user's active notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, page, limit int) ([]models.Notification, models.Pagination, error) {
	pagination := models.NewPagination(page, limit, 0)
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, pagination.Limit, pagination.Offset())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return notifications, models.NewPagination(page, limit, total), nil
}

// UnreadCount returns the number of unread active notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks all of the user's notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Message builders shared by the domain services. Kept together so the
// user-facing wording lives in one place.

func friendRequestMessage(username string) string {
	return fmt.Sprintf("%s sent you a friend request.", username)
}

func friendAcceptMessage(username string) string {
	return fmt.Sprintf("%s accepted your friend request.", username)
}

func joinRequestMessage(username string) string {
	return fmt.Sprintf("%s wants to join your post.", username)
}

func joinDecisionMessage(username string, status models.ParticipantStatus) string {
	if status == models.ParticipantApproved {
		return fmt.Sprintf("%s approved your request to join.", username)
	}
	return fmt.Sprintf("%s declined your request to join.", username)
}

func reactionMessage(username string, reaction models.InteractionType) string {
	if reaction == models.InteractionLike {
		return fmt.Sprintf("%s liked your post.", username)
	}
	return fmt.Sprintf("%s disliked your post.", username)
}

func commentMessage(username string) string {
	return fmt.Sprintf("%s commented on your post.", username)
}
