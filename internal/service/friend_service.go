package service

import (
	"context"
	"time"

	"gather/internal/models"
	"gather/internal/observability"
	"gather/internal/repository"
)

// FriendService owns the friend-request lifecycle. A pair of users shares a
// single request row for its whole history; re-sends reopen or repoint that
// row instead of inserting a second one.
type FriendService struct {
	friendRepo       repository.FriendRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	notificationSvc  *NotificationService
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository, notificationRepo repository.NotificationRepository, notificationSvc *NotificationService) *FriendService {
	return &FriendService{
		friendRepo:       friendRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notificationSvc:  notificationSvc,
	}
}

// SendFriendRequest sends, reopens, or repoints the request between the two
// users, depending on the pair's history.
func (s *FriendService) SendFriendRequest(ctx context.Context, userID, targetUserID uint) (*models.FriendRequest, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot send a friend request to yourself")
	}

	actor, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	own, err := s.friendRepo.GetDirected(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if own != nil {
		switch own.Status {
		case models.FriendRequestPending:
			return nil, models.NewConflictError("Friend request already sent")
		case models.FriendRequestAccepted:
			return nil, models.NewConflictError("You are already friends")
		case models.FriendRequestRejected:
			if err := s.friendRepo.UpdateStatus(ctx, own.ID, models.FriendRequestPending); err != nil {
				return nil, err
			}
			s.notifyRequest(ctx, own.ID, actor, targetUserID)
			return s.friendRepo.GetByID(ctx, own.ID)
		}
	}

	counterpart, err := s.friendRepo.GetDirected(ctx, targetUserID, userID)
	if err != nil {
		return nil, err
	}
	if counterpart != nil {
		switch counterpart.Status {
		case models.FriendRequestPending:
			return nil, models.NewConflictError("This user already sent you a friend request")
		case models.FriendRequestAccepted:
			return nil, models.NewConflictError("You are already friends")
		case models.FriendRequestRejected:
			// Reuse the pair's row but flip its direction so the new
			// sender owns it.
			if err := s.friendRepo.Repoint(ctx, counterpart.ID, userID, targetUserID, models.FriendRequestPending); err != nil {
				return nil, err
			}
			s.notifyRequest(ctx, counterpart.ID, actor, targetUserID)
			return s.friendRepo.GetByID(ctx, counterpart.ID)
		}
	}

	request := &models.FriendRequest{
		FromUserID: userID,
		ToUserID:   targetUserID,
		Status:     models.FriendRequestPending,
	}
	if err := s.friendRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	s.notifyRequest(ctx, request.ID, actor, targetUserID)
	return s.friendRepo.GetByID(ctx, request.ID)
}

// notifyRequest records the request notification. A reopened or repointed
// request revives the pair's earlier row quietly; only a brand new
// notification is pushed to live sockets.
func (s *FriendService) notifyRequest(ctx context.Context, requestID uint, actor *models.User, targetUserID uint) {
	message := friendRequestMessage(actor.Username)

	existing, err := s.notificationRepo.FindByDetailsAny(ctx, actor.ID, targetUserID, models.NotificationFriendRequest, requestID)
	if err == nil && existing == nil {
		existing, err = s.notificationRepo.FindByDetailsAny(ctx, targetUserID, actor.ID, models.NotificationFriendRequest, requestID)
	}
	if err == nil && existing != nil {
		existing.ActorID = actor.ID
		existing.UserID = targetUserID
		existing.Message = message
		existing.IsRead = false
		existing.DeletedAt = nil
		if uerr := s.notificationRepo.Update(ctx, existing); uerr != nil {
			observability.GlobalLogger.ErrorContext(ctx, "notification revive failed",
				"user_id", targetUserID,
				"notification_id", existing.ID,
				"error", uerr,
			)
		}
		return
	}

	s.notificationSvc.Record(ctx, AddNotificationInput{
		UserID:   targetUserID,
		ActorID:  actor.ID,
		Type:     models.NotificationFriendRequest,
		TargetID: requestID,
		Message:  message,
	})
}

// AcceptFriendRequest accepts a pending request addressed to the user. The
// original request notification is turned around so the sender learns about
// the acceptance instead of a second row appearing.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, userID, requestID uint) (*models.FriendRequest, error) {
	request, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ToUserID != userID {
		return nil, models.NewForbiddenError("You can only accept friend requests sent to you")
	}
	if request.Status != models.FriendRequestPending {
		return nil, models.NewConflictError("Friend request is not pending")
	}

	if err := s.friendRepo.UpdateStatus(ctx, requestID, models.FriendRequestAccepted); err != nil {
		return nil, err
	}

	accepter, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	notification, err := s.notificationRepo.FindByDetails(ctx, request.FromUserID, request.ToUserID, models.NotificationFriendRequest, requestID)
	if err != nil {
		return nil, err
	}
	if notification != nil {
		notification.ActorID = request.ToUserID
		notification.UserID = request.FromUserID
		notification.Message = friendAcceptMessage(accepter.Username)
		notification.IsRead = false
		if err := s.notificationRepo.Update(ctx, notification); err != nil {
			return nil, err
		}
		s.notificationSvc.Push(ctx, notification)
	} else {
		s.notificationSvc.Record(ctx, AddNotificationInput{
			UserID:   request.FromUserID,
			ActorID:  request.ToUserID,
			Type:     models.NotificationFriendRequest,
			TargetID: requestID,
			Message:  friendAcceptMessage(accepter.Username),
		})
	}

	return s.friendRepo.GetByID(ctx, requestID)
}

// RejectFriendRequest rejects a pending request addressed to the user, or
// cancels one the user sent. The request notification is retired with it.
func (s *FriendService) RejectFriendRequest(ctx context.Context, userID, requestID uint) (*models.FriendRequest, error) {
	request, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.ToUserID != userID && request.FromUserID != userID {
		return nil, models.NewForbiddenError("You can only reject or cancel your own requests")
	}
	if request.Status != models.FriendRequestPending {
		return nil, models.NewConflictError("Friend request is not pending")
	}

	if err := s.friendRepo.UpdateStatus(ctx, requestID, models.FriendRequestRejected); err != nil {
		return nil, err
	}
	if err := s.retireRequestNotification(ctx, request); err != nil {
		return nil, err
	}
	return s.friendRepo.GetByID(ctx, requestID)
}

// Unfriend dissolves an accepted friendship. The pair's row moves to
// rejected so either side can start over later.
func (s *FriendService) Unfriend(ctx context.Context, userID, targetUserID uint) error {
	friendship, err := s.friendRepo.GetAcceptedBetween(ctx, userID, targetUserID)
	if err != nil {
		return err
	}
	if friendship == nil {
		return models.NewNotFoundError("Friendship", 0)
	}

	if err := s.friendRepo.UpdateStatus(ctx, friendship.ID, models.FriendRequestRejected); err != nil {
		return err
	}
	return s.retireRequestNotification(ctx, friendship)
}

// retireRequestNotification soft-deletes whichever direction of the
// request's notification is active. Acceptance flips actor and recipient,
// so both orders have to be checked.
func (s *FriendService) retireRequestNotification(ctx context.Context, request *models.FriendRequest) error {
	notification, err := s.notificationRepo.FindByDetails(ctx, request.FromUserID, request.ToUserID, models.NotificationFriendRequest, request.ID)
	if err != nil {
		return err
	}
	if notification == nil {
		notification, err = s.notificationRepo.FindByDetails(ctx, request.ToUserID, request.FromUserID, models.NotificationFriendRequest, request.ID)
		if err != nil {
			return err
		}
	}
	if notification == nil {
		return nil
	}
	now := time.Now()
	notification.DeletedAt = &now
	return s.notificationRepo.Update(ctx, notification)
}

// GetFriends returns the user's accepted friends.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.Friends(ctx, userID)
}

// GetPendingRequests returns requests awaiting the user's decision.
func (s *FriendService) GetPendingRequests(ctx context.Context, userID uint, page, limit int) ([]models.FriendRequest, models.Pagination, error) {
	pagination := models.NewPagination(page, limit, 0)
	requests, total, err := s.friendRepo.PendingReceived(ctx, userID, pagination.Limit, pagination.Offset())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return requests, models.NewPagination(page, limit, total), nil
}

// GetSentRequests returns the user's outstanding requests.
func (s *FriendService) GetSentRequests(ctx context.Context, userID uint, page, limit int) ([]models.FriendRequest, models.Pagination, error) {
	pagination := models.NewPagination(page, limit, 0)
	requests, total, err := s.friendRepo.PendingSent(ctx, userID, pagination.Limit, pagination.Offset())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return requests, models.NewPagination(page, limit, total), nil
}
