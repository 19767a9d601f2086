package service

import (
	"context"
	"time"

	"gather/internal/models"
	"gather/internal/repository"
)

// ParticipationService owns join requests on posts. Joining is a toggle: the
// same call files a request, and called again withdraws it. A pair keeps one
// row across cancel and rejoin cycles.
type ParticipationService struct {
	participantRepo  repository.ParticipantRepository
	postRepo         repository.PostRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	notificationSvc  *NotificationService
}

// NewParticipationService returns a new ParticipationService.
func NewParticipationService(participantRepo repository.ParticipantRepository, postRepo repository.PostRepository, userRepo repository.UserRepository, notificationRepo repository.NotificationRepository, notificationSvc *NotificationService) *ParticipationService {
	return &ParticipationService{
		participantRepo:  participantRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notificationSvc:  notificationSvc,
	}
}

// ToggleJoin files a join request on the post, or withdraws the caller's
// existing one. Rejected requests are terminal; the owner has said no.
func (s *ParticipationService) ToggleJoin(ctx context.Context, userID, postID uint) (*models.Participant, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID == userID {
		return nil, models.NewValidationError("You cannot join your own post")
	}
	if post.IsExpired(time.Now()) {
		return nil, models.NewConflictError("This post has expired")
	}

	actor, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	participant, err := s.participantRepo.GetByPostAndUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if participant == nil {
		if err := s.checkCapacity(ctx, post); err != nil {
			return nil, err
		}
		participant, err = s.participantRepo.CreatePending(ctx, postID, userID)
		if err != nil {
			return nil, err
		}
		s.notifyJoinRequest(ctx, participant, post, actor)
		return participant, nil
	}

	switch participant.Status {
	case models.ParticipantRejected:
		return nil, models.NewConflictError("Your join request was declined")

	case models.ParticipantCancelled:
		if err := s.checkCapacity(ctx, post); err != nil {
			return nil, err
		}
		participant.Status = models.ParticipantPending
		participant.DeletedAt = nil
		if err := s.participantRepo.Save(ctx, participant); err != nil {
			return nil, err
		}
		s.notifyJoinRequest(ctx, participant, post, actor)
		return participant, nil

	default:
		// pending or approved: withdraw.
		now := time.Now()
		participant.Status = models.ParticipantCancelled
		participant.DeletedAt = &now
		if err := s.participantRepo.Save(ctx, participant); err != nil {
			return nil, err
		}
		// Retire both possible notification directions: the join request
		// towards the owner, and any decision sent back to the joiner.
		if err := s.retireNotification(ctx, userID, post.UserID, participant.ID, now); err != nil {
			return nil, err
		}
		if err := s.retireNotification(ctx, post.UserID, userID, participant.ID, now); err != nil {
			return nil, err
		}
		return participant, nil
	}
}

// Decide lets the post owner approve or reject a join request.
func (s *ParticipationService) Decide(ctx context.Context, ownerID, participantID uint, status models.ParticipantStatus) (*models.Participant, error) {
	if !models.ValidParticipantDecision(status) {
		return nil, models.NewValidationError("Status must be approved or rejected")
	}

	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, participant.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != ownerID {
		return nil, models.NewForbiddenError("Only the post owner can decide on join requests")
	}
	if participant.Status == status {
		return nil, models.NewConflictError("Join request is already " + string(status))
	}

	if status == models.ParticipantApproved {
		if err := s.checkCapacity(ctx, post); err != nil {
			return nil, err
		}
	}

	prior := participant.Status
	participant.Status = status
	participant.DeletedAt = nil
	if err := s.participantRepo.Save(ctx, participant); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	message := joinDecisionMessage(owner.Username, status)

	if prior == models.ParticipantPending {
		// Turn the join-request notification around towards the joiner.
		notification, err := s.notificationRepo.FindByDetails(ctx, participant.UserID, ownerID, models.NotificationParticipant, participant.ID)
		if err != nil {
			return nil, err
		}
		if notification != nil {
			notification.ActorID = ownerID
			notification.UserID = participant.UserID
			notification.Message = message
			notification.IsRead = false
			if err := s.notificationRepo.Update(ctx, notification); err != nil {
				return nil, err
			}
			s.notificationSvc.Push(ctx, notification)
			return participant, nil
		}
	} else {
		// A decision notification already points at the joiner; refresh it.
		notification, err := s.notificationRepo.FindByDetails(ctx, ownerID, participant.UserID, models.NotificationParticipant, participant.ID)
		if err != nil {
			return nil, err
		}
		if notification != nil {
			notification.Message = message
			notification.IsRead = false
			if err := s.notificationRepo.Update(ctx, notification); err != nil {
				return nil, err
			}
			s.notificationSvc.Push(ctx, notification)
			return participant, nil
		}
	}

	if _, err := s.notificationSvc.Add(ctx, AddNotificationInput{
		UserID:        participant.UserID,
		ActorID:       ownerID,
		Type:          models.NotificationParticipant,
		TargetID:      participant.ID,
		RelatedPostID: &post.ID,
		Message:       message,
	}); err != nil {
		return nil, err
	}
	return participant, nil
}

// ListParticipants pages through a post's join requests with the given
// status. Anyone can see who got in; pending and declined requests are
// the owner's business only.
func (s *ParticipationService) ListParticipants(ctx context.Context, viewerID, postID uint, status models.ParticipantStatus, page, limit int) ([]models.Participant, models.Pagination, error) {
	if status != models.ParticipantApproved {
		post, err := s.postRepo.GetByID(ctx, postID)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		if post.UserID != viewerID {
			return nil, models.Pagination{}, models.NewForbiddenError("Only the post owner can view these participants")
		}
	}

	pagination := models.NewPagination(page, limit, 0)
	participants, total, err := s.participantRepo.ListByPostAndStatus(ctx, postID, status, pagination.Limit, pagination.Offset())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return participants, models.NewPagination(page, limit, total), nil
}

// ListJoined pages through posts the user has been approved to join.
func (s *ParticipationService) ListJoined(ctx context.Context, userID uint, page, limit int) ([]models.Participant, models.Pagination, error) {
	pagination := models.NewPagination(page, limit, 0)
	participants, total, err := s.participantRepo.ListApprovedByUser(ctx, userID, pagination.Limit, pagination.Offset())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return participants, models.NewPagination(page, limit, total), nil
}

// JoinStatus reports the caller's standing on the post. Viewers who never
// asked to join, or who withdrew, read as not joined.
func (s *ParticipationService) JoinStatus(ctx context.Context, userID, postID uint) (models.ParticipantStatus, error) {
	participant, err := s.participantRepo.GetByPostAndUser(ctx, postID, userID)
	if err != nil {
		return "", err
	}
	if participant == nil || participant.DeletedAt != nil {
		return models.ParticipantNotJoined, nil
	}
	return participant.Status, nil
}

// checkCapacity rejects the operation when the post's approved participant
// count has reached its cap. The count and the later write are not atomic;
// a concurrent approval can still land one over.
func (s *ParticipationService) checkCapacity(ctx context.Context, post *models.Post) error {
	if post.MaxParticipants == nil {
		return nil
	}
	approved, err := s.participantRepo.CountApproved(ctx, post.ID)
	if err != nil {
		return err
	}
	if approved >= int64(*post.MaxParticipants) {
		return models.NewCapacityError("This post is full")
	}
	return nil
}

// notifyJoinRequest tells the owner about a new or renewed join request,
// reviving the pair's earlier notification row when one exists.
func (s *ParticipationService) notifyJoinRequest(ctx context.Context, participant *models.Participant, post *models.Post, actor *models.User) {
	message := joinRequestMessage(actor.Username)

	existing, err := s.notificationRepo.FindByDetailsAny(ctx, actor.ID, post.UserID, models.NotificationParticipant, participant.ID)
	if err == nil && existing != nil {
		existing.ActorID = actor.ID
		existing.UserID = post.UserID
		existing.Message = message
		existing.IsRead = false
		existing.DeletedAt = nil
		s.notificationSvc.Refresh(ctx, existing)
		return
	}

	s.notificationSvc.Record(ctx, AddNotificationInput{
		UserID:        post.UserID,
		ActorID:       actor.ID,
		Type:          models.NotificationParticipant,
		TargetID:      participant.ID,
		RelatedPostID: &post.ID,
		Message:       message,
	})
}

func (s *ParticipationService) retireNotification(ctx context.Context, actorID, userID, targetID uint, at time.Time) error {
	notification, err := s.notificationRepo.FindByDetails(ctx, actorID, userID, models.NotificationParticipant, targetID)
	if err != nil {
		return err
	}
	if notification == nil {
		return nil
	}
	notification.DeletedAt = &at
	return s.notificationRepo.Update(ctx, notification)
}
