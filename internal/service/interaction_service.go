package service

import (
	"context"
	"time"

	"gather/internal/models"
	"gather/internal/repository"
)

// InteractionService owns like/dislike reactions. Reacting is a toggle, and
// the two reaction kinds are mutually exclusive: setting one flips or
// retires the other.
type InteractionService struct {
	interactionRepo  repository.InteractionRepository
	postRepo         repository.PostRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	notificationSvc  *NotificationService
}

// NewInteractionService returns a new InteractionService.
func NewInteractionService(interactionRepo repository.InteractionRepository, postRepo repository.PostRepository, userRepo repository.UserRepository, notificationRepo repository.NotificationRepository, notificationSvc *NotificationService) *InteractionService {
	return &InteractionService{
		interactionRepo:  interactionRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notificationSvc:  notificationSvc,
	}
}

// ToggleResult says what a reaction toggle did.
type ToggleResult string

const (
	// ToggleCreated means the reaction is now active.
	ToggleCreated ToggleResult = "created"
	// ToggleRemoved means the reaction was withdrawn.
	ToggleRemoved ToggleResult = "removed"
)

// ToggleReaction sets, flips, or withdraws the user's reaction on a post.
func (s *InteractionService) ToggleReaction(ctx context.Context, userID, postID uint, reaction models.InteractionType) (ToggleResult, *models.Interaction, error) {
	if !models.ValidReaction(reaction) {
		return "", nil, models.NewValidationError("Reaction must be like or dislike")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return "", nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	opposite, err := s.interactionRepo.FindByType(ctx, userID, postID, models.OppositeReaction(reaction))
	if err != nil {
		return "", nil, err
	}
	if opposite != nil {
		opposite.Type = reaction
		opposite.DeletedAt = nil
		if err := s.interactionRepo.Save(ctx, opposite); err != nil {
			return "", nil, err
		}
		if userID != post.UserID {
			s.reviveReactionNotification(ctx, opposite, post, actor, reaction)
		}
		return ToggleCreated, opposite, nil
	}

	existing, err := s.interactionRepo.FindByType(ctx, userID, postID, reaction)
	if err != nil {
		return "", nil, err
	}

	if existing == nil {
		interaction := &models.Interaction{
			UserID: userID,
			PostID: postID,
			Type:   reaction,
		}
		if err := s.interactionRepo.Create(ctx, interaction); err != nil {
			return "", nil, err
		}
		if userID != post.UserID {
			s.notificationSvc.Record(ctx, AddNotificationInput{
				UserID:        post.UserID,
				ActorID:       userID,
				Type:          models.NotificationInteraction,
				TargetID:      interaction.ID,
				RelatedPostID: &post.ID,
				Message:       reactionMessage(actor.Username, reaction),
			})
		}
		return ToggleCreated, interaction, nil
	}

	if existing.Active() {
		now := time.Now()
		existing.DeletedAt = &now
		if err := s.interactionRepo.Save(ctx, existing); err != nil {
			return "", nil, err
		}
		if userID != post.UserID {
			notification, err := s.notificationRepo.FindByDetails(ctx, userID, post.UserID, models.NotificationInteraction, existing.ID)
			if err != nil {
				return "", nil, err
			}
			if notification != nil {
				notification.DeletedAt = &now
				if err := s.notificationRepo.Update(ctx, notification); err != nil {
					return "", nil, err
				}
			}
		}
		return ToggleRemoved, existing, nil
	}

	existing.DeletedAt = nil
	if err := s.interactionRepo.Save(ctx, existing); err != nil {
		return "", nil, err
	}
	if userID != post.UserID {
		s.reviveReactionNotification(ctx, existing, post, actor, reaction)
	}
	return ToggleCreated, existing, nil
}

// reviveReactionNotification restores or refreshes the notification for a
// reaction that came back, creating one only when the pair never had one.
func (s *InteractionService) reviveReactionNotification(ctx context.Context, interaction *models.Interaction, post *models.Post, actor *models.User, reaction models.InteractionType) {
	message := reactionMessage(actor.Username, reaction)

	existing, err := s.notificationRepo.FindByDetailsAny(ctx, actor.ID, post.UserID, models.NotificationInteraction, interaction.ID)
	if err == nil && existing != nil {
		existing.Message = message
		existing.IsRead = false
		existing.DeletedAt = nil
		s.notificationSvc.Refresh(ctx, existing)
		return
	}

	s.notificationSvc.Record(ctx, AddNotificationInput{
		UserID:        post.UserID,
		ActorID:       actor.ID,
		Type:          models.NotificationInteraction,
		TargetID:      interaction.ID,
		RelatedPostID: &post.ID,
		Message:       message,
	})
}

// Counts returns the post's active like, dislike, and approved join counts.
func (s *InteractionService) Counts(ctx context.Context, postID uint) (*models.InteractionCounts, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.interactionRepo.CountsByPost(ctx, postID)
}

// ListReactors pages through users with an active reaction on the post.
func (s *InteractionService) ListReactors(ctx context.Context, postID uint, reaction models.InteractionType, page, limit int) ([]models.User, models.Pagination, error) {
	if !models.ValidReaction(reaction) {
		return nil, models.Pagination{}, models.NewValidationError("Reaction must be like or dislike")
	}
	pagination := models.NewPagination(page, limit, 0)
	users, total, err := s.interactionRepo.ListUsersByPost(ctx, postID, reaction, pagination.Limit, pagination.Offset())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return users, models.NewPagination(page, limit, total), nil
}
