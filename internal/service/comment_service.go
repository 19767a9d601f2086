package service

import (
	"context"
	"strings"
	"time"

	"gather/internal/models"
	"gather/internal/repository"
)

// CommentService owns comments on posts.
type CommentService struct {
	commentRepo      repository.CommentRepository
	postRepo         repository.PostRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	notificationSvc  *NotificationService
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, userRepo repository.UserRepository, notificationRepo repository.NotificationRepository, notificationSvc *NotificationService) *CommentService {
	return &CommentService{
		commentRepo:      commentRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notificationSvc:  notificationSvc,
	}
}

// CreateComment adds a comment to a post and notifies its owner.
func (s *CommentService) CreateComment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if userID != post.UserID {
		s.notificationSvc.Record(ctx, AddNotificationInput{
			UserID:        post.UserID,
			ActorID:       userID,
			Type:          models.NotificationComment,
			TargetID:      comment.ID,
			RelatedPostID: &post.ID,
			Message:       commentMessage(actor.Username),
		})
	}
	return comment, nil
}

// GetComments pages through a post's comments, newest first.
func (s *CommentService) GetComments(ctx context.Context, postID uint, page, limit int) ([]models.Comment, models.Pagination, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, models.Pagination{}, err
	}
	pagination := models.NewPagination(page, limit, 0)
	comments, total, err := s.commentRepo.ListByPost(ctx, postID, pagination.Limit, pagination.Offset())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return comments, models.NewPagination(page, limit, total), nil
}

// DeleteComment removes a comment. The comment author and the post owner
// may both delete it.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if err != nil {
		return err
	}
	if comment.UserID != userID && post.UserID != userID {
		return models.NewForbiddenError("You cannot delete this comment")
	}

	now := time.Now()
	if err := s.commentRepo.SoftDelete(ctx, commentID, now); err != nil {
		return err
	}

	notification, err := s.notificationRepo.FindByDetails(ctx, comment.UserID, post.UserID, models.NotificationComment, commentID)
	if err != nil {
		return err
	}
	if notification != nil {
		notification.DeletedAt = &now
		return s.notificationRepo.Update(ctx, notification)
	}
	return nil
}
