package service

import (
	"context"
	"strings"
	"time"

	"gather/internal/geo"
	"gather/internal/models"
	"gather/internal/repository"
)

// PostService owns the post lifecycle and the active-post projection that
// shadows it. Every write to a post is mirrored into the projection so the
// feed can be served from one narrow table.
type PostService struct {
	postRepo         repository.PostRepository
	activePostRepo   repository.ActivePostRepository
	userRepo         repository.UserRepository
	friendRepo       repository.FriendRepository
	participantRepo  repository.ParticipantRepository
	notificationRepo repository.NotificationRepository
	settings         *SettingsService
	visibility       *VisibilityPolicy
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	activePostRepo repository.ActivePostRepository,
	userRepo repository.UserRepository,
	friendRepo repository.FriendRepository,
	participantRepo repository.ParticipantRepository,
	notificationRepo repository.NotificationRepository,
	settings *SettingsService,
	visibility *VisibilityPolicy,
) *PostService {
	return &PostService{
		postRepo:         postRepo,
		activePostRepo:   activePostRepo,
		userRepo:         userRepo,
		friendRepo:       friendRepo,
		participantRepo:  participantRepo,
		notificationRepo: notificationRepo,
		settings:         settings,
		visibility:       visibility,
	}
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	Content          string
	Privacy          models.PostPrivacy
	ImageURLs        string
	Latitude         float64
	Longitude        float64
	SelectedLocation models.SelectedLocation
	MaxParticipants  *int
}

// CreatePost creates a post with a tier-dependent expiry and projects it
// into the active-post table.
func (s *PostService) CreatePost(ctx context.Context, userID uint, input CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, models.NewValidationError("Post content is required")
	}
	if input.Privacy == "" {
		input.Privacy = models.PrivacyPublic
	}
	if input.Privacy != models.PrivacyPublic && input.Privacy != models.PrivacyFriend {
		return nil, models.NewValidationError("Privacy must be public or friend")
	}
	point := geo.Point{Latitude: input.Latitude, Longitude: input.Longitude}
	if !point.Valid() {
		return nil, models.NewValidationError("Invalid coordinates")
	}
	if input.MaxParticipants != nil && *input.MaxParticipants < 1 {
		return nil, models.NewValidationError("Max participants must be at least 1")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:           userID,
		Content:          input.Content,
		Privacy:          input.Privacy,
		ImageURLs:        input.ImageURLs,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		SelectedLocation: input.SelectedLocation,
		MaxParticipants:  input.MaxParticipants,
		ExpiredAt:        time.Now().Add(s.settings.PostExpiry(ctx, user.IsPremium)),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	if err := s.activePostRepo.Create(ctx, models.ProjectPost(post)); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns the post when the viewer may see it. Posts the viewer may
// not see report not found, so their existence does not leak.
func (s *PostService) GetPost(ctx context.Context, viewerID *uint, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	visible, err := s.visibility.CanViewPost(ctx, viewerID, post)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

// UpdatePost applies a partial update to the caller's post and mirrors the
// changed columns into the projection.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID uint, patch models.PostPatch) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}
	if patch.Privacy != nil && *patch.Privacy != models.PrivacyPublic && *patch.Privacy != models.PrivacyFriend {
		return nil, models.NewValidationError("Privacy must be public or friend")
	}
	if patch.Latitude != nil || patch.Longitude != nil {
		lat, lng := post.Latitude, post.Longitude
		if patch.Latitude != nil {
			lat = *patch.Latitude
		}
		if patch.Longitude != nil {
			lng = *patch.Longitude
		}
		if !(geo.Point{Latitude: lat, Longitude: lng}).Valid() {
			return nil, models.NewValidationError("Invalid coordinates")
		}
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return post, nil
	}
	if err := s.postRepo.Patch(ctx, postID, fields); err != nil {
		return nil, err
	}
	if err := s.activePostRepo.Patch(ctx, postID, fields); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// DeletePost soft-deletes the caller's post and cascades: the projection row
// goes away for good, the post's notifications are retired, and open join
// requests are closed.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	now := time.Now()
	if err := s.postRepo.SoftDelete(ctx, postID, now); err != nil {
		return err
	}
	if err := s.activePostRepo.DeleteByPostID(ctx, postID); err != nil {
		return err
	}
	if err := s.notificationRepo.SoftDeleteByRelatedPost(ctx, postID, now); err != nil {
		return err
	}
	return s.participantRepo.SoftDeleteByPost(ctx, postID, now)
}

// ListOptions narrows a feed query.
type ListOptions struct {
	Category string
	Page     int
	Limit    int
}

// visibleQuery assembles the SQL-side visibility inputs for a viewer: their
// friend set, and a radius around their stored location sized by their tier.
// Anonymous viewers get no radius and see public posts only.
func (s *PostService) visibleQuery(ctx context.Context, viewerID *uint, opts ListOptions) (repository.VisibleQuery, error) {
	pagination := models.NewPagination(opts.Page, opts.Limit, 0)
	q := repository.VisibleQuery{
		Category: opts.Category,
		Limit:    pagination.Limit,
		Offset:   pagination.Offset(),
	}
	if viewerID == nil {
		return q, nil
	}

	viewer, err := s.userRepo.GetByID(ctx, *viewerID)
	if err != nil {
		return q, err
	}
	friendIDs, err := s.friendRepo.FriendIDs(ctx, *viewerID)
	if err != nil {
		return q, err
	}

	q.ViewerID = *viewerID
	q.FriendIDs = friendIDs
	center := geo.Point{Latitude: viewer.Latitude, Longitude: viewer.Longitude}
	if center.Valid() && (center.Latitude != 0 || center.Longitude != 0) {
		q.Geo = geo.Filter{
			Center:   center,
			RadiusKm: s.settings.SearchRadiusKm(ctx, viewer.IsPremium),
		}
	}
	return q, nil
}

// ListPosts returns posts the viewer may see, newest first.
func (s *PostService) ListPosts(ctx context.Context, viewerID *uint, opts ListOptions) ([]models.Post, models.Pagination, error) {
	q, err := s.visibleQuery(ctx, viewerID, opts)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	posts, total, err := s.postRepo.ListVisible(ctx, q, time.Now())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return posts, models.NewPagination(opts.Page, opts.Limit, total), nil
}

// ListActivePosts serves the live feed from the projection. The viewer's own
// posts appear regardless of distance; everyone else's are bounded by the
// viewer's radius and visibility.
func (s *PostService) ListActivePosts(ctx context.Context, viewerID *uint, opts ListOptions) ([]models.ActivePost, models.Pagination, error) {
	q, err := s.visibleQuery(ctx, viewerID, opts)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	activePosts, total, err := s.activePostRepo.ListVisible(ctx, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return activePosts, models.NewPagination(opts.Page, opts.Limit, total), nil
}

// ListUserPosts returns a user's posts as seen by the viewer. Owners see
// everything they wrote, expired included; everyone else sees what the
// visibility rules allow.
func (s *PostService) ListUserPosts(ctx context.Context, viewerID *uint, targetUserID uint, opts ListOptions) ([]models.Post, models.Pagination, error) {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, models.Pagination{}, err
	}
	q, err := s.visibleQuery(ctx, viewerID, opts)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	// Profile pages are not distance-bounded.
	q.Geo = geo.Filter{}
	posts, total, err := s.postRepo.ListByUser(ctx, targetUserID, q, time.Now())
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return posts, models.NewPagination(opts.Page, opts.Limit, total), nil
}
