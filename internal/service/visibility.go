package service

import (
	"context"

	"gather/internal/models"
	"gather/internal/repository"
)

// VisibilityPolicy decides whether a viewer may see a given post. The same
// policy backs both single-post reads and the batched list queries, which
// encode it in SQL.
type VisibilityPolicy struct {
	friendRepo repository.FriendRepository
}

// NewVisibilityPolicy returns a new VisibilityPolicy.
func NewVisibilityPolicy(friendRepo repository.FriendRepository) *VisibilityPolicy {
	return &VisibilityPolicy{friendRepo: friendRepo}
}

// CanViewPost reports whether viewerID (nil for anonymous) may see the post.
// Owners always see their own posts; friend-only posts additionally require
// an accepted friendship with the owner.
func (p *VisibilityPolicy) CanViewPost(ctx context.Context, viewerID *uint, post *models.Post) (bool, error) {
	if post.Privacy == models.PrivacyPublic {
		return true, nil
	}
	if viewerID == nil {
		return false, nil
	}
	if *viewerID == post.UserID {
		return true, nil
	}
	friendship, err := p.friendRepo.GetAcceptedBetween(ctx, *viewerID, post.UserID)
	if err != nil {
		return false, err
	}
	return friendship != nil, nil
}
