package repository

import (
	"context"
	"testing"
	"time"

	"gather/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivePostRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivePostRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")

	project := func(post *models.Post) *models.ActivePost {
		projection := models.ProjectPost(post)
		require.NoError(t, repo.Create(ctx, projection))
		return projection
	}

	t.Run("CreateMirrorsPost", func(t *testing.T) {
		post := createTestPost(t, db, owner)
		projection := project(post)

		fetched, err := repo.GetByPostID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, projection.ID, fetched.ID)
		assert.Equal(t, post.Content, fetched.Content)
		assert.Equal(t, post.ExpiredAt.Unix(), fetched.ExpiredAt.Unix())
	})

	t.Run("PatchKeepsProjectionInSync", func(t *testing.T) {
		post := createTestPost(t, db, owner)
		project(post)

		fields := map[string]interface{}{"content": "rescheduled to 8pm"}
		require.NoError(t, postRepo.Patch(ctx, post.ID, fields))
		require.NoError(t, repo.Patch(ctx, post.ID, fields))

		fetched, err := repo.GetByPostID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "rescheduled to 8pm", fetched.Content)
	})

	t.Run("DeleteByPostIDIsHard", func(t *testing.T) {
		post := createTestPost(t, db, owner)
		project(post)

		require.NoError(t, repo.DeleteByPostID(ctx, post.ID))
		_, err := repo.GetByPostID(ctx, post.ID)
		require.Error(t, err)

		var count int64
		db.Model(&models.ActivePost{}).Where("post_id = ?", post.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("ListExpired", func(t *testing.T) {
		now := time.Now()
		live := createTestPost(t, db, owner)
		project(live)
		stale := createTestPost(t, db, owner, func(p *models.Post) {
			p.ExpiredAt = now.Add(-time.Minute)
		})
		staleProjection := project(stale)

		expired, err := repo.ListExpired(ctx, now)
		require.NoError(t, err)
		require.Len(t, expired, 1)
		assert.Equal(t, staleProjection.ID, expired[0].ID)
	})

	t.Run("OwnerBypassesGeoFilter", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewActivePostRepository(db)
		owner := createTestUser(t, db, "owner2")
		viewer := createTestUser(t, db, "viewer2")

		own := createTestPost(t, db, owner)
		friendsOnly := createTestPost(t, db, owner, func(p *models.Post) {
			p.Privacy = models.PrivacyFriend
		})
		for _, p := range []*models.Post{own, friendsOnly} {
			require.NoError(t, repo.Create(ctx, models.ProjectPost(p)))
		}

		// Owner sees both of their posts.
		posts, total, err := repo.ListVisible(ctx, VisibleQuery{ViewerID: owner.ID, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, posts, 2)

		// A stranger sees only the public one.
		posts, total, err = repo.ListVisible(ctx, VisibleQuery{ViewerID: viewer.ID, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, posts, 1)
		assert.Equal(t, own.ID, posts[0].PostID)

		// With the friendship edge, the friend post appears too.
		posts, total, err = repo.ListVisible(ctx, VisibleQuery{
			ViewerID: viewer.ID, FriendIDs: []uint{owner.ID}, Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, posts, 2)
	})
}
