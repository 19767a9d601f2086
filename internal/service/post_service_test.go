package service

import (
	"context"
	"testing"
	"time"

	"gather/internal/models"
	"gather/internal/repository"
)

type postServiceDeps struct {
	postRepo         *postRepoStub
	activePostRepo   *activePostRepoStub
	userRepo         *userRepoStub
	friendRepo       *friendRepoStub
	participantRepo  *participantRepoStub
	notificationRepo *notificationRepoStub
	settingRepo      *settingRepoStub
}

func noopPostServiceDeps() postServiceDeps {
	return postServiceDeps{
		postRepo:         noopPostRepo(),
		activePostRepo:   noopActivePostRepo(),
		userRepo:         noopUserRepo(),
		friendRepo:       noopFriendRepo(),
		participantRepo:  noopParticipantRepo(),
		notificationRepo: noopNotificationRepo(),
		settingRepo:      noopSettingRepo(),
	}
}

func newPostService(deps postServiceDeps) *PostService {
	return NewPostService(
		deps.postRepo,
		deps.activePostRepo,
		deps.userRepo,
		deps.friendRepo,
		deps.participantRepo,
		deps.notificationRepo,
		NewSettingsService(deps.settingRepo),
		NewVisibilityPolicy(deps.friendRepo),
	)
}

func validCreateInput() CreatePostInput {
	return CreatePostInput{
		Content:   "Pickup basketball at the park",
		Privacy:   models.PrivacyPublic,
		Latitude:  43.6532,
		Longitude: -79.3832,
	}
}

func TestPostServiceCreateValidation(t *testing.T) {
	svc := newPostService(noopPostServiceDeps())

	cases := []struct {
		name   string
		mutate func(*CreatePostInput)
	}{
		{"EmptyContent", func(in *CreatePostInput) { in.Content = "   " }},
		{"BadPrivacy", func(in *CreatePostInput) { in.Privacy = models.PostPrivacy("secret") }},
		{"BadLatitude", func(in *CreatePostInput) { in.Latitude = 91 }},
		{"BadLongitude", func(in *CreatePostInput) { in.Longitude = -181 }},
		{"ZeroCapacity", func(in *CreatePostInput) {
			zero := 0
			in.MaxParticipants = &zero
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateInput()
			tc.mutate(&input)
			_, err := svc.CreatePost(context.Background(), 1, input)
			assertAppErrorCode(t, err, models.CodeValidation)
		})
	}
}

func TestPostServiceCreateDefaultsToPublic(t *testing.T) {
	deps := noopPostServiceDeps()
	var created *models.Post
	deps.postRepo.createFn = func(_ context.Context, post *models.Post) error {
		post.ID = 7
		created = post
		return nil
	}

	svc := newPostService(deps)
	input := validCreateInput()
	input.Privacy = ""
	if _, err := svc.CreatePost(context.Background(), 1, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Privacy != models.PrivacyPublic {
		t.Fatalf("expected public, got %s", created.Privacy)
	}
}

func TestPostServiceCreateProjects(t *testing.T) {
	deps := noopPostServiceDeps()
	deps.postRepo.createFn = func(_ context.Context, post *models.Post) error {
		post.ID = 7
		return nil
	}
	var projected *models.ActivePost
	deps.activePostRepo.createFn = func(_ context.Context, activePost *models.ActivePost) error {
		projected = activePost
		return nil
	}

	svc := newPostService(deps)
	before := time.Now()
	if _, err := svc.CreatePost(context.Background(), 1, validCreateInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if projected == nil {
		t.Fatal("expected a projection row alongside the post")
	}
	if projected.PostID != 7 || projected.UserID != 1 {
		t.Fatalf("unexpected projection %+v", projected)
	}
	// Default tier expiry is one hour.
	expiry := projected.ExpiredAt.Sub(before)
	if expiry < 59*time.Minute || expiry > 61*time.Minute {
		t.Fatalf("unexpected expiry offset %v", expiry)
	}
}

func TestPostServiceGetPostHidesInvisible(t *testing.T) {
	deps := noopPostServiceDeps()
	deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 5, Privacy: models.PrivacyFriend, ExpiredAt: time.Now().Add(time.Hour)}, nil
	}

	svc := newPostService(deps)
	viewer := uint(2)
	_, err := svc.GetPost(context.Background(), &viewer, 10)
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestPostServiceGetPostOwnerSeesOwn(t *testing.T) {
	deps := noopPostServiceDeps()
	deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 5, Privacy: models.PrivacyFriend, ExpiredAt: time.Now().Add(time.Hour)}, nil
	}

	svc := newPostService(deps)
	owner := uint(5)
	post, err := svc.GetPost(context.Background(), &owner, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 10 {
		t.Fatalf("unexpected post %+v", post)
	}
}

func TestPostServiceUpdateNotOwner(t *testing.T) {
	deps := noopPostServiceDeps()
	deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 5, ExpiredAt: time.Now().Add(time.Hour)}, nil
	}

	svc := newPostService(deps)
	content := "new content"
	_, err := svc.UpdatePost(context.Background(), 2, 10, models.PostPatch{Content: &content})
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestPostServiceUpdateEmptyPatchNoWrites(t *testing.T) {
	deps := noopPostServiceDeps()
	deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, ExpiredAt: time.Now().Add(time.Hour)}, nil
	}
	deps.postRepo.patchFn = func(context.Context, uint, map[string]interface{}) error {
		t.Fatal("empty patch must not write")
		return nil
	}

	svc := newPostService(deps)
	post, err := svc.UpdatePost(context.Background(), 2, 10, models.PostPatch{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 10 {
		t.Fatalf("unexpected post %+v", post)
	}
}

func TestPostServiceUpdateMirrorsProjection(t *testing.T) {
	deps := noopPostServiceDeps()
	deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, ExpiredAt: time.Now().Add(time.Hour)}, nil
	}
	var postFields, projectionFields map[string]interface{}
	deps.postRepo.patchFn = func(_ context.Context, _ uint, fields map[string]interface{}) error {
		postFields = fields
		return nil
	}
	deps.activePostRepo.patchFn = func(_ context.Context, _ uint, fields map[string]interface{}) error {
		projectionFields = fields
		return nil
	}

	svc := newPostService(deps)
	content := "moved to the other court"
	if _, err := svc.UpdatePost(context.Background(), 2, 10, models.PostPatch{Content: &content}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if postFields["content"] != content {
		t.Fatalf("unexpected post patch %v", postFields)
	}
	if projectionFields["content"] != content {
		t.Fatalf("projection patch should carry the same fields, got %v", projectionFields)
	}
}

func TestPostServiceUpdateRejectsBadCoordinates(t *testing.T) {
	deps := noopPostServiceDeps()
	deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, Latitude: 43.6, Longitude: -79.4, ExpiredAt: time.Now().Add(time.Hour)}, nil
	}

	svc := newPostService(deps)
	lat := 95.0
	_, err := svc.UpdatePost(context.Background(), 2, 10, models.PostPatch{Latitude: &lat})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestPostServiceDeleteCascades(t *testing.T) {
	deps := noopPostServiceDeps()
	deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, ExpiredAt: time.Now().Add(time.Hour)}, nil
	}
	var order []string
	deps.postRepo.softDeleteFn = func(context.Context, uint, time.Time) error {
		order = append(order, "post")
		return nil
	}
	deps.activePostRepo.deleteByPostIDFn = func(context.Context, uint) error {
		order = append(order, "projection")
		return nil
	}
	deps.notificationRepo.softDeleteByRelatedPostFn = func(context.Context, uint, time.Time) error {
		order = append(order, "notifications")
		return nil
	}
	deps.participantRepo.softDeleteByPostFn = func(context.Context, uint, time.Time) error {
		order = append(order, "participants")
		return nil
	}

	svc := newPostService(deps)
	if err := svc.DeletePost(context.Background(), 2, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"post", "projection", "notifications", "participants"}
	if len(order) != len(want) {
		t.Fatalf("expected cascade %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected cascade %v, got %v", want, order)
		}
	}
}

func TestPostServiceDeleteNotOwner(t *testing.T) {
	deps := noopPostServiceDeps()
	deps.postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 5, ExpiredAt: time.Now().Add(time.Hour)}, nil
	}
	svc := newPostService(deps)
	err := svc.DeletePost(context.Background(), 2, 10)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestPostServiceListAnonymousQuery(t *testing.T) {
	deps := noopPostServiceDeps()
	var captured repository.VisibleQuery
	deps.postRepo.listVisibleFn = func(_ context.Context, q repository.VisibleQuery, _ time.Time) ([]models.Post, int64, error) {
		captured = q
		return nil, 0, nil
	}

	svc := newPostService(deps)
	if _, _, err := svc.ListPosts(context.Background(), nil, ListOptions{Page: 1, Limit: 20}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.ViewerID != 0 || captured.FriendIDs != nil {
		t.Fatalf("anonymous query should carry no viewer, got %+v", captured)
	}
	if captured.Geo.RadiusKm != 0 {
		t.Fatalf("anonymous query should carry no radius, got %+v", captured.Geo)
	}
}

func TestPostServiceListViewerQuery(t *testing.T) {
	deps := noopPostServiceDeps()
	deps.userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Latitude: 43.6532, Longitude: -79.3832}, nil
	}
	deps.friendRepo.friendIDsFn = func(context.Context, uint) ([]uint, error) {
		return []uint{4, 9}, nil
	}
	var captured repository.VisibleQuery
	deps.postRepo.listVisibleFn = func(_ context.Context, q repository.VisibleQuery, _ time.Time) ([]models.Post, int64, error) {
		captured = q
		return nil, 42, nil
	}

	svc := newPostService(deps)
	viewer := uint(2)
	_, pagination, err := svc.ListPosts(context.Background(), &viewer, ListOptions{Category: "sports", Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.ViewerID != 2 || len(captured.FriendIDs) != 2 {
		t.Fatalf("unexpected query %+v", captured)
	}
	if captured.Category != "sports" || captured.Limit != 10 || captured.Offset != 10 {
		t.Fatalf("unexpected query paging %+v", captured)
	}
	// Default tier radius is 2km.
	if captured.Geo.RadiusKm != 2.0 {
		t.Fatalf("unexpected radius %v", captured.Geo.RadiusKm)
	}
	if pagination.Total != 42 || !pagination.HasMore {
		t.Fatalf("unexpected pagination %+v", pagination)
	}
}

func TestPostServiceListUserPostsDropsRadius(t *testing.T) {
	deps := noopPostServiceDeps()
	deps.userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Latitude: 43.6532, Longitude: -79.3832}, nil
	}
	var captured repository.VisibleQuery
	deps.postRepo.listByUserFn = func(_ context.Context, _ uint, q repository.VisibleQuery, _ time.Time) ([]models.Post, int64, error) {
		captured = q
		return nil, 0, nil
	}

	svc := newPostService(deps)
	viewer := uint(2)
	if _, _, err := svc.ListUserPosts(context.Background(), &viewer, 5, ListOptions{Page: 1, Limit: 20}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Geo.RadiusKm != 0 {
		t.Fatalf("profile listing should not be distance-bounded, got %+v", captured.Geo)
	}
}
