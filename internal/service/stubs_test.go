package service

import (
	"context"
	"time"

	"gather/internal/models"
	"gather/internal/repository"
)

// Function-field stubs for the repository interfaces. Each noop constructor
// returns a stub whose every method succeeds with zero values; tests override
// the fields they care about.

type userRepoStub struct {
	createFn         func(context.Context, *models.User) error
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	updateLocationFn func(context.Context, uint, float64, float64) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) UpdateLocation(ctx context.Context, id uint, latitude, longitude float64) error {
	return s.updateLocationFn(ctx, id, latitude, longitude)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(context.Context, *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) {
			return &models.User{}, nil
		},
		getByEmailFn: func(context.Context, string) (*models.User, error) {
			return &models.User{}, nil
		},
		updateLocationFn: func(context.Context, uint, float64, float64) error { return nil },
	}
}

type friendRepoStub struct {
	createFn             func(context.Context, *models.FriendRequest) error
	getByIDFn            func(context.Context, uint) (*models.FriendRequest, error)
	getDirectedFn        func(context.Context, uint, uint) (*models.FriendRequest, error)
	getAcceptedBetweenFn func(context.Context, uint, uint) (*models.FriendRequest, error)
	friendIDsFn          func(context.Context, uint) ([]uint, error)
	friendsFn            func(context.Context, uint) ([]models.User, error)
	countFriendsFn       func(context.Context, uint) (int64, error)
	pendingReceivedFn    func(context.Context, uint, int, int) ([]models.FriendRequest, int64, error)
	pendingSentFn        func(context.Context, uint, int, int) ([]models.FriendRequest, int64, error)
	updateStatusFn       func(context.Context, uint, models.FriendRequestStatus) error
	repointFn            func(context.Context, uint, uint, uint, models.FriendRequestStatus) error
}

func (s *friendRepoStub) Create(ctx context.Context, request *models.FriendRequest) error {
	return s.createFn(ctx, request)
}
func (s *friendRepoStub) GetByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *friendRepoStub) GetDirected(ctx context.Context, fromUserID, toUserID uint) (*models.FriendRequest, error) {
	return s.getDirectedFn(ctx, fromUserID, toUserID)
}
func (s *friendRepoStub) GetAcceptedBetween(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	return s.getAcceptedBetweenFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.friendIDsFn(ctx, userID)
}
func (s *friendRepoStub) Friends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendsFn(ctx, userID)
}
func (s *friendRepoStub) CountFriends(ctx context.Context, userID uint) (int64, error) {
	return s.countFriendsFn(ctx, userID)
}
func (s *friendRepoStub) PendingReceived(ctx context.Context, userID uint, limit, offset int) ([]models.FriendRequest, int64, error) {
	return s.pendingReceivedFn(ctx, userID, limit, offset)
}
func (s *friendRepoStub) PendingSent(ctx context.Context, userID uint, limit, offset int) ([]models.FriendRequest, int64, error) {
	return s.pendingSentFn(ctx, userID, limit, offset)
}
func (s *friendRepoStub) UpdateStatus(ctx context.Context, requestID uint, status models.FriendRequestStatus) error {
	return s.updateStatusFn(ctx, requestID, status)
}
func (s *friendRepoStub) Repoint(ctx context.Context, requestID, fromUserID, toUserID uint, status models.FriendRequestStatus) error {
	return s.repointFn(ctx, requestID, fromUserID, toUserID, status)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createFn: func(context.Context, *models.FriendRequest) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.FriendRequest, error) {
			return &models.FriendRequest{ID: id}, nil
		},
		getDirectedFn:        func(context.Context, uint, uint) (*models.FriendRequest, error) { return nil, nil },
		getAcceptedBetweenFn: func(context.Context, uint, uint) (*models.FriendRequest, error) { return nil, nil },
		friendIDsFn:          func(context.Context, uint) ([]uint, error) { return nil, nil },
		friendsFn:            func(context.Context, uint) ([]models.User, error) { return nil, nil },
		countFriendsFn:       func(context.Context, uint) (int64, error) { return 0, nil },
		pendingReceivedFn: func(context.Context, uint, int, int) ([]models.FriendRequest, int64, error) {
			return nil, 0, nil
		},
		pendingSentFn: func(context.Context, uint, int, int) ([]models.FriendRequest, int64, error) {
			return nil, 0, nil
		},
		updateStatusFn: func(context.Context, uint, models.FriendRequestStatus) error { return nil },
		repointFn:      func(context.Context, uint, uint, uint, models.FriendRequestStatus) error { return nil },
	}
}

type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint) (*models.Post, error)
	patchFn       func(context.Context, uint, map[string]interface{}) error
	softDeleteFn  func(context.Context, uint, time.Time) error
	countByUserFn func(context.Context, uint) (int64, error)
	listVisibleFn func(context.Context, repository.VisibleQuery, time.Time) ([]models.Post, int64, error)
	listByUserFn  func(context.Context, uint, repository.VisibleQuery, time.Time) ([]models.Post, int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Patch(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.patchFn(ctx, id, fields)
}
func (s *postRepoStub) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	return s.softDeleteFn(ctx, id, at)
}
func (s *postRepoStub) CountByUser(ctx context.Context, userID uint) (int64, error) {
	return s.countByUserFn(ctx, userID)
}
func (s *postRepoStub) ListVisible(ctx context.Context, q repository.VisibleQuery, now time.Time) ([]models.Post, int64, error) {
	return s.listVisibleFn(ctx, q, now)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, q repository.VisibleQuery, now time.Time) ([]models.Post, int64, error) {
	return s.listByUserFn(ctx, userID, q, now)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, ExpiredAt: time.Now().Add(time.Hour)}, nil
		},
		patchFn:       func(context.Context, uint, map[string]interface{}) error { return nil },
		softDeleteFn:  func(context.Context, uint, time.Time) error { return nil },
		countByUserFn: func(context.Context, uint) (int64, error) { return 0, nil },
		listVisibleFn: func(context.Context, repository.VisibleQuery, time.Time) ([]models.Post, int64, error) {
			return nil, 0, nil
		},
		listByUserFn: func(context.Context, uint, repository.VisibleQuery, time.Time) ([]models.Post, int64, error) {
			return nil, 0, nil
		},
	}
}

type activePostRepoStub struct {
	createFn         func(context.Context, *models.ActivePost) error
	getByPostIDFn    func(context.Context, uint) (*models.ActivePost, error)
	patchFn          func(context.Context, uint, map[string]interface{}) error
	deleteByPostIDFn func(context.Context, uint) error
	listExpiredFn    func(context.Context, time.Time) ([]models.ActivePost, error)
	listVisibleFn    func(context.Context, repository.VisibleQuery) ([]models.ActivePost, int64, error)
}

func (s *activePostRepoStub) Create(ctx context.Context, activePost *models.ActivePost) error {
	return s.createFn(ctx, activePost)
}
func (s *activePostRepoStub) GetByPostID(ctx context.Context, postID uint) (*models.ActivePost, error) {
	return s.getByPostIDFn(ctx, postID)
}
func (s *activePostRepoStub) Patch(ctx context.Context, postID uint, fields map[string]interface{}) error {
	return s.patchFn(ctx, postID, fields)
}
func (s *activePostRepoStub) DeleteByPostID(ctx context.Context, postID uint) error {
	return s.deleteByPostIDFn(ctx, postID)
}
func (s *activePostRepoStub) ListExpired(ctx context.Context, now time.Time) ([]models.ActivePost, error) {
	return s.listExpiredFn(ctx, now)
}
func (s *activePostRepoStub) ListVisible(ctx context.Context, q repository.VisibleQuery) ([]models.ActivePost, int64, error) {
	return s.listVisibleFn(ctx, q)
}

func noopActivePostRepo() *activePostRepoStub {
	return &activePostRepoStub{
		createFn: func(context.Context, *models.ActivePost) error { return nil },
		getByPostIDFn: func(_ context.Context, postID uint) (*models.ActivePost, error) {
			return &models.ActivePost{PostID: postID}, nil
		},
		patchFn:          func(context.Context, uint, map[string]interface{}) error { return nil },
		deleteByPostIDFn: func(context.Context, uint) error { return nil },
		listExpiredFn:    func(context.Context, time.Time) ([]models.ActivePost, error) { return nil, nil },
		listVisibleFn: func(context.Context, repository.VisibleQuery) ([]models.ActivePost, int64, error) {
			return nil, 0, nil
		},
	}
}

type participantRepoStub struct {
	createPendingFn       func(context.Context, uint, uint) (*models.Participant, error)
	getByIDFn             func(context.Context, uint) (*models.Participant, error)
	getByPostAndUserFn    func(context.Context, uint, uint) (*models.Participant, error)
	saveFn                func(context.Context, *models.Participant) error
	countApprovedFn       func(context.Context, uint) (int64, error)
	listByPostAndStatusFn func(context.Context, uint, models.ParticipantStatus, int, int) ([]models.Participant, int64, error)
	listApprovedByUserFn  func(context.Context, uint, int, int) ([]models.Participant, int64, error)
	softDeleteByPostFn    func(context.Context, uint, time.Time) error
}

func (s *participantRepoStub) CreatePending(ctx context.Context, postID, userID uint) (*models.Participant, error) {
	return s.createPendingFn(ctx, postID, userID)
}
func (s *participantRepoStub) GetByID(ctx context.Context, id uint) (*models.Participant, error) {
	return s.getByIDFn(ctx, id)
}
func (s *participantRepoStub) GetByPostAndUser(ctx context.Context, postID, userID uint) (*models.Participant, error) {
	return s.getByPostAndUserFn(ctx, postID, userID)
}
func (s *participantRepoStub) Save(ctx context.Context, participant *models.Participant) error {
	return s.saveFn(ctx, participant)
}
func (s *participantRepoStub) CountApproved(ctx context.Context, postID uint) (int64, error) {
	return s.countApprovedFn(ctx, postID)
}
func (s *participantRepoStub) ListByPostAndStatus(ctx context.Context, postID uint, status models.ParticipantStatus, limit, offset int) ([]models.Participant, int64, error) {
	return s.listByPostAndStatusFn(ctx, postID, status, limit, offset)
}
func (s *participantRepoStub) ListApprovedByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Participant, int64, error) {
	return s.listApprovedByUserFn(ctx, userID, limit, offset)
}
func (s *participantRepoStub) SoftDeleteByPost(ctx context.Context, postID uint, at time.Time) error {
	return s.softDeleteByPostFn(ctx, postID, at)
}

func noopParticipantRepo() *participantRepoStub {
	return &participantRepoStub{
		createPendingFn: func(_ context.Context, postID, userID uint) (*models.Participant, error) {
			return &models.Participant{ID: 1, PostID: postID, UserID: userID, Status: models.ParticipantPending}, nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Participant, error) {
			return &models.Participant{ID: id}, nil
		},
		getByPostAndUserFn: func(context.Context, uint, uint) (*models.Participant, error) { return nil, nil },
		saveFn:             func(context.Context, *models.Participant) error { return nil },
		countApprovedFn:    func(context.Context, uint) (int64, error) { return 0, nil },
		listByPostAndStatusFn: func(context.Context, uint, models.ParticipantStatus, int, int) ([]models.Participant, int64, error) {
			return nil, 0, nil
		},
		listApprovedByUserFn: func(context.Context, uint, int, int) ([]models.Participant, int64, error) {
			return nil, 0, nil
		},
		softDeleteByPostFn: func(context.Context, uint, time.Time) error { return nil },
	}
}

type interactionRepoStub struct {
	createFn          func(context.Context, *models.Interaction) error
	findByTypeFn      func(context.Context, uint, uint, models.InteractionType) (*models.Interaction, error)
	saveFn            func(context.Context, *models.Interaction) error
	countsByPostFn    func(context.Context, uint) (*models.InteractionCounts, error)
	listUsersByPostFn func(context.Context, uint, models.InteractionType, int, int) ([]models.User, int64, error)
}

func (s *interactionRepoStub) Create(ctx context.Context, interaction *models.Interaction) error {
	return s.createFn(ctx, interaction)
}
func (s *interactionRepoStub) FindByType(ctx context.Context, userID, postID uint, reaction models.InteractionType) (*models.Interaction, error) {
	return s.findByTypeFn(ctx, userID, postID, reaction)
}
func (s *interactionRepoStub) Save(ctx context.Context, interaction *models.Interaction) error {
	return s.saveFn(ctx, interaction)
}
func (s *interactionRepoStub) CountsByPost(ctx context.Context, postID uint) (*models.InteractionCounts, error) {
	return s.countsByPostFn(ctx, postID)
}
func (s *interactionRepoStub) ListUsersByPost(ctx context.Context, postID uint, reaction models.InteractionType, limit, offset int) ([]models.User, int64, error) {
	return s.listUsersByPostFn(ctx, postID, reaction, limit, offset)
}

func noopInteractionRepo() *interactionRepoStub {
	return &interactionRepoStub{
		createFn: func(_ context.Context, interaction *models.Interaction) error {
			interaction.ID = 1
			return nil
		},
		findByTypeFn: func(context.Context, uint, uint, models.InteractionType) (*models.Interaction, error) {
			return nil, nil
		},
		saveFn:         func(context.Context, *models.Interaction) error { return nil },
		countsByPostFn: func(context.Context, uint) (*models.InteractionCounts, error) { return &models.InteractionCounts{}, nil },
		listUsersByPostFn: func(context.Context, uint, models.InteractionType, int, int) ([]models.User, int64, error) {
			return nil, 0, nil
		},
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, int, int) ([]models.Comment, int64, error)
	softDeleteFn func(context.Context, uint, time.Time) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	return s.softDeleteFn(ctx, id, at)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, comment *models.Comment) error {
			comment.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(context.Context, uint, int, int) ([]models.Comment, int64, error) { return nil, 0, nil },
		softDeleteFn: func(context.Context, uint, time.Time) error { return nil },
	}
}

type notificationRepoStub struct {
	createFn                  func(context.Context, *models.Notification) error
	getByIDFn                 func(context.Context, uint) (*models.Notification, error)
	findByDetailsFn           func(context.Context, uint, uint, models.NotificationType, uint) (*models.Notification, error)
	findByDetailsAnyFn        func(context.Context, uint, uint, models.NotificationType, uint) (*models.Notification, error)
	updateFn                  func(context.Context, *models.Notification) error
	listByUserFn              func(context.Context, uint, int, int) ([]models.Notification, int64, error)
	countUnreadFn             func(context.Context, uint) (int64, error)
	markReadFn                func(context.Context, uint, uint) error
	markAllReadFn             func(context.Context, uint) error
	softDeleteByRelatedPostFn func(context.Context, uint, time.Time) error
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	return s.createFn(ctx, notification)
}
func (s *notificationRepoStub) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	return s.getByIDFn(ctx, id)
}
func (s *notificationRepoStub) FindByDetails(ctx context.Context, actorID, userID uint, kind models.NotificationType, targetID uint) (*models.Notification, error) {
	return s.findByDetailsFn(ctx, actorID, userID, kind, targetID)
}
func (s *notificationRepoStub) FindByDetailsAny(ctx context.Context, actorID, userID uint, kind models.NotificationType, targetID uint) (*models.Notification, error) {
	return s.findByDetailsAnyFn(ctx, actorID, userID, kind, targetID)
}
func (s *notificationRepoStub) Update(ctx context.Context, notification *models.Notification) error {
	return s.updateFn(ctx, notification)
}
func (s *notificationRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, int64, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *notificationRepoStub) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.countUnreadFn(ctx, userID)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, id, userID uint) error {
	return s.markReadFn(ctx, id, userID)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID uint) error {
	return s.markAllReadFn(ctx, userID)
}
func (s *notificationRepoStub) SoftDeleteByRelatedPost(ctx context.Context, postID uint, at time.Time) error {
	return s.softDeleteByRelatedPostFn(ctx, postID, at)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn: func(_ context.Context, notification *models.Notification) error {
			notification.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Notification, error) {
			return &models.Notification{ID: id}, nil
		},
		findByDetailsFn: func(context.Context, uint, uint, models.NotificationType, uint) (*models.Notification, error) {
			return nil, nil
		},
		findByDetailsAnyFn: func(context.Context, uint, uint, models.NotificationType, uint) (*models.Notification, error) {
			return nil, nil
		},
		updateFn:                  func(context.Context, *models.Notification) error { return nil },
		listByUserFn:              func(context.Context, uint, int, int) ([]models.Notification, int64, error) { return nil, 0, nil },
		countUnreadFn:             func(context.Context, uint) (int64, error) { return 0, nil },
		markReadFn:                func(context.Context, uint, uint) error { return nil },
		markAllReadFn:             func(context.Context, uint) error { return nil },
		softDeleteByRelatedPostFn: func(context.Context, uint, time.Time) error { return nil },
	}
}

type settingRepoStub struct {
	getByKeyFn func(context.Context, string) (*models.Setting, error)
	upsertFn   func(context.Context, *models.Setting) error
}

func (s *settingRepoStub) GetByKey(ctx context.Context, key string) (*models.Setting, error) {
	return s.getByKeyFn(ctx, key)
}
func (s *settingRepoStub) Upsert(ctx context.Context, setting *models.Setting) error {
	return s.upsertFn(ctx, setting)
}

func noopSettingRepo() *settingRepoStub {
	return &settingRepoStub{
		getByKeyFn: func(context.Context, string) (*models.Setting, error) { return nil, nil },
		upsertFn:   func(context.Context, *models.Setting) error { return nil },
	}
}

// newTestNotificationService builds a NotificationService on the given stub
// with no publisher, the common arrangement for domain-service tests.
func newTestNotificationService(repo *notificationRepoStub, postRepo *postRepoStub) *NotificationService {
	return NewNotificationService(repo, postRepo, nil)
}
