// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"gather/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var activityCategories = []string{
	"coffee", "food", "sports", "boardgames", "hiking", "music",
	"study", "movies", "running", "photography",
}

var activityPrompts = []string{
	"Anyone up for %s near %s? I'll be there around %s.",
	"Looking for a few people to join me for %s at %s, starting %s.",
	"Spontaneous %s meetup at %s! Kicking off %s.",
	"First time hosting: %s at %s. Swing by from %s.",
}

// CreateUser constructs and persists a sample user placed randomly within
// a few kilometres of the seed centre.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Username:     gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:        gofakeit.Email(),
		PasswordHash: string(hashedPassword),
		AvatarURL:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		IsPremium:    f.rng.Intn(5) == 0,
		Latitude:     f.opts.CenterLat + (f.rng.Float64()-0.5)*0.08,
		Longitude:    f.opts.CenterLng + (f.rng.Float64()-0.5)*0.08,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a post for the given user together with
// its active-post projection. Roughly one in five posts is friends-only.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	category := activityCategories[f.rng.Intn(len(activityCategories))]
	venue := gofakeit.Company()
	startAt := time.Now().Add(time.Duration(30+f.rng.Intn(180)) * time.Minute)

	privacy := models.PrivacyPublic
	if f.rng.Intn(5) == 0 {
		privacy = models.PrivacyFriend
	}

	var maxParticipants *int
	if f.rng.Intn(2) == 0 {
		n := 2 + f.rng.Intn(8)
		maxParticipants = &n
	}

	prompt := activityPrompts[f.rng.Intn(len(activityPrompts))]
	post := &models.Post{
		UserID:    user.ID,
		Content:   fmt.Sprintf(prompt, category, venue, startAt.Format("3:04 PM")),
		ImageURLs: fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		Privacy:   privacy,
		Latitude:  user.Latitude + (f.rng.Float64()-0.5)*0.02,
		Longitude: user.Longitude + (f.rng.Float64()-0.5)*0.02,
		SelectedLocation: models.SelectedLocation{
			LocationName: venue,
			Address:      gofakeit.Address().Address,
			PlaceType:    "venue",
			Category:     category,
		},
		MaxParticipants: maxParticipants,
		ExpiredAt:       time.Now().Add(time.Duration(1+f.rng.Intn(4)) * time.Hour),
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	if post.DeletedAt == nil && post.ExpiredAt.After(time.Now()) {
		if err := f.db.Create(models.ProjectPost(post)).Error; err != nil {
			return nil, err
		}
	}
	return post, nil
}

// CreateFriendRequest persists a directed friend-request edge.
func (f *Factory) CreateFriendRequest(from, to *models.User, status models.FriendRequestStatus) (*models.FriendRequest, error) {
	request := &models.FriendRequest{
		FromUserID: from.ID,
		ToUserID:   to.ID,
		Status:     status,
	}
	if err := f.db.Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// CreateParticipant persists a join request from `user` against `post`.
func (f *Factory) CreateParticipant(user *models.User, post *models.Post, status models.ParticipantStatus) (*models.Participant, error) {
	participant := &models.Participant{
		PostID: post.ID,
		UserID: user.ID,
		Status: status,
	}
	if err := f.db.Create(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

// CreateComment constructs and persists a comment on the provided post.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(8),
		UserID:  user.ID,
		PostID:  post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateInteraction persists a reaction from `user` on `post`.
func (f *Factory) CreateInteraction(user *models.User, post *models.Post, reaction models.InteractionType) (*models.Interaction, error) {
	interaction := &models.Interaction{
		UserID: user.ID,
		PostID: post.ID,
		Type:   reaction,
	}
	if err := f.db.Create(interaction).Error; err != nil {
		return nil, err
	}
	return interaction, nil
}

// CreateNotification persists a notification row directly, bypassing the
// service layer. Used to pre-populate inboxes.
func (f *Factory) CreateNotification(actor, recipient *models.User, kind models.NotificationType, targetID uint, message string) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:   recipient.ID,
		ActorID:  actor.ID,
		Type:     kind,
		TargetID: targetID,
		Message:  message,
	}
	if err := f.db.Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}
