package seed

import (
	"fmt"
	"log"

	"gather/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers  int
	NumPosts  int
	CenterLat float64
	CenterLng float64
}

// Seeder populates the database with a realistic social mesh: users with
// locations, friendships in every status, nearby activity posts with join
// requests, reactions and comments, plus the operator settings the services
// consult.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 50
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 200
	}
	if opts.CenterLat == 0 && opts.CenterLng == 0 {
		// Downtown Toronto
		opts.CenterLat = 43.6532
		opts.CenterLng = -79.3832
	}
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll truncates every seeded table. Order matters for FK constraints.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"notifications", "interactions", "comments", "participants",
		"active_posts", "posts", "friend_requests", "settings", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the full dataset.
func (s *Seeder) Run() error {
	log.Printf("Seeding %d users and %d posts...", s.opts.NumUsers, s.opts.NumPosts)

	if err := s.seedSettings(); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	users, err := s.seedUsers()
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	log.Printf("created %d users", len(users))

	if err := s.seedFriendMesh(users); err != nil {
		return fmt.Errorf("seed friendships: %w", err)
	}

	posts, err := s.seedPosts(users)
	if err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := s.seedEngagement(users, posts); err != nil {
		return fmt.Errorf("seed engagement: %w", err)
	}

	log.Println("seeding complete; all users have the password: password123")
	return nil
}

func (s *Seeder) seedSettings() error {
	defaults := []models.Setting{
		{Key: models.SettingPostExpiryNormal, Value: "3600", Description: "Post lifetime in seconds for standard users"},
		{Key: models.SettingPostExpiryPremium, Value: "10800", Description: "Post lifetime in seconds for premium users"},
		{Key: models.SettingSearchRadiusNormal, Value: "2", Description: "Feed radius in km for standard users"},
		{Key: models.SettingSearchRadiusPremium, Value: "10", Description: "Feed radius in km for premium users"},
	}
	for i := range defaults {
		err := s.db.Where(models.Setting{Key: defaults[i].Key}).
			FirstOrCreate(&defaults[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedUsers() ([]*models.User, error) {
	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// seedFriendMesh links each user to a handful of others. Most edges are
// accepted so friends-only posts have an audience; a sprinkling stay pending
// or rejected to exercise the request flows.
func (s *Seeder) seedFriendMesh(users []*models.User) error {
	seen := make(map[[2]uint]bool)
	for _, user := range users {
		degree := 2 + s.factory.rng.Intn(4)
		for j := 0; j < degree; j++ {
			other := users[s.factory.rng.Intn(len(users))]
			if other.ID == user.ID {
				continue
			}
			key := [2]uint{user.ID, other.ID}
			if user.ID > other.ID {
				key = [2]uint{other.ID, user.ID}
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			status := models.FriendRequestAccepted
			switch s.factory.rng.Intn(10) {
			case 0:
				status = models.FriendRequestPending
			case 1:
				status = models.FriendRequestRejected
			}
			if _, err := s.factory.CreateFriendRequest(user, other, status); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedPosts(users []*models.User) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, s.opts.NumPosts)
	for i := 0; i < s.opts.NumPosts; i++ {
		owner := users[s.factory.rng.Intn(len(users))]
		post, err := s.factory.CreatePost(owner)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) seedEngagement(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		joiners := s.factory.rng.Intn(4)
		for j := 0; j < joiners; j++ {
			user := users[s.factory.rng.Intn(len(users))]
			if user.ID == post.UserID {
				continue
			}
			status := models.ParticipantPending
			if s.factory.rng.Intn(2) == 0 {
				status = models.ParticipantApproved
			}
			participant, err := s.factory.CreateParticipant(user, post, status)
			if err != nil {
				// unique (post, user) index; duplicates are fine to skip
				continue
			}
			owner := &models.User{ID: post.UserID}
			if _, err := s.factory.CreateNotification(user, owner, models.NotificationParticipant,
				participant.ID, fmt.Sprintf("%s wants to join your post.", user.Username)); err != nil {
				return err
			}
		}

		reactors := s.factory.rng.Intn(6)
		for j := 0; j < reactors; j++ {
			user := users[s.factory.rng.Intn(len(users))]
			reaction := models.InteractionLike
			if s.factory.rng.Intn(5) == 0 {
				reaction = models.InteractionDislike
			}
			if _, err := s.factory.CreateInteraction(user, post, reaction); err != nil {
				continue
			}
		}

		if s.factory.rng.Intn(3) == 0 {
			user := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(user, post); err != nil {
				return err
			}
		}
	}
	return nil
}
