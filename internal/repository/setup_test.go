package repository

import (
	"testing"
	"time"

	"gather/internal/database"
	"gather/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(database.MigratedModels()...); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, owner *models.User, overrides ...func(*models.Post)) *models.Post {
	t.Helper()

	post := &models.Post{
		UserID:    owner.ID,
		Content:   "coffee at the corner cafe",
		Privacy:   models.PrivacyPublic,
		Latitude:  43.65,
		Longitude: -79.38,
		ExpiredAt: time.Now().Add(time.Hour),
	}
	for _, override := range overrides {
		override(post)
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	return post
}
