package database

import (
	"gather/internal/models"

	"gorm.io/gorm"
)

// MigratedModels lists every model AutoMigrate manages, in dependency order.
func MigratedModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.ActivePost{},
		&models.FriendRequest{},
		&models.Participant{},
		&models.Interaction{},
		&models.Comment{},
		&models.Notification{},
		&models.Setting{},
	}
}

// Migrate runs schema migrations for all registered models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(MigratedModels()...)
}
