package models

import "time"

// ActivePost is the denormalized "what's happening near me" projection of a
// Post. It is owned exclusively by the projection maintainer: created with the
// post, patched with it, hard-deleted on post soft-delete and by the expiry
// sweep. It must never outlive its ExpiredAt (the sweep guarantees eventual,
// not immediate, removal).
type ActivePost struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	PostID           uint             `gorm:"not null;uniqueIndex" json:"post_id"`
	UserID           uint             `gorm:"not null;index" json:"user_id"`
	User             User             `gorm:"foreignKey:UserID" json:"user"`
	Content          string           `gorm:"type:text" json:"content"`
	ImageURLs        string           `gorm:"type:text" json:"image_urls"`
	Privacy          PostPrivacy      `gorm:"type:varchar(10);not null;default:'public'" json:"privacy"`
	Latitude         float64          `gorm:"not null;index:idx_active_posts_location" json:"latitude"`
	Longitude        float64          `gorm:"not null;index:idx_active_posts_location" json:"longitude"`
	SelectedLocation SelectedLocation `gorm:"embedded;embeddedPrefix:selected_" json:"selected_location"`
	MaxParticipants  *int             `json:"max_participants"`
	ExpiredAt        time.Time        `gorm:"not null;index" json:"expired_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (ActivePost) TableName() string {
	return "active_posts"
}

// ProjectPost builds the projection row mirroring the canonical post.
func ProjectPost(post *Post) *ActivePost {
	return &ActivePost{
		PostID:           post.ID,
		UserID:           post.UserID,
		Content:          post.Content,
		ImageURLs:        post.ImageURLs,
		Privacy:          post.Privacy,
		Latitude:         post.Latitude,
		Longitude:        post.Longitude,
		SelectedLocation: post.SelectedLocation,
		MaxParticipants:  post.MaxParticipants,
		ExpiredAt:        post.ExpiredAt,
	}
}
