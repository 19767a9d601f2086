package models

import "time"

// PostPrivacy controls who may see a post.
type PostPrivacy string

const (
	// PrivacyPublic makes a post visible to everyone, including anonymous viewers.
	PrivacyPublic PostPrivacy = "public"
	// PrivacyFriend restricts a post to the owner and their friends.
	PrivacyFriend PostPrivacy = "friend"
)

// SelectedLocation is the venue metadata attached to a post.
type SelectedLocation struct {
	LocationName string `gorm:"size:255" json:"location_name"`
	Address      string `gorm:"size:255" json:"address"`
	PlaceType    string `gorm:"size:60" json:"place_type"`
	Category     string `gorm:"size:60;index" json:"category"`
}

// Post represents a time-bounded activity invitation.
//
// DeletedAt is a plain nullable timestamp rather than gorm.DeletedAt: the
// expiry sweep and owner-initiated deletion share the field, and several
// queries need to see soft-deleted rows explicitly.
type Post struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	UserID           uint             `gorm:"not null;index" json:"user_id"`
	User             User             `gorm:"foreignKey:UserID" json:"user"`
	Content          string           `gorm:"type:text;not null" json:"content"`
	ImageURLs        string           `gorm:"type:text" json:"image_urls"`
	Privacy          PostPrivacy      `gorm:"type:varchar(10);not null;default:'public'" json:"privacy"`
	Latitude         float64          `gorm:"not null;index:idx_posts_location" json:"latitude"`
	Longitude        float64          `gorm:"not null;index:idx_posts_location" json:"longitude"`
	SelectedLocation SelectedLocation `gorm:"embedded;embeddedPrefix:selected_" json:"selected_location"`
	MaxParticipants  *int             `json:"max_participants"`
	ExpiredAt        time.Time        `gorm:"not null;index" json:"expired_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        *time.Time       `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// IsExpired reports whether the post's deadline has passed at the given time.
func (p *Post) IsExpired(now time.Time) bool {
	return !p.ExpiredAt.After(now)
}

// PostPatch carries a partial update. Nil fields are left untouched, down to
// the individual selected-location sub-fields.
type PostPatch struct {
	Content         *string      `json:"content"`
	Privacy         *PostPrivacy `json:"privacy"`
	ImageURLs       *string      `json:"image_urls"`
	Latitude        *float64     `json:"latitude"`
	Longitude       *float64     `json:"longitude"`
	MaxParticipants *int         `json:"max_participants"`
	LocationName    *string      `json:"location_name"`
	Address         *string      `json:"address"`
	PlaceType       *string      `json:"place_type"`
	Category        *string      `json:"category"`
}

// Fields returns the patch as a column->value map usable with gorm Updates.
func (p PostPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Content != nil {
		fields["content"] = *p.Content
	}
	if p.Privacy != nil {
		fields["privacy"] = *p.Privacy
	}
	if p.ImageURLs != nil {
		fields["image_urls"] = *p.ImageURLs
	}
	if p.Latitude != nil {
		fields["latitude"] = *p.Latitude
	}
	if p.Longitude != nil {
		fields["longitude"] = *p.Longitude
	}
	if p.MaxParticipants != nil {
		fields["max_participants"] = *p.MaxParticipants
	}
	if p.LocationName != nil {
		fields["selected_location_name"] = *p.LocationName
	}
	if p.Address != nil {
		fields["selected_address"] = *p.Address
	}
	if p.PlaceType != nil {
		fields["selected_place_type"] = *p.PlaceType
	}
	if p.Category != nil {
		fields["selected_category"] = *p.Category
	}
	return fields
}
