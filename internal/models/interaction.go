package models

import "time"

// InteractionType is a reaction kind on a post.
type InteractionType string

const (
	// InteractionLike is a like reaction.
	InteractionLike InteractionType = "like"
	// InteractionDislike is a dislike reaction.
	InteractionDislike InteractionType = "dislike"
)

// OppositeReaction returns the mutually-exclusive counterpart of t.
func OppositeReaction(t InteractionType) InteractionType {
	if t == InteractionLike {
		return InteractionDislike
	}
	return InteractionLike
}

// ValidReaction reports whether t is a toggleable reaction type.
func ValidReaction(t InteractionType) bool {
	return t == InteractionLike || t == InteractionDislike
}

// Interaction is a (user, post, type) reaction edge. The soft-delete marker
// doubles as the "currently active" flag: a row with DeletedAt set is an
// inactive reaction awaiting restore. At most one of like/dislike is active
// per (user, post) at a time; the toggle flips Type on the existing row
// instead of creating a second one.
type Interaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;uniqueIndex:idx_interactions_user_post_type" json:"user_id"`
	PostID    uint            `gorm:"not null;uniqueIndex:idx_interactions_user_post_type" json:"post_id"`
	Type      InteractionType `gorm:"type:varchar(10);not null;uniqueIndex:idx_interactions_user_post_type" json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt *time.Time      `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

// TableName specifies the table name for GORM.
func (Interaction) TableName() string {
	return "interactions"
}

// Active reports whether the reaction currently counts.
func (i *Interaction) Active() bool {
	return i.DeletedAt == nil
}

// InteractionCounts summarizes the reactions on a post. Join counts approved
// participants, not interaction rows.
type InteractionCounts struct {
	Like    int64 `json:"like"`
	Dislike int64 `json:"dislike"`
	Join    int64 `json:"join"`
}
