package models

import "time"

// NotificationType tags which kind of object a notification points at.
type NotificationType string

const (
	// NotificationComment points at a Comment.
	NotificationComment NotificationType = "comment"
	// NotificationInteraction points at an Interaction.
	NotificationInteraction NotificationType = "interaction"
	// NotificationFriendRequest points at a FriendRequest.
	NotificationFriendRequest NotificationType = "friendRequest"
	// NotificationParticipant points at a Participant.
	NotificationParticipant NotificationType = "participant"
)

// Notification is a durable record that an actor did something the recipient
// should hear about. At most one non-soft-deleted notification exists per
// (actor, recipient, type, target) tuple; callers consult FindByDetails
// before deciding to create, update or restore. The invariant is advisory
// under concurrent writers since no unique index backs it.
type Notification struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	UserID        uint             `gorm:"not null;index" json:"user_id"`
	ActorID       uint             `gorm:"not null;index" json:"actor_id"`
	Type          NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	TargetID      uint             `gorm:"not null;index" json:"target_id"`
	RelatedPostID *uint            `gorm:"index" json:"related_post_id"`
	Message       string           `gorm:"type:text" json:"message"`
	IsRead        bool             `gorm:"not null;default:false" json:"is_read"`
	ExpiredAt     *time.Time       `json:"expired_at"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     *time.Time       `gorm:"index" json:"-"`

	User  User `gorm:"foreignKey:UserID" json:"-"`
	Actor User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// TableName specifies the table name for GORM.
func (Notification) TableName() string {
	return "notifications"
}
