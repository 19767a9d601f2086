package models

import "time"

// ParticipantStatus represents a join request's position in its workflow.
type ParticipantStatus string

const (
	// ParticipantPending means the join request awaits the post owner's decision.
	ParticipantPending ParticipantStatus = "pending"
	// ParticipantApproved means the owner accepted the join request.
	ParticipantApproved ParticipantStatus = "approved"
	// ParticipantRejected means the owner declined; terminal for the joiner.
	ParticipantRejected ParticipantStatus = "rejected"
	// ParticipantCancelled means the joiner withdrew the request.
	ParticipantCancelled ParticipantStatus = "cancelled"
	// ParticipantNotJoined is a synthetic status for viewers with no live
	// join record on the post. Never stored.
	ParticipantNotJoined ParticipantStatus = "not_joined"
)

// ValidParticipantDecision reports whether s is a status a post owner may set.
func ValidParticipantDecision(s ParticipantStatus) bool {
	return s == ParticipantApproved || s == ParticipantRejected
}

// Participant is a user's join-request record against a post. The unique
// (post, user) index forces the same row to be reused across cancel/restore
// cycles; the soft-delete marker is orthogonal to Status.
type Participant struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	PostID    uint              `gorm:"not null;uniqueIndex:idx_participants_post_user" json:"post_id"`
	UserID    uint              `gorm:"not null;uniqueIndex:idx_participants_post_user" json:"user_id"`
	Status    ParticipantStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	JoinedAt  time.Time         `gorm:"autoCreateTime" json:"joined_at"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt *time.Time        `gorm:"index" json:"-"`

	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM.
func (Participant) TableName() string {
	return "participants"
}
