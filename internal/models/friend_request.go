package models

import "time"

// FriendRequestStatus represents the status of a directed friend-request edge.
type FriendRequestStatus string

const (
	// FriendRequestPending indicates a request awaiting the recipient's decision.
	FriendRequestPending FriendRequestStatus = "pending"
	// FriendRequestAccepted indicates the pair are friends.
	FriendRequestAccepted FriendRequestStatus = "accepted"
	// FriendRequestRejected indicates a declined or dissolved edge. Rejected
	// edges are reused when a request is re-sent, never deleted.
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest is a directed edge between two users. The "friends" relation
// is derived: an accepted edge in either direction makes both users friends.
// One row exists per unordered pair; re-sends reopen or reverse the existing
// row rather than creating a second one.
type FriendRequest struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	FromUserID uint                `gorm:"not null;uniqueIndex:idx_friend_requests_pair" json:"from_user_id"`
	ToUserID   uint                `gorm:"not null;uniqueIndex:idx_friend_requests_pair" json:"to_user_id"`
	Status     FriendRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`

	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

// TableName specifies the table name for GORM.
func (FriendRequest) TableName() string {
	return "friend_requests"
}

// CounterpartID returns the other user on the edge.
func (f *FriendRequest) CounterpartID(userID uint) uint {
	if f.FromUserID == userID {
		return f.ToUserID
	}
	return f.FromUserID
}
