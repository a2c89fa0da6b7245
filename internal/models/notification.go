package models

import "time"

// Notification types. NEW_POST is renderable but no core operation emits it.
const (
	NotificationLike    = "LIKE"
	NotificationComment = "COMMENT"
	NotificationNewPost = "NEW_POST"
)

// Notification is an activity notification addressed to a single member.
// Actor fields are denormalized snapshots of the member who acted.
type Notification struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"not null;index;size:36" json:"user_id"`
	ActorID     string    `gorm:"not null;size:36" json:"actor_id"`
	ActorName   string    `json:"actor_name"`
	ActorAvatar string    `gorm:"type:text" json:"actor_avatar"`
	Type        string    `gorm:"not null" json:"type"`
	PostID      string    `gorm:"index;size:36" json:"post_id"`
	Content     string    `gorm:"type:text" json:"content"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
	Timestamp   int64     `gorm:"index" json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}
