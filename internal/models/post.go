package models

import "time"

// Post represents a feed post. Author name and avatar are snapshots taken
// at post time and are not live-updated when the profile changes.
type Post struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"not null;index;size:36" json:"user_id"`
	UserName     string    `json:"user_name"`
	UserAvatar   string    `gorm:"type:text" json:"user_avatar"`
	Content      string    `gorm:"type:text" json:"content"`
	Image        string    `gorm:"type:text" json:"image"`
	Timestamp    int64     `gorm:"index" json:"timestamp"`
	Likes        IDSet     `gorm:"serializer:json" json:"likes"`
	CommentCount int       `gorm:"not null;default:0" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Comment represents a comment on a post, with denormalized author fields.
type Comment struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	PostID     string    `gorm:"not null;index;size:36" json:"post_id"`
	UserID     string    `gorm:"not null;size:36" json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `gorm:"type:text" json:"user_avatar"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Timestamp  int64     `gorm:"index" json:"timestamp"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
