// Package mapper converts stored rows into the wire entities served by the
// API, and partial wire entities back into rows for writes. All functions
// are pure and total: missing optional fields are defaulted, never rejected.
package mapper

import (
	"net/url"
	"strings"
	"time"

	"clubhub/internal/models"

	"github.com/google/uuid"
)

// User is the wire shape of a member.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

// Post is the wire shape of a feed post.
type Post struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	UserName     string   `json:"userName"`
	UserAvatar   string   `json:"userAvatar"`
	Content      string   `json:"content"`
	Image        string   `json:"image,omitempty"`
	Timestamp    int64    `json:"timestamp"`
	Likes        []string `json:"likes"`
	CommentCount int      `json:"commentCount"`
}

// Comment is the wire shape of a comment.
type Comment struct {
	ID         string `json:"id"`
	PostID     string `json:"postId"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	UserAvatar string `json:"userAvatar"`
	Content    string `json:"content"`
	Timestamp  int64  `json:"timestamp"`
}

// Notification is the wire shape of a notification.
type Notification struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	ActorID     string `json:"actorId"`
	ActorName   string `json:"actorName"`
	ActorAvatar string `json:"actorAvatar"`
	Type        string `json:"type"`
	PostID      string `json:"postId,omitempty"`
	Content     string `json:"content,omitempty"`
	IsRead      bool   `json:"isRead"`
	Timestamp   int64  `json:"timestamp"`
}

// Event is the wire shape of a club event.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Image       string   `json:"image,omitempty"`
	Attendees   []string `json:"attendees"`
}

// AvatarURL derives a generated placeholder avatar from a display name.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name)
}

// displayTimestamp prefers the explicit numeric timestamp, falling back to
// the row creation time.
func displayTimestamp(ts int64, createdAt time.Time) int64 {
	if ts != 0 {
		return ts
	}
	if createdAt.IsZero() {
		return 0
	}
	return createdAt.UnixMilli()
}

// displayName falls back to the email local part, then "Unknown".
func displayName(name, email string) string {
	if name != "" {
		return name
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return "Unknown"
}

// UserEntity maps a member row to its wire shape, substituting a generated
// avatar when none is stored.
func UserEntity(row *models.User) User {
	name := displayName(row.Name, row.Email)
	avatar := row.Avatar
	if avatar == "" {
		avatar = AvatarURL(name)
	}
	role := row.Role
	if role == "" {
		role = models.RoleMember
	}
	return User{ID: row.ID, Name: name, Avatar: avatar, Role: role}
}

// UserEntities maps a slice of member rows.
func UserEntities(rows []models.User) []User {
	out := make([]User, len(rows))
	for i := range rows {
		out[i] = UserEntity(&rows[i])
	}
	return out
}

// PostEntity maps a post row to its wire shape.
func PostEntity(row *models.Post) Post {
	likes := row.Likes
	if likes == nil {
		likes = models.IDSet{}
	}
	return Post{
		ID:           row.ID,
		UserID:       row.UserID,
		UserName:     row.UserName,
		UserAvatar:   row.UserAvatar,
		Content:      row.Content,
		Image:        row.Image,
		Timestamp:    displayTimestamp(row.Timestamp, row.CreatedAt),
		Likes:        likes,
		CommentCount: row.CommentCount,
	}
}

// PostEntities maps a slice of post rows.
func PostEntities(rows []models.Post) []Post {
	out := make([]Post, len(rows))
	for i := range rows {
		out[i] = PostEntity(&rows[i])
	}
	return out
}

// CommentEntity maps a comment row to its wire shape.
func CommentEntity(row *models.Comment) Comment {
	return Comment{
		ID:         row.ID,
		PostID:     row.PostID,
		UserID:     row.UserID,
		UserName:   row.UserName,
		UserAvatar: row.UserAvatar,
		Content:    row.Content,
		Timestamp:  displayTimestamp(row.Timestamp, row.CreatedAt),
	}
}

// CommentEntities maps a slice of comment rows.
func CommentEntities(rows []models.Comment) []Comment {
	out := make([]Comment, len(rows))
	for i := range rows {
		out[i] = CommentEntity(&rows[i])
	}
	return out
}

// NotificationEntity maps a notification row to its wire shape.
func NotificationEntity(row *models.Notification) Notification {
	return Notification{
		ID:          row.ID,
		UserID:      row.UserID,
		ActorID:     row.ActorID,
		ActorName:   row.ActorName,
		ActorAvatar: row.ActorAvatar,
		Type:        row.Type,
		PostID:      row.PostID,
		Content:     row.Content,
		IsRead:      row.IsRead,
		Timestamp:   displayTimestamp(row.Timestamp, row.CreatedAt),
	}
}

// NotificationEntities maps a slice of notification rows.
func NotificationEntities(rows []models.Notification) []Notification {
	out := make([]Notification, len(rows))
	for i := range rows {
		out[i] = NotificationEntity(&rows[i])
	}
	return out
}

// EventEntity maps an event row to its wire shape.
func EventEntity(row *models.Event) Event {
	attendees := row.Attendees
	if attendees == nil {
		attendees = models.IDSet{}
	}
	return Event{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Date:        row.Date,
		Time:        row.Time,
		Location:    row.Location,
		Image:       row.Image,
		Attendees:   attendees,
	}
}

// EventEntities maps a slice of event rows.
func EventEntities(rows []models.Event) []Event {
	out := make([]Event, len(rows))
	for i := range rows {
		out[i] = EventEntity(&rows[i])
	}
	return out
}

// NewPostRow builds a post row for insertion from a partial wire post and
// the acting member. Likes and the comment count are forced to their empty
// values regardless of what the caller supplied; blank id and timestamp get
// server defaults.
func NewPostRow(in Post, author User) models.Post {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	ts := in.Timestamp
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}
	return models.Post{
		ID:           id,
		UserID:       author.ID,
		UserName:     author.Name,
		UserAvatar:   author.Avatar,
		Content:      in.Content,
		Image:        in.Image,
		Timestamp:    ts,
		Likes:        models.IDSet{},
		CommentCount: 0,
	}
}

// NewCommentRow builds a comment row for insertion from a partial wire
// comment and the acting member.
func NewCommentRow(in Comment, author User) models.Comment {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	ts := in.Timestamp
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}
	return models.Comment{
		ID:         id,
		PostID:     in.PostID,
		UserID:     author.ID,
		UserName:   author.Name,
		UserAvatar: author.Avatar,
		Content:    in.Content,
		Timestamp:  ts,
	}
}

// NewEventRow builds an event row for insertion from a wire event.
func NewEventRow(in Event) models.Event {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	return models.Event{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Location:    in.Location,
		Image:       in.Image,
		Attendees:   models.IDSet{},
	}
}

// SessionUser maps a verified member row into the wire user attached to the
// request context, with the same defaulting as UserEntity.
func SessionUser(row *models.User) User {
	return UserEntity(row)
}
