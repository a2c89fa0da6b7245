// Package seed creates demo data for development environments.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"clubhub/internal/mapper"
	"clubhub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds club entities and persists them. Development and tests only.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a Factory bound to the given DB.
func NewFactory(db *gorm.DB) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Factory{db: db, rand: rand.New(rand.NewSource(seed))}
}

// pastMillis returns a timestamp up to maxDays in the past, in epoch millis.
func (f *Factory) pastMillis(maxDays int) int64 {
	back := time.Duration(f.rand.Intn(maxDays*24*60)) * time.Minute
	return time.Now().Add(-back).UnixMilli()
}

// CreateMember persists a generated member. Overrides run before saving.
func (f *Factory) CreateMember(overrides ...func(*models.User)) (*models.User, error) {
	name := gofakeit.Name()
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	member := &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    gofakeit.Email(),
		Password: string(hash),
		Avatar:   mapper.AvatarURL(name),
		Role:     models.RoleMember,
	}
	for _, override := range overrides {
		override(member)
	}

	if err := f.db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// CreatePost persists a generated post authored by the given member.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		ID:         uuid.NewString(),
		UserID:     author.ID,
		UserName:   author.Name,
		UserAvatar: author.Avatar,
		Content:    gofakeit.Paragraph(1, 2, 8, " "),
		Timestamp:  f.pastMillis(30),
		Likes:      models.IDSet{},
	}
	if f.rand.Intn(4) == 0 {
		post.Image = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", uuid.NewString()[:8])
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment and bumps the post's counter.
func (f *Factory) CreateComment(post *models.Post, author *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		ID:         uuid.NewString(),
		PostID:     post.ID,
		UserID:     author.ID,
		UserName:   author.Name,
		UserAvatar: author.Avatar,
		Content:    gofakeit.Sentence(8),
		Timestamp:  post.Timestamp + int64(f.rand.Intn(3600_000)),
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}

	post.CommentCount++
	if err := f.db.Model(&models.Post{}).Where("id = ?", post.ID).
		Update("comment_count", post.CommentCount).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateEvent persists a generated upcoming event.
func (f *Factory) CreateEvent(overrides ...func(*models.Event)) (*models.Event, error) {
	day := time.Now().AddDate(0, 0, 1+f.rand.Intn(60))
	event := &models.Event{
		ID:          uuid.NewString(),
		Title:       gofakeit.HipsterSentence(3),
		Description: gofakeit.Paragraph(1, 2, 6, " "),
		Date:        day.Format("2006-01-02"),
		Time:        fmt.Sprintf("%02d:%02d", 9+f.rand.Intn(10), 15*f.rand.Intn(4)),
		Location:    gofakeit.Street(),
		Attendees:   models.IDSet{},
	}
	for _, override := range overrides {
		override(event)
	}

	if err := f.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// CreateNotification persists a notification from actor to recipient.
func (f *Factory) CreateNotification(recipient, actor *models.User, post *models.Post, kind string) (*models.Notification, error) {
	notif := &models.Notification{
		ID:          uuid.NewString(),
		UserID:      recipient.ID,
		ActorID:     actor.ID,
		ActorName:   actor.Name,
		ActorAvatar: actor.Avatar,
		Type:        kind,
		PostID:      post.ID,
		Timestamp:   post.Timestamp + int64(f.rand.Intn(7200_000)),
	}
	if kind == models.NotificationComment {
		notif.Content = gofakeit.Sentence(6)
	}

	if err := f.db.Create(notif).Error; err != nil {
		return nil, err
	}
	return notif, nil
}
