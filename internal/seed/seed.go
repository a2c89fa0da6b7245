package seed

import (
	"fmt"
	"log"

	"clubhub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data gets created.
type Options struct {
	NumMembers int
	NumPosts   int
	NumEvents  int
	Clean      bool
}

// DefaultOptions is a sensible demo dataset.
func DefaultOptions() Options {
	return Options{NumMembers: 12, NumPosts: 40, NumEvents: 5, Clean: true}
}

// Seed populates the database with a demo club. One admin account is always
// created with a known login (admin@clubhub.local / demo-admin-pass).
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d members, %d posts, %d events...", opts.NumMembers, opts.NumPosts, opts.NumEvents)

	if opts.Clean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db)

	admin, err := createAdmin(f)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	members := []*models.User{admin}
	for i := 1; i < opts.NumMembers; i++ {
		m, err := f.CreateMember()
		if err != nil {
			return fmt.Errorf("failed to create member: %w", err)
		}
		members = append(members, m)
	}
	log.Printf("created %d members", len(members))

	for i := 0; i < opts.NumPosts; i++ {
		author := members[f.rand.Intn(len(members))]
		post, err := f.CreatePost(author)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		// Some members like the post; each like from someone else leaves a
		// notification for the author.
		for _, fan := range pick(f, members, f.rand.Intn(4)) {
			if post.Likes.Has(fan.ID) {
				continue
			}
			post.Likes, _ = post.Likes.Toggle(fan.ID)
			if fan.ID != author.ID {
				if _, err := f.CreateNotification(author, fan, post, models.NotificationLike); err != nil {
					return fmt.Errorf("failed to create notification: %w", err)
				}
			}
		}
		if len(post.Likes) > 0 {
			if err := db.Model(&models.Post{}).Where("id = ?", post.ID).
				Update("likes", post.Likes).Error; err != nil {
				return fmt.Errorf("failed to store likes: %w", err)
			}
		}

		for _, commenter := range pick(f, members, f.rand.Intn(3)) {
			if _, err := f.CreateComment(post, commenter); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
			if commenter.ID != author.ID {
				if _, err := f.CreateNotification(author, commenter, post, models.NotificationComment); err != nil {
					return fmt.Errorf("failed to create notification: %w", err)
				}
			}
		}
	}
	log.Printf("created %d posts", opts.NumPosts)

	for i := 0; i < opts.NumEvents; i++ {
		event, err := f.CreateEvent()
		if err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
		for _, attendee := range pick(f, members, f.rand.Intn(len(members))) {
			if !event.Attendees.Has(attendee.ID) {
				event.Attendees, _ = event.Attendees.Toggle(attendee.ID)
			}
		}
		if len(event.Attendees) > 0 {
			if err := db.Model(&models.Event{}).Where("id = ?", event.ID).
				Update("attendees", event.Attendees).Error; err != nil {
				return fmt.Errorf("failed to store attendees: %w", err)
			}
		}
	}
	log.Printf("created %d events", opts.NumEvents)

	log.Println("Seeding complete. Admin login: admin@clubhub.local / demo-admin-pass")
	return nil
}

func createAdmin(f *Factory) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-admin-pass"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return f.CreateMember(func(u *models.User) {
		u.Name = "Club Admin"
		u.Email = "admin@clubhub.local"
		u.Password = string(hash)
		u.Role = models.RoleAdmin
	})
}

// pick returns up to n distinct random members.
func pick(f *Factory, members []*models.User, n int) []*models.User {
	if n >= len(members) {
		n = len(members)
	}
	idx := f.rand.Perm(len(members))[:n]
	out := make([]*models.User, 0, n)
	for _, i := range idx {
		out = append(out, members[i])
	}
	return out
}

func clearData(db *gorm.DB) error {
	for _, model := range []any{
		&models.Notification{},
		&models.Comment{},
		&models.Post{},
		&models.Event{},
		&models.User{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
