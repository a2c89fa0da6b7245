// Package service implements the club's operations on top of the
// repositories: validation, side-effect writes (counters, notification
// fan-out), and change-feed publishes.
package service

import (
	"context"
	"time"

	"clubhub/internal/mapper"
	"clubhub/internal/middleware"
	"clubhub/internal/models"
	"clubhub/internal/realtime"
	"clubhub/internal/repository"

	"github.com/google/uuid"
)

const maxContentLen = 10000

// PostService implements the feed operations.
type PostService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	notifs   repository.NotificationRepository
	feed     *realtime.ChangeFeed
}

// NewPostService wires a PostService.
func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	notifs repository.NotificationRepository,
	feed *realtime.ChangeFeed,
) *PostService {
	return &PostService{posts: posts, comments: comments, notifs: notifs, feed: feed}
}

func publish(ctx context.Context, feed *realtime.ChangeFeed, table, key string) {
	if feed != nil {
		feed.Publish(ctx, table, key)
	}
}

// ListPosts returns the whole feed, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]mapper.Post, error) {
	rows, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.PostEntities(rows), nil
}

// GetPost returns a single post.
func (s *PostService) GetPost(ctx context.Context, id string) (mapper.Post, error) {
	row, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return mapper.Post{}, err
	}
	return mapper.PostEntity(row), nil
}

// CreatePost inserts a post authored by the acting member. Likes and the
// comment count are forced to their empty values whatever the caller sent.
func (s *PostService) CreatePost(ctx context.Context, in mapper.Post, author mapper.User) (mapper.Post, error) {
	if in.Content == "" && in.Image == "" {
		return mapper.Post{}, models.NewValidationError("Post needs content or an image")
	}
	if len(in.Content) > maxContentLen {
		return mapper.Post{}, models.NewValidationError("Content too long")
	}

	row := mapper.NewPostRow(in, author)
	if err := s.posts.Create(ctx, &row); err != nil {
		return mapper.Post{}, err
	}

	publish(ctx, s.feed, realtime.TablePosts, "")
	return mapper.PostEntity(&row), nil
}

// DeletePost removes a post along with its comments and the notifications
// that point at it. The cascade is explicit: comments first, then
// notifications, then the post row, so a crash mid-way never leaves comments
// pointing at a deleted post.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	if _, err := s.posts.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.comments.DeleteByPost(ctx, id); err != nil {
		return err
	}
	if err := s.notifs.DeleteByPost(ctx, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	publish(ctx, s.feed, realtime.TablePosts, "")
	publish(ctx, s.feed, realtime.TableComments, id)
	publish(ctx, s.feed, realtime.TableNotifications, "")
	return nil
}

// ToggleLike flips the actor's membership in the post's likes set. Plain
// read-modify-write: two racing toggles can lose one update, last write wins.
// A like on someone else's post leaves a notification; un-liking never
// retracts one.
func (s *PostService) ToggleLike(ctx context.Context, postID string, actor mapper.User) (mapper.Post, error) {
	row, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return mapper.Post{}, err
	}

	likes, added := row.Likes.Toggle(actor.ID)
	if err := s.posts.UpdateLikes(ctx, postID, likes); err != nil {
		return mapper.Post{}, err
	}
	row.Likes = likes

	if added && actor.ID != row.UserID {
		n := models.Notification{
			ID:          uuid.NewString(),
			UserID:      row.UserID,
			ActorID:     actor.ID,
			ActorName:   actor.Name,
			ActorAvatar: actor.Avatar,
			Type:        models.NotificationLike,
			PostID:      row.ID,
			Timestamp:   time.Now().UnixMilli(),
		}
		if err := s.notifs.Create(ctx, &n); err != nil {
			// The like stands even when the notification write fails.
			middleware.Logger.ErrorContext(ctx, "like notification write failed",
				"post_id", row.ID, "actor_id", actor.ID, "error", err)
		} else {
			publish(ctx, s.feed, realtime.TableNotifications, row.UserID)
		}
	}

	publish(ctx, s.feed, realtime.TablePosts, "")
	return mapper.PostEntity(row), nil
}
