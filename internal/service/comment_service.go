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

// commentExcerptRunes caps how much of a comment a notification carries.
const commentExcerptRunes = 120

// CommentService implements thread operations under posts.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	notifs   repository.NotificationRepository
	feed     *realtime.ChangeFeed
}

// NewCommentService wires a CommentService.
func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	notifs repository.NotificationRepository,
	feed *realtime.ChangeFeed,
) *CommentService {
	return &CommentService{comments: comments, posts: posts, notifs: notifs, feed: feed}
}

// ListComments returns a post's thread oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]mapper.Comment, error) {
	rows, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return mapper.CommentEntities(rows), nil
}

// AddComment inserts a comment, bumps the parent's denormalized counter, and
// notifies the post author unless they commented on their own post. The
// counter bump and the notification are side-effect writes: failures are
// logged and the comment stands.
func (s *CommentService) AddComment(ctx context.Context, in mapper.Comment, actor mapper.User) (mapper.Comment, error) {
	if in.Content == "" {
		return mapper.Comment{}, models.NewValidationError("Comment content is required")
	}
	if len(in.Content) > maxContentLen {
		return mapper.Comment{}, models.NewValidationError("Content too long")
	}

	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return mapper.Comment{}, err
	}

	row := mapper.NewCommentRow(in, actor)
	if err := s.comments.Create(ctx, &row); err != nil {
		return mapper.Comment{}, err
	}

	// Read-modify-write on the counter, same race caveat as likes.
	if err := s.posts.AdjustCommentCount(ctx, post.ID, post.CommentCount+1); err != nil {
		middleware.Logger.ErrorContext(ctx, "comment count bump failed",
			"post_id", post.ID, "error", err)
	}

	if actor.ID != post.UserID {
		n := models.Notification{
			ID:          uuid.NewString(),
			UserID:      post.UserID,
			ActorID:     actor.ID,
			ActorName:   actor.Name,
			ActorAvatar: actor.Avatar,
			Type:        models.NotificationComment,
			PostID:      post.ID,
			Content:     excerpt(row.Content, commentExcerptRunes),
			Timestamp:   time.Now().UnixMilli(),
		}
		if err := s.notifs.Create(ctx, &n); err != nil {
			middleware.Logger.ErrorContext(ctx, "comment notification write failed",
				"post_id", post.ID, "actor_id", actor.ID, "error", err)
		} else {
			publish(ctx, s.feed, realtime.TableNotifications, post.UserID)
		}
	}

	publish(ctx, s.feed, realtime.TableComments, post.ID)
	publish(ctx, s.feed, realtime.TablePosts, "")
	return mapper.CommentEntity(&row), nil
}

// DeleteComment removes a comment and walks the parent's counter back down,
// flooring at zero so a drifted counter never goes negative.
func (s *CommentService) DeleteComment(ctx context.Context, id string) error {
	row, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	if post, err := s.posts.GetByID(ctx, row.PostID); err == nil {
		if err := s.posts.AdjustCommentCount(ctx, post.ID, post.CommentCount-1); err != nil {
			middleware.Logger.ErrorContext(ctx, "comment count decrement failed",
				"post_id", post.ID, "error", err)
		}
	}

	publish(ctx, s.feed, realtime.TableComments, row.PostID)
	publish(ctx, s.feed, realtime.TablePosts, "")
	return nil
}

// excerpt truncates on rune boundaries.
func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
