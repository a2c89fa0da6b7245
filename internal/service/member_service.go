package service

import (
	"context"

	"clubhub/internal/mapper"
	"clubhub/internal/middleware"
	"clubhub/internal/models"
	"clubhub/internal/realtime"
	"clubhub/internal/repository"
)

// MemberService implements the member directory and admin role management.
type MemberService struct {
	members  repository.MemberRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	notifs   repository.NotificationRepository
	feed     *realtime.ChangeFeed
}

// NewMemberService wires a MemberService.
func NewMemberService(
	members repository.MemberRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
	notifs repository.NotificationRepository,
	feed *realtime.ChangeFeed,
) *MemberService {
	return &MemberService{members: members, posts: posts, comments: comments, notifs: notifs, feed: feed}
}

// GetMembers returns the directory sorted by name.
func (s *MemberService) GetMembers(ctx context.Context) ([]mapper.User, error) {
	rows, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.UserEntities(rows), nil
}

// GetMember returns one member.
func (s *MemberService) GetMember(ctx context.Context, id string) (mapper.User, error) {
	row, err := s.members.GetByID(ctx, id)
	if err != nil {
		return mapper.User{}, err
	}
	return mapper.UserEntity(row), nil
}

// IsAdmin reports whether the member holds the admin role.
func (s *MemberService) IsAdmin(ctx context.Context, id string) (bool, error) {
	row, err := s.members.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return row.IsAdmin(), nil
}

// UpdateMemberRole promotes or demotes a member.
func (s *MemberService) UpdateMemberRole(ctx context.Context, id, role string) (mapper.User, error) {
	if role != models.RoleMember && role != models.RoleAdmin {
		return mapper.User{}, models.NewValidationError("Invalid role")
	}
	if err := s.members.UpdateRole(ctx, id, role); err != nil {
		return mapper.User{}, err
	}
	publish(ctx, s.feed, realtime.TableMembers, "")
	row, err := s.members.GetByID(ctx, id)
	if err != nil {
		return mapper.User{}, err
	}
	return mapper.UserEntity(row), nil
}

// RemoveMember hard-deletes the account and cascades everything it touched:
// the member's posts (with their threads and notifications), their comments
// on other posts, and notifications to or from them. Counters on surviving
// posts are recounted after the comment sweep.
func (s *MemberService) RemoveMember(ctx context.Context, id string) error {
	if _, err := s.members.GetByID(ctx, id); err != nil {
		return err
	}

	posts, err := s.posts.ListByUser(ctx, id)
	if err != nil {
		return err
	}
	for i := range posts {
		if err := s.comments.DeleteByPost(ctx, posts[i].ID); err != nil {
			return err
		}
		if err := s.notifs.DeleteByPost(ctx, posts[i].ID); err != nil {
			return err
		}
	}
	if err := s.posts.DeleteByUser(ctx, id); err != nil {
		return err
	}

	// Sweep the member's comments on surviving posts, then recount.
	orphaned, err := s.comments.ListByUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.comments.DeleteByUser(ctx, id); err != nil {
		return err
	}
	recounted := make(map[string]struct{}, len(orphaned))
	for i := range orphaned {
		postID := orphaned[i].PostID
		if _, done := recounted[postID]; done {
			continue
		}
		recounted[postID] = struct{}{}
		count, err := s.comments.CountByPost(ctx, postID)
		if err != nil {
			middleware.Logger.ErrorContext(ctx, "comment recount failed",
				"post_id", postID, "error", err)
			continue
		}
		if err := s.posts.AdjustCommentCount(ctx, postID, int(count)); err != nil {
			middleware.Logger.ErrorContext(ctx, "comment recount write failed",
				"post_id", postID, "error", err)
		}
	}

	if err := s.notifs.DeleteByUser(ctx, id); err != nil {
		return err
	}
	if err := s.members.Delete(ctx, id); err != nil {
		return err
	}

	publish(ctx, s.feed, realtime.TableMembers, "")
	publish(ctx, s.feed, realtime.TablePosts, "")
	publish(ctx, s.feed, realtime.TableComments, "")
	publish(ctx, s.feed, realtime.TableNotifications, "")
	return nil
}
