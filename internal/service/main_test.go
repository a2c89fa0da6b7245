package service

import (
	"context"
	"testing"

	"clubhub/internal/database"
	"clubhub/internal/mapper"
	"clubhub/internal/models"
	"clubhub/internal/realtime"
	"clubhub/internal/repository"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	members  repository.MemberRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	notifs   repository.NotificationRepository
	events   repository.EventRepository

	feed *realtime.ChangeFeed

	postSvc   *PostService
	commSvc   *CommentService
	memberSvc *MemberService
	eventSvc  *EventService
	notifSvc  *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)

	env := &testEnv{
		members:  repository.NewMemberRepository(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
		notifs:   repository.NewNotificationRepository(db),
		events:   repository.NewEventRepository(db),
		feed:     realtime.NewChangeFeed(nil),
	}
	env.postSvc = NewPostService(env.posts, env.comments, env.notifs, env.feed)
	env.commSvc = NewCommentService(env.comments, env.posts, env.notifs, env.feed)
	env.memberSvc = NewMemberService(env.members, env.posts, env.comments, env.notifs, env.feed)
	env.eventSvc = NewEventService(env.events, env.feed)
	env.notifSvc = NewNotificationService(env.notifs, env.feed)
	return env
}

func (e *testEnv) addMember(t *testing.T, id, name string) mapper.User {
	t.Helper()
	row := &models.User{
		ID:       id,
		Email:    id + "@club.test",
		Password: "hashed",
		Name:     name,
		Role:     models.RoleMember,
	}
	require.NoError(t, e.members.Create(context.Background(), row))
	return mapper.UserEntity(row)
}
