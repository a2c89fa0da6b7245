package service

import (
	"context"
	"sync/atomic"
	"testing"

	"clubhub/internal/models"
	"clubhub/internal/realtime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAllRead_PublishesToRecipientOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.notifs.Create(ctx, &models.Notification{
		ID: "n1", UserID: "m1", ActorID: "m2", Type: models.NotificationLike, Timestamp: 1,
	}))

	var m1Events, m2Events atomic.Int64
	sub1 := env.feed.Subscribe(realtime.Scope{Table: realtime.TableNotifications, Key: "m1"},
		func() { m1Events.Add(1) })
	defer sub1.Unsubscribe()
	sub2 := env.feed.Subscribe(realtime.Scope{Table: realtime.TableNotifications, Key: "m2"},
		func() { m2Events.Add(1) })
	defer sub2.Unsubscribe()

	require.NoError(t, env.notifSvc.MarkAllRead(ctx, "m1"))

	assert.EqualValues(t, 1, m1Events.Load())
	assert.EqualValues(t, 0, m2Events.Load())

	panel, err := env.notifSvc.ListNotifications(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, panel, 1)
	assert.True(t, panel[0].IsRead)

	// Running it again changes nothing but still signals the panel.
	require.NoError(t, env.notifSvc.MarkAllRead(ctx, "m1"))
	assert.EqualValues(t, 2, m1Events.Load())
}

func TestListNotifications_EmptyPanel(t *testing.T) {
	env := newTestEnv(t)

	panel, err := env.notifSvc.ListNotifications(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, panel)
}
