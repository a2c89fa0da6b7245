package repository

import (
	"context"
	"fmt"
	"testing"

	"clubhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_ListByUserCapsAtTwenty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Create(ctx, &models.Notification{
			ID:        fmt.Sprintf("n%02d", i),
			UserID:    "m1",
			ActorID:   "m2",
			ActorName: "Ana",
			Type:      models.NotificationLike,
			Timestamp: int64(1000 + i),
		}))
	}

	list, err := repo.ListByUser(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, list, 20)
	// Newest first, oldest five aged out.
	assert.Equal(t, int64(1024), list[0].Timestamp)
	assert.Equal(t, int64(1005), list[19].Timestamp)
}

func TestNotificationRepository_MarkAllReadIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Notification{
		ID: "n1", UserID: "m1", ActorID: "m2", Type: models.NotificationComment, Timestamp: 1,
	}))
	require.NoError(t, repo.Create(ctx, &models.Notification{
		ID: "n2", UserID: "m1", ActorID: "m2", Type: models.NotificationLike, Timestamp: 2,
	}))

	require.NoError(t, repo.MarkAllRead(ctx, "m1"))
	require.NoError(t, repo.MarkAllRead(ctx, "m1"))

	list, err := repo.ListByUser(ctx, "m1")
	require.NoError(t, err)
	for _, n := range list {
		assert.True(t, n.IsRead)
	}
}

func TestNotificationRepository_DeleteByUserCoversBothSides(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Notification{ID: "n1", UserID: "m1", ActorID: "m2", Type: models.NotificationLike, Timestamp: 1}))
	require.NoError(t, repo.Create(ctx, &models.Notification{ID: "n2", UserID: "m3", ActorID: "m1", Type: models.NotificationComment, Timestamp: 2}))
	require.NoError(t, repo.Create(ctx, &models.Notification{ID: "n3", UserID: "m3", ActorID: "m2", Type: models.NotificationLike, Timestamp: 3}))

	require.NoError(t, repo.DeleteByUser(ctx, "m1"))

	mine, err := repo.ListByUser(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, mine)

	others, err := repo.ListByUser(ctx, "m3")
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "n3", others[0].ID)
}
