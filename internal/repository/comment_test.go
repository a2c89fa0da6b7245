package repository

import (
	"context"
	"testing"

	"clubhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByPostOrdersOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	rows := []*models.Comment{
		{ID: "c2", PostID: "p1", UserID: "m1", UserName: "Ana", Content: "second", Timestamp: 2000},
		{ID: "c1", PostID: "p1", UserID: "m1", UserName: "Ana", Content: "first", Timestamp: 1000},
		{ID: "c3", PostID: "p2", UserID: "m1", UserName: "Ana", Content: "other thread", Timestamp: 1500},
	}
	for _, c := range rows {
		require.NoError(t, repo.Create(ctx, c))
	}

	comments, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
}

func TestCommentRepository_DeleteByPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c1", PostID: "p1", UserID: "m1", Content: "a", Timestamp: 1}))
	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c2", PostID: "p1", UserID: "m1", Content: "b", Timestamp: 2}))
	require.NoError(t, repo.Create(ctx, &models.Comment{ID: "c3", PostID: "p2", UserID: "m1", Content: "c", Timestamp: 3}))

	require.NoError(t, repo.DeleteByPost(ctx, "p1"))

	count, err := repo.CountByPost(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, count)

	survivors, err := repo.ListByPost(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, survivors, 1)
}
