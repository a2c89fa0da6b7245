package repository

import (
	"context"
	"errors"

	"clubhub/internal/cache"
	"clubhub/internal/models"
	"clubhub/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByUser(ctx context.Context, userID string) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateLikes(ctx context.Context, id string, likes models.IDSet) error
	AdjustCommentCount(ctx context.Context, id string, count int) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// postRepository implements PostRepository
type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("insert", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": post.ID})
	cache.Invalidate(ctx, cache.PostsListKey())
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// List returns every post, newest first. The feed is small enough that the
// client expects the full set, no pagination.
func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	var posts []models.Post
	err := cache.Aside(ctx, cache.PostsListKey(), &posts, cache.ListTTL, func() error {
		if err := r.db.WithContext(ctx).Order("timestamp desc").Find(&posts).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID string) ([]models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()

	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": post.ID})
	cache.Invalidate(ctx, cache.PostsListKey())
	return nil
}

// UpdateLikes writes back a likes set produced by a read-modify-write cycle.
// Last write wins when two toggles race.
func (r *postRepository) UpdateLikes(ctx context.Context, id string, likes models.IDSet) error {
	defer observability.TrackQuery("update", "posts")()

	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("likes", likes)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "update")
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": id, "likes": len(likes)})
	cache.Invalidate(ctx, cache.PostsListKey())
	return nil
}

// AdjustCommentCount overwrites the denormalized counter with a value the
// caller computed from a prior read.
func (r *postRepository) AdjustCommentCount(ctx context.Context, id string, count int) error {
	defer observability.TrackQuery("update", "posts")()

	if count < 0 {
		count = 0
	}
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("comment_count", count)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "update")
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": id, "comment_count": count})
	cache.Invalidate(ctx, cache.PostsListKey())
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	defer observability.TrackQuery("delete", "posts")()

	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{}).Error; err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"id": id})
	cache.Invalidate(ctx, cache.PostsListKey())
	return nil
}

func (r *postRepository) DeleteByUser(ctx context.Context, userID string) error {
	defer observability.TrackQuery("delete", "posts")()

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"user_id": userID})
	cache.Invalidate(ctx, cache.PostsListKey())
	return nil
}
