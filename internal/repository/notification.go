package repository

import (
	"context"

	"clubhub/internal/models"
	"clubhub/internal/observability"

	"gorm.io/gorm"
)

// notificationPageSize caps how many notifications a member sees; older
// entries age out of the panel.
const notificationPageSize = 20

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	DeleteByPost(ctx context.Context, postID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type notificationRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db, log: observability.NewRepoLogger("notifications")}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	defer observability.TrackQuery("insert", "notifications")()

	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": notification.ID, "type": notification.Type})
	observability.NotificationsCreated.WithLabelValues(notification.Type).Inc()
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	defer observability.TrackQuery("select", "notifications")()

	var notifications []models.Notification
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Limit(notificationPageSize).
		Find(&notifications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

// MarkAllRead flips every unread notification for the member. Running it
// against an already-read set matches zero rows and is a no-op.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	defer observability.TrackQuery("update", "notifications")()

	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"user_id": userID})
	return nil
}

// DeleteByPost removes notifications that point at a post being deleted so
// the panel never links to a dead post.
func (r *notificationRepository) DeleteByPost(ctx context.Context, postID string) error {
	defer observability.TrackQuery("delete", "notifications")()

	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Notification{}).Error; err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"post_id": postID})
	return nil
}

// DeleteByUser removes notifications addressed to or acted by the member.
func (r *notificationRepository) DeleteByUser(ctx context.Context, userID string) error {
	defer observability.TrackQuery("delete", "notifications")()

	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR actor_id = ?", userID, userID).
		Delete(&models.Notification{}).Error; err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"user_id": userID})
	return nil
}
