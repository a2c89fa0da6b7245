package service

import (
	"context"

	"clubhub/internal/mapper"
	"clubhub/internal/realtime"
	"clubhub/internal/repository"
)

// NotificationService serves the notification panel.
type NotificationService struct {
	notifs repository.NotificationRepository
	feed   *realtime.ChangeFeed
}

// NewNotificationService wires a NotificationService.
func NewNotificationService(notifs repository.NotificationRepository, feed *realtime.ChangeFeed) *NotificationService {
	return &NotificationService{notifs: notifs, feed: feed}
}

// ListNotifications returns the member's most recent notifications, newest
// first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string) ([]mapper.Notification, error) {
	rows, err := s.notifs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapper.NotificationEntities(rows), nil
}

// MarkAllRead flips every unread notification for the member. Idempotent.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notifs.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	publish(ctx, s.feed, realtime.TableNotifications, userID)
	return nil
}
