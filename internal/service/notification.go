package service

import (
	"context"

	"github.com/punchcard-app/punchcard/internal/domain"
)

// NotificationReader is the notification access interface consumed by
// NotificationService.
type NotificationReader interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

// NotificationService exposes a user's in-app notifications.
type NotificationService struct {
	notes NotificationReader
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notes NotificationReader) *NotificationService {
	return &NotificationService{notes: notes}
}

// ListByUser returns the user's notifications, newest first.
func (s *NotificationService) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	return s.notes.ListByUser(ctx, userID)
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id int64) error {
	return s.notes.MarkRead(ctx, id)
}
