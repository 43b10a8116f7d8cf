package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/punchcard-app/punchcard/internal/domain"
)

// NotificationRepository handles notification data access operations.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Insert stores a new notification and returns its generated ID.
func (r *NotificationRepository) Insert(ctx context.Context, n domain.Notification) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &id,
		`INSERT INTO notifications (user_id, message)
		 VALUES ($1, $2)
		 RETURNING id`,
		n.UserID, n.Message)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	return id, nil
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	notifications := []domain.Notification{}
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &notifications,
		`SELECT id, user_id, message, read, created_at
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications for user %d: %w", userID, err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	res, err := ext(ctx, r.db).ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification %d read: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification %d read: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
