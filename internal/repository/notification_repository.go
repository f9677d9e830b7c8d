package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/resource-sharing-backend/internal/models"
)

// ErrNotificationNotFound возвращается, когда уведомление не найдено.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository отвечает за ленту уведомлений. Лента append-only:
// записи не удаляются, получатель может лишь отмечать их прочитанными.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository создаёт экземпляр репозитория.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create добавляет уведомление в ленту получателя.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (recipient_id, type, message, resource_id, is_read)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		notification.RecipientID,
		notification.Type,
		notification.Message,
		notification.ResourceID,
	).Scan(&notification.ID, &notification.CreatedAt); err != nil {
		return fmt.Errorf("notification repository: create %w", err)
	}

	return nil
}

// List возвращает уведомления получателя, новые первыми.
func (r *NotificationRepository) List(ctx context.Context, recipientID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	query := `SELECT * FROM notifications WHERE recipient_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, recipientID, limit, offset); err != nil {
		return nil, fmt.Errorf("notification repository: list %w", err)
	}

	return notifications, nil
}

// MarkRead отмечает прочитанными уведомления из списка, принадлежащие
// получателю. Чужие и несуществующие идентификаторы молча пропускаются —
// частичный отказ не сообщается.
func (r *NotificationRepository) MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND id = ANY($2)`,
		recipientID, pq.Array(ids)); err != nil {
		return fmt.Errorf("notification repository: mark read %w", err)
	}

	return nil
}

// MarkAllRead отмечает все уведомления получателя прочитанными.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE`,
		recipientID); err != nil {
		return fmt.Errorf("notification repository: mark all read %w", err)
	}

	return nil
}

// CountUnread возвращает количество непрочитанных уведомлений получателя.
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`,
		recipientID); err != nil {
		return 0, fmt.Errorf("notification repository: count unread %w", err)
	}

	return count, nil
}
