package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/resource-sharing-backend/internal/goroutine"
	"github.com/ignatzorin/resource-sharing-backend/internal/logger"
	"github.com/ignatzorin/resource-sharing-backend/internal/models"
)

// NotificationRepository описывает взаимодействие сервиса с хранилищем уведомлений.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, recipientID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
}

// LivePusher доставляет свежие уведомления подключённым получателям.
// Лента в базе первична; live-доставка — зеркало для открытых клиентов.
type LivePusher interface {
	BroadcastToUser(userID uuid.UUID, event string, data interface{}) error
}

// NotificationService содержит бизнес-логику ленты уведомлений.
type NotificationService struct {
	repo   NotificationRepository
	pusher LivePusher
}

// NewNotificationService создаёт новый сервис уведомлений.
func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// SetPusher подключает live-доставку (WebSocket hub).
func (s *NotificationService) SetPusher(pusher LivePusher) {
	s.pusher = pusher
}

// Emit добавляет уведомление в ленту получателя и отдаёт его в live-доставку.
func (s *NotificationService) Emit(ctx context.Context, recipientID uuid.UUID, notificationType, message string, resourceID *uuid.UUID) (*models.Notification, error) {
	if _, ok := models.ValidNotificationTypes[notificationType]; !ok {
		return nil, fmt.Errorf("notification service: неизвестный тип уведомления %q", notificationType)
	}

	notification := &models.Notification{
		RecipientID: recipientID,
		Type:        notificationType,
		Message:     message,
		ResourceID:  resourceID,
		IsRead:      false,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	if s.pusher != nil {
		// Live-доставка не должна блокировать и тем более ронять операцию.
		pushed := *notification
		goroutine.SafeGo(func() {
			if err := s.pusher.BroadcastToUser(pushed.RecipientID, pushed.Type, pushed); err != nil && logger.Log != nil {
				logger.Log.Warnf("notification service: live-доставка не удалась: %v", err)
			}
		})
	}

	return notification, nil
}

// ListFor возвращает ленту получателя, новые первыми.
func (s *NotificationService) ListFor(ctx context.Context, recipientID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.List(ctx, recipientID, limit, offset, unreadOnly)
}

// MarkRead отмечает прочитанными уведомления получателя из списка.
// Чужие идентификаторы молча игнорируются.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) error {
	return s.repo.MarkRead(ctx, recipientID, ids)
}

// MarkAllRead отмечает все уведомления получателя прочитанными.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}

// CountUnread возвращает количество непрочитанных уведомлений.
func (s *NotificationService) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, recipientID)
}
