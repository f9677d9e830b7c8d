package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/resource-sharing-backend/internal/models"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *mockNotificationRepo) List(ctx context.Context, recipientID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	args := m.Called(ctx, recipientID, limit, offset, unreadOnly)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, recipientID uuid.UUID, ids []uuid.UUID) error {
	args := m.Called(ctx, recipientID, ids)
	return args.Error(0)
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	args := m.Called(ctx, recipientID)
	return args.Error(0)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	args := m.Called(ctx, recipientID)
	return args.Int(0), args.Error(1)
}

type recordingPusher struct {
	mu     sync.Mutex
	done   chan struct{}
	userID uuid.UUID
	event  string
}

func (p *recordingPusher) BroadcastToUser(userID uuid.UUID, event string, data interface{}) error {
	p.mu.Lock()
	p.userID = userID
	p.event = event
	p.mu.Unlock()
	close(p.done)
	return nil
}

func TestNotificationService_Emit_UnknownType(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo)

	_, err := svc.Emit(context.Background(), uuid.New(), "spam", "привет", nil)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotificationService_Emit_PersistsAndPushes(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo)
	pusher := &recordingPusher{done: make(chan struct{})}
	svc.SetPusher(pusher)
	ctx := context.Background()

	recipientID := uuid.New()
	resourceID := uuid.New()
	repo.On("Create", ctx, mock.AnythingOfType("*models.Notification")).Return(nil)

	notification, err := svc.Emit(ctx, recipientID, models.NotificationTypeResourceReserved, "ваш ресурс забронирован", &resourceID)

	assert.NoError(t, err)
	assert.Equal(t, recipientID, notification.RecipientID)
	assert.False(t, notification.IsRead)

	select {
	case <-pusher.done:
	case <-time.After(time.Second):
		t.Fatal("live-доставка не была вызвана")
	}

	pusher.mu.Lock()
	defer pusher.mu.Unlock()
	assert.Equal(t, recipientID, pusher.userID)
	assert.Equal(t, models.NotificationTypeResourceReserved, pusher.event)
}

func TestNotificationService_Emit_NoPusher(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Notification")).Return(nil)

	_, err := svc.Emit(ctx, uuid.New(), models.NotificationTypeNewReview, "получен новый отзыв", nil)
	assert.NoError(t, err)
}

func TestNotificationService_ListFor_DefaultsPagination(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo)
	ctx := context.Background()

	recipientID := uuid.New()
	repo.On("List", ctx, recipientID, 20, 0, true).Return([]models.Notification{}, nil)

	_, err := svc.ListFor(ctx, recipientID, 500, -1, true)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestNotificationService_MarkRead_Delegates(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo)
	ctx := context.Background()

	recipientID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	repo.On("MarkRead", ctx, recipientID, ids).Return(nil)

	assert.NoError(t, svc.MarkRead(ctx, recipientID, ids))
	repo.AssertExpectations(t)
}

func TestNotificationService_CountUnread(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo)
	ctx := context.Background()

	recipientID := uuid.New()
	repo.On("CountUnread", ctx, recipientID).Return(7, nil)

	count, err := svc.CountUnread(ctx, recipientID)
	assert.NoError(t, err)
	assert.Equal(t, 7, count)
}
