package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/resource-sharing-backend/internal/models"
	"github.com/ignatzorin/resource-sharing-backend/internal/repository"
)

type mockTransitioner struct {
	mock.Mock
}

func (m *mockTransitioner) GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, *repository.SweepEvent, error) {
	args := m.Called(ctx, id)
	var res *models.Resource
	if args.Get(0) != nil {
		res = args.Get(0).(*models.Resource)
	}
	var event *repository.SweepEvent
	if args.Get(1) != nil {
		event = args.Get(1).(*repository.SweepEvent)
	}
	return res, event, args.Error(2)
}

func (m *mockTransitioner) Reserve(ctx context.Context, id uuid.UUID, caller uuid.UUID, expiry time.Time) (*models.Resource, *repository.SweepEvent, error) {
	args := m.Called(ctx, id, caller, expiry)
	var res *models.Resource
	if args.Get(0) != nil {
		res = args.Get(0).(*models.Resource)
	}
	var event *repository.SweepEvent
	if args.Get(1) != nil {
		event = args.Get(1).(*repository.SweepEvent)
	}
	return res, event, args.Error(2)
}

func (m *mockTransitioner) Claim(ctx context.Context, id uuid.UUID, caller uuid.UUID) (*models.Resource, *repository.SweepEvent, error) {
	args := m.Called(ctx, id, caller)
	var res *models.Resource
	if args.Get(0) != nil {
		res = args.Get(0).(*models.Resource)
	}
	var event *repository.SweepEvent
	if args.Get(1) != nil {
		event = args.Get(1).(*repository.SweepEvent)
	}
	return res, event, args.Error(2)
}

func (m *mockTransitioner) ListAvailable(ctx context.Context) ([]models.Resource, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Resource), args.Error(1)
}

type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) Analyze(ctx context.Context, category, description, needsText string) (string, error) {
	args := m.Called(ctx, category, description, needsText)
	return args.String(0), args.Error(1)
}

func (m *mockOracle) Recommend(ctx context.Context, needsText, location string, resources []models.Resource) (string, error) {
	args := m.Called(ctx, needsText, location, resources)
	return args.String(0), args.Error(1)
}

type mockEmitter struct {
	mock.Mock
}

func (m *mockEmitter) Emit(ctx context.Context, recipientID uuid.UUID, notificationType, message string, resourceID *uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, recipientID, notificationType, message, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func TestClaimService_Reserve_Success(t *testing.T) {
	resources := new(mockTransitioner)
	emitter := new(mockEmitter)
	svc := NewClaimService(resources, emitter, nil, 1, 72)
	ctx := context.Background()

	ownerID := uuid.New()
	callerID := uuid.New()
	resourceID := uuid.New()

	reserved := &models.Resource{
		ID:      resourceID,
		OwnerID: ownerID,
		Status:  models.ResourceStatusReserved,
	}

	resources.On("Reserve", ctx, resourceID, callerID, mock.AnythingOfType("time.Time")).
		Return(reserved, nil, nil)
	emitter.On("Emit", ctx, ownerID, models.NotificationTypeResourceReserved, mock.AnythingOfType("string"), &resourceID).
		Return(&models.Notification{}, nil)

	res, err := svc.Reserve(ctx, resourceID, callerID, 24)

	assert.NoError(t, err)
	assert.Equal(t, models.ResourceStatusReserved, res.Status)
	emitter.AssertExpectations(t)
}

func TestClaimService_Reserve_InvalidDuration(t *testing.T) {
	svc := NewClaimService(new(mockTransitioner), new(mockEmitter), nil, 1, 72)
	ctx := context.Background()

	for _, hours := range []int{0, -5, 73, 1000} {
		_, err := svc.Reserve(ctx, uuid.New(), uuid.New(), hours)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	}
}

func TestClaimService_Reserve_NotAvailable(t *testing.T) {
	resources := new(mockTransitioner)
	svc := NewClaimService(resources, new(mockEmitter), nil, 1, 72)
	ctx := context.Background()

	resourceID := uuid.New()
	resources.On("Reserve", ctx, resourceID, mock.Anything, mock.Anything).
		Return(nil, nil, repository.ErrResourceNotAvailable)

	_, err := svc.Reserve(ctx, resourceID, uuid.New(), 24)
	assert.ErrorIs(t, err, repository.ErrResourceNotAvailable)
}

func TestClaimService_ClaimDirect_Success(t *testing.T) {
	resources := new(mockTransitioner)
	emitter := new(mockEmitter)
	svc := NewClaimService(resources, emitter, nil, 1, 72)
	ctx := context.Background()

	ownerID := uuid.New()
	callerID := uuid.New()
	resourceID := uuid.New()

	claimed := &models.Resource{
		ID:        resourceID,
		OwnerID:   ownerID,
		Status:    models.ResourceStatusClaimed,
		ClaimedBy: &callerID,
	}

	resources.On("Claim", ctx, resourceID, callerID).Return(claimed, nil, nil)
	emitter.On("Emit", ctx, ownerID, models.NotificationTypeResourceClaimed, mock.AnythingOfType("string"), &resourceID).
		Return(&models.Notification{}, nil)

	res, err := svc.ClaimDirect(ctx, resourceID, callerID)

	assert.NoError(t, err)
	assert.Equal(t, models.ResourceStatusClaimed, res.Status)
	assert.Equal(t, callerID, *res.ClaimedBy)
	emitter.AssertExpectations(t)
}

func TestClaimService_ClaimDirect_Terminal(t *testing.T) {
	resources := new(mockTransitioner)
	svc := NewClaimService(resources, new(mockEmitter), nil, 1, 72)
	ctx := context.Background()

	resourceID := uuid.New()
	resources.On("Claim", ctx, resourceID, mock.Anything).
		Return(nil, nil, repository.ErrResourceNotAvailable)

	_, err := svc.ClaimDirect(ctx, resourceID, uuid.New())
	assert.ErrorIs(t, err, repository.ErrResourceNotAvailable)
}

func TestClaimService_ClaimWithMatching_Success(t *testing.T) {
	resources := new(mockTransitioner)
	emitter := new(mockEmitter)
	oracle := new(mockOracle)
	svc := NewClaimService(resources, emitter, oracle, 1, 72)
	ctx := context.Background()

	ownerID := uuid.New()
	callerID := uuid.New()
	resourceID := uuid.New()

	available := &models.Resource{
		ID:          resourceID,
		OwnerID:     ownerID,
		Category:    "мебель",
		Description: "Письменный стол в хорошем состоянии",
		Status:      models.ResourceStatusAvailable,
	}
	claimed := &models.Resource{
		ID:        resourceID,
		OwnerID:   ownerID,
		Status:    models.ResourceStatusClaimed,
		ClaimedBy: &callerID,
	}

	resources.On("GetByID", ctx, resourceID).Return(available, nil, nil)
	oracle.On("Analyze", ctx, "мебель", available.Description, "нужен стол для учёбы").
		Return("Ресурс хорошо подходит под потребности.", nil)
	resources.On("Claim", ctx, resourceID, callerID).Return(claimed, nil, nil)
	emitter.On("Emit", ctx, ownerID, models.NotificationTypeResourceClaimed, mock.AnythingOfType("string"), &resourceID).
		Return(&models.Notification{}, nil)

	res, analysis, err := svc.ClaimWithMatching(ctx, resourceID, callerID, "нужен стол для учёбы")

	assert.NoError(t, err)
	assert.Equal(t, models.ResourceStatusClaimed, res.Status)
	assert.Equal(t, "Ресурс хорошо подходит под потребности.", analysis)
}

func TestClaimService_ClaimWithMatching_OracleFailureProceeds(t *testing.T) {
	resources := new(mockTransitioner)
	emitter := new(mockEmitter)
	oracle := new(mockOracle)
	svc := NewClaimService(resources, emitter, oracle, 1, 72)
	ctx := context.Background()

	ownerID := uuid.New()
	callerID := uuid.New()
	resourceID := uuid.New()

	available := &models.Resource{
		ID:          resourceID,
		OwnerID:     ownerID,
		Category:    "техника",
		Description: "Рабочий принтер с почти полным картриджем",
		Status:      models.ResourceStatusAvailable,
	}
	claimed := &models.Resource{
		ID:        resourceID,
		OwnerID:   ownerID,
		Status:    models.ResourceStatusClaimed,
		ClaimedBy: &callerID,
	}

	resources.On("GetByID", ctx, resourceID).Return(available, nil, nil)
	oracle.On("Analyze", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("connection refused"))
	resources.On("Claim", ctx, resourceID, callerID).Return(claimed, nil, nil)
	emitter.On("Emit", ctx, ownerID, models.NotificationTypeResourceClaimed, mock.AnythingOfType("string"), &resourceID).
		Return(&models.Notification{}, nil)

	// Отказ оракула не блокирует передачу: разбор пустой, статус claimed.
	res, analysis, err := svc.ClaimWithMatching(ctx, resourceID, callerID, "нужен принтер для документов")

	assert.NoError(t, err)
	assert.Equal(t, models.ResourceStatusClaimed, res.Status)
	assert.Empty(t, analysis)
}

func TestClaimService_ClaimWithMatching_NoOracleSkipsLookup(t *testing.T) {
	resources := new(mockTransitioner)
	emitter := new(mockEmitter)
	svc := NewClaimService(resources, emitter, nil, 1, 72)
	ctx := context.Background()

	ownerID := uuid.New()
	callerID := uuid.New()
	resourceID := uuid.New()

	claimed := &models.Resource{
		ID:        resourceID,
		OwnerID:   ownerID,
		Status:    models.ResourceStatusClaimed,
		ClaimedBy: &callerID,
	}

	resources.On("Claim", ctx, resourceID, callerID).Return(claimed, nil, nil)
	emitter.On("Emit", ctx, ownerID, models.NotificationTypeResourceClaimed, mock.AnythingOfType("string"), &resourceID).
		Return(&models.Notification{}, nil)

	res, analysis, err := svc.ClaimWithMatching(ctx, resourceID, callerID, "нужно срочно для ремонта")

	assert.NoError(t, err)
	assert.Empty(t, analysis)
	assert.Equal(t, models.ResourceStatusClaimed, res.Status)
	resources.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestClaimService_GetMatchAnalysis_OracleUnavailable(t *testing.T) {
	resources := new(mockTransitioner)
	oracle := new(mockOracle)
	ctx := context.Background()

	resourceID := uuid.New()
	available := &models.Resource{
		ID:          resourceID,
		Category:    "книги",
		Description: "Коробка художественной литературы",
		Status:      models.ResourceStatusAvailable,
	}

	// Оракул не сконфигурирован.
	svc := NewClaimService(resources, new(mockEmitter), nil, 1, 72)
	resources.On("GetByID", ctx, resourceID).Return(available, nil, nil)

	_, err := svc.GetMatchAnalysis(ctx, resourceID, "ищу книги для подростка")
	assert.ErrorIs(t, err, ErrOracleUnavailable)

	// Оракул сконфигурирован, но недоступен.
	svc = NewClaimService(resources, new(mockEmitter), oracle, 1, 72)
	oracle.On("Analyze", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("timeout"))

	_, err = svc.GetMatchAnalysis(ctx, resourceID, "ищу книги для подростка")
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}

func TestClaimService_GetMatchAnalysis_ReadOnly(t *testing.T) {
	resources := new(mockTransitioner)
	oracle := new(mockOracle)
	svc := NewClaimService(resources, new(mockEmitter), oracle, 1, 72)
	ctx := context.Background()

	resourceID := uuid.New()
	available := &models.Resource{
		ID:          resourceID,
		Category:    "растения",
		Description: "Рассада томатов после высадки",
		Status:      models.ResourceStatusAvailable,
	}

	resources.On("GetByID", ctx, resourceID).Return(available, nil, nil)
	oracle.On("Analyze", ctx, "растения", available.Description, "ищу рассаду для дачи").
		Return("Полное совпадение.", nil)

	analysis, err := svc.GetMatchAnalysis(ctx, resourceID, "ищу рассаду для дачи")

	assert.NoError(t, err)
	assert.Equal(t, "Полное совпадение.", analysis)
	resources.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
	resources.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimService_Recommend(t *testing.T) {
	resources := new(mockTransitioner)
	oracle := new(mockOracle)
	svc := NewClaimService(resources, new(mockEmitter), oracle, 1, 72)
	ctx := context.Background()

	listed := []models.Resource{
		{ID: uuid.New(), Category: "инструменты", Description: "Дрель с набором свёрел", Status: models.ResourceStatusAvailable},
	}

	resources.On("ListAvailable", ctx).Return(listed, nil)
	oracle.On("Recommend", ctx, "нужна дрель", "Казань", listed).
		Return("Подходит ресурс 1.", nil)

	recommendation, err := svc.Recommend(ctx, "нужна дрель", "Казань")

	assert.NoError(t, err)
	assert.Equal(t, "Подходит ресурс 1.", recommendation)
}

func TestClaimService_Recommend_NoOracle(t *testing.T) {
	svc := NewClaimService(new(mockTransitioner), new(mockEmitter), nil, 1, 72)

	_, err := svc.Recommend(context.Background(), "нужна дрель", "")
	assert.ErrorIs(t, err, ErrOracleUnavailable)
}
