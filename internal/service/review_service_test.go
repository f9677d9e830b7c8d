package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/resource-sharing-backend/internal/models"
	"github.com/ignatzorin/resource-sharing-backend/internal/repository"
)

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) ExistsByResourceAndReviewer(ctx context.Context, resourceID, reviewerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, resourceID, reviewerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]models.Review, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByReviewed(ctx context.Context, reviewedID uuid.UUID, limit, offset int) ([]models.Review, error) {
	args := m.Called(ctx, reviewedID, limit, offset)
	return args.Get(0).([]models.Review), args.Error(1)
}

func claimedResource(ownerID, claimedBy uuid.UUID) *models.Resource {
	return &models.Resource{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Status:    models.ResourceStatusClaimed,
		ClaimedBy: &claimedBy,
	}
}

func TestReviewService_AddReview_Success(t *testing.T) {
	repo := new(mockReviewRepo)
	resources := new(mockTransitioner)
	emitter := new(mockEmitter)
	svc := NewReviewService(repo, resources, emitter)
	ctx := context.Background()

	ownerID := uuid.New()
	reviewerID := uuid.New()
	res := claimedResource(ownerID, reviewerID)

	resources.On("GetByID", ctx, res.ID).Return(res, nil, nil)
	repo.On("ExistsByResourceAndReviewer", ctx, res.ID, reviewerID).Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil)
	emitter.On("Emit", ctx, ownerID, models.NotificationTypeNewReview, mock.AnythingOfType("string"), &res.ID).
		Return(&models.Notification{}, nil)

	comment := "Всё прошло отлично, спасибо!"
	review, err := svc.AddReview(ctx, res.ID, reviewerID, 5, &comment)

	assert.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, ownerID, review.ReviewedID)
	assert.Equal(t, reviewerID, review.ReviewerID)
	emitter.AssertExpectations(t)
}

func TestReviewService_AddReview_InvalidRating(t *testing.T) {
	svc := NewReviewService(new(mockReviewRepo), new(mockTransitioner), new(mockEmitter))
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.AddReview(ctx, uuid.New(), uuid.New(), rating, nil)
		assert.ErrorIs(t, err, ErrInvalidRating)
	}
}

func TestReviewService_AddReview_NotClaimed(t *testing.T) {
	repo := new(mockReviewRepo)
	resources := new(mockTransitioner)
	svc := NewReviewService(repo, resources, new(mockEmitter))
	ctx := context.Background()

	res := &models.Resource{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Status:  models.ResourceStatusAvailable,
	}
	resources.On("GetByID", ctx, res.ID).Return(res, nil, nil)

	_, err := svc.AddReview(ctx, res.ID, uuid.New(), 4, nil)
	assert.ErrorIs(t, err, ErrNotEligible)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_AddReview_WrongClaimant(t *testing.T) {
	repo := new(mockReviewRepo)
	resources := new(mockTransitioner)
	svc := NewReviewService(repo, resources, new(mockEmitter))
	ctx := context.Background()

	res := claimedResource(uuid.New(), uuid.New())
	resources.On("GetByID", ctx, res.ID).Return(res, nil, nil)

	_, err := svc.AddReview(ctx, res.ID, uuid.New(), 4, nil)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestReviewService_AddReview_OwnerNotEligible(t *testing.T) {
	resources := new(mockTransitioner)
	svc := NewReviewService(new(mockReviewRepo), resources, new(mockEmitter))
	ctx := context.Background()

	ownerID := uuid.New()
	res := claimedResource(ownerID, uuid.New())
	resources.On("GetByID", ctx, res.ID).Return(res, nil, nil)

	// Владелец не получатель и отзыв оставить не может.
	_, err := svc.AddReview(ctx, res.ID, ownerID, 5, nil)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestReviewService_AddReview_AlreadyReviewed(t *testing.T) {
	repo := new(mockReviewRepo)
	resources := new(mockTransitioner)
	svc := NewReviewService(repo, resources, new(mockEmitter))
	ctx := context.Background()

	reviewerID := uuid.New()
	res := claimedResource(uuid.New(), reviewerID)

	resources.On("GetByID", ctx, res.ID).Return(res, nil, nil)
	repo.On("ExistsByResourceAndReviewer", ctx, res.ID, reviewerID).Return(true, nil)

	_, err := svc.AddReview(ctx, res.ID, reviewerID, 3, nil)
	assert.ErrorIs(t, err, repository.ErrReviewAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_ListReceived_DefaultsPagination(t *testing.T) {
	repo := new(mockReviewRepo)
	svc := NewReviewService(repo, new(mockTransitioner), new(mockEmitter))
	ctx := context.Background()

	principal := uuid.New()
	repo.On("ListByReviewed", ctx, principal, 20, 0).Return([]models.Review{}, nil)

	_, err := svc.ListReceived(ctx, principal, 0, -3)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
