package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignatzorin/resource-sharing-backend/internal/logger"
	"github.com/ignatzorin/resource-sharing-backend/internal/models"
	"github.com/ignatzorin/resource-sharing-backend/internal/repository"
	"github.com/ignatzorin/resource-sharing-backend/internal/validation"
)

// Ошибки журнала отзывов.
var (
	ErrInvalidRating = errors.New("invalid rating")
	ErrNotEligible   = errors.New("reviewer is not eligible")
)

// ReviewRepository описывает взаимодействие сервиса с хранилищем отзывов.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ExistsByResourceAndReviewer(ctx context.Context, resourceID, reviewerID uuid.UUID) (bool, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID) ([]models.Review, error)
	ListByReviewed(ctx context.Context, reviewedID uuid.UUID, limit, offset int) ([]models.Review, error)
}

// ResourceReaderForReview описывает минимальный контракт чтения ресурсов.
type ResourceReaderForReview interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, *repository.SweepEvent, error)
}

// ReviewService содержит бизнес-логику отзывов и репутации.
type ReviewService struct {
	repo          ReviewRepository
	resources     ResourceReaderForReview
	notifications NotificationEmitter
}

// NewReviewService создаёт новый сервис отзывов.
func NewReviewService(repo ReviewRepository, resources ResourceReaderForReview, notifications NotificationEmitter) *ReviewService {
	return &ReviewService{repo: repo, resources: resources, notifications: notifications}
}

// AddReview записывает отзыв получателя ресурса. Право на отзыв имеет только
// получатель переданного ресурса, и только один раз. Репутация владельца
// обновляется в той же транзакции, что и вставка отзыва.
func (s *ReviewService) AddReview(ctx context.Context, resourceID uuid.UUID, reviewer uuid.UUID, rating int, comment *string) (*models.Review, error) {
	if err := validation.ValidateRating(rating); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRating, err)
	}
	if err := validation.ValidateComment(comment); err != nil {
		return nil, err
	}

	res, event, err := s.resources.GetByID(ctx, resourceID)
	emitSweep(ctx, s.notifications, event)
	if err != nil {
		return nil, err
	}

	if res.Status != models.ResourceStatusClaimed || res.ClaimedBy == nil || *res.ClaimedBy != reviewer {
		return nil, ErrNotEligible
	}

	exists, err := s.repo.ExistsByResourceAndReviewer(ctx, resourceID, reviewer)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrReviewAlreadyExists
	}

	review := &models.Review{
		ResourceID: resourceID,
		ReviewerID: reviewer,
		ReviewedID: res.OwnerID,
		Rating:     rating,
		Comment:    comment,
	}

	// Гонку двух одновременных отзывов одного рецензента добивает UNIQUE
	// ограничение в Create.
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	if _, err := s.notifications.Emit(ctx, res.OwnerID, models.NotificationTypeNewReview,
		fmt.Sprintf("получен новый отзыв с оценкой %d", rating), &resourceID); err != nil && logger.Log != nil {
		logger.Log.Warnf("review service: не удалось отправить уведомление об отзыве: %v", err)
	}

	return review, nil
}

// GetReviews возвращает отзывы на ресурс в порядке создания.
func (s *ReviewService) GetReviews(ctx context.Context, resourceID uuid.UUID) ([]models.Review, error) {
	return s.repo.ListByResource(ctx, resourceID)
}

// ListReceived возвращает отзывы, полученные участником.
func (s *ReviewService) ListReceived(ctx context.Context, principal uuid.UUID, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByReviewed(ctx, principal, limit, offset)
}
