package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/resource-sharing-backend/internal/models"
	"github.com/ignatzorin/resource-sharing-backend/internal/repository/common"
)

// ErrReviewAlreadyExists возвращается при повторном отзыве того же рецензента
// на тот же ресурс.
var ErrReviewAlreadyExists = errors.New("review already exists")

// uniqueViolation — код ошибки PostgreSQL для нарушения UNIQUE.
const uniqueViolation = "23505"

// ReviewRepository отвечает за хранение отзывов и аккумулятор репутации.
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository создаёт экземпляр репозитория.
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create сохраняет отзыв и в той же транзакции обновляет аккумулятор
// репутации владельца ресурса. Повторный отзыв отклоняет UNIQUE ограничение.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO reviews (resource_id, reviewer_id, reviewed_id, rating, comment)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`

		if err := tx.QueryRowxContext(
			ctx,
			query,
			review.ResourceID,
			review.ReviewerID,
			review.ReviewedID,
			review.Rating,
			review.Comment,
		).Scan(&review.ID, &review.CreatedAt); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
				return ErrReviewAlreadyExists
			}
			return fmt.Errorf("review repository: insert %w", err)
		}

		// Профиль владельца может отсутствовать (осиротевший principal) —
		// тогда репутацию обновлять не к кому.
		if _, err := tx.ExecContext(ctx,
			`UPDATE profiles SET rating_sum = rating_sum + $1, rating_count = rating_count + 1, updated_at = NOW() WHERE principal = $2`,
			review.Rating, review.ReviewedID); err != nil {
			return fmt.Errorf("review repository: bump reputation %w", err)
		}

		return nil
	})
}

// ExistsByResourceAndReviewer проверяет, оставлял ли рецензент отзыв.
func (r *ReviewRepository) ExistsByResourceAndReviewer(ctx context.Context, resourceID, reviewerID uuid.UUID) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM reviews WHERE resource_id = $1 AND reviewer_id = $2`,
		resourceID, reviewerID); err != nil {
		return false, fmt.Errorf("review repository: exists %w", err)
	}
	return count > 0, nil
}

// ListByResource возвращает отзывы на ресурс в порядке создания.
func (r *ReviewRepository) ListByResource(ctx context.Context, resourceID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.SelectContext(ctx, &reviews,
		`SELECT * FROM reviews WHERE resource_id = $1 ORDER BY created_at`, resourceID); err != nil {
		return nil, fmt.Errorf("review repository: list by resource %w", err)
	}
	return reviews, nil
}

// ListByReviewed возвращает отзывы, полученные участником, с пагинацией.
func (r *ReviewRepository) ListByReviewed(ctx context.Context, reviewedID uuid.UUID, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.SelectContext(ctx, &reviews,
		`SELECT * FROM reviews WHERE reviewed_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		reviewedID, limit, offset); err != nil {
		return nil, fmt.Errorf("review repository: list by reviewed %w", err)
	}
	return reviews, nil
}
