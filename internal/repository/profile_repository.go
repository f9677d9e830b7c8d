package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/resource-sharing-backend/internal/models"
)

// ErrProfileNotFound возвращается, когда профиль не найден.
var ErrProfileNotFound = errors.New("profile not found")

// Колонки профиля с вычисляемой репутацией: средняя оценка хранится как
// аккумулятор (сумма, количество), чтобы не пересканировать отзывы.
const profileColumns = `
	principal, name, bio, contact_info, rating_sum, rating_count,
	CASE WHEN rating_count = 0 THEN 0 ELSE rating_sum::float / rating_count END AS reputation_score,
	total_transactions, member_since, updated_at
`

// ProfileRepository отвечает за работу с профилями участников.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository создаёт экземпляр репозитория.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert создаёт профиль при первом обращении или обновляет изменяемые поля.
// Principal и member_since неизменяемы.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (principal, name, bio, contact_info)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (principal) DO UPDATE
		SET name = EXCLUDED.name,
		    bio = EXCLUDED.bio,
		    contact_info = EXCLUDED.contact_info,
		    updated_at = NOW()
		RETURNING ` + profileColumns

	if err := r.db.GetContext(ctx, profile, query,
		profile.Principal, profile.Name, profile.Bio, profile.ContactInfo); err != nil {
		return fmt.Errorf("profile repository: upsert %w", err)
	}

	return nil
}

// GetByPrincipal возвращает профиль по идентификатору участника.
func (r *ProfileRepository) GetByPrincipal(ctx context.Context, principal uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE principal = $1`
	if err := r.db.GetContext(ctx, &profile, query, principal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("profile repository: get by principal %w", err)
	}

	return &profile, nil
}

// Delete удаляет запись профиля. Ресурсы, отзывы и уведомления с этим
// principal остаются — они хранят уже осиротевший идентификатор.
func (r *ProfileRepository) Delete(ctx context.Context, principal uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE principal = $1`, principal)
	if err != nil {
		return fmt.Errorf("profile repository: delete %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("profile repository: delete rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}
