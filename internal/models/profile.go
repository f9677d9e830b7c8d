package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile описывает публичный профиль участника.
// Principal — непрозрачный идентификатор от внешнего identity provider,
// неизменяемый ключ записи.
type Profile struct {
	Principal         uuid.UUID `db:"principal" json:"principal"`
	Name              string    `db:"name" json:"name"`
	Bio               *string   `db:"bio" json:"bio,omitempty"`
	ContactInfo       *string   `db:"contact_info" json:"contact_info,omitempty"`
	RatingSum         int       `db:"rating_sum" json:"-"`
	RatingCount       int       `db:"rating_count" json:"-"`
	ReputationScore   float64   `db:"reputation_score" json:"reputation_score"`
	TotalTransactions int       `db:"total_transactions" json:"total_transactions"`
	MemberSince       time.Time `db:"member_since" json:"member_since"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
