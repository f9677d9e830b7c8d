package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification описывает событие в ленте получателя.
// Уведомления не удаляются; получатель может только отмечать их прочитанными.
type Notification struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	RecipientID uuid.UUID  `db:"recipient_id" json:"recipient_id"`
	Type        string     `db:"type" json:"type"`
	Message     string     `db:"message" json:"message"`
	ResourceID  *uuid.UUID `db:"resource_id" json:"resource_id,omitempty"`
	IsRead      bool       `db:"is_read" json:"is_read"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
