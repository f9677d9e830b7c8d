package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Resource описывает ресурс, выставленный владельцем для передачи сообществу.
// Поля брони (ReservedBy, ReservationExpiry) либо оба заполнены, либо оба
// пусты; статус claimed терминален.
type Resource struct {
	ID                uuid.UUID      `db:"id" json:"id"`
	OwnerID           uuid.UUID      `db:"owner_id" json:"owner_id"`
	Category          string         `db:"category" json:"category"`
	Tags              pq.StringArray `db:"tags" json:"tags"`
	Description       string         `db:"description" json:"description"`
	Quantity          int            `db:"quantity" json:"quantity"`
	Location          string         `db:"location" json:"location"`
	Latitude          *float64       `db:"latitude" json:"latitude,omitempty"`
	Longitude         *float64       `db:"longitude" json:"longitude,omitempty"`
	Status            string         `db:"status" json:"status"`
	ReservedBy        *uuid.UUID     `db:"reserved_by" json:"reserved_by,omitempty"`
	ReservationExpiry *time.Time     `db:"reservation_expiry" json:"reservation_expiry,omitempty"`
	ClaimedBy         *uuid.UUID     `db:"claimed_by" json:"claimed_by,omitempty"`
	ExpiryWarned      bool           `db:"expiry_warned" json:"-"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	ExpiresAt         time.Time      `db:"expires_at" json:"expires_at"`
	Media             []MediaItem    `db:"-" json:"media"`
}

// MediaItem описывает один элемент медиа ресурса (упорядоченный список).
type MediaItem struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ResourceID  uuid.UUID `db:"resource_id" json:"resource_id"`
	URL         string    `db:"url" json:"url"`
	ContentType string    `db:"content_type" json:"content_type"`
	Description *string   `db:"description" json:"description,omitempty"`
	Position    int       `db:"position" json:"position"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
