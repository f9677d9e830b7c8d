package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignatzorin/resource-sharing-backend/internal/logger"
	"github.com/ignatzorin/resource-sharing-backend/internal/models"
	"github.com/ignatzorin/resource-sharing-backend/internal/repository"
	"github.com/ignatzorin/resource-sharing-backend/internal/validation"
)

// ResourceRepository описывает взаимодействие сервиса с хранилищем ресурсов.
type ResourceRepository interface {
	Create(ctx context.Context, res *models.Resource) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, *repository.SweepEvent, error)
	ListAvailable(ctx context.Context) ([]models.Resource, error)
	SearchByTags(ctx context.Context, tags []string) ([]models.Resource, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Resource, error)
	Update(ctx context.Context, res *models.Resource, caller uuid.UUID) (*repository.SweepEvent, error)
	Delete(ctx context.Context, id uuid.UUID, caller uuid.UUID) (*repository.SweepEvent, error)
	AddMedia(ctx context.Context, resourceID uuid.UUID, item *models.MediaItem) (*repository.SweepEvent, error)
}

// NotificationEmitter описывает минимальный контракт рассылки уведомлений.
type NotificationEmitter interface {
	Emit(ctx context.Context, recipientID uuid.UUID, notificationType, message string, resourceID *uuid.UUID) (*models.Notification, error)
}

// CreateResourceInput собирает поля нового ресурса.
type CreateResourceInput struct {
	Category        string
	Tags            []string
	Description     string
	Quantity        int
	Location        string
	Latitude        *float64
	Longitude       *float64
	Media           []MediaInput
	ListingTTLHours int
}

// UpdateResourceInput собирает редактируемые поля ресурса.
type UpdateResourceInput struct {
	Category    string
	Tags        []string
	Description string
	Quantity    int
	Location    string
	Latitude    *float64
	Longitude   *float64
}

// MediaInput описывает один элемент медиа из запроса.
type MediaInput struct {
	URL         string
	ContentType string
	Description *string
}

// Предельный срок жизни объявления.
const maxListingTTLHours = 24 * 365

// ResourceService содержит бизнес-логику каталога ресурсов.
type ResourceService struct {
	repo          ResourceRepository
	notifications NotificationEmitter
	defaultTTL    time.Duration
}

// NewResourceService создаёт новый сервис ресурсов.
func NewResourceService(repo ResourceRepository, notifications NotificationEmitter, defaultTTL time.Duration) *ResourceService {
	return &ResourceService{repo: repo, notifications: notifications, defaultTTL: defaultTTL}
}

// Create публикует новый ресурс от имени владельца.
func (s *ResourceService) Create(ctx context.Context, owner uuid.UUID, in CreateResourceInput) (*models.Resource, error) {
	if err := validateResourceFields(in.Category, in.Tags, in.Description, in.Quantity, in.Location, in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	ttl := s.defaultTTL
	if in.ListingTTLHours != 0 {
		if in.ListingTTLHours < 0 || in.ListingTTLHours > maxListingTTLHours {
			return nil, fmt.Errorf("срок жизни объявления должен быть от 1 до %d часов", maxListingTTLHours)
		}
		ttl = time.Duration(in.ListingTTLHours) * time.Hour
	}

	media := make([]models.MediaItem, 0, len(in.Media))
	for _, m := range in.Media {
		if err := validation.ValidateMediaURL(m.URL); err != nil {
			return nil, err
		}
		if err := validation.ValidateMediaDescription(m.Description); err != nil {
			return nil, err
		}
		media = append(media, models.MediaItem{
			URL:         m.URL,
			ContentType: m.ContentType,
			Description: m.Description,
		})
	}

	res := &models.Resource{
		OwnerID:     owner,
		Category:    in.Category,
		Tags:        pq.StringArray(validation.NormalizeTags(in.Tags)),
		Description: in.Description,
		Quantity:    in.Quantity,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		ExpiresAt:   time.Now().Add(ttl),
		Media:       media,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}

	return res, nil
}

// Get возвращает ресурс по идентификатору. Чтение проходит через ленивую
// проверку сроков, поэтому просроченная бронь здесь не наблюдаема.
func (s *ResourceService) Get(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	res, event, err := s.repo.GetByID(ctx, id)
	emitSweep(ctx, s.notifications, event)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ListAvailable возвращает доступные и не истёкшие ресурсы.
func (s *ResourceService) ListAvailable(ctx context.Context) ([]models.Resource, error) {
	return s.repo.ListAvailable(ctx)
}

// Search возвращает доступные ресурсы по пересечению тегов.
func (s *ResourceService) Search(ctx context.Context, tags []string) ([]models.Resource, error) {
	if err := validation.ValidateTags(tags); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return s.repo.ListAvailable(ctx)
	}
	return s.repo.SearchByTags(ctx, validation.NormalizeTags(tags))
}

// ListMine возвращает все ресурсы владельца независимо от статуса.
func (s *ResourceService) ListMine(ctx context.Context, owner uuid.UUID) ([]models.Resource, error) {
	return s.repo.ListByOwner(ctx, owner)
}

// Update изменяет ресурс владельца, пока тот доступен.
func (s *ResourceService) Update(ctx context.Context, id uuid.UUID, caller uuid.UUID, in UpdateResourceInput) (*models.Resource, error) {
	if err := validateResourceFields(in.Category, in.Tags, in.Description, in.Quantity, in.Location, in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	res := &models.Resource{
		ID:          id,
		Category:    in.Category,
		Tags:        pq.StringArray(validation.NormalizeTags(in.Tags)),
		Description: in.Description,
		Quantity:    in.Quantity,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}

	event, err := s.repo.Update(ctx, res, caller)
	emitSweep(ctx, s.notifications, event)
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete удаляет доступный ресурс владельца.
func (s *ResourceService) Delete(ctx context.Context, id uuid.UUID, caller uuid.UUID) error {
	event, err := s.repo.Delete(ctx, id, caller)
	emitSweep(ctx, s.notifications, event)
	return err
}

// AddMedia добавляет элемент медиа к ресурсу, пока тот не передан.
func (s *ResourceService) AddMedia(ctx context.Context, resourceID uuid.UUID, in MediaInput) (*models.MediaItem, error) {
	if err := validation.ValidateMediaURL(in.URL); err != nil {
		return nil, err
	}
	if err := validation.ValidateMediaDescription(in.Description); err != nil {
		return nil, err
	}

	item := &models.MediaItem{
		URL:         in.URL,
		ContentType: in.ContentType,
		Description: in.Description,
	}

	event, err := s.repo.AddMedia(ctx, resourceID, item)
	emitSweep(ctx, s.notifications, event)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// validateResourceFields проверяет общие поля создания и редактирования.
func validateResourceFields(category string, tags []string, description string, quantity int, location string, latitude, longitude *float64) error {
	if err := validation.ValidateCategory(category); err != nil {
		return err
	}
	if err := validation.ValidateTags(tags); err != nil {
		return err
	}
	if err := validation.ValidateDescription(description); err != nil {
		return err
	}
	if err := validation.ValidateQuantity(quantity); err != nil {
		return err
	}
	if err := validation.ValidateLocation(location); err != nil {
		return err
	}
	return validation.ValidateCoordinates(latitude, longitude)
}

// emitSweep рассылает уведомления по событиям ленивой проверки сроков.
// Сами события — внутренние побочные эффекты чтения и никогда не становятся
// ошибками операции.
func emitSweep(ctx context.Context, notifications NotificationEmitter, event *repository.SweepEvent) {
	if event == nil || notifications == nil {
		return
	}

	if event.ExpiredHolder != nil {
		resourceID := event.ResourceID
		if _, err := notifications.Emit(ctx, *event.ExpiredHolder, models.NotificationTypeReservationExpired,
			"срок вашей брони истёк, ресурс снова доступен", &resourceID); err != nil && logger.Log != nil {
			logger.Log.Warnf("resource service: не удалось отправить уведомление об истёкшей брони: %v", err)
		}
	}

	if event.WarnOwner != nil {
		resourceID := event.ResourceID
		if _, err := notifications.Emit(ctx, *event.WarnOwner, models.NotificationTypeResourceExpiringSoon,
			"срок размещения вашего ресурса скоро истечёт", &resourceID); err != nil && logger.Log != nil {
			logger.Log.Warnf("resource service: не удалось отправить уведомление об истечении объявления: %v", err)
		}
	}
}
