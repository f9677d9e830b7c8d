package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/resource-sharing-backend/internal/models"
	"github.com/ignatzorin/resource-sharing-backend/internal/validation"
)

// ProfileRepository описывает взаимодействие сервиса с хранилищем профилей.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *models.Profile) error
	GetByPrincipal(ctx context.Context, principal uuid.UUID) (*models.Profile, error)
	Delete(ctx context.Context, principal uuid.UUID) error
}

// ProfileService содержит бизнес-логику профилей участников.
type ProfileService struct {
	repo ProfileRepository
}

// NewProfileService создаёт новый сервис профилей.
func NewProfileService(repo ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// CreateOrUpdate создаёт профиль при первом обращении или обновляет
// изменяемые поля. Principal и дата регистрации неизменяемы.
func (s *ProfileService) CreateOrUpdate(ctx context.Context, principal uuid.UUID, name string, bio, contactInfo *string) (*models.Profile, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateBio(bio); err != nil {
		return nil, err
	}
	if err := validation.ValidateContactInfo(contactInfo); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		Principal:   principal,
		Name:        name,
		Bio:         bio,
		ContactInfo: contactInfo,
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// Get возвращает профиль участника.
func (s *ProfileService) Get(ctx context.Context, principal uuid.UUID) (*models.Profile, error) {
	return s.repo.GetByPrincipal(ctx, principal)
}

// Delete удаляет профиль владельца. Ресурсы и отзывы не каскадируются:
// они сохраняют осиротевший principal.
func (s *ProfileService) Delete(ctx context.Context, principal uuid.UUID) error {
	return s.repo.Delete(ctx, principal)
}
