package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/resource-sharing-backend/internal/models"
	"github.com/ignatzorin/resource-sharing-backend/internal/repository"
)

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) GetByPrincipal(ctx context.Context, principal uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *mockProfileRepo) Delete(ctx context.Context, principal uuid.UUID) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

func TestProfileService_CreateOrUpdate_Success(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := NewProfileService(repo)
	ctx := context.Background()

	principal := uuid.New()
	repo.On("Upsert", ctx, mock.AnythingOfType("*models.Profile")).Return(nil)

	bio := "Делюсь инструментами и рассадой"
	profile, err := svc.CreateOrUpdate(ctx, principal, "Анна", &bio, nil)

	assert.NoError(t, err)
	assert.Equal(t, principal, profile.Principal)
	assert.Equal(t, "Анна", profile.Name)
}

func TestProfileService_CreateOrUpdate_InvalidName(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := NewProfileService(repo)
	ctx := context.Background()

	for _, name := range []string{"", " ", "А", strings.Repeat("а", 101)} {
		_, err := svc.CreateOrUpdate(ctx, uuid.New(), name, nil, nil)
		assert.Error(t, err)
	}
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestProfileService_Get_NotFound(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := NewProfileService(repo)
	ctx := context.Background()

	principal := uuid.New()
	repo.On("GetByPrincipal", ctx, principal).Return(nil, repository.ErrProfileNotFound)

	_, err := svc.Get(ctx, principal)
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestProfileService_Delete_Delegates(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := NewProfileService(repo)
	ctx := context.Background()

	principal := uuid.New()
	repo.On("Delete", ctx, principal).Return(nil)

	assert.NoError(t, svc.Delete(ctx, principal))
	repo.AssertExpectations(t)
}
