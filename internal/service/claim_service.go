package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/resource-sharing-backend/internal/logger"
	"github.com/ignatzorin/resource-sharing-backend/internal/models"
	"github.com/ignatzorin/resource-sharing-backend/internal/repository"
	"github.com/ignatzorin/resource-sharing-backend/internal/validation"
)

// Ошибки арбитража переходов.
var (
	ErrInvalidDuration   = errors.New("invalid reservation duration")
	ErrOracleUnavailable = errors.New("matching oracle unavailable")
)

// ResourceTransitioner описывает переходы состояний, нужные арбитру.
// Репозиторий гарантирует атомарность каждого перехода в рамках одного
// ресурса; арбитр не добавляет собственных блокировок.
type ResourceTransitioner interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, *repository.SweepEvent, error)
	Reserve(ctx context.Context, id uuid.UUID, caller uuid.UUID, expiry time.Time) (*models.Resource, *repository.SweepEvent, error)
	Claim(ctx context.Context, id uuid.UUID, caller uuid.UUID) (*models.Resource, *repository.SweepEvent, error)
	ListAvailable(ctx context.Context) ([]models.Resource, error)
}

// MatchingOracle описывает внешний сервис оценки соответствия.
type MatchingOracle interface {
	Analyze(ctx context.Context, category, description, needsText string) (string, error)
	Recommend(ctx context.Context, needsText, location string, resources []models.Resource) (string, error)
}

// ClaimService арбитрирует бронирования и передачи ресурсов.
type ClaimService struct {
	resources     ResourceTransitioner
	notifications NotificationEmitter
	oracle        MatchingOracle
	minHours      int
	maxHours      int
}

// NewClaimService создаёт нового арбитра. Оракул может быть nil — тогда
// AI-подбор недоступен, а заявки с анализом проходят без него.
func NewClaimService(resources ResourceTransitioner, notifications NotificationEmitter, oracle MatchingOracle, minHours, maxHours int) *ClaimService {
	return &ClaimService{
		resources:     resources,
		notifications: notifications,
		oracle:        oracle,
		minHours:      minHours,
		maxHours:      maxHours,
	}
}

// Reserve ставит бронь на доступный ресурс на заданное число часов.
func (s *ClaimService) Reserve(ctx context.Context, resourceID uuid.UUID, caller uuid.UUID, durationHours int) (*models.Resource, error) {
	if durationHours < s.minHours || durationHours > s.maxHours {
		return nil, fmt.Errorf("%w: длительность должна быть от %d до %d часов", ErrInvalidDuration, s.minHours, s.maxHours)
	}

	expiry := time.Now().Add(time.Duration(durationHours) * time.Hour)
	res, event, err := s.resources.Reserve(ctx, resourceID, caller, expiry)
	emitSweep(ctx, s.notifications, event)
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, res, models.NotificationTypeResourceReserved,
		fmt.Sprintf("ваш ресурс забронирован на %d ч.", durationHours))

	return res, nil
}

// ClaimDirect передаёт ресурс вызывающему. Разрешено из available либо из
// reserved тем же держателем брони; статус claimed терминален.
func (s *ClaimService) ClaimDirect(ctx context.Context, resourceID uuid.UUID, caller uuid.UUID) (*models.Resource, error) {
	res, event, err := s.resources.Claim(ctx, resourceID, caller)
	emitSweep(ctx, s.notifications, event)
	if err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, res, models.NotificationTypeResourceClaimed, "ваш ресурс передан получателю")

	return res, nil
}

// ClaimWithMatching передаёт ресурс, предварительно запросив у оракула разбор
// соответствия. Разбор носит справочный характер: отказ оракула не блокирует
// передачу, условия идентичны ClaimDirect.
func (s *ClaimService) ClaimWithMatching(ctx context.Context, resourceID uuid.UUID, caller uuid.UUID, needsText string) (*models.Resource, string, error) {
	if err := validation.ValidateNeedsText(needsText); err != nil {
		return nil, "", err
	}

	analysis := ""
	if s.oracle != nil {
		res, event, err := s.resources.GetByID(ctx, resourceID)
		emitSweep(ctx, s.notifications, event)
		if err != nil {
			return nil, "", err
		}

		analysis, err = s.oracle.Analyze(ctx, res.Category, res.Description, needsText)
		if err != nil {
			// Оракул недоступен — передача идёт без разбора.
			if logger.Log != nil {
				logger.Log.Warnf("claim service: оракул недоступен, передача без разбора: %v", err)
			}
			analysis = ""
		}
	}

	res, err := s.ClaimDirect(ctx, resourceID, caller)
	if err != nil {
		return nil, "", err
	}

	return res, analysis, nil
}

// GetMatchAnalysis возвращает разбор соответствия без изменения состояния.
func (s *ClaimService) GetMatchAnalysis(ctx context.Context, resourceID uuid.UUID, needsText string) (string, error) {
	if err := validation.ValidateNeedsText(needsText); err != nil {
		return "", err
	}

	res, event, err := s.resources.GetByID(ctx, resourceID)
	emitSweep(ctx, s.notifications, event)
	if err != nil {
		return "", err
	}

	if s.oracle == nil {
		return "", ErrOracleUnavailable
	}

	analysis, err := s.oracle.Analyze(ctx, res.Category, res.Description, needsText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	return analysis, nil
}

// Recommend подбирает доступные ресурсы под потребности и локацию.
func (s *ClaimService) Recommend(ctx context.Context, needsText, location string) (string, error) {
	if err := validation.ValidateNeedsText(needsText); err != nil {
		return "", err
	}

	if s.oracle == nil {
		return "", ErrOracleUnavailable
	}

	resources, err := s.resources.ListAvailable(ctx)
	if err != nil {
		return "", err
	}

	recommendation, err := s.oracle.Recommend(ctx, needsText, location, resources)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	return recommendation, nil
}

// notifyOwner отправляет владельцу уведомление о переходе; отказ доставки
// не влияет на уже зафиксированный переход.
func (s *ClaimService) notifyOwner(ctx context.Context, res *models.Resource, notificationType, message string) {
	resourceID := res.ID
	if _, err := s.notifications.Emit(ctx, res.OwnerID, notificationType, message, &resourceID); err != nil && logger.Log != nil {
		logger.Log.Warnf("claim service: не удалось отправить уведомление владельцу: %v", err)
	}
}
