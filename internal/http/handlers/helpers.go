package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/resource-sharing-backend/internal/http/handlers/common"
	"github.com/ignatzorin/resource-sharing-backend/internal/repository"
	"github.com/ignatzorin/resource-sharing-backend/internal/service"
)

// respondServiceError переводит ошибки сервисного слоя в HTTP ответы.
// Неопознанные внутренние ошибки уходят в централизованный ErrorHandler
// через c.Error; ошибки валидации с понятным сообщением отдаются как 400.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrResourceNotFound):
		common.RespondNotFound(c, "ресурс не найден")
	case errors.Is(err, repository.ErrProfileNotFound):
		common.RespondNotFound(c, "профиль не найден")
	case errors.Is(err, repository.ErrNotOwner):
		common.RespondForbidden(c, "нет прав на это действие")
	case errors.Is(err, repository.ErrResourceNotAvailable):
		common.RespondConflict(c, "ресурс недоступен")
	case errors.Is(err, repository.ErrReviewAlreadyExists):
		common.RespondConflict(c, "отзыв по этому ресурсу уже оставлен")
	case errors.Is(err, service.ErrInvalidDuration):
		common.RespondBadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidRating):
		common.RespondBadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotEligible):
		common.RespondForbidden(c, "отзыв может оставить только получатель ресурса")
	case errors.Is(err, service.ErrOracleUnavailable):
		common.RespondError(c, http.StatusServiceUnavailable, "сервис подбора временно недоступен")
	case isValidationMessage(err):
		common.RespondBadRequest(c, err.Error())
	default:
		_ = c.Error(err)
	}
}

// isValidationMessage отличает ошибку валидации с понятным пользователю
// текстом от внутренней (обёрнутой репозиторием или драйвером).
func isValidationMessage(err error) bool {
	msg := err.Error()
	if msg == "" {
		return false
	}
	for _, keyword := range []string{"repository:", "service:", "sql:", "pq:", "storage:"} {
		if strings.Contains(msg, keyword) {
			return false
		}
	}
	return true
}
