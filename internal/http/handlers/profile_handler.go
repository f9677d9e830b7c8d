package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/resource-sharing-backend/internal/dto"
	"github.com/ignatzorin/resource-sharing-backend/internal/http/handlers/common"
	"github.com/ignatzorin/resource-sharing-backend/internal/service"
)

// ProfileHandler отвечает за профили участников.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler создаёт новый хэндлер.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Upsert обрабатывает PUT /profile: создаёт или обновляет профиль вызывающего.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.UpsertProfileRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	profile, err := h.profiles.CreateOrUpdate(c.Request.Context(), userID, req.Name, req.Bio, req.ContactInfo)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetMine обрабатывает GET /profile.
func (h *ProfileHandler) GetMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Get обрабатывает GET /users/:id: публичный просмотр профиля.
func (h *ProfileHandler) Get(c *gin.Context) {
	principal, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), principal)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Delete обрабатывает DELETE /profile.
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	if err := h.profiles.Delete(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "профиль удалён", nil)
}
