package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/resource-sharing-backend/internal/dto"
	"github.com/ignatzorin/resource-sharing-backend/internal/service"
)

// SeedHandler обрабатывает запросы для генерации фейковых данных.
// Маршрут подключается только в dev окружении.
type SeedHandler struct {
	seedService *service.SeedService
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// Seed генерирует фейковые профили и ресурсы.
// POST /api/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	var req dto.SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.NumUsers < 1 {
		req.NumUsers = 20
	}
	if req.NumResources < 1 {
		req.NumResources = 50
	}
	if req.NumUsers > 500 {
		req.NumUsers = 500
	}
	if req.NumResources > 2000 {
		req.NumResources = 2000
	}

	users, err := h.seedService.SeedData(c.Request.Context(), req.NumUsers, req.NumResources)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate seed data",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Seed data generated successfully",
		"num_users":     req.NumUsers,
		"num_resources": req.NumResources,
		"users":         users,
	})
}
