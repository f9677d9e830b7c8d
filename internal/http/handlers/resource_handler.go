package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/resource-sharing-backend/internal/dto"
	"github.com/ignatzorin/resource-sharing-backend/internal/http/handlers/common"
	"github.com/ignatzorin/resource-sharing-backend/internal/service"
)

// ResourceHandler отвечает за каталог ресурсов.
type ResourceHandler struct {
	resources *service.ResourceService
}

// NewResourceHandler создаёт новый хэндлер.
func NewResourceHandler(resources *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// Create обрабатывает POST /resources.
func (h *ResourceHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.CreateResourceRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	media := make([]service.MediaInput, 0, len(req.Media))
	for _, m := range req.Media {
		media = append(media, service.MediaInput{
			URL:         m.URL,
			ContentType: m.ContentType,
			Description: m.Description,
		})
	}

	res, err := h.resources.Create(c.Request.Context(), userID, service.CreateResourceInput{
		Category:        req.Category,
		Tags:            req.Tags,
		Description:     req.Description,
		Quantity:        req.Quantity,
		Location:        req.Location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Media:           media,
		ListingTTLHours: req.ListingTTLHours,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// List обрабатывает GET /resources.
func (h *ResourceHandler) List(c *gin.Context) {
	resources, err := h.resources.ListAvailable(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// Search обрабатывает GET /resources/search?tags=a,b,c.
func (h *ResourceHandler) Search(c *gin.Context) {
	var tags []string
	if raw := c.Query("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	resources, err := h.resources.Search(c.Request.Context(), tags)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// ListMine обрабатывает GET /resources/my.
func (h *ResourceHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	resources, err := h.resources.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// Get обрабатывает GET /resources/:id.
func (h *ResourceHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	res, err := h.resources.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Update обрабатывает PUT /resources/:id.
func (h *ResourceHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateResourceRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	res, err := h.resources.Update(c.Request.Context(), id, userID, service.UpdateResourceInput{
		Category:    req.Category,
		Tags:        req.Tags,
		Description: req.Description,
		Quantity:    req.Quantity,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Delete обрабатывает DELETE /resources/:id.
func (h *ResourceHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.resources.Delete(c.Request.Context(), id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	common.RespondSuccess(c, http.StatusOK, "ресурс удалён", nil)
}

// AddMedia обрабатывает POST /resources/:id/media.
func (h *ResourceHandler) AddMedia(c *gin.Context) {
	if _, err := common.CurrentUserID(c); err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.AddMediaRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	item, err := h.resources.AddMedia(c.Request.Context(), id, service.MediaInput{
		URL:         req.URL,
		ContentType: req.ContentType,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}
