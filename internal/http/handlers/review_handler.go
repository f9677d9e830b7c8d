package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/resource-sharing-backend/internal/dto"
	"github.com/ignatzorin/resource-sharing-backend/internal/http/handlers/common"
	"github.com/ignatzorin/resource-sharing-backend/internal/service"
)

// ReviewHandler отвечает за отзывы по переданным ресурсам.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler создаёт новый хэндлер.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// CreateReview обрабатывает POST /resources/:id/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	resourceID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.CreateReviewRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, "рейтинг должен быть от 1 до 5")
		return
	}

	review, err := h.reviews.AddReview(c.Request.Context(), resourceID, userID, req.Rating, req.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListResourceReviews обрабатывает GET /resources/:id/reviews.
func (h *ReviewHandler) ListResourceReviews(c *gin.Context) {
	resourceID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	reviews, err := h.reviews.GetReviews(c.Request.Context(), resourceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// ListUserReviews обрабатывает GET /users/:id/reviews.
func (h *ReviewHandler) ListUserReviews(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	limit, offset := common.GetPagination(c)

	reviews, err := h.reviews.ListReceived(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
