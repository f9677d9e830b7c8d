package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/resource-sharing-backend/internal/dto"
	"github.com/ignatzorin/resource-sharing-backend/internal/http/handlers/common"
	"github.com/ignatzorin/resource-sharing-backend/internal/service"
)

// ClaimHandler отвечает за бронирования и передачи ресурсов.
type ClaimHandler struct {
	claims *service.ClaimService
}

// NewClaimHandler создаёт новый хэндлер.
func NewClaimHandler(claims *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claims: claims}
}

// Reserve обрабатывает POST /resources/:id/reserve.
func (h *ClaimHandler) Reserve(c *gin.Context) {
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

	var req dto.ReserveRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	res, err := h.claims.Reserve(c.Request.Context(), id, userID, req.DurationHours)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Claim обрабатывает POST /resources/:id/claim.
func (h *ClaimHandler) Claim(c *gin.Context) {
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

	res, err := h.claims.ClaimDirect(c.Request.Context(), id, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ClaimResponse{Resource: res})
}

// ClaimWithMatching обрабатывает POST /resources/:id/claim-with-matching.
func (h *ClaimHandler) ClaimWithMatching(c *gin.Context) {
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

	var req dto.ClaimWithMatchingRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	res, analysis, err := h.claims.ClaimWithMatching(c.Request.Context(), id, userID, req.Needs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ClaimResponse{Resource: res, MatchAnalysis: analysis})
}

// MatchAnalysis обрабатывает POST /resources/:id/match-analysis.
// Операция только читает: состояние ресурса не меняется.
func (h *ClaimHandler) MatchAnalysis(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.MatchAnalysisRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	analysis, err := h.claims.GetMatchAnalysis(c.Request.Context(), id, req.Needs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MatchAnalysisResponse{Analysis: analysis})
}

// Recommendations обрабатывает POST /resources/recommendations.
func (h *ClaimHandler) Recommendations(c *gin.Context) {
	var req dto.RecommendationsRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	recommendation, err := h.claims.Recommend(c.Request.Context(), req.Needs, req.Location)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecommendationsResponse{Recommendation: recommendation})
}
