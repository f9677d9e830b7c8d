package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClaimHandler_Reserve_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ClaimHandler{claims: nil}
	r.POST("/resources/:id/reserve", handler.Reserve)

	resourceID := uuid.New()
	req, _ := http.NewRequest("POST", "/resources/"+resourceID.String()+"/reserve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClaimHandler_Reserve_InvalidResourceID_WithAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	handler := &ClaimHandler{claims: nil}
	r.POST("/resources/:id/reserve", handler.Reserve)

	req, _ := http.NewRequest("POST", "/resources/invalid-uuid/reserve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimHandler_Reserve_MissingDuration_WithAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	handler := &ClaimHandler{claims: nil}
	r.POST("/resources/:id/reserve", handler.Reserve)

	resourceID := uuid.New()
	req, _ := http.NewRequest("POST", "/resources/"+resourceID.String()+"/reserve", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimHandler_Claim_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ClaimHandler{claims: nil}
	r.POST("/resources/:id/claim", handler.Claim)

	resourceID := uuid.New()
	req, _ := http.NewRequest("POST", "/resources/"+resourceID.String()+"/claim", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClaimHandler_MatchAnalysis_InvalidResourceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ClaimHandler{claims: nil}
	r.POST("/resources/:id/match-analysis", handler.MatchAnalysis)

	req, _ := http.NewRequest("POST", "/resources/invalid-uuid/match-analysis", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClaimHandler_Recommendations_MissingNeeds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ClaimHandler{claims: nil}
	r.POST("/resources/recommendations", handler.Recommendations)

	req, _ := http.NewRequest("POST", "/resources/recommendations", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
