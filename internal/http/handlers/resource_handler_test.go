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

func TestResourceHandler_Create_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ResourceHandler{resources: nil}
	r.POST("/resources", handler.Create)

	req, _ := http.NewRequest("POST", "/resources", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResourceHandler_Create_MissingFields_WithAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	handler := &ResourceHandler{resources: nil}
	r.POST("/resources", handler.Create)

	req, _ := http.NewRequest("POST", "/resources", strings.NewReader(`{"category": "мебель"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResourceHandler_Get_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ResourceHandler{resources: nil}
	r.GET("/resources/:id", handler.Get)

	req, _ := http.NewRequest("GET", "/resources/invalid-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResourceHandler_Update_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ResourceHandler{resources: nil}
	r.PUT("/resources/:id", handler.Update)

	resourceID := uuid.New()
	req, _ := http.NewRequest("PUT", "/resources/"+resourceID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResourceHandler_Delete_InvalidID_WithAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userID := uuid.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	handler := &ResourceHandler{resources: nil}
	r.DELETE("/resources/:id", handler.Delete)

	req, _ := http.NewRequest("DELETE", "/resources/invalid-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResourceHandler_ListMine_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ResourceHandler{resources: nil}
	r.GET("/resources/my", handler.ListMine)

	req, _ := http.NewRequest("GET", "/resources/my", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
