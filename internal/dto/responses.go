package dto

import (
	"github.com/ignatzorin/resource-sharing-backend/internal/models"
)

// ClaimResponse represents a completed claim, optionally with the oracle's verdict
type ClaimResponse struct {
	Resource      *models.Resource `json:"resource"`
	MatchAnalysis string           `json:"match_analysis,omitempty"`
}

// MatchAnalysisResponse represents a read-only fit analysis
type MatchAnalysisResponse struct {
	Analysis string `json:"analysis"`
}

// RecommendationsResponse represents AI-picked resource suggestions
type RecommendationsResponse struct {
	Recommendation string `json:"recommendation"`
}

// UnreadCountResponse represents the unread notifications counter
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MediaUploadResponse represents a stored media file
type MediaUploadResponse struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
