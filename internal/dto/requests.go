package dto

// MediaItemRequest represents a single media attachment in a resource payload
type MediaItemRequest struct {
	URL         string  `json:"url" binding:"required"`
	ContentType string  `json:"content_type" binding:"required"`
	Description *string `json:"description"`
}

// CreateResourceRequest represents the request to publish a resource
type CreateResourceRequest struct {
	Category        string             `json:"category" binding:"required"`
	Tags            []string           `json:"tags"`
	Description     string             `json:"description" binding:"required"`
	Quantity        int                `json:"quantity" binding:"required"`
	Location        string             `json:"location" binding:"required"`
	Latitude        *float64           `json:"latitude"`
	Longitude       *float64           `json:"longitude"`
	Media           []MediaItemRequest `json:"media"`
	ListingTTLHours int                `json:"listing_ttl_hours"`
}

// UpdateResourceRequest represents the request to edit a resource
type UpdateResourceRequest struct {
	Category    string   `json:"category" binding:"required"`
	Tags        []string `json:"tags"`
	Description string   `json:"description" binding:"required"`
	Quantity    int      `json:"quantity" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// AddMediaRequest represents the request to append a media item
type AddMediaRequest struct {
	URL         string  `json:"url" binding:"required"`
	ContentType string  `json:"content_type" binding:"required"`
	Description *string `json:"description"`
}

// ReserveRequest represents the request to place a hold on a resource
type ReserveRequest struct {
	DurationHours int `json:"duration_hours" binding:"required"`
}

// ClaimWithMatchingRequest represents the request to claim with an AI fit check
type ClaimWithMatchingRequest struct {
	Needs string `json:"needs" binding:"required"`
}

// MatchAnalysisRequest represents the request for a read-only fit analysis
type MatchAnalysisRequest struct {
	Needs string `json:"needs" binding:"required"`
}

// RecommendationsRequest represents the request for resource recommendations
type RecommendationsRequest struct {
	Needs    string `json:"needs" binding:"required"`
	Location string `json:"location"`
}

// CreateReviewRequest represents the request to leave a review
type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment"`
}

// UpsertProfileRequest represents the request to create or update a profile
type UpsertProfileRequest struct {
	Name        string  `json:"name" binding:"required"`
	Bio         *string `json:"bio"`
	ContactInfo *string `json:"contact_info"`
}

// MarkReadRequest represents the request to mark notifications as read
type MarkReadRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// SeedRequest represents the dev-only request to generate demo data
type SeedRequest struct {
	NumUsers     int `json:"num_users"`
	NumResources int `json:"num_resources"`
}
