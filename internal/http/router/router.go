package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/resource-sharing-backend/internal/config"
	"github.com/ignatzorin/resource-sharing-backend/internal/http/handlers"
	"github.com/ignatzorin/resource-sharing-backend/internal/http/middleware"
	"github.com/ignatzorin/resource-sharing-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	resourceHandler *handlers.ResourceHandler,
	claimHandler *handlers.ClaimHandler,
	reviewHandler *handlers.ReviewHandler,
	profileHandler *handlers.ProfileHandler,
	notificationHandler *handlers.NotificationHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
	}

	// Публичные маршруты: каталог, отзывы и профили читаются без авторизации
	api.GET("/resources", resourceHandler.List)
	api.GET("/resources/search", resourceHandler.Search)
	api.GET("/resources/:id", middleware.UUIDValidator("id"), resourceHandler.Get)
	api.GET("/resources/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.ListResourceReviews)
	api.POST("/resources/:id/match-analysis", middleware.UUIDValidator("id"), claimHandler.MatchAnalysis)
	api.POST("/resources/recommendations", claimHandler.Recommendations)
	api.GET("/users/:id", middleware.UUIDValidator("id"), profileHandler.Get)
	api.GET("/users/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.ListUserReviews)
	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/resources", resourceHandler.Create)
		protected.GET("/resources/my", resourceHandler.ListMine)
		protected.PUT("/resources/:id", middleware.UUIDValidator("id"), resourceHandler.Update)
		protected.DELETE("/resources/:id", middleware.UUIDValidator("id"), resourceHandler.Delete)

		protected.POST("/resources/:id/media", middleware.UUIDValidator("id"), resourceHandler.AddMedia)
		protected.POST("/resources/:id/media/upload", middleware.UUIDValidator("id"), mediaHandler.Upload)

		protected.POST("/resources/:id/reserve", middleware.UUIDValidator("id"), claimHandler.Reserve)
		protected.POST("/resources/:id/claim", middleware.UUIDValidator("id"), claimHandler.Claim)
		protected.POST("/resources/:id/claim-with-matching", middleware.UUIDValidator("id"), claimHandler.ClaimWithMatching)

		protected.POST("/resources/:id/reviews", middleware.UUIDValidator("id"), reviewHandler.CreateReview)

		protected.GET("/profile", profileHandler.GetMine)
		protected.PUT("/profile", profileHandler.Upsert)
		protected.DELETE("/profile", profileHandler.Delete)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.POST("/notifications/read", notificationHandler.MarkRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	}

	return r
}
