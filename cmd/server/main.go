package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/resource-sharing-backend/internal/ai"
	"github.com/ignatzorin/resource-sharing-backend/internal/config"
	"github.com/ignatzorin/resource-sharing-backend/internal/db"
	httpHandlers "github.com/ignatzorin/resource-sharing-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/resource-sharing-backend/internal/http/router"
	"github.com/ignatzorin/resource-sharing-backend/internal/logger"
	"github.com/ignatzorin/resource-sharing-backend/internal/repository"
	"github.com/ignatzorin/resource-sharing-backend/internal/service"
	"github.com/ignatzorin/resource-sharing-backend/internal/storage"
	"github.com/ignatzorin/resource-sharing-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	mediaStorage, err := storage.NewMediaStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	resourceRepo := repository.NewResourceRepository(dbConn, cfg.ExpiryWarnWindow)
	profileRepo := repository.NewProfileRepository(dbConn)
	reviewRepo := repository.NewReviewRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)

	// Сервисы.
	notificationService := service.NewNotificationService(notificationRepo)
	resourceService := service.NewResourceService(resourceRepo, notificationService, cfg.DefaultListingTTL)
	profileService := service.NewProfileService(profileRepo)
	reviewService := service.NewReviewService(reviewRepo, resourceRepo, notificationService)
	seedService := service.NewSeedService(profileRepo, resourceRepo, tokenManager, cfg.DefaultListingTTL)

	var oracle service.MatchingOracle
	if cfg.AIBaseURL != "" && cfg.AIModel != "" {
		oracle = ai.NewClient(cfg.AIBaseURL, cfg.AIModel)
	}
	claimService := service.NewClaimService(resourceRepo, notificationService, oracle,
		cfg.ReservationMinHours, cfg.ReservationMaxHours)

	// Вебсокеты.
	hub := ws.NewHub()
	go hub.Run()
	notificationService.SetPusher(hub)

	// HTTP хэндлеры.
	resourceHandler := httpHandlers.NewResourceHandler(resourceService)
	claimHandler := httpHandlers.NewClaimHandler(claimService)
	reviewHandler := httpHandlers.NewReviewHandler(reviewService)
	profileHandler := httpHandlers.NewProfileHandler(profileService)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService)
	mediaHandler := httpHandlers.NewMediaHandler(resourceService, mediaStorage)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(seedService)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, resourceHandler, claimHandler, reviewHandler,
		profileHandler, notificationHandler, mediaHandler, wsHandler, healthHandler,
		seedHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
