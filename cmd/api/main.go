package main

// @title Taxonomy Microservice API
// @version 1.0.0
// @description Микросервис для управления локациями и таксономией районов. Извлекает район из ответов обратного геокодирования, строит ключи локаций и предоставляет API для модерации таксономии и массовых исправлений.
// @description
// @description Основные возможности:
// @description - Создание и поиск локаций с автоматическим определением ключа таксономии
// @description - Очередь ожидающих подтверждения записей таксономии
// @description - Подтверждение и отклонение записей таксономии
// @description - Правила исправления сегментов ключей с предпросмотром и транзакционным применением
// @description - Настройка цепочек административных уровней по странам

// @contact.name API Support
// @contact.email support@taxonomy-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/taxonomy-microservice/docs"
	"github.com/taxonomy-microservice/internal/config"
	httpDelivery "github.com/taxonomy-microservice/internal/delivery/http"
	"github.com/taxonomy-microservice/internal/delivery/http/handler"
	"github.com/taxonomy-microservice/internal/infrastructure/geocoder"
	"github.com/taxonomy-microservice/internal/pkg/logger"
	"github.com/taxonomy-microservice/internal/repository/cache"
	"github.com/taxonomy-microservice/internal/repository/sqlite"
	"github.com/taxonomy-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Taxonomy Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to SQLite
	db, err := sqlite.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to open SQLite database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close SQLite database", zap.Error(err))
		}
	}()
	log.Info("SQLite database opened", zap.String("path", cfg.Database.Path))

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("SQLite health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	taxonomyRepo := sqlite.NewTaxonomyRepository(db)
	correctionRepo := sqlite.NewCorrectionRepository(db)
	locationRepo := sqlite.NewLocationRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	countryMappings := usecase.NewCountryMappings()
	extractor := usecase.NewDistrictExtractor(countryMappings)

	taxonomyUC := usecase.NewTaxonomyUseCase(
		taxonomyRepo,
		locationRepo,
		cacheRepo,
		extractor,
		log,
		cfg.Cache.ApprovedCacheTTL,
	)

	correctionUC := usecase.NewCorrectionUseCase(
		correctionRepo,
		cacheRepo,
		log,
	)

	geocoderClient := geocoder.New(&cfg.Geocoder, log)

	locationUC := usecase.NewLocationUseCase(
		locationRepo,
		taxonomyUC,
		geocoderClient,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	locationHandler := handler.NewLocationHandler(locationUC, log)
	taxonomyHandler := handler.NewTaxonomyHandler(taxonomyUC, log)
	correctionHandler := handler.NewCorrectionHandler(correctionUC, log)
	countryMappingHandler := handler.NewCountryMappingHandler(countryMappings, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		locationHandler,
		taxonomyHandler,
		correctionHandler,
		countryMappingHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
