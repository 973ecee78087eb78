package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/config"
	"github.com/taxonomy-microservice/internal/delivery/http/handler"
	"github.com/taxonomy-microservice/internal/delivery/http/middleware"
	"github.com/taxonomy-microservice/internal/pkg/errors"
	"github.com/taxonomy-microservice/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	locationHandler       *handler.LocationHandler
	taxonomyHandler       *handler.TaxonomyHandler
	correctionHandler     *handler.CorrectionHandler
	countryMappingHandler *handler.CountryMappingHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	locationHandler *handler.LocationHandler,
	taxonomyHandler *handler.TaxonomyHandler,
	correctionHandler *handler.CorrectionHandler,
	countryMappingHandler *handler.CountryMappingHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Taxonomy Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:                   app,
		config:                cfg,
		logger:                logger,
		locationHandler:       locationHandler,
		taxonomyHandler:       taxonomyHandler,
		correctionHandler:     correctionHandler,
		countryMappingHandler: countryMappingHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Location routes
	api.Post("/locations", s.locationHandler.Create)
	api.Get("/locations", s.locationHandler.List)
	api.Get("/locations/:id", s.locationHandler.GetByID)
	api.Put("/locations/:id", s.locationHandler.Update)
	api.Delete("/locations/:id", s.locationHandler.Delete)

	// Taxonomy moderation routes
	api.Get("/taxonomy/pending", s.taxonomyHandler.ListPending)
	api.Get("/taxonomy/approved", s.taxonomyHandler.ListApproved)
	api.Post("/taxonomy/approve", s.taxonomyHandler.Approve)
	api.Post("/taxonomy/reject", s.taxonomyHandler.Reject)
	api.Post("/taxonomy/backfill", s.taxonomyHandler.Backfill)

	// Country mapping routes
	api.Get("/taxonomy/countries", s.countryMappingHandler.GetAll)
	api.Put("/taxonomy/countries", s.countryMappingHandler.Set)

	// Correction routes
	api.Get("/corrections", s.correctionHandler.List)
	api.Post("/corrections", s.correctionHandler.Create)
	api.Post("/corrections/preview", s.correctionHandler.Preview)
	api.Delete("/corrections/:id", s.correctionHandler.Delete)
}

// Start - запуск сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown - корректная остановка сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - обработка ошибок, не перехваченных хендлерами
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := err.(*errors.AppError); ok {
			return c.Status(appErr.StatusCode).JSON(utils.ErrorResponse{Error: appErr})
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    "HTTP_ERROR",
					"message": fiberErr.Message,
				},
			})
		}

		logger.Error("Unhandled error", zap.Error(err))
		return c.Status(500).JSON(utils.ErrorResponse{Error: errors.ErrInternalServer})
	}
}
