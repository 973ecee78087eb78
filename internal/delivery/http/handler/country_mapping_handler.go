package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/pkg/utils"
	"github.com/taxonomy-microservice/internal/pkg/validator"
	"github.com/taxonomy-microservice/internal/usecase"
	"github.com/taxonomy-microservice/internal/usecase/dto"
)

// CountryMappingHandler - операторская настройка цепочек административных уровней
type CountryMappingHandler struct {
	mappings *usecase.CountryMappings
	logger   *zap.Logger
}

// NewCountryMappingHandler - создание нового CountryMappingHandler
func NewCountryMappingHandler(mappings *usecase.CountryMappings, logger *zap.Logger) *CountryMappingHandler {
	return &CountryMappingHandler{
		mappings: mappings,
		logger:   logger,
	}
}

// GetAll godoc
// @Summary Зарегистрированные страны
// @Description Возвращает соответствие ISO-кода страны её цепочке административных уровней
// @Tags Countries
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CountryMappingsResponse}
// @Router /api/v1/taxonomy/countries [get]
func (h *CountryMappingHandler) GetAll(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.CountryMappingsResponse{
		Mappings: h.mappings.All(),
	}, nil)
}

// Set godoc
// @Summary Регистрация страны
// @Description Регистрирует страну или заменяет её цепочку уровней; код нормализуется к верхнему регистру
// @Tags Countries
// @Accept json
// @Produce json
// @Param request body dto.SetCountryMappingRequest true "Код страны и цепочка уровней"
// @Success 200 {object} utils.SuccessResponse{data=dto.CountryMappingsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/taxonomy/countries [put]
func (h *CountryMappingHandler) Set(c *fiber.Ctx) error {
	var req dto.SetCountryMappingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.mappings.Set(req.CountryCode, req.AdminLevels); err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Country mapping updated",
		zap.String("country_code", req.CountryCode),
		zap.Ints("admin_levels", req.AdminLevels),
	)

	return utils.SendSuccess(c, dto.CountryMappingsResponse{
		Mappings: h.mappings.All(),
	}, nil)
}
