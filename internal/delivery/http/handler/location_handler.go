package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/pkg/errors"
	"github.com/taxonomy-microservice/internal/pkg/utils"
	"github.com/taxonomy-microservice/internal/pkg/validator"
	"github.com/taxonomy-microservice/internal/usecase"
	"github.com/taxonomy-microservice/internal/usecase/dto"
)

// LocationHandler - обработчик кураторских точек интереса
type LocationHandler struct {
	locationUC *usecase.LocationUseCase
	logger     *zap.Logger
}

// NewLocationHandler - создание нового LocationHandler
func NewLocationHandler(locationUC *usecase.LocationUseCase, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		logger:     logger,
	}
}

// Create godoc
// @Summary Создать локацию
// @Description Создает точку интереса. Ключ таксономии строится из переданного ответа геокодера или по координатам; новый ключ попадает в очередь модерации, локация при этом сразу рабочая.
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body dto.CreateLocationRequest true "Данные локации"
// @Success 201 {object} utils.SuccessResponse{data=domain.Location}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	location, err := h.locationUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: location})
}

// List godoc
// @Summary Список локаций
// @Description Возвращает локации с фильтрацией по категории и ключу таксономии. Фильтр по неодобренному ключу возвращает пустой список.
// @Tags Locations
// @Produce json
// @Param category query string false "Категория (dining, accommodation, attraction, nightlife)"
// @Param location_key query string false "Ключ таксономии"
// @Param limit query int false "Максимальное количество результатов" default(50)
// @Param offset query int false "Смещение выборки"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	req := dto.ListLocationsRequest{
		Category:    c.Query("category"),
		LocationKey: c.Query("location_key"),
		Limit:       c.QueryInt("limit", 50),
		Offset:      c.QueryInt("offset", 0),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	locations, err := h.locationUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.LocationsResponse{
		Locations: locations,
		Total:     len(locations),
	}, &utils.Meta{Total: len(locations), Limit: req.Limit})
}

// GetByID godoc
// @Summary Локация по идентификатору
// @Tags Locations
// @Produce json
// @Param id path string true "Идентификатор локации"
// @Success 200 {object} utils.SuccessResponse{data=domain.Location}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	location, err := h.locationUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, location, nil)
}

// Update godoc
// @Summary Обновить локацию
// @Description Обновляет локацию; при переданном ответе геокодера ключ таксономии пересчитывается
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path string true "Идентификатор локации"
// @Param request body dto.UpdateLocationRequest true "Данные локации"
// @Success 200 {object} utils.SuccessResponse{data=domain.Location}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	location, err := h.locationUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, location, nil)
}

// Delete godoc
// @Summary Удалить локацию
// @Tags Locations
// @Produce json
// @Param id path string true "Идентификатор локации"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.locationUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"id": id, "deleted": true}, nil)
}
