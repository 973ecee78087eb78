package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/pkg/utils"
	"github.com/taxonomy-microservice/internal/pkg/validator"
	"github.com/taxonomy-microservice/internal/usecase"
	"github.com/taxonomy-microservice/internal/usecase/dto"
)

// TaxonomyHandler - обработчик модерации таксономии
type TaxonomyHandler struct {
	taxonomyUC *usecase.TaxonomyUseCase
	logger     *zap.Logger
}

// NewTaxonomyHandler - создание нового TaxonomyHandler
func NewTaxonomyHandler(taxonomyUC *usecase.TaxonomyUseCase, logger *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyUC: taxonomyUC,
		logger:     logger,
	}
}

// ListPending godoc
// @Summary Очередь модерации таксономии
// @Description Возвращает все pending-ключи с актуальным количеством ссылающихся локаций
// @Tags Taxonomy
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.PendingTaxonomyResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/taxonomy/pending [get]
func (h *TaxonomyHandler) ListPending(c *fiber.Ctx) error {
	pending, err := h.taxonomyUC.ListPending(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.PendingTaxonomyResponse{
		Pending: pending,
		Total:   len(pending),
	}, &utils.Meta{Total: len(pending)})
}

// ListApproved godoc
// @Summary Одобренные ключи таксономии
// @Description Возвращает все одобренные locationKey для публичных фильтров
// @Tags Taxonomy
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ApprovedTaxonomyResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/taxonomy/approved [get]
func (h *TaxonomyHandler) ListApproved(c *fiber.Ctx) error {
	keys, err := h.taxonomyUC.ListApproved(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ApprovedTaxonomyResponse{
		LocationKeys: keys,
		Total:        len(keys),
	}, &utils.Meta{Total: len(keys)})
}

// Approve godoc
// @Summary Одобрить ключ таксономии
// @Description Переводит запись в approved; повторное одобрение не является ошибкой
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param request body dto.TaxonomyActionRequest true "Ключ таксономии"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/taxonomy/approve [post]
func (h *TaxonomyHandler) Approve(c *fiber.Ctx) error {
	var req dto.TaxonomyActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.taxonomyUC.Approve(c.Context(), req.LocationKey); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"location_key": req.LocationKey, "status": "approved"}, nil)
}

// Reject godoc
// @Summary Отклонить ключ таксономии
// @Description Удаляет pending-запись. Ключ, на который ссылается хотя бы одна локация, отклонить нельзя - возвращается конфликт.
// @Tags Taxonomy
// @Accept json
// @Produce json
// @Param request body dto.TaxonomyActionRequest true "Ключ таксономии"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/taxonomy/reject [post]
func (h *TaxonomyHandler) Reject(c *fiber.Ctx) error {
	var req dto.TaxonomyActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.taxonomyUC.Reject(c.Context(), req.LocationKey); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"location_key": req.LocationKey, "status": "rejected"}, nil)
}

// Backfill godoc
// @Summary Выравнивание реестра таксономии
// @Description Идемпотентно создаёт отсутствующие записи по фактическим ключам локаций и принудительно одобряет все используемые pending-ключи
// @Tags Taxonomy
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.BackfillResult}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/taxonomy/backfill [post]
func (h *TaxonomyHandler) Backfill(c *fiber.Ctx) error {
	result, err := h.taxonomyUC.Backfill(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
