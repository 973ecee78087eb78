package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/pkg/errors"
	"github.com/taxonomy-microservice/internal/pkg/utils"
	"github.com/taxonomy-microservice/internal/pkg/validator"
	"github.com/taxonomy-microservice/internal/usecase"
	"github.com/taxonomy-microservice/internal/usecase/dto"
)

// CorrectionHandler - обработчик правил коррекции таксономии
type CorrectionHandler struct {
	correctionUC *usecase.CorrectionUseCase
	logger       *zap.Logger
}

// NewCorrectionHandler - создание нового CorrectionHandler
func NewCorrectionHandler(correctionUC *usecase.CorrectionUseCase, logger *zap.Logger) *CorrectionHandler {
	return &CorrectionHandler{
		correctionUC: correctionUC,
		logger:       logger,
	}
}

// Preview godoc
// @Summary Предпросмотр правила коррекции
// @Description Вычисляет, сколько записей таксономии и локаций затронет правило, без каких-либо изменений
// @Tags Corrections
// @Accept json
// @Produce json
// @Param request body dto.CorrectionRequest true "Параметры правила"
// @Success 200 {object} utils.SuccessResponse{data=domain.CorrectionPreview}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/corrections/preview [post]
func (h *CorrectionHandler) Preview(c *fiber.Ctx) error {
	var req dto.CorrectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	preview, err := h.correctionUC.Preview(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, preview, nil)
}

// Create godoc
// @Summary Создать и применить правило коррекции
// @Description Сохраняет правило и атомарно переписывает затронутый сегмент во всех записях таксономии и локациях
// @Tags Corrections
// @Accept json
// @Produce json
// @Param request body dto.CorrectionRequest true "Параметры правила"
// @Success 200 {object} utils.SuccessResponse{data=domain.CorrectionResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/corrections [post]
func (h *CorrectionHandler) Create(c *fiber.Ctx) error {
	var req dto.CorrectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.correctionUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// List godoc
// @Summary Список правил коррекции
// @Tags Corrections
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.TaxonomyCorrection}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/corrections [get]
func (h *CorrectionHandler) List(c *fiber.Ctx) error {
	corrections, err := h.correctionUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, corrections, &utils.Meta{Total: len(corrections)})
}

// Delete godoc
// @Summary Удалить правило коррекции
// @Description Удаляет правило; уже применённые перезаписи не откатываются
// @Tags Corrections
// @Produce json
// @Param id path int true "Идентификатор правила"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/corrections/{id} [delete]
func (h *CorrectionHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.correctionUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"id": id, "deleted": true}, nil)
}
