package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/domain"
	"github.com/taxonomy-microservice/internal/domain/repository"
	"github.com/taxonomy-microservice/internal/pkg/errors"
	"github.com/taxonomy-microservice/internal/usecase/dto"
)

// CorrectionUseCase - управление правилами коррекции таксономии.
// Правило "неправильное значение → правильное" применяется ретроактивно
// ко всем историческим данным одной атомарной операцией.
type CorrectionUseCase struct {
	correctionRepo repository.CorrectionRepository
	cacheRepo      repository.CacheRepository
	logger         *zap.Logger
}

// NewCorrectionUseCase - создание нового CorrectionUseCase
func NewCorrectionUseCase(
	correctionRepo repository.CorrectionRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
) *CorrectionUseCase {
	return &CorrectionUseCase{
		correctionRepo: correctionRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
	}
}

// normalizeCorrection валидирует и нормализует параметры правила.
// Значения приводятся к формату сегмента ключа; самоссылающиеся правила
// отклоняются до какого-либо обращения к хранилищу.
func normalizeCorrection(req dto.CorrectionRequest) (incorrect, correct string, part domain.TaxonomyPart, err error) {
	part = domain.TaxonomyPart(req.PartType)
	if !part.Valid() {
		return "", "", "", errors.ErrInvalidPartType
	}

	incorrect = domain.NormalizeSegment(req.IncorrectValue)
	correct = domain.NormalizeSegment(req.CorrectValue)
	if incorrect == "" || correct == "" {
		return "", "", "", errors.ErrInvalidRequest
	}
	if incorrect == correct {
		return "", "", "", errors.ErrSelfCorrection
	}

	return incorrect, correct, part, nil
}

// Preview вычисляет эффект правила без применения
func (uc *CorrectionUseCase) Preview(ctx context.Context, req dto.CorrectionRequest) (*domain.CorrectionPreview, error) {
	incorrect, correct, part, err := normalizeCorrection(req)
	if err != nil {
		return nil, err
	}

	return uc.correctionRepo.Preview(ctx, incorrect, correct, part)
}

// Create сохраняет правило и атомарно переписывает реестр таксономии и
// локации; количество затронутых строк совпадает с предпросмотром,
// выполненным с теми же аргументами
func (uc *CorrectionUseCase) Create(ctx context.Context, req dto.CorrectionRequest) (*domain.CorrectionResult, error) {
	incorrect, correct, part, err := normalizeCorrection(req)
	if err != nil {
		return nil, err
	}

	result, err := uc.correctionRepo.Apply(ctx, incorrect, correct, part)
	if err != nil {
		uc.logger.Error("Failed to apply correction",
			zap.String("incorrect_value", incorrect),
			zap.String("correct_value", correct),
			zap.String("part_type", string(part)),
			zap.Error(err),
		)
		return nil, err
	}

	// Перезапись могла затронуть одобренные ключи
	if err := uc.cacheRepo.Delete(ctx, approvedKeysCacheKey); err != nil {
		uc.logger.Warn("Failed to invalidate approved keys cache", zap.Error(err))
	}

	uc.logger.Info("Correction applied",
		zap.String("incorrect_value", incorrect),
		zap.String("correct_value", correct),
		zap.String("part_type", string(part)),
		zap.Int("taxonomy_updated", result.TaxonomyUpdated),
		zap.Int("locations_updated", result.LocationsUpdated),
	)

	return result, nil
}

// List возвращает все сохранённые правила
func (uc *CorrectionUseCase) List(ctx context.Context) ([]domain.TaxonomyCorrection, error) {
	return uc.correctionRepo.List(ctx)
}

// Delete удаляет правило; применённые перезаписи не откатываются
func (uc *CorrectionUseCase) Delete(ctx context.Context, id int64) error {
	return uc.correctionRepo.Delete(ctx, id)
}
