package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/domain"
	"github.com/taxonomy-microservice/internal/domain/repository"
	"github.com/taxonomy-microservice/internal/pkg/errors"
	"github.com/taxonomy-microservice/internal/pkg/utils"
	"github.com/taxonomy-microservice/internal/usecase/dto"
)

// LocationUseCase - CRUD кураторских точек интереса. При создании и
// обновлении прогоняет ответ геокодера через workflow таксономии; локация
// сохраняется с полученным ключом независимо от его статуса - одобрение
// влияет только на видимость в публичных фильтрах.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
	taxonomyUC   *TaxonomyUseCase
	geocoder     repository.GeocoderRepository
	logger       *zap.Logger
}

// NewLocationUseCase - создание нового LocationUseCase.
// Геокодер опционален: без него ключ строится только из переданного
// в запросе ответа провайдера.
func NewLocationUseCase(
	locationRepo repository.LocationRepository,
	taxonomyUC *TaxonomyUseCase,
	geocoder repository.GeocoderRepository,
	logger *zap.Logger,
) *LocationUseCase {
	return &LocationUseCase{
		locationRepo: locationRepo,
		taxonomyUC:   taxonomyUC,
		geocoder:     geocoder,
		logger:       logger,
	}
}

// resolveKey строит ключ таксономии для локации. Отказ геокодера не
// блокирует сохранение: локация остаётся без ключа до backfill.
func (uc *LocationUseCase) resolveKey(ctx context.Context, geocode *domain.GeocodeResult, lat, lon float64) *string {
	if geocode == nil && uc.geocoder != nil {
		result, err := uc.geocoder.ReverseGeocode(ctx, lat, lon)
		if err != nil {
			uc.logger.Warn("Reverse geocoding failed, location will have no taxonomy key",
				zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
			return nil
		}
		geocode = result
	}
	if geocode == nil {
		return nil
	}

	entry, err := uc.taxonomyUC.ResolveLocationKey(ctx, *geocode)
	if err != nil {
		uc.logger.Warn("Failed to resolve taxonomy key, location will have no taxonomy key", zap.Error(err))
		return nil
	}
	if entry == nil {
		return nil
	}

	return &entry.LocationKey
}

// Create создает локацию и регистрирует её ключ в реестре таксономии
func (uc *LocationUseCase) Create(ctx context.Context, req dto.CreateLocationRequest) (*domain.Location, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	category := domain.LocationCategory(req.Category)
	if !category.Valid() {
		return nil, errors.ErrInvalidCategory
	}

	location := &domain.Location{
		ID:           uuid.New(),
		Name:         req.Name,
		Category:     category,
		Address:      req.Address,
		Lat:          req.Lat,
		Lon:          req.Lon,
		Description:  req.Description,
		InstagramURL: req.InstagramURL,
		Website:      req.Website,
		LocationKey:  uc.resolveKey(ctx, req.Geocode, req.Lat, req.Lon),
	}

	if err := uc.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}

	return location, nil
}

// GetByID возвращает локацию
func (uc *LocationUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	return uc.locationRepo.GetByID(ctx, id)
}

// List возвращает локации. Фильтр по ключу таксономии является публичным:
// неодобренный ключ не раскрывается, выборка по нему пуста.
func (uc *LocationUseCase) List(ctx context.Context, req dto.ListLocationsRequest) ([]*domain.Location, error) {
	filter := domain.LocationFilter{
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	if req.Category != "" {
		category := domain.LocationCategory(req.Category)
		if !category.Valid() {
			return nil, errors.ErrInvalidCategory
		}
		filter.Category = &category
	}

	if req.LocationKey != "" {
		approved, err := uc.taxonomyUC.IsApproved(ctx, req.LocationKey)
		if err != nil {
			return nil, err
		}
		if !approved {
			return []*domain.Location{}, nil
		}
		filter.LocationKey = &req.LocationKey
	}

	return uc.locationRepo.List(ctx, filter)
}

// Update обновляет локацию; при переданном Geocode ключ пересчитывается
func (uc *LocationUseCase) Update(ctx context.Context, id uuid.UUID, req dto.UpdateLocationRequest) (*domain.Location, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	category := domain.LocationCategory(req.Category)
	if !category.Valid() {
		return nil, errors.ErrInvalidCategory
	}

	location, err := uc.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	location.Name = req.Name
	location.Category = category
	location.Address = req.Address
	location.Lat = req.Lat
	location.Lon = req.Lon
	location.Description = req.Description
	location.InstagramURL = req.InstagramURL
	location.Website = req.Website

	if req.Geocode != nil {
		if key := uc.resolveKey(ctx, req.Geocode, req.Lat, req.Lon); key != nil {
			location.LocationKey = key
		}
	}

	if err := uc.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}

	return location, nil
}

// Delete удаляет локацию; запись таксономии остаётся в реестре
func (uc *LocationUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.locationRepo.Delete(ctx, id)
}
