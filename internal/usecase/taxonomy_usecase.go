package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/domain"
	"github.com/taxonomy-microservice/internal/domain/repository"
	"github.com/taxonomy-microservice/internal/pkg/errors"
)

// approvedKeysCacheKey - ключ кэша списка одобренных locationKey
const approvedKeysCacheKey = "taxonomy:approved_keys"

// TaxonomyUseCase - оркестрация жизненного цикла ключей таксономии:
// unseen → pending → approved; pending может быть отклонён только пока
// на ключ не ссылается ни одна локация, из approved состояние не регрессирует.
type TaxonomyUseCase struct {
	taxonomyRepo repository.TaxonomyRepository
	locationRepo repository.LocationRepository
	cacheRepo    repository.CacheRepository
	extractor    *DistrictExtractor
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewTaxonomyUseCase - создание нового TaxonomyUseCase
func NewTaxonomyUseCase(
	taxonomyRepo repository.TaxonomyRepository,
	locationRepo repository.LocationRepository,
	cacheRepo repository.CacheRepository,
	extractor *DistrictExtractor,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *TaxonomyUseCase {
	return &TaxonomyUseCase{
		taxonomyRepo: taxonomyRepo,
		locationRepo: locationRepo,
		cacheRepo:    cacheRepo,
		extractor:    extractor,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// ResolveLocationKey строит ключ из ответа геокодера и гарантирует наличие
// записи в реестре. Непросмотренный ключ вставляется как pending; для уже
// известного ключа возвращается существующая запись без изменения статуса.
// Возвращает nil без ошибки, когда ключ построить невозможно (нет страны).
func (uc *TaxonomyUseCase) ResolveLocationKey(ctx context.Context, geocode domain.GeocodeResult) (*domain.TaxonomyEntry, error) {
	country := strings.TrimSpace(geocode.CountryName)
	if country == "" {
		country = strings.TrimSpace(geocode.CountryCode)
	}
	if country == "" {
		// Легитимный исход: у локации просто не будет ключа таксономии
		return nil, nil
	}

	var district *string
	if name, ok := uc.extractor.Extract(geocode.CountryCode, geocode.Administrative, geocode.Informative); ok {
		district = &name
	}

	key := domain.BuildLocationKey(country, geocode.City, district)
	segments := domain.SplitLocationKey(key)

	entry := domain.TaxonomyEntry{
		Country:     segments[0],
		LocationKey: key,
		Status:      domain.TaxonomyStatusPending,
	}
	if len(segments) > 1 {
		entry.City = &segments[1]
	}
	if len(segments) > 2 {
		entry.Neighborhood = &segments[2]
	}

	resolved, err := uc.taxonomyRepo.InsertIfAbsent(ctx, entry)
	if err != nil {
		uc.logger.Error("Failed to resolve location key", zap.String("location_key", key), zap.Error(err))
		return nil, err
	}

	return resolved, nil
}

// FindByKey возвращает запись таксономии по ключу
func (uc *TaxonomyUseCase) FindByKey(ctx context.Context, locationKey string) (*domain.TaxonomyEntry, error) {
	return uc.taxonomyRepo.FindByKey(ctx, locationKey)
}

// ListPending возвращает очередь модерации
func (uc *TaxonomyUseCase) ListPending(ctx context.Context) ([]domain.PendingTaxonomy, error) {
	return uc.taxonomyRepo.ListPending(ctx)
}

// Approve одобряет ключ и инвалидирует кэш публичных фильтров
func (uc *TaxonomyUseCase) Approve(ctx context.Context, locationKey string) error {
	if err := uc.taxonomyRepo.Approve(ctx, locationKey); err != nil {
		return err
	}

	uc.invalidateApprovedCache(ctx)
	return nil
}

// Reject отклоняет pending-ключ; для ключа с активными ссылками
// репозиторий возвращает Conflict
func (uc *TaxonomyUseCase) Reject(ctx context.Context, locationKey string) error {
	return uc.taxonomyRepo.Reject(ctx, locationKey)
}

// ListApproved возвращает одобренные ключи, по возможности из кэша
func (uc *TaxonomyUseCase) ListApproved(ctx context.Context) ([]string, error) {
	if cached, err := uc.cacheRepo.Get(ctx, approvedKeysCacheKey); err == nil && cached != nil {
		var keys []string
		if err := json.Unmarshal(cached, &keys); err == nil {
			return keys, nil
		}
		uc.logger.Warn("Discarding malformed approved keys cache entry")
	}

	keys, err := uc.taxonomyRepo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(keys); err == nil {
		if err := uc.cacheRepo.Set(ctx, approvedKeysCacheKey, payload, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache approved keys", zap.Error(err))
		}
	}

	return keys, nil
}

// IsApproved сообщает, одобрен ли ключ; неизвестный ключ не одобрен
func (uc *TaxonomyUseCase) IsApproved(ctx context.Context, locationKey string) (bool, error) {
	entry, err := uc.taxonomyRepo.FindByKey(ctx, locationKey)
	if err == errors.ErrTaxonomyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return entry.Status == domain.TaxonomyStatusApproved, nil
}

// Backfill выравнивает реестр по фактическим ключам локаций: создаёт
// отсутствующие записи и принудительно одобряет все pending-ключи,
// на которые ссылаются локации. Операция идемпотентна и используется для
// исправления исторического дрейфа, например после массовых импортов.
func (uc *TaxonomyUseCase) Backfill(ctx context.Context) (*domain.BackfillResult, error) {
	keys, err := uc.locationRepo.DistinctLocationKeys(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.BackfillResult{}

	for _, key := range keys {
		_, err := uc.taxonomyRepo.FindByKey(ctx, key)
		if err == nil {
			continue
		}
		if err != errors.ErrTaxonomyNotFound {
			return nil, err
		}

		segments := domain.SplitLocationKey(key)
		if len(segments) == 0 {
			continue
		}

		entry := domain.TaxonomyEntry{
			Country:     segments[0],
			LocationKey: key,
			Status:      domain.TaxonomyStatusApproved,
		}
		if len(segments) > 1 {
			entry.City = &segments[1]
		}
		if len(segments) > 2 {
			entry.Neighborhood = &segments[2]
		}

		if _, err := uc.taxonomyRepo.InsertIfAbsent(ctx, entry); err != nil {
			return nil, err
		}
		result.EntriesCreated++
	}

	approved, err := uc.taxonomyRepo.ApproveReferenced(ctx)
	if err != nil {
		return nil, err
	}
	result.EntriesApproved = approved

	uc.invalidateApprovedCache(ctx)

	uc.logger.Info("Taxonomy backfill complete",
		zap.Int("entries_created", result.EntriesCreated),
		zap.Int("entries_approved", result.EntriesApproved),
	)

	return result, nil
}

// invalidateApprovedCache сбрасывает кэш одобренных ключей; ошибка кэша
// не фатальна - данные восстановятся по TTL
func (uc *TaxonomyUseCase) invalidateApprovedCache(ctx context.Context) {
	if err := uc.cacheRepo.Delete(ctx, approvedKeysCacheKey); err != nil {
		uc.logger.Warn("Failed to invalidate approved keys cache", zap.Error(err))
	}
}
