package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/domain"
	apperrors "github.com/taxonomy-microservice/internal/pkg/errors"
	"github.com/taxonomy-microservice/internal/usecase"
)

// MockTaxonomyRepository is a mock of TaxonomyRepository
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) FindByKey(ctx context.Context, locationKey string) (*domain.TaxonomyEntry, error) {
	args := m.Called(ctx, locationKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxonomyEntry), args.Error(1)
}

func (m *MockTaxonomyRepository) InsertIfAbsent(ctx context.Context, entry domain.TaxonomyEntry) (*domain.TaxonomyEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxonomyEntry), args.Error(1)
}

func (m *MockTaxonomyRepository) ListPending(ctx context.Context) ([]domain.PendingTaxonomy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PendingTaxonomy), args.Error(1)
}

func (m *MockTaxonomyRepository) ListApproved(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTaxonomyRepository) Approve(ctx context.Context, locationKey string) error {
	args := m.Called(ctx, locationKey)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) Reject(ctx context.Context, locationKey string) error {
	args := m.Called(ctx, locationKey)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) ApproveReferenced(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockLocationRepository is a mock of LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) Create(ctx context.Context, location *domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) List(ctx context.Context, filter domain.LocationFilter) ([]*domain.Location, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) Update(ctx context.Context, location *domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLocationRepository) CountByKey(ctx context.Context, locationKey string) (int, error) {
	args := m.Called(ctx, locationKey)
	return args.Int(0), args.Error(1)
}

func (m *MockLocationRepository) DistinctLocationKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func newTaxonomyUseCase(
	taxonomyRepo *MockTaxonomyRepository,
	locationRepo *MockLocationRepository,
	cacheRepo *MockCacheRepository,
) *usecase.TaxonomyUseCase {
	mappings := usecase.NewCountryMappings()
	extractor := usecase.NewDistrictExtractor(mappings)
	return usecase.NewTaxonomyUseCase(taxonomyRepo, locationRepo, cacheRepo, extractor, zap.NewNop(), 5*time.Minute)
}

func TestTaxonomyUseCase_ResolveLocationKey(t *testing.T) {
	ctx := context.Background()

	t.Run("builds full key and registers it as pending", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, &MockCacheRepository{})

		level := 8
		geocode := domain.GeocodeResult{
			CountryCode: "PE",
			CountryName: "Peru",
			City:        ptrString("Lima"),
			Administrative: []domain.AdministrativeLevel{
				{Name: "Miraflores", AdminLevel: &level},
			},
		}

		expected := &domain.TaxonomyEntry{
			ID:          1,
			LocationKey: "peru|lima|miraflores",
			Status:      domain.TaxonomyStatusPending,
		}

		mockTaxonomy.On("InsertIfAbsent", ctx, mock.MatchedBy(func(entry domain.TaxonomyEntry) bool {
			return entry.LocationKey == "peru|lima|miraflores" &&
				entry.Country == "peru" &&
				entry.City != nil && *entry.City == "lima" &&
				entry.Neighborhood != nil && *entry.Neighborhood == "miraflores" &&
				entry.Status == domain.TaxonomyStatusPending
		})).Return(expected, nil)

		entry, err := uc.ResolveLocationKey(ctx, geocode)

		assert.NoError(t, err)
		assert.Equal(t, expected, entry)
		mockTaxonomy.AssertExpectations(t)
	})

	t.Run("no extractable district yields two segment key", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, &MockCacheRepository{})

		geocode := domain.GeocodeResult{
			CountryCode: "PE",
			CountryName: "Peru",
			City:        ptrString("Lima"),
		}

		expected := &domain.TaxonomyEntry{LocationKey: "peru|lima", Status: domain.TaxonomyStatusPending}

		mockTaxonomy.On("InsertIfAbsent", ctx, mock.MatchedBy(func(entry domain.TaxonomyEntry) bool {
			return entry.LocationKey == "peru|lima" && entry.Neighborhood == nil
		})).Return(expected, nil)

		entry, err := uc.ResolveLocationKey(ctx, geocode)

		assert.NoError(t, err)
		assert.Equal(t, "peru|lima", entry.LocationKey)
		mockTaxonomy.AssertExpectations(t)
	})

	t.Run("country code is used when country name is empty", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, &MockCacheRepository{})

		geocode := domain.GeocodeResult{CountryCode: "PE"}

		expected := &domain.TaxonomyEntry{LocationKey: "pe", Status: domain.TaxonomyStatusPending}

		mockTaxonomy.On("InsertIfAbsent", ctx, mock.MatchedBy(func(entry domain.TaxonomyEntry) bool {
			return entry.LocationKey == "pe" && entry.City == nil
		})).Return(expected, nil)

		entry, err := uc.ResolveLocationKey(ctx, geocode)

		assert.NoError(t, err)
		assert.Equal(t, "pe", entry.LocationKey)
		mockTaxonomy.AssertExpectations(t)
	})

	t.Run("no country at all returns nil without error", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, &MockCacheRepository{})

		entry, err := uc.ResolveLocationKey(ctx, domain.GeocodeResult{})

		assert.NoError(t, err)
		assert.Nil(t, entry)
		mockTaxonomy.AssertNotCalled(t, "InsertIfAbsent", mock.Anything, mock.Anything)
	})

	t.Run("existing key keeps its stored entry", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, &MockCacheRepository{})

		geocode := domain.GeocodeResult{CountryCode: "PE", CountryName: "Peru", City: ptrString("Lima")}

		existing := &domain.TaxonomyEntry{ID: 42, LocationKey: "peru|lima", Status: domain.TaxonomyStatusApproved}
		mockTaxonomy.On("InsertIfAbsent", ctx, mock.Anything).Return(existing, nil)

		entry, err := uc.ResolveLocationKey(ctx, geocode)

		assert.NoError(t, err)
		assert.Equal(t, domain.TaxonomyStatusApproved, entry.Status)
		mockTaxonomy.AssertExpectations(t)
	})
}

func TestTaxonomyUseCase_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("approves key and invalidates cache", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		mockCache := &MockCacheRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, mockCache)

		mockTaxonomy.On("Approve", ctx, "peru|lima|miraflores").Return(nil)
		mockCache.On("Delete", ctx, "taxonomy:approved_keys").Return(nil)

		err := uc.Approve(ctx, "peru|lima|miraflores")

		assert.NoError(t, err)
		mockTaxonomy.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("unknown key error is propagated", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		mockCache := &MockCacheRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, mockCache)

		mockTaxonomy.On("Approve", ctx, "unknown").Return(apperrors.ErrTaxonomyNotFound)

		err := uc.Approve(ctx, "unknown")

		assert.Equal(t, apperrors.ErrTaxonomyNotFound, err)
		mockCache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("cache failure does not fail the approval", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		mockCache := &MockCacheRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, mockCache)

		mockTaxonomy.On("Approve", ctx, "peru|lima").Return(nil)
		mockCache.On("Delete", ctx, "taxonomy:approved_keys").Return(errors.New("redis down"))

		err := uc.Approve(ctx, "peru|lima")

		assert.NoError(t, err)
	})
}

func TestTaxonomyUseCase_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("referenced key is rejected with conflict", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, &MockCacheRepository{})

		mockTaxonomy.On("Reject", ctx, "peru|lima").Return(apperrors.ErrTaxonomyInUse)

		err := uc.Reject(ctx, "peru|lima")

		assert.Equal(t, apperrors.ErrTaxonomyInUse, err)
		mockTaxonomy.AssertExpectations(t)
	})
}

func TestTaxonomyUseCase_ListApproved(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips repository", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		mockCache := &MockCacheRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, mockCache)

		payload, _ := json.Marshal([]string{"peru|lima", "peru|lima|miraflores"})
		mockCache.On("Get", ctx, "taxonomy:approved_keys").Return(payload, nil)

		keys, err := uc.ListApproved(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []string{"peru|lima", "peru|lima|miraflores"}, keys)
		mockTaxonomy.AssertNotCalled(t, "ListApproved", mock.Anything)
	})

	t.Run("cache miss loads from repository and caches", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		mockCache := &MockCacheRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, mockCache)

		mockCache.On("Get", ctx, "taxonomy:approved_keys").Return(nil, errors.New("cache miss"))
		mockTaxonomy.On("ListApproved", ctx).Return([]string{"peru|lima"}, nil)
		mockCache.On("Set", ctx, "taxonomy:approved_keys", mock.Anything, 5*time.Minute).Return(nil)

		keys, err := uc.ListApproved(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []string{"peru|lima"}, keys)
		mockTaxonomy.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("malformed cache entry falls back to repository", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		mockCache := &MockCacheRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, mockCache)

		mockCache.On("Get", ctx, "taxonomy:approved_keys").Return([]byte("{not json"), nil)
		mockTaxonomy.On("ListApproved", ctx).Return([]string{"peru|lima"}, nil)
		mockCache.On("Set", ctx, "taxonomy:approved_keys", mock.Anything, mock.Anything).Return(nil)

		keys, err := uc.ListApproved(ctx)

		assert.NoError(t, err)
		assert.Equal(t, []string{"peru|lima"}, keys)
		mockTaxonomy.AssertExpectations(t)
	})
}

func TestTaxonomyUseCase_IsApproved(t *testing.T) {
	ctx := context.Background()

	t.Run("approved key", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, &MockCacheRepository{})

		entry := &domain.TaxonomyEntry{LocationKey: "peru|lima", Status: domain.TaxonomyStatusApproved}
		mockTaxonomy.On("FindByKey", ctx, "peru|lima").Return(entry, nil)

		approved, err := uc.IsApproved(ctx, "peru|lima")

		assert.NoError(t, err)
		assert.True(t, approved)
	})

	t.Run("pending key is not approved", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, &MockCacheRepository{})

		entry := &domain.TaxonomyEntry{LocationKey: "peru|lima", Status: domain.TaxonomyStatusPending}
		mockTaxonomy.On("FindByKey", ctx, "peru|lima").Return(entry, nil)

		approved, err := uc.IsApproved(ctx, "peru|lima")

		assert.NoError(t, err)
		assert.False(t, approved)
	})

	t.Run("unknown key is not approved and not an error", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, &MockLocationRepository{}, &MockCacheRepository{})

		mockTaxonomy.On("FindByKey", ctx, "unknown").Return(nil, apperrors.ErrTaxonomyNotFound)

		approved, err := uc.IsApproved(ctx, "unknown")

		assert.NoError(t, err)
		assert.False(t, approved)
	})
}

func TestTaxonomyUseCase_Backfill(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing entries approved and approves referenced", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		mockLocation := &MockLocationRepository{}
		mockCache := &MockCacheRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, mockLocation, mockCache)

		mockLocation.On("DistinctLocationKeys", ctx).Return([]string{"peru|lima", "brazil|rio-de-janeiro|zona-sul"}, nil)

		// peru|lima already exists, the Brazil key is missing
		existing := &domain.TaxonomyEntry{LocationKey: "peru|lima", Status: domain.TaxonomyStatusPending}
		mockTaxonomy.On("FindByKey", ctx, "peru|lima").Return(existing, nil)
		mockTaxonomy.On("FindByKey", ctx, "brazil|rio-de-janeiro|zona-sul").Return(nil, apperrors.ErrTaxonomyNotFound)

		created := &domain.TaxonomyEntry{LocationKey: "brazil|rio-de-janeiro|zona-sul", Status: domain.TaxonomyStatusApproved}
		mockTaxonomy.On("InsertIfAbsent", ctx, mock.MatchedBy(func(entry domain.TaxonomyEntry) bool {
			return entry.LocationKey == "brazil|rio-de-janeiro|zona-sul" &&
				entry.Status == domain.TaxonomyStatusApproved &&
				entry.Country == "brazil" &&
				entry.City != nil && *entry.City == "rio-de-janeiro" &&
				entry.Neighborhood != nil && *entry.Neighborhood == "zona-sul"
		})).Return(created, nil)

		mockTaxonomy.On("ApproveReferenced", ctx).Return(2, nil)
		mockCache.On("Delete", ctx, "taxonomy:approved_keys").Return(nil)

		result, err := uc.Backfill(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.EntriesCreated)
		assert.Equal(t, 2, result.EntriesApproved)
		mockTaxonomy.AssertExpectations(t)
		mockLocation.AssertExpectations(t)
	})

	t.Run("nothing to do is a no-op result", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		mockLocation := &MockLocationRepository{}
		mockCache := &MockCacheRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, mockLocation, mockCache)

		mockLocation.On("DistinctLocationKeys", ctx).Return([]string{}, nil)
		mockTaxonomy.On("ApproveReferenced", ctx).Return(0, nil)
		mockCache.On("Delete", ctx, "taxonomy:approved_keys").Return(nil)

		result, err := uc.Backfill(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.EntriesCreated)
		assert.Equal(t, 0, result.EntriesApproved)
	})

	t.Run("repository error aborts the backfill", func(t *testing.T) {
		mockTaxonomy := &MockTaxonomyRepository{}
		mockLocation := &MockLocationRepository{}
		uc := newTaxonomyUseCase(mockTaxonomy, mockLocation, &MockCacheRepository{})

		mockLocation.On("DistinctLocationKeys", ctx).Return(nil, errors.New("database error"))

		result, err := uc.Backfill(ctx)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func ptrString(s string) *string {
	return &s
}
