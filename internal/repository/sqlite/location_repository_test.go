package sqlite_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/taxonomy-microservice/internal/domain"
	"github.com/taxonomy-microservice/internal/domain/repository"
	"github.com/taxonomy-microservice/internal/pkg/errors"
	"github.com/taxonomy-microservice/internal/repository/sqlite"
	"github.com/taxonomy-microservice/internal/repository/sqlite/testhelpers"
)

type LocationRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.LocationRepository
	ctx    context.Context
}

func (s *LocationRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.repo = sqlite.NewLocationRepository(s.testDB.DB)
}

func (s *LocationRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *LocationRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.NoError(s.testDB.Cleanup(s.ctx))
}

func (s *LocationRepositoryTestSuite) newLocation(name string, category domain.LocationCategory, locationKey *string) *domain.Location {
	return &domain.Location{
		ID:          uuid.New(),
		Name:        name,
		Category:    category,
		Lat:         -12.1211,
		Lon:         -77.0297,
		LocationKey: locationKey,
	}
}

func (s *LocationRepositoryTestSuite) TestCreateAndGetByID() {
	key := "peru|lima|miraflores"
	address := "Av. La Mar 770"
	location := s.newLocation("La Mar", domain.CategoryDining, &key)
	location.Address = &address

	s.NoError(s.repo.Create(s.ctx, location))

	got, err := s.repo.GetByID(s.ctx, location.ID)

	s.NoError(err)
	s.Equal(location.ID, got.ID)
	s.Equal("La Mar", got.Name)
	s.Equal(domain.CategoryDining, got.Category)
	s.Equal("Av. La Mar 770", *got.Address)
	s.Equal("peru|lima|miraflores", *got.LocationKey)
	s.False(got.CreatedAt.IsZero())
	s.False(got.UpdatedAt.IsZero())
}

func (s *LocationRepositoryTestSuite) TestCreate_WithoutLocationKey() {
	location := s.newLocation("Remote Lodge", domain.CategoryAccommodation, nil)

	s.NoError(s.repo.Create(s.ctx, location))

	got, err := s.repo.GetByID(s.ctx, location.ID)
	s.NoError(err)
	s.Nil(got.LocationKey)
}

func (s *LocationRepositoryTestSuite) TestGetByID_NotFound() {
	got, err := s.repo.GetByID(s.ctx, uuid.New())

	s.Equal(errors.ErrLocationNotFound, err)
	s.Nil(got)
}

func (s *LocationRepositoryTestSuite) TestList_Filters() {
	keyLima := "peru|lima"
	keyCusco := "peru|cusco"

	s.NoError(s.repo.Create(s.ctx, s.newLocation("Central", domain.CategoryDining, &keyLima)))
	s.NoError(s.repo.Create(s.ctx, s.newLocation("Hotel B", domain.CategoryAccommodation, &keyLima)))
	s.NoError(s.repo.Create(s.ctx, s.newLocation("Cicciolina", domain.CategoryDining, &keyCusco)))

	s.Run("no filter returns everything", func() {
		locations, err := s.repo.List(s.ctx, domain.LocationFilter{})
		s.NoError(err)
		s.Len(locations, 3)
	})

	s.Run("by category", func() {
		dining := domain.CategoryDining
		locations, err := s.repo.List(s.ctx, domain.LocationFilter{Category: &dining})
		s.NoError(err)
		s.Len(locations, 2)
	})

	s.Run("by location key", func() {
		locations, err := s.repo.List(s.ctx, domain.LocationFilter{LocationKey: &keyCusco})
		s.NoError(err)
		s.Len(locations, 1)
		s.Equal("Cicciolina", locations[0].Name)
	})

	s.Run("by category and key", func() {
		dining := domain.CategoryDining
		locations, err := s.repo.List(s.ctx, domain.LocationFilter{Category: &dining, LocationKey: &keyLima})
		s.NoError(err)
		s.Len(locations, 1)
		s.Equal("Central", locations[0].Name)
	})

	s.Run("limit and offset", func() {
		page, err := s.repo.List(s.ctx, domain.LocationFilter{Limit: 2})
		s.NoError(err)
		s.Len(page, 2)

		rest, err := s.repo.List(s.ctx, domain.LocationFilter{Limit: 2, Offset: 2})
		s.NoError(err)
		s.Len(rest, 1)
	})
}

func (s *LocationRepositoryTestSuite) TestUpdate() {
	key := "peru|lima"
	location := s.newLocation("Old Name", domain.CategoryDining, &key)
	s.NoError(s.repo.Create(s.ctx, location))

	newKey := "peru|cusco"
	location.Name = "New Name"
	location.Category = domain.CategoryNightlife
	location.LocationKey = &newKey

	s.NoError(s.repo.Update(s.ctx, location))

	got, err := s.repo.GetByID(s.ctx, location.ID)
	s.NoError(err)
	s.Equal("New Name", got.Name)
	s.Equal(domain.CategoryNightlife, got.Category)
	s.Equal("peru|cusco", *got.LocationKey)
}

func (s *LocationRepositoryTestSuite) TestUpdate_NotFound() {
	location := s.newLocation("Ghost", domain.CategoryDining, nil)

	err := s.repo.Update(s.ctx, location)

	s.Equal(errors.ErrLocationNotFound, err)
}

func (s *LocationRepositoryTestSuite) TestDelete() {
	location := s.newLocation("Short Lived", domain.CategoryAttraction, nil)
	s.NoError(s.repo.Create(s.ctx, location))

	s.NoError(s.repo.Delete(s.ctx, location.ID))

	_, err := s.repo.GetByID(s.ctx, location.ID)
	s.Equal(errors.ErrLocationNotFound, err)
}

func (s *LocationRepositoryTestSuite) TestDelete_NotFound() {
	err := s.repo.Delete(s.ctx, uuid.New())
	s.Equal(errors.ErrLocationNotFound, err)
}

func (s *LocationRepositoryTestSuite) TestCountByKey() {
	key := "peru|lima"
	s.NoError(s.repo.Create(s.ctx, s.newLocation("Central", domain.CategoryDining, &key)))
	s.NoError(s.repo.Create(s.ctx, s.newLocation("Maido", domain.CategoryDining, &key)))
	s.NoError(s.repo.Create(s.ctx, s.newLocation("No Key", domain.CategoryDining, nil)))

	count, err := s.repo.CountByKey(s.ctx, "peru|lima")
	s.NoError(err)
	s.Equal(2, count)

	count, err = s.repo.CountByKey(s.ctx, "peru|cusco")
	s.NoError(err)
	s.Equal(0, count)
}

func (s *LocationRepositoryTestSuite) TestDistinctLocationKeys() {
	keyLima := "peru|lima"
	keyCusco := "peru|cusco"
	s.NoError(s.repo.Create(s.ctx, s.newLocation("Central", domain.CategoryDining, &keyLima)))
	s.NoError(s.repo.Create(s.ctx, s.newLocation("Maido", domain.CategoryDining, &keyLima)))
	s.NoError(s.repo.Create(s.ctx, s.newLocation("Cicciolina", domain.CategoryDining, &keyCusco)))
	s.NoError(s.repo.Create(s.ctx, s.newLocation("No Key", domain.CategoryDining, nil)))

	keys, err := s.repo.DistinctLocationKeys(s.ctx)

	s.NoError(err)
	s.Equal([]string{"peru|cusco", "peru|lima"}, keys)
}

func TestLocationRepositorySuite(t *testing.T) {
	suite.Run(t, new(LocationRepositoryTestSuite))
}
