package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/taxonomy-microservice/internal/domain"
)

// LocationRepository определяет интерфейс для работы с локациями
type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	List(ctx context.Context, filter domain.LocationFilter) ([]*domain.Location, error)
	Update(ctx context.Context, location *domain.Location) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByKey возвращает количество локаций, ссылающихся на locationKey
	CountByKey(ctx context.Context, locationKey string) (int, error)

	// DistinctLocationKeys возвращает все уникальные ключи, встречающиеся на локациях
	DistinctLocationKeys(ctx context.Context) ([]string, error)
}
