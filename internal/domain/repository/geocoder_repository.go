package repository

import (
	"context"

	"github.com/taxonomy-microservice/internal/domain"
)

// GeocoderRepository определяет интерфейс внешнего обратного геокодера.
// Ядро таксономии не выполняет сетевых вызовов; геокодер используется
// только слоем доставки при создании локации по координатам.
type GeocoderRepository interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (*domain.GeocodeResult, error)
}
