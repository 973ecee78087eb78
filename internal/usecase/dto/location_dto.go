package dto

import "github.com/taxonomy-microservice/internal/domain"

// CreateLocationRequest - запрос на создание локации. Geocode - уже
// полученный ответ провайдера обратного геокодирования; если он не передан,
// слой доставки может запросить геокодер по координатам самостоятельно.
type CreateLocationRequest struct {
	Name         string                `json:"name" validate:"required,min=1,max=200"`
	Category     string                `json:"category" validate:"required,oneof=dining accommodation attraction nightlife"`
	Address      *string               `json:"address,omitempty"`
	Lat          float64               `json:"lat"`
	Lon          float64               `json:"lon"`
	Description  *string               `json:"description,omitempty"`
	InstagramURL *string               `json:"instagram_url,omitempty" validate:"omitempty,url"`
	Website      *string               `json:"website,omitempty" validate:"omitempty,url"`
	Geocode      *domain.GeocodeResult `json:"geocode,omitempty"`
}

// UpdateLocationRequest - запрос на обновление локации; при наличии Geocode
// ключ таксономии пересчитывается заново
type UpdateLocationRequest struct {
	Name         string                `json:"name" validate:"required,min=1,max=200"`
	Category     string                `json:"category" validate:"required,oneof=dining accommodation attraction nightlife"`
	Address      *string               `json:"address,omitempty"`
	Lat          float64               `json:"lat"`
	Lon          float64               `json:"lon"`
	Description  *string               `json:"description,omitempty"`
	InstagramURL *string               `json:"instagram_url,omitempty" validate:"omitempty,url"`
	Website      *string               `json:"website,omitempty" validate:"omitempty,url"`
	Geocode      *domain.GeocodeResult `json:"geocode,omitempty"`
}

// ListLocationsRequest - параметры выборки локаций
type ListLocationsRequest struct {
	Category    string `json:"category" validate:"omitempty,oneof=dining accommodation attraction nightlife"`
	LocationKey string `json:"location_key"`
	Limit       int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset      int    `json:"offset" validate:"omitempty,min=0"`
}

// LocationsResponse - список локаций
type LocationsResponse struct {
	Locations []*domain.Location `json:"locations"`
	Total     int                `json:"total"`
}
