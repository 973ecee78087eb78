package dto

import "github.com/taxonomy-microservice/internal/domain"

// TaxonomyActionRequest - действие модератора над ключом таксономии.
// Ключ передаётся в теле запроса: разделитель "|" небезопасен в пути URL.
type TaxonomyActionRequest struct {
	LocationKey string `json:"location_key" validate:"required"`
}

// SetCountryMappingRequest - запрос на регистрацию страны или замену её
// цепочки административных уровней
type SetCountryMappingRequest struct {
	CountryCode string `json:"country_code" validate:"required,len=2,alpha"`
	AdminLevels []int  `json:"admin_levels" validate:"required,min=1,dive,gt=0"`
}

// CountryMappingsResponse - все зарегистрированные цепочки
type CountryMappingsResponse struct {
	Mappings map[string][]int `json:"mappings"`
}

// PendingTaxonomyResponse - очередь модерации
type PendingTaxonomyResponse struct {
	Pending []domain.PendingTaxonomy `json:"pending"`
	Total   int                      `json:"total"`
}

// ApprovedTaxonomyResponse - одобренные ключи для публичных фильтров
type ApprovedTaxonomyResponse struct {
	LocationKeys []string `json:"location_keys"`
	Total        int      `json:"total"`
}
