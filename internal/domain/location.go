package domain

import (
	"time"

	"github.com/google/uuid"
)

// LocationCategory - категория кураторской точки интереса
type LocationCategory string

const (
	CategoryDining        LocationCategory = "dining"
	CategoryAccommodation LocationCategory = "accommodation"
	CategoryAttraction    LocationCategory = "attraction"
	CategoryNightlife     LocationCategory = "nightlife"
)

// Valid проверяет допустимость категории
func (c LocationCategory) Valid() bool {
	switch c {
	case CategoryDining, CategoryAccommodation, CategoryAttraction, CategoryNightlife:
		return true
	}
	return false
}

// Location представляет кураторскую точку интереса.
// LocationKey хранится как строковая ссылка на запись таксономии без
// ограничения внешнего ключа: ключ может указывать на pending-запись,
// локация при этом полностью рабочая - одобрение влияет только на
// видимость в публичных фильтрах.
type Location struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	Name         string           `json:"name" db:"name"`
	Category     LocationCategory `json:"category" db:"category"`
	Address      *string          `json:"address,omitempty" db:"address"`
	Lat          float64          `json:"lat" db:"lat"`
	Lon          float64          `json:"lon" db:"lon"`
	Description  *string          `json:"description,omitempty" db:"description"`
	InstagramURL *string          `json:"instagram_url,omitempty" db:"instagram_url"`
	Website      *string          `json:"website,omitempty" db:"website"`
	LocationKey  *string          `json:"location_key,omitempty" db:"location_key"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`
}

// LocationFilter - параметры выборки локаций
type LocationFilter struct {
	Category    *LocationCategory
	LocationKey *string
	Limit       int
	Offset      int
}
