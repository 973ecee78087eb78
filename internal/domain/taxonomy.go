package domain

import "time"

// TaxonomyStatus - статус записи таксономии
type TaxonomyStatus string

const (
	TaxonomyStatusPending  TaxonomyStatus = "pending"
	TaxonomyStatusApproved TaxonomyStatus = "approved"
)

// TaxonomyPart - сегмент locationKey, к которому применяется правило коррекции
type TaxonomyPart string

const (
	TaxonomyPartCountry      TaxonomyPart = "country"
	TaxonomyPartCity         TaxonomyPart = "city"
	TaxonomyPartNeighborhood TaxonomyPart = "neighborhood"
)

// Valid проверяет допустимость значения part_type
func (p TaxonomyPart) Valid() bool {
	switch p {
	case TaxonomyPartCountry, TaxonomyPartCity, TaxonomyPartNeighborhood:
		return true
	}
	return false
}

// Index возвращает позицию сегмента внутри locationKey
func (p TaxonomyPart) Index() int {
	switch p {
	case TaxonomyPartCountry:
		return 0
	case TaxonomyPartCity:
		return 1
	case TaxonomyPartNeighborhood:
		return 2
	}
	return -1
}

// TaxonomyEntry представляет один узел таксономии локаций.
// LocationKey уникален в рамках всей системы и является идентичностью узла.
type TaxonomyEntry struct {
	ID           int64          `json:"id" db:"id"`
	Country      string         `json:"country" db:"country"`
	City         *string        `json:"city,omitempty" db:"city"`
	Neighborhood *string        `json:"neighborhood,omitempty" db:"neighborhood"`
	LocationKey  string         `json:"location_key" db:"location_key"`
	Status       TaxonomyStatus `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// PendingTaxonomy - элемент очереди модерации.
// LocationCount вычисляется через join с таблицей локаций и всегда отражает
// актуальное количество ссылок, он нигде не хранится.
type PendingTaxonomy struct {
	LocationKey   string         `json:"location_key" db:"location_key"`
	LocationCount int            `json:"location_count" db:"location_count"`
	Status        TaxonomyStatus `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

// TaxonomyCorrection - постоянное правило замены одного сегмента locationKey
type TaxonomyCorrection struct {
	ID             int64        `json:"id" db:"id"`
	IncorrectValue string       `json:"incorrect_value" db:"incorrect_value"`
	CorrectValue   string       `json:"correct_value" db:"correct_value"`
	PartType       TaxonomyPart `json:"part_type" db:"part_type"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}

// CorrectionLocationSample - локация с пересчитанным ключом для предпросмотра
type CorrectionLocationSample struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CurrentKey   string `json:"current_key"`
	CorrectedKey string `json:"corrected_key"`
}

// CorrectionPreview - результат предпросмотра правила без применения.
// Счётчики отражают полное количество затронутых строк, списки примеров
// ограничены для отображения в UI.
type CorrectionPreview struct {
	PendingTaxonomyCount   int                        `json:"pending_taxonomy_count"`
	PendingTaxonomySamples []string                   `json:"pending_taxonomy_samples"`
	LocationCount          int                        `json:"location_count"`
	LocationSamples        []CorrectionLocationSample `json:"location_samples"`
}

// CorrectionResult - количество перезаписанных строк после применения правила
type CorrectionResult struct {
	Correction       TaxonomyCorrection `json:"correction"`
	TaxonomyUpdated  int                `json:"taxonomy_updated"`
	LocationsUpdated int                `json:"locations_updated"`
}

// BackfillResult - результат идемпотентной операции выравнивания таксономии
type BackfillResult struct {
	EntriesCreated  int `json:"entries_created"`
	EntriesApproved int `json:"entries_approved"`
}
