package usecase

import (
	"strings"

	"github.com/taxonomy-microservice/internal/domain"
)

// brazilZone - распознаваемая фраза туристической зоны и её каноническое имя
type brazilZone struct {
	phrases []string
	name    string
}

// brazilZones - фиксированная таблица зон Рио-де-Жанейро. Совпадение ищется
// по подстроке без учёта регистра в информативных уровнях геокодера.
var brazilZones = []brazilZone{
	{phrases: []string{"south zone"}, name: "Zona Sul"},
	{phrases: []string{"north zone"}, name: "Zona Norte"},
	{phrases: []string{"west zone"}, name: "Zona Oeste"},
	{phrases: []string{"centro", "central zone", "downtown"}, name: "Centro"},
	{phrases: []string{"ilhas"}, name: "Ilhas"},
}

// DistrictExtractor извлекает район из административных уровней геокодера
// по цепочке уровней страны. Экстрактор не выполняет I/O и не логирует:
// неразрешимый вход - ожидаемый результат, а не ошибка.
type DistrictExtractor struct {
	mappings *CountryMappings
}

// NewDistrictExtractor создает новый DistrictExtractor
func NewDistrictExtractor(mappings *CountryMappings) *DistrictExtractor {
	return &DistrictExtractor{mappings: mappings}
}

// Extract возвращает название района или false, если ни один уровень цепочки
// не представлен в административных уровнях.
//
// Для Бразилии перед обходом цепочки проверяются информативные уровни:
// совпадение с туристической зоной возвращается немедленно и полностью
// обходит fallback по административным уровням.
func (e *DistrictExtractor) Extract(
	countryCode string,
	administrative []domain.AdministrativeLevel,
	informative []domain.InformativeLevel,
) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))

	if code == "BR" {
		if zone, ok := matchBrazilZone(informative); ok {
			return zone, true
		}
	}

	for _, target := range e.mappings.Chain(code) {
		for _, level := range administrative {
			if level.AdminLevel != nil && *level.AdminLevel == target {
				return level.Name, true
			}
		}
	}

	return "", false
}

// matchBrazilZone ищет первую распознаваемую фразу зоны в информативных уровнях
func matchBrazilZone(informative []domain.InformativeLevel) (string, bool) {
	for _, level := range informative {
		name := strings.ToLower(level.Name)
		for _, zone := range brazilZones {
			for _, phrase := range zone.phrases {
				if strings.Contains(name, phrase) {
					return zone.name, true
				}
			}
		}
	}
	return "", false
}
