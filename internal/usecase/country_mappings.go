package usecase

import (
	"strings"
	"sync"

	"github.com/taxonomy-microservice/internal/pkg/errors"
)

// defaultLevelChain - резервная цепочка уровней для незарегистрированных
// стран: уровень 8 соответствует гранулярности района (bairro) у
// большинства поддерживаемых стран
var defaultLevelChain = []int{8}

// CountryMappings - реестр соответствия ISO-кода страны упорядоченной
// цепочке административных уровней. Уровни пробуются по порядку до первого
// совпадения. Реестр является общим изменяемым состоянием процесса:
// записи редки (операторская настройка), поэтому достаточно RWMutex.
type CountryMappings struct {
	mu     sync.RWMutex
	chains map[string][]int
}

// NewCountryMappings создает реестр с предзаполненными странами
func NewCountryMappings() *CountryMappings {
	return &CountryMappings{
		chains: map[string][]int{
			"PE": {8},
			"CO": {8},
			"BR": {8},
		},
	}
}

// All возвращает копию всех зарегистрированных цепочек
func (m *CountryMappings) All() map[string][]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string][]int, len(m.chains))
	for code, levels := range m.chains {
		chain := make([]int, len(levels))
		copy(chain, levels)
		result[code] = chain
	}
	return result
}

// Set регистрирует страну или заменяет её цепочку уровней.
// Код нормализуется к верхнему регистру; пустые цепочки отклоняются.
func (m *CountryMappings) Set(countryCode string, levels []int) error {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return errors.ErrInvalidRequest
	}
	if len(levels) == 0 {
		return errors.ErrEmptyLevelChain
	}
	for _, level := range levels {
		if level <= 0 {
			return errors.ErrEmptyLevelChain
		}
	}

	chain := make([]int, len(levels))
	copy(chain, levels)

	m.mu.Lock()
	m.chains[code] = chain
	m.mu.Unlock()

	return nil
}

// Chain возвращает цепочку уровней для страны; для неизвестного или пустого
// кода возвращается резервная цепочка по умолчанию
func (m *CountryMappings) Chain(countryCode string) []int {
	code := strings.ToUpper(strings.TrimSpace(countryCode))

	m.mu.RLock()
	chain, ok := m.chains[code]
	m.mu.RUnlock()

	if !ok {
		return defaultLevelChain
	}
	return chain
}
