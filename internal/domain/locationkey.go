package domain

import "strings"

// LocationKeySeparator разделяет сегменты иерархического ключа country|city|neighborhood
const LocationKeySeparator = "|"

// NormalizeSegment приводит сегмент ключа к каноническому виду:
// нижний регистр, внутренние пробелы заменяются на дефисы
func NormalizeSegment(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, "-")
}

// BuildLocationKey собирает locationKey из частей адреса.
// Ключ только из страны валиден; более глубокие сегменты добавляются лишь при
// наличии предыдущих - нельзя получить район без города в ключе.
func BuildLocationKey(country string, city, district *string) string {
	segments := []string{NormalizeSegment(country)}

	if city != nil && strings.TrimSpace(*city) != "" {
		segments = append(segments, NormalizeSegment(*city))

		if district != nil && strings.TrimSpace(*district) != "" {
			segments = append(segments, NormalizeSegment(*district))
		}
	}

	return strings.Join(segments, LocationKeySeparator)
}

// SplitLocationKey разбивает locationKey на сегменты
func SplitLocationKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, LocationKeySeparator)
}

// KeySegment возвращает сегмент ключа по типу части.
// Второе значение false, если ключ короче запрошенной позиции.
func KeySegment(key string, part TaxonomyPart) (string, bool) {
	idx := part.Index()
	if idx < 0 {
		return "", false
	}

	segments := SplitLocationKey(key)
	if idx >= len(segments) {
		return "", false
	}
	return segments[idx], true
}

// ReplaceKeySegment заменяет сегмент ключа, если он равен from.
// Возвращает исходный ключ и false, когда замена неприменима.
func ReplaceKeySegment(key string, part TaxonomyPart, from, to string) (string, bool) {
	idx := part.Index()
	if idx < 0 {
		return key, false
	}

	segments := SplitLocationKey(key)
	if idx >= len(segments) || segments[idx] != from {
		return key, false
	}

	segments[idx] = to
	return strings.Join(segments, LocationKeySeparator), true
}
