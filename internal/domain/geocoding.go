package domain

// AdministrativeLevel - один уровень административной иерархии из ответа
// геокодера. Уровни упорядочены по возрастанию детализации, но нумерация
// не обязана быть непрерывной; AdminLevel может отсутствовать.
type AdministrativeLevel struct {
	Name        string  `json:"name"`
	AdminLevel  *int    `json:"admin_level,omitempty"`
	Description *string `json:"description,omitempty"`
	IsoCode     *string `json:"iso_code,omitempty"`
}

// InformativeLevel - дополнительный неиерархический тег провайдера.
// Используется только для определения туристических зон Бразилии.
type InformativeLevel struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// GeocodeResult - нормализованный ответ обратного геокодирования,
// единый для всех провайдеров (BigDataCloud, Geoapify)
type GeocodeResult struct {
	CountryCode    string                `json:"country_code"`
	CountryName    string                `json:"country_name"`
	City           *string               `json:"city,omitempty"`
	Administrative []AdministrativeLevel `json:"administrative"`
	Informative    []InformativeLevel    `json:"informative,omitempty"`
	Latitude       float64               `json:"latitude"`
	Longitude      float64               `json:"longitude"`
	Provider       string                `json:"provider"`
}
