package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/config"
	"github.com/taxonomy-microservice/internal/domain"
	"github.com/taxonomy-microservice/internal/domain/repository"
)

// Geoapify не нумерует уровни; ответ приводится к той же шкале, что и у
// BigDataCloud: страна - 2, регион - 4, округ - 6, район/пригород - 8
const (
	geoapifyCountryLevel  = 2
	geoapifyStateLevel    = 4
	geoapifyCountyLevel   = 6
	geoapifyDistrictLevel = 8
)

type geoapifyClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewGeoapifyClient создает клиент Geoapify reverse geocoding API
func NewGeoapifyClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &geoapifyClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.GeoapifyURL,
		apiKey:  cfg.GeoapifyAPIKey,
		logger:  logger,
	}
}

type geoapifyResponse struct {
	Results []struct {
		CountryCode string  `json:"country_code"`
		Country     string  `json:"country"`
		State       string  `json:"state"`
		County      string  `json:"county"`
		City        string  `json:"city"`
		District    string  `json:"district"`
		Suburb      string  `json:"suburb"`
		Lat         float64 `json:"lat"`
		Lon         float64 `json:"lon"`
	} `json:"results"`
}

// ReverseGeocode возвращает нормализованный ответ обратного геокодирования
func (c *geoapifyClient) ReverseGeocode(ctx context.Context, lat, lon float64) (*domain.GeocodeResult, error) {
	url := fmt.Sprintf(
		"%s/v1/geocode/reverse?lat=%f&lon=%f&format=json&apiKey=%s",
		c.baseURL, lat, lon, c.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Geoapify API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("geoapify API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var raw geoapifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(raw.Results) == 0 {
		return nil, fmt.Errorf("geoapify API returned no results")
	}

	first := raw.Results[0]

	result := &domain.GeocodeResult{
		CountryCode: first.CountryCode,
		CountryName: first.Country,
		Latitude:    first.Lat,
		Longitude:   first.Lon,
		Provider:    "geoapify",
	}

	if first.City != "" {
		city := first.City
		result.City = &city
	}

	appendLevel := func(name string, adminLevel int) {
		if name == "" {
			return
		}
		level := adminLevel
		result.Administrative = append(result.Administrative, domain.AdministrativeLevel{
			Name:       name,
			AdminLevel: &level,
		})
	}

	appendLevel(first.Country, geoapifyCountryLevel)
	appendLevel(first.State, geoapifyStateLevel)
	appendLevel(first.County, geoapifyCountyLevel)

	district := first.Suburb
	if district == "" {
		district = first.District
	}
	appendLevel(district, geoapifyDistrictLevel)

	c.logger.Debug("Geoapify reverse geocode successful",
		zap.String("country_code", result.CountryCode),
		zap.Int("administrative_levels", len(result.Administrative)))

	return result, nil
}
