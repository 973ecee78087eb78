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

type bigDataCloudClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewBigDataCloudClient создает клиент BigDataCloud reverse-geocode-client API
func NewBigDataCloudClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &bigDataCloudClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BigDataCloudURL,
		logger:  logger,
	}
}

type bigDataCloudResponse struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	CountryCode  string  `json:"countryCode"`
	CountryName  string  `json:"countryName"`
	City         string  `json:"city"`
	Locality     string  `json:"locality"`
	LocalityInfo struct {
		Administrative []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			AdminLevel  *int   `json:"adminLevel"`
			IsoCode     string `json:"isoCode"`
		} `json:"administrative"`
		Informative []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"informative"`
	} `json:"localityInfo"`
}

// ReverseGeocode возвращает нормализованный ответ обратного геокодирования
func (c *bigDataCloudClient) ReverseGeocode(ctx context.Context, lat, lon float64) (*domain.GeocodeResult, error) {
	url := fmt.Sprintf(
		"%s/data/reverse-geocode-client?latitude=%f&longitude=%f&localityLanguage=en",
		c.baseURL, lat, lon,
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
		c.logger.Error("BigDataCloud API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("bigdatacloud API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var raw bigDataCloudResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := &domain.GeocodeResult{
		CountryCode: raw.CountryCode,
		CountryName: raw.CountryName,
		Latitude:    raw.Latitude,
		Longitude:   raw.Longitude,
		Provider:    "bigdatacloud",
	}

	city := raw.City
	if city == "" {
		city = raw.Locality
	}
	if city != "" {
		result.City = &city
	}

	for _, level := range raw.LocalityInfo.Administrative {
		adm := domain.AdministrativeLevel{
			Name:       level.Name,
			AdminLevel: level.AdminLevel,
		}
		if level.Description != "" {
			description := level.Description
			adm.Description = &description
		}
		if level.IsoCode != "" {
			isoCode := level.IsoCode
			adm.IsoCode = &isoCode
		}
		result.Administrative = append(result.Administrative, adm)
	}

	for _, level := range raw.LocalityInfo.Informative {
		inf := domain.InformativeLevel{Name: level.Name}
		if level.Description != "" {
			description := level.Description
			inf.Description = &description
		}
		result.Informative = append(result.Informative, inf)
	}

	c.logger.Debug("BigDataCloud reverse geocode successful",
		zap.String("country_code", result.CountryCode),
		zap.Int("administrative_levels", len(result.Administrative)),
		zap.Int("informative_levels", len(result.Informative)))

	return result, nil
}
