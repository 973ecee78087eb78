package geocoder

import (
	"go.uber.org/zap"

	"github.com/taxonomy-microservice/internal/config"
	"github.com/taxonomy-microservice/internal/domain/repository"
)

// New выбирает провайдера обратного геокодирования по конфигурации
func New(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocoderRepository {
	switch cfg.Provider {
	case "geoapify":
		return NewGeoapifyClient(cfg, logger)
	default:
		return NewBigDataCloudClient(cfg, logger)
	}
}
