package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Geocoder GeocoderConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Path            string
	MaxConns        int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	ApprovedCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type GeocoderConfig struct {
	Provider        string
	BigDataCloudURL string
	GeoapifyURL     string
	GeoapifyAPIKey  string
	RequestTimeout  int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Path:            viper.GetString("SQLITE_PATH"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			ApprovedCacheTTL: time.Duration(viper.GetInt("APPROVED_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Geocoder: GeocoderConfig{
			Provider:        viper.GetString("GEOCODER_PROVIDER"),
			BigDataCloudURL: viper.GetString("BIGDATACLOUD_BASE_URL"),
			GeoapifyURL:     viper.GetString("GEOAPIFY_BASE_URL"),
			GeoapifyAPIKey:  viper.GetString("GEOAPIFY_API_KEY"),
			RequestTimeout:  viper.GetInt("GEOCODER_REQUEST_TIMEOUT"),
		},
	}

	// Set default values if not provided
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/taxonomy.db"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 1
	}
	if cfg.Cache.ApprovedCacheTTL == 0 {
		cfg.Cache.ApprovedCacheTTL = 300 * time.Second
	}
	if cfg.Geocoder.Provider == "" {
		cfg.Geocoder.Provider = "bigdatacloud"
	}
	if cfg.Geocoder.BigDataCloudURL == "" {
		cfg.Geocoder.BigDataCloudURL = "https://api.bigdatacloud.net"
	}
	if cfg.Geocoder.GeoapifyURL == "" {
		cfg.Geocoder.GeoapifyURL = "https://api.geoapify.com"
	}
	if cfg.Geocoder.RequestTimeout == 0 {
		cfg.Geocoder.RequestTimeout = 10
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
