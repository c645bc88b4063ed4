package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
	Comparison ComparisonConfig
	Log        LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	SecureCookies  bool     `mapstructure:"secure_cookies"`
}

// CatalogConfig selects and configures the product catalog source
type CatalogConfig struct {
	Source            string        `mapstructure:"source"` // "file" or "remote"
	FilePath          string        `mapstructure:"file_path"`
	Watch             bool          `mapstructure:"watch"`
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP, 0 disables
}

// ComparisonConfig tunes the comparison surfaces
type ComparisonConfig struct {
	QuickListLimit     int           `mapstructure:"quick_list_limit"`
	FullListLimit      int           `mapstructure:"full_list_limit"`
	PickerLimit        int           `mapstructure:"picker_limit"`
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"`
	FuzzySearch        bool          `mapstructure:"fuzzy_search"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/storefront/")

	// Environment variable settings: STOREFRONT_CATALOG_FILE_PATH -> catalog.file_path
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
// Every key gets a default so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.secure_cookies", false)

	// Catalog defaults
	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.file_path", "./config/catalog.yaml")
	v.SetDefault("catalog.watch", true)
	v.SetDefault("catalog.base_url", "")
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.timeout", "10s")
	v.SetDefault("catalog.requests_per_second", 5.0)
	v.SetDefault("catalog.burst", 10)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "15m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)

	// Comparison defaults
	v.SetDefault("comparison.quick_list_limit", 3)
	v.SetDefault("comparison.full_list_limit", 5)
	v.SetDefault("comparison.picker_limit", 0)
	v.SetDefault("comparison.session_idle_timeout", "24h")
	v.SetDefault("comparison.fuzzy_search", true)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Catalog.Source {
	case "file":
		if config.Catalog.FilePath == "" {
			return fmt.Errorf("catalog file path is required (set STOREFRONT_CATALOG_FILE_PATH)")
		}
	case "remote":
		if config.Catalog.BaseURL == "" {
			return fmt.Errorf("catalog base URL is required when catalog source is 'remote' (set STOREFRONT_CATALOG_BASE_URL)")
		}
	default:
		return fmt.Errorf("catalog source must be 'file' or 'remote', got: %s", config.Catalog.Source)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Comparison.QuickListLimit < 1 || config.Comparison.FullListLimit < config.Comparison.QuickListLimit {
		return fmt.Errorf("comparison list limits must satisfy 1 <= quick (%d) <= full (%d)",
			config.Comparison.QuickListLimit, config.Comparison.FullListLimit)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit.per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
