package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	OCR       OCRConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Parser    ParserConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxUploadMB    int64    `mapstructure:"max_upload_mb"`
}

// OCRConfig holds OCR engine configuration
type OCRConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // only "memory" for now
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
	OCR   int `mapstructure:"ocr"`
}

// ParserConfig holds parser behavior configuration
type ParserConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/menuscan/")

	// Environment variable settings
	v.SetEnvPrefix("MENUSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.max_upload_mb", 10)

	// OCR engine defaults
	v.SetDefault("ocr.base_url", "https://api.ocrengine.io")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
	v.SetDefault("ratelimit.ocr", 7200)

	// Parser defaults
	v.SetDefault("parser.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OCR.APIKey == "" {
		return fmt.Errorf("OCR engine API key is required (set MENUSCAN_OCR_API_KEY)")
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got: %d", config.Server.MaxUploadMB)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("per-IP rate limit must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
