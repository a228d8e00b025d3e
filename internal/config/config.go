package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment  string `validate:"required"`
	Port         string `validate:"required,numeric"`
	RoutePrefix  string
	MaxBodyBytes int64 `validate:"gt=0"`
	SlowRequest  time.Duration
	HDAI         HDAIConfig
	Log          LogConfig
}

// HDAIConfig holds the upstream HomeDesigns.AI configuration.
// APIKey is intentionally not required here: a missing key fails closed per
// request instead of preventing startup.
type HDAIConfig struct {
	APIKey         string
	BaseURL        string `validate:"required,url"`
	TimeoutSeconds int    `validate:"gte=0"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"required,oneof=panic fatal error warn warning info debug trace"`
	Format string `validate:"required,oneof=json text"`
}

// Timeout returns the upstream request timeout. Zero means no client-side limit.
func (h HDAIConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// HasAPIKey reports whether the bearer token for the upstream API is configured
func (h HDAIConfig) HasAPIKey() bool {
	return h.APIKey != ""
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("ROUTE_PREFIX", "/api/hdai")
	viper.SetDefault("MAX_BODY_BYTES", 20*1024*1024)
	viper.SetDefault("SLOW_REQUEST_MS", 5000)
	viper.SetDefault("HDAI_BASE_URL", "https://homedesigns.ai/api/v2")
	viper.SetDefault("HDAI_TIMEOUT_SECONDS", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")

	config := &Config{
		Environment:  viper.GetString("ENVIRONMENT"),
		Port:         viper.GetString("PORT"),
		RoutePrefix:  viper.GetString("ROUTE_PREFIX"),
		MaxBodyBytes: viper.GetInt64("MAX_BODY_BYTES"),
		SlowRequest:  time.Duration(viper.GetInt("SLOW_REQUEST_MS")) * time.Millisecond,
		HDAI: HDAIConfig{
			APIKey:         viper.GetString("HDAI_API_KEY"),
			BaseURL:        viper.GetString("HDAI_BASE_URL"),
			TimeoutSeconds: viper.GetInt("HDAI_TIMEOUT_SECONDS"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
	}

	return config, nil
}

// Validate checks the structural validity of the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
