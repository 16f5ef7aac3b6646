package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration, populated from environment
// variables (optionally via a .env file in development).
type Config struct {
	Environment       string        `mapstructure:"APP_ENV"`
	Port              string        `mapstructure:"PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTIssuer         string        `mapstructure:"JWT_ISSUER"`
	JWTExpiryDuration time.Duration `mapstructure:"JWT_EXPIRY_DURATION"`
	CORSOrigins       string        `mapstructure:"CORS_ORIGINS"`
	RateLimit         string        `mapstructure:"RATE_LIMIT"`
}

// AllowedOrigins returns the configured CORS origins as a list.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// LoadConfig reads configuration from the environment. A missing .env file is
// fine; real deployments set variables directly.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, reading configuration from environment")
	}

	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("JWT_ISSUER", "dompetku")
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "30-M")

	v.AutomaticEnv()
	for _, key := range []string{
		"APP_ENV", "PORT", "DATABASE_URL", "JWT_SECRET", "JWT_ISSUER",
		"JWT_EXPIRY_DURATION", "CORS_ORIGINS", "RATE_LIMIT",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &cfg, nil
}
