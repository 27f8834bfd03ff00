/*
Package configs loads the application configuration from environment
variables. In development a .env file is honored when present.
*/
package configs

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds every setting the server needs. Values are read once at
// startup and never mutated afterwards; the session secret in particular is
// passed explicitly into the token codec rather than living in a global.
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	Port        int    `envconfig:"PORT" default:"8080"`

	// SessionSecret signs session tokens. Required outside development.
	SessionSecret string `envconfig:"SESSION_SECRET"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`

	// DatabaseDSN selects the Postgres store. Empty in development falls
	// back to the in-memory store.
	DatabaseDSN string `envconfig:"DATABASE_URL"`

	// UploadsEnabled gates the image upload endpoint and its S3 settings.
	UploadsEnabled bool `envconfig:"UPLOADS_ENABLED" default:"false"`

	S3BucketName      string `envconfig:"S3_BUCKET_NAME"`
	S3Endpoint        string `envconfig:"S3_ENDPOINT"`
	S3AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3PublicBaseURL   string `envconfig:"S3_PUBLIC_BASE_URL"`
}

// IsDevelopment reports whether the server runs in development mode.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads and validates the configuration.
func LoadConfig() (*AppConfig, error) {
	if os.Getenv("ENVIRONMENT") == "" || os.Getenv("ENVIRONMENT") == "development" {
		// Missing .env is fine; environment variables win either way.
		_ = godotenv.Load()
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (1024-65535)", cfg.Port)
	}

	if cfg.SessionSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("SESSION_SECRET is required in %s environment", cfg.Environment)
		}
		cfg.SessionSecret = "insecure_development_secret_change_me"
	}

	if cfg.DatabaseDSN == "" && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("DATABASE_URL is required in %s environment", cfg.Environment)
	}

	if cfg.UploadsEnabled {
		for name, value := range map[string]string{
			"S3_BUCKET_NAME":       cfg.S3BucketName,
			"S3_ENDPOINT":          cfg.S3Endpoint,
			"S3_ACCESS_KEY_ID":     cfg.S3AccessKeyID,
			"S3_SECRET_ACCESS_KEY": cfg.S3SecretAccessKey,
		} {
			if value == "" {
				return nil, fmt.Errorf("%s is required when uploads are enabled", name)
			}
		}
	}

	return cfg, nil
}
