package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kendall-kelly/inventory-admin-api/models"
)

// DefaultStoreURL is the hosted mock REST store the admin panel was built against
const DefaultStoreURL = "https://b25a776acd1c337f.mokky.dev"

// Config holds all application configuration
type Config struct {
	Port               string
	GoEnv              string
	LogLevel           string
	StoreURL           string
	StoreTimeout       time.Duration
	LinePriceField     models.PriceBasis
	CORSOrigins        []string
	EmbeddedStore      bool
	DatabaseURL        string
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

var (
	current *Config
	mu      sync.RWMutex
)

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			// Environment variables may be set directly by the platform
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	timeout, err := time.ParseDuration(getEnv("STORE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("STORE_TIMEOUT is not a duration: %w", err)
	}

	embedded, err := strconv.ParseBool(getEnv("EMBEDDED_STORE", "false"))
	if err != nil {
		return nil, fmt.Errorf("EMBEDDED_STORE is not a boolean: %w", err)
	}

	basis, err := models.ParsePriceBasis(getEnv("LINE_PRICE_FIELD", string(models.PriceBasisMin)))
	if err != nil {
		return nil, fmt.Errorf("LINE_PRICE_FIELD: %w", err)
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GoEnv:              getEnv("GO_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		StoreURL:           strings.TrimRight(getEnv("STORE_URL", ""), "/"),
		StoreTimeout:       timeout,
		LinePriceField:     basis,
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		EmbeddedStore:      embedded,
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	if cfg.StoreURL == "" && !cfg.EmbeddedStore {
		cfg.StoreURL = DefaultStoreURL
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	SetConfig(cfg)
	return cfg, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.StoreURL == "" && !c.EmbeddedStore {
		return fmt.Errorf("STORE_URL is required unless EMBEDDED_STORE is enabled")
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	if _, err := models.ParsePriceBasis(string(c.LinePriceField)); err != nil {
		return fmt.Errorf("LINE_PRICE_FIELD: %w", err)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// ArchiveEnabled reports whether snapshots can be written to S3
func (c *Config) ArchiveEnabled() bool {
	return c.AWSS3Bucket != ""
}

// ResolveStoreURL returns the base URL the resource client should call.
// With the embedded store and no explicit STORE_URL, the server calls itself.
func (c *Config) ResolveStoreURL() string {
	if c.StoreURL != "" {
		return c.StoreURL
	}
	return fmt.Sprintf("http://localhost:%s/store", c.Port)
}

// GetConfig returns the loaded configuration
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetConfig replaces the loaded configuration (primarily for testing)
func SetConfig(cfg *Config) {
	mu.Lock()
	current = cfg
	mu.Unlock()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
