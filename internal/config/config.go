package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreCSV      = "csv"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Archive backends
const (
	ArchiveNone  = "none"
	ArchiveLocal = "local"
	ArchiveS3    = "s3"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Host string
	Port string

	// Database settings
	DatabasePath string

	// Logging settings
	LogLevel  string
	LogFormat string

	// Cache settings
	CacheSize int
	CacheTTL  time.Duration

	// Record store settings
	StoreBackend string
	CSVPath      string
	PostgresURL  string

	// Upload archive settings
	ArchiveBackend   string
	ArchiveLocalPath string
	S3Bucket         string
	S3Region         string
	AWSAccessKey     string
	AWSSecretKey     string

	// Analysis settings
	MaxUploadSize int64
	MinTextLength int
	FocusWindow   int
	AmountWindow  int
	RulesPath     string
	MaxConcurrent int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not an error if .env doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Host:             getEnv("HOST", "0.0.0.0"),
		Port:             getEnv("PORT", "8080"),
		DatabasePath:     getEnv("DATABASE_PATH", "./data/hukuk.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		StoreBackend:     getEnv("STORE_BACKEND", StoreCSV),
		CSVPath:          getEnv("CSV_PATH", "./data/kararlar.csv"),
		PostgresURL:      getEnv("POSTGRES_URL", ""),
		ArchiveBackend:   getEnv("ARCHIVE_BACKEND", ArchiveNone),
		ArchiveLocalPath: getEnv("ARCHIVE_LOCAL_PATH", "./data/archive"),
		S3Bucket:         getEnv("AWS_S3_BUCKET", ""),
		S3Region:         getEnv("AWS_REGION", "eu-central-1"),
		AWSAccessKey:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:     getEnv("AWS_SECRET_ACCESS_KEY", ""),
		RulesPath:        getEnv("RULES_PATH", ""),
	}

	// Parse integer values
	var err error
	cfg.CacheSize, err = strconv.Atoi(getEnv("CACHE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = time.Duration(cacheTTL) * time.Minute

	maxUpload, err := strconv.Atoi(getEnv("MAX_UPLOAD_SIZE", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
	}
	cfg.MaxUploadSize = int64(maxUpload) << 20

	cfg.MinTextLength, err = strconv.Atoi(getEnv("MIN_TEXT_LENGTH", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIN_TEXT_LENGTH: %w", err)
	}

	cfg.FocusWindow, err = strconv.Atoi(getEnv("FOCUS_WINDOW", "1500"))
	if err != nil {
		return nil, fmt.Errorf("invalid FOCUS_WINDOW: %w", err)
	}

	cfg.AmountWindow, err = strconv.Atoi(getEnv("AMOUNT_WINDOW", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid AMOUNT_WINDOW: %w", err)
	}

	cfg.MaxConcurrent, err = strconv.Atoi(getEnv("MAX_CONCURRENT_ANALYSES", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_CONCURRENT_ANALYSES: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks value ranges and backend names
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreCSV, StoreSQLite:
	case StorePostgres:
		if c.PostgresURL == "" {
			return errors.New("POSTGRES_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND: %s", c.StoreBackend)
	}

	switch c.ArchiveBackend {
	case ArchiveNone, ArchiveLocal:
	case ArchiveS3:
		if c.S3Bucket == "" {
			return errors.New("AWS_S3_BUCKET is required for the s3 archive")
		}
	default:
		return fmt.Errorf("unknown ARCHIVE_BACKEND: %s", c.ArchiveBackend)
	}

	if c.CacheSize <= 0 {
		return errors.New("CACHE_SIZE must be positive")
	}
	if c.MaxUploadSize <= 0 {
		return errors.New("MAX_UPLOAD_SIZE must be positive")
	}
	if c.MinTextLength < 0 {
		return errors.New("MIN_TEXT_LENGTH cannot be negative")
	}
	if c.FocusWindow <= 0 || c.AmountWindow <= 0 {
		return errors.New("FOCUS_WINDOW and AMOUNT_WINDOW must be positive")
	}
	if c.MaxConcurrent <= 0 {
		return errors.New("MAX_CONCURRENT_ANALYSES must be positive")
	}

	return nil
}

// Address returns host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
