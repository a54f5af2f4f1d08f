package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultAuthSecret = "change-me-in-production"

// Config holds the whole application configuration, populated from environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Query    QueryConfig
	Listing  ListingConfig
	Site     SiteDefaults
	Worker   WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	CORSOrigins []string
}

type DatabaseConfig struct {
	URL      string // DATABASE_URL wins over the discrete fields
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type AuthConfig struct {
	Secret   string
	Salt     string
	Issuer   string
	TokenTTL time.Duration
}

type StorageConfig struct {
	Driver         string // minio, s3
	Endpoint       string // host:port for minio, full URL (optional) for s3
	Region         string
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
	PublicBaseURL  string
	PresignExpiry  time.Duration
	MaxUploadBytes int64
}

type QueryConfig struct {
	// Strict rejects malformed list query parameters with 400 instead of
	// falling back to defaults.
	Strict bool
}

type ListingConfig struct {
	PublicDefaultLimit int
	PublicMaxLimit     int
	AdminDefaultLimit  int
	AdminMaxLimit      int
}

// SiteDefaults are served for settings keys that were never saved.
type SiteDefaults struct {
	Title        string
	Description  string
	URL          string
	PostsPerPage int
	APIBaseURL   string
}

type WorkerConfig struct {
	Concurrency   int
	ViewFlushCron string
	ReconcileCron string
	HealthPort    string
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Blog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			CORSOrigins: getEnvList("CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "blog"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Secret:   getEnv("AUTH_SECRET", defaultAuthSecret),
			Salt:     getEnv("AUTH_SALT", "blog-session"),
			Issuer:   getEnv("AUTH_ISSUER", "blog-backend"),
			TokenTTL: getEnvDuration("AUTH_TOKEN_TTL", 30*24*time.Hour),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(getEnv("STORAGE_DRIVER", "minio")),
			Endpoint:       getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			Region:         getEnv("STORAGE_REGION", "us-east-1"),
			AccessKey:      getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretKey:      getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			Bucket:         getEnv("STORAGE_BUCKET", "blog"),
			UseSSL:         getEnvBool("STORAGE_USE_SSL", false),
			PublicBaseURL:  strings.TrimRight(getEnv("STORAGE_PUBLIC_BASE_URL", "http://localhost:9000/blog"), "/"),
			PresignExpiry:  getEnvDuration("STORAGE_PRESIGN_EXPIRY", 5*time.Minute),
			MaxUploadBytes: int64(getEnvInt("STORAGE_MAX_UPLOAD_BYTES", 10<<20)),
		},
		Query: QueryConfig{
			Strict: getEnvBool("QUERY_STRICT", false),
		},
		Listing: ListingConfig{
			PublicDefaultLimit: getEnvInt("LIST_PUBLIC_DEFAULT_LIMIT", 9),
			PublicMaxLimit:     getEnvInt("LIST_PUBLIC_MAX_LIMIT", 30),
			AdminDefaultLimit:  getEnvInt("LIST_ADMIN_DEFAULT_LIMIT", 10),
			AdminMaxLimit:      getEnvInt("LIST_ADMIN_MAX_LIMIT", 100),
		},
		Site: SiteDefaults{
			Title:        getEnv("SITE_TITLE", "My Tech Blog"),
			Description:  getEnv("SITE_DESCRIPTION", "Notes on software engineering"),
			URL:          getEnv("SITE_URL", "http://localhost:3000"),
			PostsPerPage: getEnvInt("SITE_POSTS_PER_PAGE", 9),
			APIBaseURL:   getEnv("API_BASE_URL", "http://localhost:8080/api/v1"),
		},
		Worker: WorkerConfig{
			Concurrency:   getEnvInt("WORKER_CONCURRENCY", 5),
			ViewFlushCron: getEnv("WORKER_VIEW_FLUSH_CRON", "*/5 * * * *"),
			ReconcileCron: getEnv("WORKER_RECONCILE_CRON", "30 3 * * *"),
			HealthPort:    getEnv("WORKER_HEALTH_PORT", "9999"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that cannot run.
func (c *Config) Validate() error {
	if c.Storage.Driver != "minio" && c.Storage.Driver != "s3" {
		return fmt.Errorf("STORAGE_DRIVER must be minio or s3, got %q", c.Storage.Driver)
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("STORAGE_MAX_UPLOAD_BYTES must be positive")
	}
	if c.Listing.PublicMaxLimit < 1 || c.Listing.AdminMaxLimit < 1 {
		return fmt.Errorf("listing max limits must be at least 1")
	}
	if c.Site.PostsPerPage < 5 || c.Site.PostsPerPage > 50 {
		return fmt.Errorf("SITE_POSTS_PER_PAGE must be between 5 and 50")
	}

	if c.App.Environment == "production" {
		if c.Auth.Secret == defaultAuthSecret {
			return fmt.Errorf("AUTH_SECRET must be set in production")
		}
		if c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
