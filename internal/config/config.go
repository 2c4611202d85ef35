package config

import (
	"os"
	"strconv"
	"time"

	"github.com/SHOMANS/tourer-backend/internal/database"
	"github.com/SHOMANS/tourer-backend/internal/messaging"
)

// Config holds the application configuration
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	Database      database.Config
	Auth          AuthConfig
	Cache         CacheConfig
	Elasticsearch ElasticsearchConfig
	NATS          messaging.Config
	Upload        UploadConfig
}

// AuthConfig holds JWT and password hashing settings
type AuthConfig struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	BcryptCost int
}

// CacheConfig holds the optional Redis cache settings
type CacheConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

// UploadConfig holds static upload settings
type UploadConfig struct {
	Dir        string
	MaxSizeMB  int64
	PublicPath string
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "tourer"),
			Password:           getEnv("DB_PASSWORD", "tourer123"),
			DBName:             getEnv("DB_NAME", "tourer"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),
			AccessTTL:  time.Duration(getEnvInt("JWT_ACCESS_TTL_MIN", 15)) * time.Minute,
			RefreshTTL: time.Duration(getEnvInt("JWT_REFRESH_TTL_HOURS", 168)) * time.Hour,
			BcryptCost: getEnvInt("BCRYPT_COST", 12),
		},

		// Empty addr disables the cache
		Cache: CacheConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			TTL:      time.Duration(getEnvInt("CACHE_TTL_SEC", 60)) * time.Second,
		},

		// Empty URL disables the search index
		Elasticsearch: ElasticsearchConfig{
			URL:        getEnv("ELASTICSEARCH_URL", ""),
			Username:   getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:   getEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:      getEnv("ELASTICSEARCH_INDEX", "packages"),
			MaxRetries: getEnvInt("ELASTICSEARCH_MAX_RETRIES", 3),
		},

		// Empty URL disables event publishing
		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", ""),
			ClusterID: getEnv("NATS_CLUSTER_ID", "tourer"),
			ClientID:  getEnv("NATS_CLIENT_ID", "tourer-api"),
		},

		Upload: UploadConfig{
			Dir:        getEnv("UPLOAD_DIR", "./uploads"),
			MaxSizeMB:  int64(getEnvInt("UPLOAD_MAX_SIZE_MB", 5)),
			PublicPath: getEnv("UPLOAD_PUBLIC_PATH", "/uploads"),
		},
	}
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable value or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
