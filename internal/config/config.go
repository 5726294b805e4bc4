package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// PreviewStoreMemory keeps previews in process memory
	PreviewStoreMemory = "memory"
	// PreviewStoreMinio keeps previews in a MinIO bucket
	PreviewStoreMinio = "minio"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	LogLevel    string

	Backend struct {
		BaseURL        string
		RequestTimeout time.Duration
	}

	Server struct {
		Port    string
		GinMode string
	}

	Upload struct {
		MaxFileSize int64
	}

	Preview struct {
		Store string
		TTL   time.Duration
	}

	Minio struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}

	Session struct {
		Secret string
		TTL    time.Duration
		Max    int
	}

	CORS struct {
		AllowOrigins string
		AllowMethods string
		AllowHeaders string
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{}

	config.Environment = getEnv("ENVIRONMENT", "development")
	config.LogLevel = getEnv("LOG_LEVEL", "info")

	config.Backend.BaseURL = strings.TrimRight(getEnv("BACKEND_URL", getEnv("VITE_BACKEND_URL", "http://localhost:8000")), "/")
	config.Backend.RequestTimeout = getEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second)

	config.Server.Port = getEnv("PORT", "8080")
	config.Server.GinMode = getEnv("GIN_MODE", "debug")

	config.Upload.MaxFileSize = getEnvAsInt64("MAX_FILE_SIZE", 10485760)

	config.Preview.Store = strings.ToLower(getEnv("PREVIEW_STORE", PreviewStoreMemory))

	config.Minio.Endpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	config.Minio.AccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	config.Minio.SecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	config.Minio.Bucket = getEnv("MINIO_BUCKET", "hotelops-previews")
	config.Minio.UseSSL = getEnvAsBool("MINIO_USE_SSL", false)

	config.Session.Secret = getEnv("SESSION_SECRET", "")
	config.Session.TTL = getEnvAsDuration("SESSION_TTL", 12*time.Hour)
	config.Session.Max = int(getEnvAsInt64("SESSION_MAX", 1000))

	// Previews live as long as their session unless set explicitly
	config.Preview.TTL = getEnvAsDuration("PREVIEW_TTL", config.Session.TTL)

	config.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")
	config.CORS.AllowMethods = getEnv("CORS_ALLOW_METHODS", "GET,POST,OPTIONS")
	config.CORS.AllowHeaders = getEnv("CORS_ALLOW_HEADERS", "Origin,Content-Length,Content-Type")

	return config
}

// IsProduction reports whether the dashboard runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SplitList splits a comma separated setting into trimmed, non-empty values
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 gets an environment variable as int64 or returns a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("15s") or plain seconds ("15")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
