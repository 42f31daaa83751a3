package config

import (
	"os"
	"strconv"
	"time"

	"pdf-table-extractor/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	UploadPath     string
	MaxFileSize    int64
	LogLevel       string
	ExtractWorkers int
	PageTimeout    time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	SupabaseURL    string
	SupabaseKey    string
	ArchiveBucket  string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:     getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadPath:     getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		MaxFileSize:    getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		ExtractWorkers: getEnvIntOrDefault("EXTRACT_WORKERS", 4),
		PageTimeout:    time.Duration(getEnvIntOrDefault("PAGE_TIMEOUT_SECONDS", 90)) * time.Second,
		RateLimitRPS:   getEnvFloatOrDefault("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvIntOrDefault("RATE_LIMIT_BURST", 10),
		SupabaseURL:    getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:    getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		ArchiveBucket:  getEnvOrDefault("ARCHIVE_BUCKET", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the staging directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetExtractWorkers returns the number of parallel batch workers
func (c *AppConfig) GetExtractWorkers() int {
	return c.ExtractWorkers
}

// GetPageTimeout returns the per-page extraction timeout
func (c *AppConfig) GetPageTimeout() time.Duration {
	return c.PageTimeout
}

// GetRateLimitRPS returns the per-client request rate
func (c *AppConfig) GetRateLimitRPS() float64 {
	return c.RateLimitRPS
}

// GetRateLimitBurst returns the per-client burst allowance
func (c *AppConfig) GetRateLimitBurst() int {
	return c.RateLimitBurst
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetArchiveBucket returns the storage bucket for finished archives
func (c *AppConfig) GetArchiveBucket() string {
	return c.ArchiveBucket
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
