package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"geolocations/internal/geolocations"
)

// ClientConfig holds settings for the geo-locations API client.
type ClientConfig struct {
	UseCDN     bool
	APIBaseURL string
	CDNBaseURL string
	// BaseURLOverride, when set, is used instead of either base (e.g. a local geoserve).
	BaseURLOverride   string
	RequestTimeoutSec int
}

// RequestTimeout returns the per-call deadline; zero disables it.
func (c ClientConfig) RequestTimeout() time.Duration {
	if c.RequestTimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Prefix is prepended to every dataset key, e.g. "geo/v1/".
	Prefix string
}

// DatasetConfig selects where geoserve reads its dataset snapshot from.
type DatasetConfig struct {
	// Source is "embedded", "dir" or "minio".
	Source string
	Dir    string
	MinIO  MinIOConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	Port string
	// Prefix mounts the fixture routes under a path, e.g. "/api" to mirror the primary host.
	Prefix  string
	Client  ClientConfig
	Dataset DatasetConfig
	Log     LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over .env values.
func Load() *AppConfig {
	return &AppConfig{
		Port:   getEnv("PORT", "8080"),
		Prefix: strings.TrimRight(getEnv("SERVER_PREFIX", ""), "/"),
		Client: ClientConfig{
			UseCDN:            getEnvBool("GEO_USE_CDN", false),
			APIBaseURL:        getEnv("GEO_API_BASE_URL", geolocations.DefaultAPIBaseURL),
			CDNBaseURL:        getEnv("GEO_CDN_BASE_URL", geolocations.DefaultCDNBaseURL),
			BaseURLOverride:   getEnv("GEO_BASE_URL_OVERRIDE", ""),
			RequestTimeoutSec: getEnvInt("GEO_REQUEST_TIMEOUT_SEC", 10),
		},
		Dataset: DatasetConfig{
			Source: getEnv("DATASET_SOURCE", "embedded"),
			Dir:    getEnv("DATASET_DIR", "./data"),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
				Prefix:    getEnv("MINIO_PREFIX", ""),
			},
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}
}

// NewLogger creates a slog.Logger writing to stdout based on the configuration.
func (c LogConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(c.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
