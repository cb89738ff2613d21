// Package config loads backend settings from the environment. A local
// .env file, when present, is read by the caller via godotenv before
// Load runs.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment keys
const (
	KeyPort            = "PORT"
	KeyEnvironment     = "APP_ENV"
	KeyDownloadDir     = "DOWNLOAD_DIR"
	KeyCookieFile      = "COOKIE_FILE"
	KeyCookieTTL       = "COOKIE_TTL"
	KeyFrontendURL     = "FRONTEND_URL"
	KeyRequestsPerSec  = "REQUESTS_PER_SECOND"
	KeyRequestBurst    = "REQUEST_BURST"
	KeyDownloadRetries = "DOWNLOAD_RETRIES"
	KeyRetryBackoff    = "RETRY_BACKOFF"
	KeyJobTimeout      = "JOB_TIMEOUT"
)

// Default values
const (
	DefaultPort            = "5000"
	DefaultEnvironment     = "production"
	DefaultDownloadDir     = "downloads"
	DefaultCookieTTL       = 5 * time.Minute
	DefaultRequestsPerSec  = 10.0
	DefaultRequestBurst    = 20
	DefaultDownloadRetries = 1
	DefaultRetryBackoff    = 2 * time.Second

	// Jobs run uncapped by default; production deployments should set a
	// ceiling via JOB_TIMEOUT
	DefaultJobTimeout = 0

	DevOrigin = "http://localhost:3000"
)

// Settings holds all runtime configuration
type Settings struct {
	Port        string
	Environment string
	DownloadDir string

	CookieFile string
	CookieTTL  time.Duration

	AllowedOrigins []string

	RequestsPerSecond float64
	RequestBurst      int

	DownloadRetries int
	RetryBackoff    time.Duration
	JobTimeout      time.Duration
}

// Load reads settings from the environment, applying defaults for
// anything unset
func Load() *Settings {
	s := &Settings{
		Port:              getEnv(KeyPort, DefaultPort),
		Environment:       getEnv(KeyEnvironment, DefaultEnvironment),
		DownloadDir:       getEnv(KeyDownloadDir, DefaultDownloadDir),
		CookieFile:        getEnv(KeyCookieFile, ""),
		CookieTTL:         getDuration(KeyCookieTTL, DefaultCookieTTL),
		RequestsPerSecond: getFloat(KeyRequestsPerSec, DefaultRequestsPerSec),
		RequestBurst:      getInt(KeyRequestBurst, DefaultRequestBurst),
		DownloadRetries:   getInt(KeyDownloadRetries, DefaultDownloadRetries),
		RetryBackoff:      getDuration(KeyRetryBackoff, DefaultRetryBackoff),
		JobTimeout:        getDuration(KeyJobTimeout, DefaultJobTimeout),
	}

	s.AllowedOrigins = []string{DevOrigin}
	if frontend := os.Getenv(KeyFrontendURL); frontend != "" {
		s.AllowedOrigins = append(s.AllowedOrigins, strings.TrimSuffix(frontend, "/"))
	}

	return s
}

// IsDevelopment returns true when running in a development environment
func (s *Settings) IsDevelopment() bool {
	return s.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
	}
	return defaultValue
}
