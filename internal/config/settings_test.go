package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	s := Load()

	if s.Port != DefaultPort {
		t.Errorf("Expected port %s, got %s", DefaultPort, s.Port)
	}
	if s.DownloadDir != DefaultDownloadDir {
		t.Errorf("Expected download dir %s, got %s", DefaultDownloadDir, s.DownloadDir)
	}
	if s.RequestsPerSecond != DefaultRequestsPerSec {
		t.Errorf("Expected %v requests per second, got %v", DefaultRequestsPerSec, s.RequestsPerSecond)
	}
	if s.DownloadRetries != DefaultDownloadRetries {
		t.Errorf("Expected %d retries, got %d", DefaultDownloadRetries, s.DownloadRetries)
	}
	if s.RetryBackoff != DefaultRetryBackoff {
		t.Errorf("Expected backoff %v, got %v", DefaultRetryBackoff, s.RetryBackoff)
	}
	if s.JobTimeout != 0 {
		t.Errorf("Expected job timeout disabled by default, got %v", s.JobTimeout)
	}
	if len(s.AllowedOrigins) != 1 || s.AllowedOrigins[0] != DevOrigin {
		t.Errorf("Expected only the dev origin by default, got %v", s.AllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(KeyPort, "8080")
	t.Setenv(KeyDownloadDir, "/data/videos")
	t.Setenv(KeyFrontendURL, "https://app.example.com/")
	t.Setenv(KeyDownloadRetries, "3")
	t.Setenv(KeyRetryBackoff, "500ms")
	t.Setenv(KeyJobTimeout, "10m")
	t.Setenv(KeyEnvironment, "development")

	s := Load()

	if s.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", s.Port)
	}
	if s.DownloadDir != "/data/videos" {
		t.Errorf("Expected /data/videos, got %s", s.DownloadDir)
	}
	if s.DownloadRetries != 3 {
		t.Errorf("Expected 3 retries, got %d", s.DownloadRetries)
	}
	if s.RetryBackoff != 500*time.Millisecond {
		t.Errorf("Expected 500ms backoff, got %v", s.RetryBackoff)
	}
	if s.JobTimeout != 10*time.Minute {
		t.Errorf("Expected 10m job timeout, got %v", s.JobTimeout)
	}
	if !s.IsDevelopment() {
		t.Error("Expected development environment")
	}

	// Frontend origin is appended with the trailing slash stripped
	found := false
	for _, origin := range s.AllowedOrigins {
		if origin == "https://app.example.com" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected frontend origin in allow-list, got %v", s.AllowedOrigins)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv(KeyDownloadRetries, "lots")
	t.Setenv(KeyRetryBackoff, "-5s")
	t.Setenv(KeyRequestsPerSec, "0")

	s := Load()

	if s.DownloadRetries != DefaultDownloadRetries {
		t.Errorf("Expected default retries for garbage input, got %d", s.DownloadRetries)
	}
	if s.RetryBackoff != DefaultRetryBackoff {
		t.Errorf("Expected default backoff for negative input, got %v", s.RetryBackoff)
	}
	if s.RequestsPerSecond != DefaultRequestsPerSec {
		t.Errorf("Expected default rate for zero input, got %v", s.RequestsPerSecond)
	}
}
