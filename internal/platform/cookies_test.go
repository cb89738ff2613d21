package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCookieSource_EmptyPathDisabled(t *testing.T) {
	source := NewCookieSource("", time.Minute)
	if got := source.Path(); got != "" {
		t.Errorf("Expected empty path for disabled cookies, got %q", got)
	}

	var nilSource *CookieSource
	if got := nilSource.Path(); got != "" {
		t.Errorf("Expected nil source to behave as disabled, got %q", got)
	}
}

func TestCookieSource_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	content := "# Netscape HTTP Cookie File\n.youtube.com\tTRUE\t/\tTRUE\t0\tLOGIN_INFO\tabc\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewCookieSource(path, time.Minute)
	if got := source.Path(); got != path {
		t.Errorf("Expected path %q, got %q", path, got)
	}
}

func TestCookieSource_NoYouTubeCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte(".example.com\tTRUE\t/\tTRUE\t0\tsession\tabc\n"), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewCookieSource(path, time.Minute)
	if got := source.Path(); got != "" {
		t.Errorf("Expected invalid cookie file to be rejected, got %q", got)
	}
}

func TestCookieSource_MissingFile(t *testing.T) {
	source := NewCookieSource(filepath.Join(t.TempDir(), "missing.txt"), time.Minute)
	if got := source.Path(); got != "" {
		t.Errorf("Expected missing file to be rejected, got %q", got)
	}
}

func TestCookieSource_RevalidatesAfterTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")

	// Starts invalid: file missing
	source := NewCookieSource(path, time.Millisecond)
	if got := source.Path(); got != "" {
		t.Fatalf("Expected missing file to be rejected, got %q", got)
	}

	// Operator drops a valid file in place; after the TTL the cached
	// verdict must be re-derived
	if err := os.WriteFile(path, []byte(".youtube.com\tTRUE\t/\tTRUE\t0\tSAPISID\txyz\n"), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)

	if got := source.Path(); got != path {
		t.Errorf("Expected revalidation to accept the new file, got %q", got)
	}
}

func TestCookieSource_CachesWithinTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte(".youtube.com\tTRUE\t/\tTRUE\t0\tYSC\tq\n"), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewCookieSource(path, time.Hour)
	if got := source.Path(); got != path {
		t.Fatalf("Expected valid file, got %q", got)
	}

	// Removing the file does not flip the cached verdict inside the TTL
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if got := source.Path(); got != path {
		t.Errorf("Expected cached verdict within TTL, got %q", got)
	}
}
