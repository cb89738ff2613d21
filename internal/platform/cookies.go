package platform

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Substrings a usable YouTube cookie export contains
var cookieIndicators = []string{
	"youtube.com",
	"VISITOR_INFO",
	"LOGIN_INFO",
	"SAPISID",
	"APISID",
	"SIDCC",
	"YSC",
}

// CookieSource owns the cookie file handed to yt-dlp. Validation results
// are cached for a fixed TTL and re-derived on demand, so an operator can
// swap the file on disk without a restart.
type CookieSource struct {
	path string
	ttl  time.Duration

	mu        sync.Mutex
	checkedAt time.Time
	valid     bool
}

// NewCookieSource creates a cookie source for path. An empty path disables
// cookies entirely.
func NewCookieSource(path string, ttl time.Duration) *CookieSource {
	return &CookieSource{path: path, ttl: ttl}
}

// Path returns the cookie file path if the file currently validates, or
// the empty string when cookies are disabled or unusable
func (c *CookieSource) Path() string {
	if c == nil || c.path == "" {
		return ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.checkedAt.IsZero() || time.Since(c.checkedAt) > c.ttl {
		c.valid = c.validate()
		c.checkedAt = time.Now()
	}
	if !c.valid {
		return ""
	}
	return c.path
}

func (c *CookieSource) validate() bool {
	content, err := os.ReadFile(c.path)
	if err != nil {
		log.Printf("cookie file %s unreadable: %v", c.path, err)
		return false
	}

	text := string(content)
	for _, indicator := range cookieIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	log.Printf("cookie file %s contains no YouTube cookies", c.path)
	return false
}
