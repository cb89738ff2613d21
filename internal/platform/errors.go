package platform

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds produced at the yt-dlp boundary. Callers match these with
// errors.Is instead of parsing message text.
var (
	// ErrAuthRequired means the upstream platform demanded a login or
	// flagged the request as automated. Not retried automatically.
	ErrAuthRequired = errors.New("authentication required by video platform")

	// ErrFormatUnavailable means the format selector did not resolve to
	// any downloadable format.
	ErrFormatUnavailable = errors.New("requested format not available")

	// ErrExtraction covers all other extraction/download failures.
	ErrExtraction = errors.New("extraction failed")
)

// Substrings yt-dlp emits for bot-detection walls and unresolvable format
// selectors. Matching happens here and nowhere else.
var (
	authIndicators   = []string{"sign in to confirm", "bot", "login required", "age-restricted"}
	formatIndicators = []string{"requested format is not available", "no video formats found"}
)

// classify wraps a raw yt-dlp failure into one of the closed error kinds.
// This is the single place where upstream error prose is inspected.
func classify(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	for _, indicator := range authIndicators {
		if strings.Contains(msg, indicator) {
			return fmt.Errorf("%w: %v", ErrAuthRequired, err)
		}
	}
	for _, indicator := range formatIndicators {
		if strings.Contains(msg, indicator) {
			return fmt.Errorf("%w: %v", ErrFormatUnavailable, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrExtraction, err)
}
