package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aanubhavv/youtube-video-downloader/internal/model"
)

// File permissions for created directories
const DefaultDirPermissions = 0755

// Names and suffixes excluded from directory listings: placeholder files
// and yt-dlp partial-download artifacts
var (
	ignoredNames    = []string{".gitkeep"}
	ignoredSuffixes = []string{".part", ".ytdl"}
)

// FallbackTitle is used when sanitizing strips a title to nothing
const FallbackTitle = "video"

// EnsureDir creates the directory if it doesn't exist
func EnsureDir(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// SanitizeTitle reduces a video title to a filename-safe form: only
// alphanumerics, spaces, hyphens, and underscores survive
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	safe := strings.TrimSpace(b.String())
	if safe == "" {
		return FallbackTitle
	}
	return safe
}

// ListFiles enumerates the downloads directory, skipping placeholder files
// and partial artifacts. A missing directory yields an empty listing.
func ListFiles(dir string) ([]model.FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.FileInfo{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	files := make([]model.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || isIgnored(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, model.FileInfo{
			Name:     entry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// LargestFile returns the path and size of the biggest non-ignored file in
// dir. Used to pick the main media file out of a per-job temp directory.
func LargestFile(dir string) (string, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0, fmt.Errorf("reading %s: %w", dir, err)
	}

	var best string
	var bestSize int64 = -1
	for _, entry := range entries {
		if entry.IsDir() || isIgnored(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			best = filepath.Join(dir, entry.Name())
			bestSize = info.Size()
		}
	}

	if best == "" {
		return "", 0, fmt.Errorf("no file was downloaded to %s", dir)
	}
	return best, bestSize, nil
}

func isIgnored(name string) bool {
	for _, ignored := range ignoredNames {
		if name == ignored {
			return true
		}
	}
	for _, suffix := range ignoredSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
