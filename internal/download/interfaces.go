package download

import (
	"context"

	"github.com/aanubhavv/youtube-video-downloader/internal/model"
)

// Extractor fetches video metadata without downloading media
type Extractor interface {
	Extract(ctx context.Context, url string) (*model.VideoInfo, error)
}

// Downloader fetches media for a format selector into an output template
type Downloader interface {
	Download(ctx context.Context, url, formatSelector, outputTemplate string) error
}
