package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lrstanley/go-ytdlp"

	"github.com/aanubhavv/youtube-video-downloader/internal/model"
)

// Output container for merged downloads
const mergeContainer = "mp4"

// Client drives yt-dlp for metadata extraction and media download.
// Connection timeouts and upstream retries are yt-dlp's own; callers add
// deadlines through the context.
type Client struct {
	cookies *CookieSource
}

// NewClient creates a yt-dlp client. cookies may be nil when no credential
// material is configured.
func NewClient(cookies *CookieSource) *Client {
	return &Client{cookies: cookies}
}

// Extract fetches video metadata, including the raw format list, without
// downloading any media
func (c *Client) Extract(ctx context.Context, url string) (*model.VideoInfo, error) {
	cmd := ytdlp.New().
		DumpSingleJSON().
		SkipDownload().
		NoPlaylist().
		NoWarnings()
	c.applyCookies(cmd)

	result, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, classify(err)
	}

	var info model.VideoInfo
	if err := json.Unmarshal([]byte(result.Stdout), &info); err != nil {
		return nil, fmt.Errorf("%w: decoding metadata: %v", ErrExtraction, err)
	}
	return &info, nil
}

// Download fetches media for the given format selector into the output
// template. Selectors naming separate tracks ("137+140") are merged into a
// single mp4 container by yt-dlp.
func (c *Client) Download(ctx context.Context, url, formatSelector, outputTemplate string) error {
	cmd := ytdlp.New().
		Format(formatSelector).
		Output(outputTemplate).
		NoPlaylist().
		NoWarnings().
		ForceOverwrites().
		RestrictFilenames()
	if strings.Contains(formatSelector, "+") {
		cmd = cmd.MergeOutputFormat(mergeContainer)
	}
	c.applyCookies(cmd)

	if _, err := cmd.Run(ctx, url); err != nil {
		return classify(err)
	}
	return nil
}

func (c *Client) applyCookies(cmd *ytdlp.Command) {
	if c.cookies == nil {
		return
	}
	if path := c.cookies.Path(); path != "" {
		cmd.Cookies(path)
	}
}
