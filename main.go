// YouTube downloader backend. Serves a JSON API for video metadata
// inspection, background downloads into a shared directory, and direct
// streaming downloads that never persist on the server.
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/lrstanley/go-ytdlp"

	"github.com/aanubhavv/youtube-video-downloader/internal/config"
	"github.com/aanubhavv/youtube-video-downloader/internal/download"
	"github.com/aanubhavv/youtube-video-downloader/internal/jobs"
	"github.com/aanubhavv/youtube-video-downloader/internal/platform"
	"github.com/aanubhavv/youtube-video-downloader/internal/server"
)

func main() {
	// Missing .env is fine, the environment may be set directly
	_ = godotenv.Load()

	settings := config.Load()

	// Fetches yt-dlp on first run, no-op when already present
	ytdlp.MustInstall(context.Background(), nil)

	if err := platform.EnsureDir(settings.DownloadDir); err != nil {
		log.Fatalf("creating download directory %s: %v", settings.DownloadDir, err)
	}

	cookies := platform.NewCookieSource(settings.CookieFile, settings.CookieTTL)
	client := platform.NewClient(cookies)

	tracker := jobs.NewTracker()
	orch := download.NewOrchestrator(tracker, client, client, download.Options{
		DownloadDir: settings.DownloadDir,
		Retries:     settings.DownloadRetries,
		Backoff:     settings.RetryBackoff,
		JobTimeout:  settings.JobTimeout,
	})

	srv := server.New(settings, tracker, orch)

	log.Printf("starting YouTube downloader API on port %s (env=%s, downloads=%s)",
		settings.Port, settings.Environment, settings.DownloadDir)
	log.Fatal(http.ListenAndServe(":"+settings.Port, srv.Handler()))
}
