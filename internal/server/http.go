package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/aanubhavv/youtube-video-downloader/internal/config"
	"github.com/aanubhavv/youtube-video-downloader/internal/download"
	"github.com/aanubhavv/youtube-video-downloader/internal/format"
	"github.com/aanubhavv/youtube-video-downloader/internal/jobs"
	"github.com/aanubhavv/youtube-video-downloader/internal/model"
	"github.com/aanubhavv/youtube-video-downloader/internal/platform"
)

// Listing sizes for the video-info response
const (
	topVideoFormats = 10
	topAudioFormats = 8
)

// Quality tiers precomputed for the video-info response
var inspectTiers = []struct {
	name string
	req  format.Request
}{
	{"auto", format.Request{Kind: format.KindAuto}},
	{"1080p", format.Request{Kind: format.KindHeightCapped, MaxHeight: 1080}},
	{"720p", format.Request{Kind: format.KindHeightCapped, MaxHeight: 720}},
	{"480p", format.Request{Kind: format.KindHeightCapped, MaxHeight: 480}},
}

// Server wires the HTTP API to the tracker and orchestrator
type Server struct {
	settings *config.Settings
	tracker  *jobs.Tracker
	orch     *download.Orchestrator
}

// New creates the API server
func New(settings *config.Settings, tracker *jobs.Tracker, orch *download.Orchestrator) *Server {
	return &Server{settings: settings, tracker: tracker, orch: orch}
}

// Handler builds the route mux wrapped in CORS and rate-limit middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/video-info", s.handleVideoInfo)
	mux.HandleFunc("POST /api/download", s.handleStartDownload)
	mux.HandleFunc("POST /api/download-direct", s.handleDirectDownload)
	mux.HandleFunc("GET /api/download-stream/{id}", s.handleStream)
	mux.HandleFunc("GET /api/download-status/{id}", s.handleJobStatus)
	mux.HandleFunc("GET /api/downloads", s.handleListJobs)
	mux.HandleFunc("GET /api/downloads/files", s.handleListFiles)
	mux.HandleFunc("GET /api/downloads/files/{name}", s.handleServeFile)

	limiter := newClientLimiter(s.settings.RequestsPerSecond, s.settings.RequestBurst)
	return corsMiddleware(s.settings.AllowedOrigins, limiter.middleware(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"message":     "YouTube Downloader API is running",
		"environment": s.settings.Environment,
	})
}

// downloadRequest is the body of the submission endpoints
type downloadRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

// parseSubmission validates the request body shared by all submission
// endpoints; validation failures are rejected before any job is created
func parseSubmission(r *http.Request) (downloadRequest, format.Request, error) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, format.Request{}, errors.New("invalid request body")
	}
	if req.URL == "" {
		return req, format.Request{}, errors.New("URL is required")
	}
	parsed, err := url.ParseRequestURI(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return req, format.Request{}, errors.New("URL is not a valid http(s) URL")
	}
	quality, err := format.ParseRequest(req.Quality)
	if err != nil {
		return req, format.Request{}, err
	}
	return req, quality, nil
}

type qualityPair struct {
	Video string `json:"video,omitempty"`
	Audio string `json:"audio,omitempty"`
}

type formatListing struct {
	VideoFormats     []model.FormatRecord   `json:"video_formats"`
	AudioFormats     []model.FormatRecord   `json:"audio_formats"`
	RecommendedVideo string                 `json:"recommended_video,omitempty"`
	RecommendedAudio string                 `json:"recommended_audio,omitempty"`
	QualityFormats   map[string]qualityPair `json:"quality_formats"`
}

type videoInfoResponse struct {
	Title       string        `json:"title"`
	Duration    float64       `json:"duration"`
	Uploader    string        `json:"uploader"`
	Thumbnail   string        `json:"thumbnail,omitempty"`
	Description string        `json:"description,omitempty"`
	ViewCount   int64         `json:"view_count,omitempty"`
	UploadDate  string        `json:"upload_date,omitempty"`
	Formats     formatListing `json:"formats"`
}

func (s *Server) handleVideoInfo(w http.ResponseWriter, r *http.Request) {
	req, _, err := parseSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := s.orch.Inspect(r.Context(), req.URL)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}

	catalog := format.Build(info.Formats)
	listing := formatListing{
		VideoFormats:   catalog.TopVideo(topVideoFormats),
		AudioFormats:   catalog.TopAudio(topAudioFormats),
		QualityFormats: make(map[string]qualityPair, len(inspectTiers)),
	}
	for _, tier := range inspectTiers {
		sel := format.Select(catalog, tier.req)
		listing.QualityFormats[tier.name] = qualityPair{Video: sel.VideoID, Audio: sel.AudioID}
		if tier.name == "auto" {
			listing.RecommendedVideo = sel.VideoID
			listing.RecommendedAudio = sel.AudioID
		}
	}

	writeJSON(w, http.StatusOK, videoInfoResponse{
		Title:       info.Title,
		Duration:    info.Duration,
		Uploader:    info.Uploader,
		Thumbnail:   info.Thumbnail,
		Description: info.Description,
		ViewCount:   info.ViewCount,
		UploadDate:  info.UploadDate,
		Formats:     listing,
	})
}

func (s *Server) handleStartDownload(w http.ResponseWriter, r *http.Request) {
	req, quality, err := parseSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job := s.orch.StartJob(req.URL, quality, normalizedQuality(req.Quality))

	writeJSON(w, http.StatusAccepted, map[string]any{
		"task_id": job.ID,
		"status":  job.Status,
		"message": "Download started successfully",
	})
}

func (s *Server) handleDirectDownload(w http.ResponseWriter, r *http.Request) {
	req, quality, err := parseSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.orch.PrepareDirect(r.Context(), req.URL, quality, normalizedQuality(req.Quality))
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"download_id":  job.ID,
		"download_url": job.DownloadURL,
		"title":        job.Video.Title,
		"safe_title":   job.SafeTitle,
	})
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	job, ok := s.tracker.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Download not found")
		return
	}
	if !job.Direct || job.Status != model.StatusDirectReady {
		writeError(w, http.StatusConflict, "Download is not ready for streaming")
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", `attachment; filename="`+job.SafeTitle+`.mp4"`)
	w.Header().Set("Cache-Control", "no-cache")

	// Headers are committed once the first chunk is written; a failure
	// after that aborts the transfer instead of producing a JSON error
	if err := s.orch.Stream(r.Context(), id, newFlushWriter(w)); err != nil {
		log.Printf("stream %s aborted: %v", id, err)
	}
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := s.tracker.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"downloads": s.tracker.All(),
	})
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := platform.ListFiles(s.settings.DownloadDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list files: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"files":         files,
		"download_path": s.settings.DownloadDir,
	})
}

func (s *Server) handleServeFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		writeError(w, http.StatusBadRequest, "Invalid file name")
		return
	}

	path := filepath.Join(s.settings.DownloadDir, name)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
}

// writeUpstreamError maps classified extraction failures onto HTTP codes
func (s *Server) writeUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, platform.ErrAuthRequired):
		writeErrorRetryAfter(w, http.StatusForbidden,
			"Video platform requires sign-in, try again later", "300")
	case errors.Is(err, download.ErrNoUsableFormat):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Failed to get video info: "+err.Error())
	}
}

// normalizedQuality keeps the job record's quality field stable for
// clients that poll it
func normalizedQuality(raw string) string {
	if raw == "" {
		return "auto"
	}
	return raw
}

// flushWriter flushes after every chunk so streamed bytes reach the
// client without buffering delays
type flushWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newFlushWriter(w http.ResponseWriter) *flushWriter {
	fw := &flushWriter{w: w}
	if flusher, ok := w.(http.Flusher); ok {
		fw.flusher = flusher
	}
	return fw
}

func (fw *flushWriter) Write(p []byte) (int, error) {
	n, err := fw.w.Write(p)
	if fw.flusher != nil {
		fw.flusher.Flush()
	}
	return n, err
}
