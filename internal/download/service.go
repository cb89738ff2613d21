package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aanubhavv/youtube-video-downloader/internal/format"
	"github.com/aanubhavv/youtube-video-downloader/internal/jobs"
	"github.com/aanubhavv/youtube-video-downloader/internal/model"
	"github.com/aanubhavv/youtube-video-downloader/internal/platform"
)

// Orchestrator errors
var (
	// ErrNoUsableFormat means no format in the extraction response carried
	// a usable track
	ErrNoUsableFormat = errors.New("no usable format available")

	// ErrEmptyResult means the download reported success but produced no
	// output file, or a zero-byte one
	ErrEmptyResult = errors.New("download produced no output")

	// ErrUnknownJob means the job ID is not tracked; it may have been
	// evicted or lost to a restart
	ErrUnknownJob = errors.New("unknown job")
)

const (
	// streamChunkSize is the read size used when emitting a streamed file
	streamChunkSize = 8192

	// outputTemplate names downloaded files after the video title
	outputTemplate = "%(title)s.%(ext)s"

	streamEndpointPrefix = "/api/download-stream/"
)

// Options tunes orchestrator behavior. Retry counts and backoff are
// deployment configuration; only the bounded-retries shape is fixed.
type Options struct {
	DownloadDir string
	Retries     int
	Backoff     time.Duration

	// JobTimeout caps one job's wall-clock execution; zero disables the cap
	JobTimeout time.Duration
}

// Orchestrator coordinates full download jobs over the tracker and the
// external extraction/download capability
type Orchestrator struct {
	tracker    *jobs.Tracker
	extractor  Extractor
	downloader Downloader
	opts       Options
}

// NewOrchestrator creates an orchestrator
func NewOrchestrator(tracker *jobs.Tracker, extractor Extractor, downloader Downloader, opts Options) *Orchestrator {
	return &Orchestrator{
		tracker:    tracker,
		extractor:  extractor,
		downloader: downloader,
		opts:       opts,
	}
}

// Inspect fetches metadata for a URL without creating a job. Blocks the
// caller until extraction finishes.
func (o *Orchestrator) Inspect(ctx context.Context, url string) (*model.VideoInfo, error) {
	return o.extractor.Extract(ctx, url)
}

// StartJob creates a persisted-download job and runs it in the background.
// The returned snapshot carries the job ID for client polling.
func (o *Orchestrator) StartJob(url string, req format.Request, rawQuality string) model.Job {
	job := o.tracker.Create(url, rawQuality, false)
	go o.runPersisted(job.ID, url, req)
	return job
}

func (o *Orchestrator) runPersisted(id, url string, req format.Request) {
	ctx, cancel := o.withJobTimeout(context.Background())
	defer cancel()

	info, sel, err := o.resolveFormats(ctx, id, url, req)
	if err != nil {
		o.tracker.Fail(id, err)
		return
	}

	selector := sel.SelectorString()
	message := "Downloading video..."
	if sel.NeedsMerge() {
		message = "Downloading and merging video..."
	}
	o.tracker.Transition(id, model.StatusDownloading, message)

	if err := o.downloadWithFallback(ctx, url, selector, filepath.Join(o.opts.DownloadDir, outputTemplate)); err != nil {
		o.tracker.Fail(id, err)
		return
	}

	// yt-dlp multiplexes the tracks itself; the state only marks that a
	// merge happened before the files landed
	if sel.NeedsMerge() {
		o.tracker.Transition(id, model.StatusMerging, "Merging video and audio tracks...")
	}

	files, err := platform.ListFiles(o.opts.DownloadDir)
	if err != nil {
		o.tracker.Fail(id, err)
		return
	}
	if len(files) == 0 {
		o.tracker.Fail(id, ErrEmptyResult)
		return
	}

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	o.tracker.Update(id, func(j *model.Job) {
		j.DownloadedFiles = names
		j.DownloadPath = o.opts.DownloadDir
	})
	o.tracker.Complete(id, "Successfully downloaded: "+info.Title)
}

// PrepareDirect runs extraction and format selection synchronously and
// parks the job until the client opens the stream endpoint
func (o *Orchestrator) PrepareDirect(ctx context.Context, url string, req format.Request, rawQuality string) (model.Job, error) {
	job := o.tracker.Create(url, rawQuality, true)

	_, _, err := o.resolveFormats(ctx, job.ID, url, req)
	if err != nil {
		o.tracker.Fail(job.ID, err)
		return model.Job{}, err
	}

	o.tracker.Update(job.ID, func(j *model.Job) {
		j.DownloadURL = streamEndpointPrefix + j.ID
		j.SafeTitle = platform.SanitizeTitle(j.Video.Title)
	})
	o.tracker.Transition(job.ID, model.StatusDirectReady, "Direct download ready")

	snapshot, _ := o.tracker.Get(job.ID)
	return snapshot, nil
}

// Stream downloads a prepared direct job into a scratch directory and
// emits the resulting file to w in fixed-size chunks. The scratch
// directory is removed and the job evicted regardless of outcome; the
// final transition after eviction is a tolerated no-op.
func (o *Orchestrator) Stream(ctx context.Context, id string, w io.Writer) error {
	job, ok := o.tracker.Get(id)
	if !ok {
		return ErrUnknownJob
	}

	ctx, cancel := o.withJobTimeout(ctx)
	defer cancel()

	err := o.streamJob(ctx, job, w)

	o.tracker.Evict(id)
	if err != nil {
		o.tracker.Fail(id, err)
		return err
	}
	o.tracker.Complete(id, "Direct download completed: "+job.SafeTitle)
	return nil
}

func (o *Orchestrator) streamJob(ctx context.Context, job model.Job, w io.Writer) error {
	tempDir, err := os.MkdirTemp("", "yt-download-*")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	o.tracker.Transition(job.ID, model.StatusDownloading,
		fmt.Sprintf("Downloading: %s (%s)", job.SafeTitle, job.FormatLabel))

	template := filepath.Join(tempDir, job.SafeTitle+".%(ext)s")
	if err := o.downloadWithFallback(ctx, job.URL, job.SelectedFormat, template); err != nil {
		return err
	}

	o.tracker.Transition(job.ID, model.StatusStreaming, "Streaming download: "+job.SafeTitle)

	path, size, err := platform.LargestFile(tempDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmptyResult, err)
	}
	if size == 0 {
		return fmt.Errorf("%w: %s is empty", ErrEmptyResult, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, streamChunkSize)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

// resolveFormats runs the extraction and selection phases shared by
// persisted and direct jobs, recording progress on the job record
func (o *Orchestrator) resolveFormats(ctx context.Context, id, url string, req format.Request) (*model.VideoInfo, format.Selection, error) {
	o.tracker.Transition(id, model.StatusExtractingMetadata, "Extracting video information...")

	info, err := o.extractor.Extract(ctx, url)
	if err != nil {
		return nil, format.Selection{}, err
	}

	o.tracker.Transition(id, model.StatusSelectingFormat, "Analyzing available formats...")
	o.tracker.Update(id, func(j *model.Job) {
		j.Video = info.Summary()
	})

	catalog := format.Build(info.Formats)
	if catalog.IsEmpty() {
		return nil, format.Selection{}, ErrNoUsableFormat
	}

	sel := format.Select(catalog, req)
	o.tracker.Update(id, func(j *model.Job) {
		j.SelectedFormat = sel.SelectorString()
		j.FormatLabel = sel.Label
	})
	return info, sel, nil
}

// downloadWithFallback invokes the download capability, retrying a bounded
// number of times with the generic best-effort selector when a composed
// video+audio selector fails to resolve
func (o *Orchestrator) downloadWithFallback(ctx context.Context, url, selector, template string) error {
	err := o.downloader.Download(ctx, url, selector, template)
	if err == nil {
		return nil
	}

	if !strings.Contains(selector, "+") {
		return err
	}

	for attempt := 1; attempt <= o.opts.Retries; attempt++ {
		select {
		case <-time.After(o.opts.Backoff):
		case <-ctx.Done():
			return ctx.Err()
		}

		log.Printf("download with selector %q failed (%v), retrying with %q (attempt %d)",
			selector, err, format.FallbackSelector, attempt)

		err = o.downloader.Download(ctx, url, format.FallbackSelector, template)
		if err == nil {
			return nil
		}
	}
	return err
}

func (o *Orchestrator) withJobTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if o.opts.JobTimeout > 0 {
		return context.WithTimeout(parent, o.opts.JobTimeout)
	}
	return context.WithCancel(parent)
}
