package jobs

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aanubhavv/youtube-video-downloader/internal/model"
)

// Tracker maps job IDs to job records. All access goes through a single
// coarse lock; the entry count is bounded by recent user activity, so
// finer locking buys nothing here.
type Tracker struct {
	mu   sync.RWMutex
	jobs map[string]*model.Job
}

// NewTracker creates an empty job tracker
func NewTracker() *Tracker {
	return &Tracker{
		jobs: make(map[string]*model.Job),
	}
}

// Create allocates a fresh job in the submitted state and returns a
// snapshot of it. It never fails.
func (t *Tracker) Create(url, quality string, direct bool) model.Job {
	t.mu.Lock()
	defer t.mu.Unlock()

	job := &model.Job{
		ID:        uuid.NewString(),
		URL:       url,
		Quality:   quality,
		Status:    model.StatusSubmitted,
		Message:   "Download submitted",
		Direct:    direct,
		CreatedAt: time.Now(),
	}
	t.jobs[job.ID] = job

	return job.Clone()
}

// Transition moves a job to a new status with an accompanying message.
// Unknown IDs are a silent no-op: the job may have been evicted by the
// streaming cleanup path. Backward transitions are rejected and logged.
func (t *Tracker) Transition(id string, status model.JobStatus, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[id]
	if !ok {
		return
	}
	if !job.Status.CanTransitionTo(status) {
		log.Printf("job %s: rejected transition %s -> %s", id, job.Status, status)
		return
	}

	job.Status = status
	job.Message = message
}

// Update applies fn to the job record under the lock. It returns false
// for unknown IDs. fn must not retain the job pointer.
func (t *Tracker) Update(id string, fn func(*model.Job)) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[id]
	if !ok {
		return false
	}
	fn(job)
	return true
}

// Complete marks a job successfully finished and stamps the completion time
func (t *Tracker) Complete(id, message string) {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[id]
	if !ok || !job.Status.CanTransitionTo(model.StatusCompleted) {
		return
	}
	job.Status = model.StatusCompleted
	job.Message = message
	job.CompletedAt = &now
}

// Fail moves a job to the error state with the captured message. Terminal
// jobs and unknown IDs are left untouched.
func (t *Tracker) Fail(id string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[id]
	if !ok || !job.Status.CanTransitionTo(model.StatusError) {
		return
	}
	job.Status = model.StatusError
	job.Error = err.Error()
	job.Message = "Failed to download: " + err.Error()
}

// Get returns a snapshot of one job
func (t *Tracker) Get(id string) (model.Job, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	job, ok := t.jobs[id]
	if !ok {
		return model.Job{}, false
	}
	return job.Clone(), true
}

// All returns snapshots of every tracked job
func (t *Tracker) All() []model.Job {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]model.Job, 0, len(t.jobs))
	for _, job := range t.jobs {
		out = append(out, job.Clone())
	}
	return out
}

// Evict removes a job record. Used once per direct-stream job after its
// result has been fully transmitted, to bound memory.
func (t *Tracker) Evict(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, id)
}
