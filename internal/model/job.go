package model

import "time"

// VideoSummary is the subset of video metadata attached to a job record
// for client polling
type VideoSummary struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Uploader string `json:"uploader"`
}

// Job represents a single user-initiated download or stream request tracked
// from submission to completion
type Job struct {
	ID              string        `json:"job_id"`
	URL             string        `json:"url"`
	Quality         string        `json:"quality"`
	Status          JobStatus     `json:"status"`
	Message         string        `json:"message"`
	Direct          bool          `json:"direct_download,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	Error           string        `json:"error,omitempty"`
	Video           *VideoSummary `json:"video_info,omitempty"`
	SelectedFormat  string        `json:"selected_format,omitempty"`
	FormatLabel     string        `json:"format_description,omitempty"`
	SafeTitle       string        `json:"safe_title,omitempty"`
	DownloadURL     string        `json:"download_url,omitempty"`
	DownloadedFiles []string      `json:"downloaded_files,omitempty"`
	DownloadPath    string        `json:"download_path,omitempty"`
}

// Clone returns a deep copy of the job so that snapshots handed to readers
// never alias tracker-owned state
func (j *Job) Clone() Job {
	c := *j
	if j.Video != nil {
		v := *j.Video
		c.Video = &v
	}
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		c.CompletedAt = &t
	}
	if j.DownloadedFiles != nil {
		c.DownloadedFiles = append([]string(nil), j.DownloadedFiles...)
	}
	return c
}
