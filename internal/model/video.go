package model

import (
	"fmt"
	"time"
)

// codecAbsent marks a missing track in yt-dlp format metadata. An empty
// codec field is treated the same way.
const codecAbsent = "none"

// FormatRecord describes one encoding variant of a video as reported by
// the extraction layer. Field names follow the yt-dlp JSON schema.
type FormatRecord struct {
	FormatID string  `json:"format_id"`
	Ext      string  `json:"ext"`
	VCodec   string  `json:"vcodec"`
	ACodec   string  `json:"acodec"`
	Height   int     `json:"height"`
	FPS      float64 `json:"fps"`
	ABR      float64 `json:"abr"`
	TBR      float64 `json:"tbr"`
}

// HasVideo returns true if the record carries a video track
func (f FormatRecord) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != codecAbsent
}

// HasAudio returns true if the record carries an audio track
func (f FormatRecord) HasAudio() bool {
	return f.ACodec != "" && f.ACodec != codecAbsent
}

// IsVideoOnly returns true for records with a video track and no audio
func (f FormatRecord) IsVideoOnly() bool {
	return f.HasVideo() && !f.HasAudio()
}

// IsAudioOnly returns true for records with an audio track and no video
func (f FormatRecord) IsAudioOnly() bool {
	return f.HasAudio() && !f.HasVideo()
}

// IsCombined returns true for records carrying both tracks
func (f FormatRecord) IsCombined() bool {
	return f.HasVideo() && f.HasAudio()
}

// VideoInfo is the metadata for a single video returned by the extraction
// layer, including the raw format list used for quality selection
type VideoInfo struct {
	Title       string         `json:"title"`
	Duration    float64        `json:"duration"`
	Uploader    string         `json:"uploader"`
	Thumbnail   string         `json:"thumbnail,omitempty"`
	Description string         `json:"description,omitempty"`
	ViewCount   int64          `json:"view_count,omitempty"`
	UploadDate  string         `json:"upload_date,omitempty"`
	Formats     []FormatRecord `json:"formats"`
}

// DurationString formats the duration as M:SS for display
func (v *VideoInfo) DurationString() string {
	total := int(v.Duration)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Summary returns the job-facing metadata subset
func (v *VideoInfo) Summary() *VideoSummary {
	return &VideoSummary{
		Title:    v.Title,
		Duration: v.DurationString(),
		Uploader: v.Uploader,
	}
}

// FileInfo describes one file in the persistent downloads directory
type FileInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}
