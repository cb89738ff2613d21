package model

// JobStatus represents the lifecycle phase of a download job
type JobStatus string

const (
	// StatusSubmitted means the job is recorded but no work has started
	StatusSubmitted JobStatus = "submitted"

	// StatusExtractingMetadata means video metadata is being fetched
	StatusExtractingMetadata JobStatus = "extracting_metadata"

	// StatusSelectingFormat means available formats are being analyzed
	StatusSelectingFormat JobStatus = "selecting_format"

	// StatusDirectReady means a direct-stream job is prepared and waiting
	// for the client to open the stream endpoint
	StatusDirectReady JobStatus = "direct_download_ready"

	// StatusDownloading means the media download is in progress
	StatusDownloading JobStatus = "downloading"

	// StatusMerging means separate video and audio tracks are being merged
	StatusMerging JobStatus = "merging"

	// StatusStreaming means the result is being transmitted to the client
	StatusStreaming JobStatus = "streaming"

	// StatusCompleted means the job finished successfully
	StatusCompleted JobStatus = "completed"

	// StatusError means the job failed with an error
	StatusError JobStatus = "error"
)

// statusRank orders the forward-only lifecycle. A transition is legal only
// to a strictly higher rank; the error state is reachable from any
// non-terminal state.
var statusRank = map[JobStatus]int{
	StatusSubmitted:          0,
	StatusExtractingMetadata: 1,
	StatusSelectingFormat:    2,
	StatusDirectReady:        3,
	StatusDownloading:        4,
	StatusMerging:            5,
	StatusStreaming:          6,
	StatusCompleted:          7,
}

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are allowed
func (s JobStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// IsActive returns true if the job still has work in flight
func (s JobStatus) IsActive() bool {
	_, known := statusRank[s]
	return known && s != StatusCompleted
}

// CanTransitionTo reports whether moving from s to next respects the
// forward-only state machine
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusError {
		return true
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}
