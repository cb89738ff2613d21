package platform

// Package platform contains external tooling and filesystem glue: the
// yt-dlp client used for metadata extraction and media download, typed
// classification of its failures, cookie material handling, and download
// directory helpers.
