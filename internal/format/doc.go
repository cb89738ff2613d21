package format

// Package format implements format catalog construction and quality
// selection: it partitions the raw format list reported by the extraction
// layer, ranks each bucket, resolves a quality request to concrete format
// IDs with defined fallbacks, and composes the selector string handed to
// yt-dlp.
