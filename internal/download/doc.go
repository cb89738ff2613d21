package download

// Package download implements the job orchestrator: it drives each
// download job through metadata extraction, format selection, the actual
// yt-dlp download, and either persistence into the downloads directory or
// chunked streaming to the client, recording every phase in the job
// tracker. Failures are isolated to the owning job.
