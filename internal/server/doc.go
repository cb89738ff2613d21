package server

// Package server exposes the HTTP API: metadata inspection, persisted and
// direct-stream download submission, job polling, and access to previously
// downloaded files. Cross-origin access and per-client rate limiting are
// applied as middleware around the route mux.
