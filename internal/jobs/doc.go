package jobs

// Package jobs implements the in-memory job tracker: a concurrency-safe
// registry of download jobs polled by clients and mutated by the
// orchestrator through forward-only status transitions. The store is
// deliberately volatile; a job that is missing after a restart or an
// eviction is reported as unknown, not as a failure.
