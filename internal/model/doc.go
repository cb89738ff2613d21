package model

// Package model defines domain data structures used across the backend:
// download jobs, job status enums, and video/format metadata returned by
// the extraction layer. Structures are designed for direct JSON binding in
// API responses and explicit state transitions.
