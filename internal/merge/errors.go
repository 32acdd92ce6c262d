// Package merge implements the chunk-merge pipeline: chunk discovery and
// ordering, normalize+concat orchestration, the periodic watchdog scan, and
// the merge-upload-persist workflow triggered per session.
package merge

import "errors"

var (
	// ErrNoChunks indicates a chunk directory contained no chunk files.
	// This is a normal, retryable condition, not fatal.
	ErrNoChunks = errors.New("no chunks found")

	// ErrFolderNotReady indicates an upload directory did not appear within
	// the bounded wait. The affected stream is skipped for this run.
	ErrFolderNotReady = errors.New("upload folder not ready")

	// ErrQueueFull indicates the merge worker queue is saturated and the
	// request was rejected.
	ErrQueueFull = errors.New("merge queue full")
)
