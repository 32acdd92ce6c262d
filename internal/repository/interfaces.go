// Package repository defines data access interfaces for interviewd entities.
// All database access goes through these interfaces, enabling easy testing
// and database backend switching.
package repository

import (
	"context"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
)

// EvaluationRepository defines operations for evaluation persistence.
type EvaluationRepository interface {
	// Create creates a new evaluation record.
	Create(ctx context.Context, eval *models.Evaluation) error
	// GetBySessionID retrieves the evaluation for a session, or nil if none.
	GetBySessionID(ctx context.Context, sessionID string) (*models.Evaluation, error)
	// GetOldestPending retrieves the oldest PENDING evaluation in insertion
	// order, or nil if none is waiting.
	GetOldestPending(ctx context.Context) (*models.Evaluation, error)
	// UpdateStatus sets the delivery status for a session's evaluation.
	UpdateStatus(ctx context.Context, sessionID string, status models.EvaluationStatus) error
	// SetUploadURLs records merged recording URLs for a session. Only
	// non-empty URLs overwrite the stored values, so a session may end up
	// with a single stream.
	SetUploadURLs(ctx context.Context, sessionID, screenURL, cameraURL string) error
}

// SessionBatchRepository defines operations for session-to-batch links.
type SessionBatchRepository interface {
	// Create creates a new session batch link.
	Create(ctx context.Context, link *models.SessionBatch) error
	// GetBySessionID retrieves the batch link for a session, or nil if none.
	GetBySessionID(ctx context.Context, sessionID string) (*models.SessionBatch, error)
}

// CandidateBatchRepository defines operations for candidate batch persistence.
type CandidateBatchRepository interface {
	// GetByBatchID retrieves the first candidate batch with the given batch
	// ID, or nil if none.
	GetByBatchID(ctx context.Context, batchID string) (*models.CandidateBatch, error)
	// Upsert creates or updates the candidate batch keyed by batch ID.
	Upsert(ctx context.Context, batch *models.CandidateBatch) error
	// DeleteByBatchID deletes all records for a batch ID, returning the
	// number of rows removed.
	DeleteByBatchID(ctx context.Context, batchID string) (int64, error)
	// Exists reports whether any record has the given batch ID.
	Exists(ctx context.Context, batchID string) (bool, error)
}

// JobPostingRepository defines operations for job posting persistence.
type JobPostingRepository interface {
	// GetByJobID retrieves a job posting by external job ID, or nil if none.
	GetByJobID(ctx context.Context, jobID string) (*models.JobPosting, error)
	// Upsert creates or updates the job posting keyed by job ID.
	Upsert(ctx context.Context, job *models.JobPosting) error
}

// ProctorCounts holds the most recent focus counters for a session.
type ProctorCounts struct {
	TabSwitches     int
	FullscreenExits int
}

// FrameAggregates holds per-session frame analysis rollups.
type FrameAggregates struct {
	// MultiPersonFrames is the number of frames with more than one face.
	MultiPersonFrames int64
	// CellPhoneFrames is the number of frames with a phone detected.
	CellPhoneFrames int64
}

// ProctoringRepository defines operations for proctoring data persistence.
type ProctoringRepository interface {
	// CreateEvent records a proctor event row.
	CreateEvent(ctx context.Context, event *models.ProctorEvent) error
	// CreateFrame records an analyzed frame row.
	CreateFrame(ctx context.Context, frame *models.FrameCapture) error
	// LatestCounts returns the most recent tab-switch and fullscreen-exit
	// counters for a session; zero counts if the session has no events.
	LatestCounts(ctx context.Context, sessionID string) (ProctorCounts, error)
	// Aggregates returns frame analysis rollups for a session.
	Aggregates(ctx context.Context, sessionID string) (FrameAggregates, error)
}
