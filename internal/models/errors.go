package models

import "errors"

// Common validation errors for models.
var (
	// ErrSessionIDRequired indicates a required session ID field is empty.
	ErrSessionIDRequired = errors.New("session_id is required")

	// ErrBatchIDRequired indicates a required batch ID field is empty.
	ErrBatchIDRequired = errors.New("batch_id is required")

	// ErrJobIDRequired indicates a required job ID field is empty.
	ErrJobIDRequired = errors.New("job_id is required")

	// ErrEvaluationNotFound indicates an evaluation record was not found.
	ErrEvaluationNotFound = errors.New("evaluation not found")

	// ErrCandidateBatchNotFound indicates a candidate batch record was not found.
	ErrCandidateBatchNotFound = errors.New("candidate batch not found")

	// ErrJobPostingNotFound indicates a job posting record was not found.
	ErrJobPostingNotFound = errors.New("job posting not found")

	// ErrSessionBatchNotFound indicates no batch link exists for a session.
	ErrSessionBatchNotFound = errors.New("no batch mapping for session")
)
