package models

import "gorm.io/gorm"

// SessionBatchStatus represents the lifecycle of an interview session link.
type SessionBatchStatus string

const (
	// SessionBatchStatusPending indicates the session has not started yet.
	SessionBatchStatusPending SessionBatchStatus = "Session Pending"
	// SessionBatchStatusActive indicates the interview is in progress.
	SessionBatchStatusActive SessionBatchStatus = "Session Active"
	// SessionBatchStatusEnded indicates the interview has finished.
	SessionBatchStatusEnded SessionBatchStatus = "Session Ended"
)

// SessionBatch links a recording session to the candidate batch it belongs
// to; the dispatcher follows this link to resolve the batch and job for a
// session awaiting evaluation.
type SessionBatch struct {
	BaseModel

	// SessionID identifies the recording session.
	SessionID string `gorm:"not null;size:255;index" json:"session_id"`

	// BatchID references the CandidateBatch.
	BatchID string `gorm:"size:255;index" json:"batch_id,omitempty"`

	// JobID references the JobPosting.
	JobID string `gorm:"size:255" json:"job_id,omitempty"`

	StartedAt *Time `json:"started_at,omitempty"`
	EndedAt   *Time `json:"ended_at,omitempty"`

	Status SessionBatchStatus `gorm:"size:50;default:'Session Pending'" json:"status"`
}

// TableName returns the table name for SessionBatch.
func (SessionBatch) TableName() string {
	return "session_batches"
}

// Validate performs basic validation on the session batch link.
func (s *SessionBatch) Validate() error {
	if s.SessionID == "" {
		return ErrSessionIDRequired
	}
	return nil
}

// BeforeCreate is a GORM hook that validates the record and generates a ULID.
func (s *SessionBatch) BeforeCreate(tx *gorm.DB) error {
	if err := s.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	return s.Validate()
}
