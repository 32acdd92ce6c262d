package models

import "gorm.io/gorm"

// EvaluationStatus represents the delivery state of a session's evaluation
// report. A session that has left PENDING is never dispatched again.
type EvaluationStatus string

const (
	// EvaluationStatusPending indicates the report has not been delivered yet.
	EvaluationStatusPending EvaluationStatus = "PENDING"
	// EvaluationStatusProcessing indicates the report was accepted downstream.
	EvaluationStatusProcessing EvaluationStatus = "PROCESSING"
	// EvaluationStatusOneTimeSend indicates delivery was attempted once and
	// rejected; the record is not retried.
	EvaluationStatusOneTimeSend EvaluationStatus = "ONETIMESEND"
	// EvaluationStatusFailed indicates a terminal delivery failure.
	EvaluationStatusFailed EvaluationStatus = "FAILED"
)

// Evaluation tracks one interview session's merged recordings and the
// delivery state of its evaluation report.
type Evaluation struct {
	BaseModel

	// SessionID identifies the interview session.
	SessionID string `gorm:"not null;size:255;index" json:"session_id"`

	// EvaluationText is free-form evaluator output, if any.
	EvaluationText string `json:"evaluation_text,omitempty"`

	// PerformanceScore is a 0-100 score, if scored.
	PerformanceScore *float64 `json:"performance_score,omitempty"`

	// Status is the report delivery state.
	Status EvaluationStatus `gorm:"size:50;index" json:"status"`

	// CameraURL is the published camera recording, set after merge+upload.
	CameraURL string `gorm:"size:2048" json:"camera_url,omitempty"`

	// ScreenURL is the published screen recording, set after merge+upload.
	ScreenURL string `gorm:"size:2048" json:"screen_url,omitempty"`
}

// TableName returns the table name for Evaluation.
func (Evaluation) TableName() string {
	return "interview_evaluations"
}

// IsPending returns true if the evaluation report has not been dispatched.
func (e *Evaluation) IsPending() bool {
	return e.Status == EvaluationStatusPending
}

// IsDelivered returns true once the downstream endpoint accepted the report.
func (e *Evaluation) IsDelivered() bool {
	return e.Status == EvaluationStatusProcessing
}

// Validate performs basic validation on the evaluation.
func (e *Evaluation) Validate() error {
	if e.SessionID == "" {
		return ErrSessionIDRequired
	}
	return nil
}

// BeforeCreate is a GORM hook that validates the record and generates a ULID.
func (e *Evaluation) BeforeCreate(tx *gorm.DB) error {
	if err := e.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	return e.Validate()
}
