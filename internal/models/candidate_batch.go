package models

import "gorm.io/gorm"

// CandidateBatch links a candidate (identified by batch ID) to the job they
// are interviewing for, along with profile data collected at registration.
type CandidateBatch struct {
	BaseModel

	// BatchID is the external identifier for the candidate's interview batch.
	BatchID string `gorm:"not null;size:100;index" json:"batch_id"`

	StudentName string `gorm:"size:100" json:"student_name,omitempty"`
	Education   string `gorm:"size:100" json:"education,omitempty"`
	Experience  string `gorm:"size:100" json:"student_experience,omitempty"`

	// Certifications is a JSON document of certifications.
	Certifications string `json:"certfication,omitempty"`

	// Skills is a comma-separated skill list.
	Skills string `gorm:"size:1000" json:"skills,omitempty"`

	// Projects is a JSON document of project descriptions.
	Projects string `json:"projects,omitempty"`

	SelectedLanguage string `gorm:"size:50" json:"selected_language,omitempty"`
	Agent            string `gorm:"size:1002" json:"agent,omitempty"`

	// JobID references the JobPosting this batch belongs to.
	JobID string `gorm:"size:100;index" json:"job_id,omitempty"`

	WebhookURL string `gorm:"size:1000" json:"webhook_url,omitempty"`
}

// TableName returns the table name for CandidateBatch.
func (CandidateBatch) TableName() string {
	return "candidate_batches"
}

// Validate performs basic validation on the candidate batch.
func (c *CandidateBatch) Validate() error {
	if c.BatchID == "" {
		return ErrBatchIDRequired
	}
	return nil
}

// BeforeCreate is a GORM hook that validates the record and generates a ULID.
func (c *CandidateBatch) BeforeCreate(tx *gorm.DB) error {
	if err := c.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	return c.Validate()
}
