package models

import "gorm.io/gorm"

// JobPosting describes a position candidates interview for, including the
// skill lists that seed the evaluation report and the webhook the report is
// delivered to.
type JobPosting struct {
	BaseModel

	// JobID is the external identifier for the posting.
	JobID string `gorm:"not null;size:100;uniqueIndex" json:"job_id"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// TechnicalSkills is a comma-separated skill list.
	TechnicalSkills string `json:"technical_skills,omitempty"`

	// BehaviouralSkills is a comma-separated skill list.
	BehaviouralSkills string `json:"behavioural_skills,omitempty"`

	// FocusSkills is a comma-separated skill list.
	FocusSkills string `json:"focus_skills,omitempty"`

	Industry      string `gorm:"size:800" json:"industry,omitempty"`
	MinExperience string `gorm:"size:100" json:"min_experience,omitempty"`
	MaxExperience string `gorm:"size:100" json:"max_experience,omitempty"`

	// WebhookURL is the endpoint evaluation reports for this job are sent to.
	WebhookURL string `gorm:"size:1000" json:"webhook_url,omitempty"`
}

// TableName returns the table name for JobPosting.
func (JobPosting) TableName() string {
	return "job_postings"
}

// Validate performs basic validation on the job posting.
func (j *JobPosting) Validate() error {
	if j.JobID == "" {
		return ErrJobIDRequired
	}
	return nil
}

// BeforeCreate is a GORM hook that validates the record and generates a ULID.
func (j *JobPosting) BeforeCreate(tx *gorm.DB) error {
	if err := j.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	return j.Validate()
}
