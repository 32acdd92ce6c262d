package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
)

// jobPostingRepo implements JobPostingRepository using GORM.
type jobPostingRepo struct {
	db *gorm.DB
}

var _ JobPostingRepository = (*jobPostingRepo)(nil)

// NewJobPostingRepository creates a new JobPostingRepository.
func NewJobPostingRepository(db *gorm.DB) *jobPostingRepo {
	return &jobPostingRepo{db: db}
}

// GetByJobID retrieves a job posting by external job ID.
func (r *jobPostingRepo) GetByJobID(ctx context.Context, jobID string) (*models.JobPosting, error) {
	var job models.JobPosting
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting job posting: %w", err)
	}
	return &job, nil
}

// Upsert creates or updates the job posting keyed by job ID.
func (r *jobPostingRepo) Upsert(ctx context.Context, job *models.JobPosting) error {
	existing, err := r.GetByJobID(ctx, job.JobID)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
			return fmt.Errorf("creating job posting: %w", err)
		}
		return nil
	}

	job.ID = existing.ID
	job.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		return fmt.Errorf("updating job posting: %w", err)
	}
	return nil
}
