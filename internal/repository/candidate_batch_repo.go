package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
)

// candidateBatchRepo implements CandidateBatchRepository using GORM.
type candidateBatchRepo struct {
	db *gorm.DB
}

var _ CandidateBatchRepository = (*candidateBatchRepo)(nil)

// NewCandidateBatchRepository creates a new CandidateBatchRepository.
func NewCandidateBatchRepository(db *gorm.DB) *candidateBatchRepo {
	return &candidateBatchRepo{db: db}
}

// GetByBatchID retrieves the first candidate batch with the given batch ID.
func (r *candidateBatchRepo) GetByBatchID(ctx context.Context, batchID string) (*models.CandidateBatch, error) {
	var batch models.CandidateBatch
	err := r.db.WithContext(ctx).Where("batch_id = ?", batchID).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting candidate batch: %w", err)
	}
	return &batch, nil
}

// Upsert creates or updates the candidate batch keyed by batch ID.
func (r *candidateBatchRepo) Upsert(ctx context.Context, batch *models.CandidateBatch) error {
	existing, err := r.GetByBatchID(ctx, batch.BatchID)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := r.db.WithContext(ctx).Create(batch).Error; err != nil {
			return fmt.Errorf("creating candidate batch: %w", err)
		}
		return nil
	}

	batch.ID = existing.ID
	batch.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(batch).Error; err != nil {
		return fmt.Errorf("updating candidate batch: %w", err)
	}
	return nil
}

// DeleteByBatchID deletes all records for a batch ID.
func (r *candidateBatchRepo) DeleteByBatchID(ctx context.Context, batchID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("batch_id = ?", batchID).Delete(&models.CandidateBatch{})
	if result.Error != nil {
		return 0, fmt.Errorf("deleting candidate batch: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Exists reports whether any record has the given batch ID.
func (r *candidateBatchRepo) Exists(ctx context.Context, batchID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CandidateBatch{}).
		Where("batch_id = ?", batchID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking candidate batch existence: %w", err)
	}
	return count > 0, nil
}
