package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
)

// sessionBatchRepo implements SessionBatchRepository using GORM.
type sessionBatchRepo struct {
	db *gorm.DB
}

var _ SessionBatchRepository = (*sessionBatchRepo)(nil)

// NewSessionBatchRepository creates a new SessionBatchRepository.
func NewSessionBatchRepository(db *gorm.DB) *sessionBatchRepo {
	return &sessionBatchRepo{db: db}
}

// Create creates a new session batch link.
func (r *sessionBatchRepo) Create(ctx context.Context, link *models.SessionBatch) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("creating session batch link: %w", err)
	}
	return nil
}

// GetBySessionID retrieves the batch link for a session.
func (r *sessionBatchRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.SessionBatch, error) {
	var link models.SessionBatch
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting session batch link: %w", err)
	}
	return &link, nil
}
