package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
)

// evaluationRepo implements EvaluationRepository using GORM.
type evaluationRepo struct {
	db *gorm.DB
}

var _ EvaluationRepository = (*evaluationRepo)(nil)

// NewEvaluationRepository creates a new EvaluationRepository.
func NewEvaluationRepository(db *gorm.DB) *evaluationRepo {
	return &evaluationRepo{db: db}
}

// Create creates a new evaluation record.
func (r *evaluationRepo) Create(ctx context.Context, eval *models.Evaluation) error {
	if err := r.db.WithContext(ctx).Create(eval).Error; err != nil {
		return fmt.Errorf("creating evaluation: %w", err)
	}
	return nil
}

// GetBySessionID retrieves the evaluation for a session.
func (r *evaluationRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Evaluation, error) {
	var eval models.Evaluation
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&eval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting evaluation by session ID: %w", err)
	}
	return &eval, nil
}

// GetOldestPending retrieves the oldest PENDING evaluation in insertion order.
func (r *evaluationRepo) GetOldestPending(ctx context.Context) (*models.Evaluation, error) {
	var eval models.Evaluation
	err := r.db.WithContext(ctx).
		Where("status = ?", models.EvaluationStatusPending).
		Order("created_at ASC, id ASC").
		First(&eval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting oldest pending evaluation: %w", err)
	}
	return &eval, nil
}

// UpdateStatus sets the delivery status for a session's evaluation.
func (r *evaluationRepo) UpdateStatus(ctx context.Context, sessionID string, status models.EvaluationStatus) error {
	err := r.db.WithContext(ctx).
		Model(&models.Evaluation{}).
		Where("session_id = ?", sessionID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("updating evaluation status: %w", err)
	}
	return nil
}

// SetUploadURLs records merged recording URLs, skipping empty values so a
// failed stream never clears a previously stored URL.
func (r *evaluationRepo) SetUploadURLs(ctx context.Context, sessionID, screenURL, cameraURL string) error {
	updates := map[string]any{}
	if screenURL != "" {
		updates["screen_url"] = screenURL
	}
	if cameraURL != "" {
		updates["camera_url"] = cameraURL
	}
	if len(updates) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.Evaluation{}).
		Where("session_id = ?", sessionID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("setting upload URLs: %w", err)
	}
	return nil
}
