package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
)

// proctoringRepo implements ProctoringRepository using GORM.
type proctoringRepo struct {
	db *gorm.DB
}

var _ ProctoringRepository = (*proctoringRepo)(nil)

// NewProctoringRepository creates a new ProctoringRepository.
func NewProctoringRepository(db *gorm.DB) *proctoringRepo {
	return &proctoringRepo{db: db}
}

// CreateEvent records a proctor event row.
func (r *proctoringRepo) CreateEvent(ctx context.Context, event *models.ProctorEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("creating proctor event: %w", err)
	}
	return nil
}

// CreateFrame records an analyzed frame row.
func (r *proctoringRepo) CreateFrame(ctx context.Context, frame *models.FrameCapture) error {
	if err := r.db.WithContext(ctx).Create(frame).Error; err != nil {
		return fmt.Errorf("creating frame capture: %w", err)
	}
	return nil
}

// LatestCounts returns the most recent focus counters for a session.
func (r *proctoringRepo) LatestCounts(ctx context.Context, sessionID string) (ProctorCounts, error) {
	var event models.ProctorEvent
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProctorCounts{}, nil
		}
		return ProctorCounts{}, fmt.Errorf("getting latest proctor counts: %w", err)
	}
	return ProctorCounts{
		TabSwitches:     event.TabSwitchCount,
		FullscreenExits: event.FullscreenExitCount,
	}, nil
}

// Aggregates returns frame analysis rollups for a session.
func (r *proctoringRepo) Aggregates(ctx context.Context, sessionID string) (FrameAggregates, error) {
	var agg FrameAggregates

	err := r.db.WithContext(ctx).
		Model(&models.FrameCapture{}).
		Where("session_id = ? AND person_count > 1", sessionID).
		Count(&agg.MultiPersonFrames).Error
	if err != nil {
		return FrameAggregates{}, fmt.Errorf("counting multi-person frames: %w", err)
	}

	err = r.db.WithContext(ctx).
		Model(&models.FrameCapture{}).
		Where("session_id = ? AND cell_phone_detected = ?", sessionID, true).
		Count(&agg.CellPhoneFrames).Error
	if err != nil {
		return FrameAggregates{}, fmt.Errorf("counting cell phone frames: %w", err)
	}

	return agg, nil
}
