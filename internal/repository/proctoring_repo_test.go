package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
)

func TestProctoringRepo_LatestCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProctoringRepository(db)
	ctx := context.Background()

	// No events yet: zero counters, no error.
	counts, err := repo.LatestCounts(ctx, "sess-1")
	require.NoError(t, err)
	assert.Zero(t, counts.TabSwitches)
	assert.Zero(t, counts.FullscreenExits)

	require.NoError(t, repo.CreateEvent(ctx, &models.ProctorEvent{
		SessionID: "sess-1", Event: "tab_switch", TabSwitchCount: 1, FullscreenExitCount: 0,
	}))
	require.NoError(t, repo.CreateEvent(ctx, &models.ProctorEvent{
		SessionID: "sess-1", Event: "fullscreen_exit", TabSwitchCount: 3, FullscreenExitCount: 2,
	}))
	require.NoError(t, repo.CreateEvent(ctx, &models.ProctorEvent{
		SessionID: "other", Event: "tab_switch", TabSwitchCount: 99, FullscreenExitCount: 99,
	}))

	counts, err = repo.LatestCounts(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 3, counts.TabSwitches)
	assert.Equal(t, 2, counts.FullscreenExits)
}

func TestProctoringRepo_Aggregates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProctoringRepository(db)
	ctx := context.Background()

	frames := []models.FrameCapture{
		{SessionID: "sess-1", PersonCount: 1, CellPhoneDetected: false},
		{SessionID: "sess-1", PersonCount: 2, CellPhoneDetected: false},
		{SessionID: "sess-1", PersonCount: 3, CellPhoneDetected: true},
		{SessionID: "sess-1", PersonCount: 1, CellPhoneDetected: true},
		{SessionID: "other", PersonCount: 5, CellPhoneDetected: true},
	}
	for i := range frames {
		require.NoError(t, repo.CreateFrame(ctx, &frames[i]))
	}

	agg, err := repo.Aggregates(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), agg.MultiPersonFrames)
	assert.Equal(t, int64(2), agg.CellPhoneFrames)

	empty, err := repo.Aggregates(ctx, "sess-404")
	require.NoError(t, err)
	assert.Zero(t, empty.MultiPersonFrames)
	assert.Zero(t, empty.CellPhoneFrames)
}
