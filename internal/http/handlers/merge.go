package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/merge"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/observability"
)

// MergeQueue accepts merge work onto the bounded worker pool.
type MergeQueue interface {
	Submit(task merge.Task) error
}

// SessionProcessor runs the merge-and-publish pipeline for one session.
type SessionProcessor interface {
	Process(ctx context.Context, sessionID string) error
}

// MergeHandler handles merge trigger endpoints.
type MergeHandler struct {
	queue     MergeQueue
	processor SessionProcessor
	logger    *slog.Logger
}

// NewMergeHandler creates a new merge handler.
func NewMergeHandler(queue MergeQueue, processor SessionProcessor, logger *slog.Logger) *MergeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MergeHandler{
		queue:     queue,
		processor: processor,
		logger:    logger,
	}
}

// MergeInput is the input for the merge trigger endpoint.
type MergeInput struct {
	Body struct {
		SessionID string `json:"session_id" minLength:"1" doc:"Interview session to merge and publish"`
	}
}

// MergeOutput is the output for the merge trigger endpoint.
type MergeOutput struct {
	Body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
}

// Register registers the merge routes with the API.
func (h *MergeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "triggerMerge",
		Method:        "POST",
		Path:          "/api/v1/merge",
		Summary:       "Trigger session merge",
		Description:   "Queues chunk merging and publishing for a recorded session",
		Tags:          []string{"Merge"},
		DefaultStatus: http.StatusAccepted,
	}, h.Trigger)
}

// Trigger enqueues merge work for a session. The request returns as soon as
// the work is accepted; progress is visible through logs and the session's
// stored recording URLs.
func (h *MergeHandler) Trigger(ctx context.Context, input *MergeInput) (*MergeOutput, error) {
	sessionID := input.Body.SessionID

	err := h.queue.Submit(func(taskCtx context.Context) {
		if err := h.processor.Process(taskCtx, sessionID); err != nil {
			h.logger.Error("merge pipeline failed",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	})
	if err != nil {
		if errors.Is(err, merge.ErrQueueFull) {
			observability.LoggerFromContext(ctx).Warn("merge queue full, rejecting request",
				slog.String("session_id", sessionID))
			return nil, huma.Error503ServiceUnavailable("merge queue is full, retry later")
		}
		return nil, huma.Error500InternalServerError("failed to queue merge", err)
	}

	resp := &MergeOutput{}
	resp.Body.Success = true
	resp.Body.Message = fmt.Sprintf("Merging started for %s", sessionID)
	return resp, nil
}
