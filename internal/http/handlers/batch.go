package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/repository"
)

// BatchHandler handles candidate batch lookup endpoints.
type BatchHandler struct {
	batches repository.CandidateBatchRepository
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(batches repository.CandidateBatchRepository) *BatchHandler {
	return &BatchHandler{batches: batches}
}

// CheckBatchInput is the input for the batch existence check.
type CheckBatchInput struct {
	Body struct {
		BatchID string `json:"batch_id" minLength:"1" doc:"Candidate batch identifier"`
	}
}

// CheckBatchOutput is the output for the batch existence check.
type CheckBatchOutput struct {
	Body StatusResponse
}

// StatusResponse is the common status/message response body.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Register registers the batch routes with the API.
func (h *BatchHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "checkBatch",
		Method:      "POST",
		Path:        "/api/v1/batches/check",
		Summary:     "Check batch existence",
		Description: "Reports whether candidate data exists for a batch ID",
		Tags:        []string{"Candidates"},
	}, h.Check)
}

// Check reports whether candidate data exists for the given batch ID.
func (h *BatchHandler) Check(ctx context.Context, input *CheckBatchInput) (*CheckBatchOutput, error) {
	exists, err := h.batches.Exists(ctx, input.Body.BatchID)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to check batch", err)
	}
	if !exists {
		return nil, huma.Error404NotFound(fmt.Sprintf("no candidate data found with batch_id %s", input.Body.BatchID))
	}

	resp := &CheckBatchOutput{}
	resp.Body.Status = "success"
	resp.Body.Message = fmt.Sprintf("candidate data with batch_id %s exists", input.Body.BatchID)
	return resp, nil
}
