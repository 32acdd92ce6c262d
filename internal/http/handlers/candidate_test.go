package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
)

// stubCandidateRepo is an in-memory CandidateBatchRepository.
type stubCandidateRepo struct {
	records map[string]*models.CandidateBatch
}

func newStubCandidateRepo() *stubCandidateRepo {
	return &stubCandidateRepo{records: map[string]*models.CandidateBatch{}}
}

func (r *stubCandidateRepo) GetByBatchID(ctx context.Context, batchID string) (*models.CandidateBatch, error) {
	return r.records[batchID], nil
}

func (r *stubCandidateRepo) Upsert(ctx context.Context, batch *models.CandidateBatch) error {
	r.records[batch.BatchID] = batch
	return nil
}

func (r *stubCandidateRepo) DeleteByBatchID(ctx context.Context, batchID string) (int64, error) {
	if _, ok := r.records[batchID]; !ok {
		return 0, nil
	}
	delete(r.records, batchID)
	return 1, nil
}

func (r *stubCandidateRepo) Exists(ctx context.Context, batchID string) (bool, error) {
	_, ok := r.records[batchID]
	return ok, nil
}

func TestCandidateHandler_Upsert(t *testing.T) {
	repo := newStubCandidateRepo()
	handler := NewCandidateHandler(repo, "https://portal.example.com")

	input := &UpsertCandidateInput{
		Body: CandidateRequest{
			BatchID:     "batch-7",
			StudentName: "Asha",
			Skills:      "Go, SQL",
			JobID:       "job-3",
		},
	}

	output, err := handler.Upsert(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "success", output.Body.Status)
	assert.Equal(t, "https://portal.example.com/?batch_id=batch-7&job_id=job-3", output.Body.RedirectURL)

	stored := repo.records["batch-7"]
	require.NotNil(t, stored)
	assert.Equal(t, "Asha", stored.StudentName)
}

func TestCandidateHandler_Delete(t *testing.T) {
	repo := newStubCandidateRepo()
	repo.records["batch-1"] = &models.CandidateBatch{BatchID: "batch-1"}
	handler := NewCandidateHandler(repo, "https://portal.example.com")

	input := &DeleteCandidatesInput{}
	input.Body.Array = []struct {
		BatchID string `json:"batch_id"`
	}{
		{BatchID: "batch-1"},
		{BatchID: "batch-2"},
	}

	output, err := handler.Delete(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []string{"batch-1"}, output.Body.DeletedBatchIDs)
	assert.Equal(t, []string{"batch-2"}, output.Body.NotFoundBatchIDs)
	assert.Empty(t, repo.records)
}

func TestBatchHandler_Check(t *testing.T) {
	repo := newStubCandidateRepo()
	repo.records["batch-7"] = &models.CandidateBatch{BatchID: "batch-7"}
	handler := NewBatchHandler(repo)

	input := &CheckBatchInput{}
	input.Body.BatchID = "batch-7"

	output, err := handler.Check(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "success", output.Body.Status)
}

func TestBatchHandler_Check_NotFound(t *testing.T) {
	handler := NewBatchHandler(newStubCandidateRepo())

	input := &CheckBatchInput{}
	input.Body.BatchID = "batch-404"

	_, err := handler.Check(context.Background(), input)
	require.Error(t, err)

	se, ok := err.(huma.StatusError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, se.GetStatus())
}
