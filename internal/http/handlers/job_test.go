package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
)

// stubJobRepo is an in-memory JobPostingRepository.
type stubJobRepo struct {
	records map[string]*models.JobPosting
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{records: map[string]*models.JobPosting{}}
}

func (r *stubJobRepo) GetByJobID(ctx context.Context, jobID string) (*models.JobPosting, error) {
	return r.records[jobID], nil
}

func (r *stubJobRepo) Upsert(ctx context.Context, job *models.JobPosting) error {
	r.records[job.JobID] = job
	return nil
}

func TestJobHandler_Upsert(t *testing.T) {
	repo := newStubJobRepo()
	handler := NewJobHandler(repo)

	input := &UpsertJobsInput{
		Body: []JobRequest{
			{JobID: "job-1", Title: "Backend Engineer", TechnicalSkills: "Go, SQL", WebhookURL: "https://hooks.example.com/1"},
			{JobID: "job-2", Title: "Data Engineer", FocusSkills: "Spark"},
		},
	}

	output, err := handler.Upsert(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "success", output.Body.Status)

	require.Len(t, repo.records, 2)
	assert.Equal(t, "Backend Engineer", repo.records["job-1"].Title)
	assert.Equal(t, "Spark", repo.records["job-2"].FocusSkills)
}

func TestJobHandler_Upsert_UpdatesExisting(t *testing.T) {
	repo := newStubJobRepo()
	repo.records["job-1"] = &models.JobPosting{JobID: "job-1", Title: "Old Title"}
	handler := NewJobHandler(repo)

	input := &UpsertJobsInput{
		Body: []JobRequest{{JobID: "job-1", Title: "New Title"}},
	}

	_, err := handler.Upsert(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "New Title", repo.records["job-1"].Title)
}
