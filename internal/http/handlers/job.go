package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/repository"
)

// JobHandler handles job posting endpoints.
type JobHandler struct {
	jobs repository.JobPostingRepository
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobs repository.JobPostingRepository) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// JobRequest is one job posting record accepted by the API.
type JobRequest struct {
	JobID             string `json:"job_id" minLength:"1" doc:"External job identifier"`
	Title             string `json:"title,omitempty"`
	Description       string `json:"description,omitempty"`
	TechnicalSkills   string `json:"technical_skills,omitempty" doc:"Comma-separated skill list"`
	BehaviouralSkills string `json:"behavioural_skills,omitempty" doc:"Comma-separated skill list"`
	FocusSkills       string `json:"focus_skills,omitempty" doc:"Comma-separated skill list"`
	Industry          string `json:"industry,omitempty"`
	MinExperience     string `json:"min_experience,omitempty"`
	MaxExperience     string `json:"max_experience,omitempty"`
	WebhookURL        string `json:"webhook_url,omitempty" doc:"Endpoint evaluation reports are delivered to"`
}

// UpsertJobsInput is the input for the job upsert endpoint.
type UpsertJobsInput struct {
	Body []JobRequest
}

// UpsertJobsOutput is the output for the job upsert endpoint.
type UpsertJobsOutput struct {
	Body StatusResponse
}

// Register registers the job routes with the API.
func (h *JobHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "upsertJobs",
		Method:      "POST",
		Path:        "/api/v1/jobs",
		Summary:     "Upsert job postings",
		Description: "Creates or updates job postings keyed by job ID",
		Tags:        []string{"Jobs"},
	}, h.Upsert)
}

// Upsert creates or updates each posting in the request.
func (h *JobHandler) Upsert(ctx context.Context, input *UpsertJobsInput) (*UpsertJobsOutput, error) {
	for _, req := range input.Body {
		posting := &models.JobPosting{
			JobID:             req.JobID,
			Title:             req.Title,
			Description:       req.Description,
			TechnicalSkills:   req.TechnicalSkills,
			BehaviouralSkills: req.BehaviouralSkills,
			FocusSkills:       req.FocusSkills,
			Industry:          req.Industry,
			MinExperience:     req.MinExperience,
			MaxExperience:     req.MaxExperience,
			WebhookURL:        req.WebhookURL,
		}
		if err := h.jobs.Upsert(ctx, posting); err != nil {
			return nil, huma.Error500InternalServerError("failed to store job posting", err)
		}
	}

	resp := &UpsertJobsOutput{}
	resp.Body.Status = "success"
	resp.Body.Message = "job postings saved"
	return resp, nil
}
