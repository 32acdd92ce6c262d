package handlers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/repository"
)

// CandidateHandler handles candidate registration endpoints.
type CandidateHandler struct {
	batches       repository.CandidateBatchRepository
	portalBaseURL string
}

// NewCandidateHandler creates a new candidate handler. Upsert responses
// redirect candidates to the portal at portalBaseURL.
func NewCandidateHandler(batches repository.CandidateBatchRepository, portalBaseURL string) *CandidateHandler {
	return &CandidateHandler{
		batches:       batches,
		portalBaseURL: portalBaseURL,
	}
}

// CandidateRequest is the candidate batch record accepted by the API. Field
// names mirror the stored record, including the "certfication" spelling the
// existing clients send.
type CandidateRequest struct {
	BatchID          string `json:"batch_id" minLength:"1" doc:"Candidate batch identifier"`
	StudentName      string `json:"student_name,omitempty"`
	Education        string `json:"education,omitempty"`
	Experience       string `json:"student_experience,omitempty"`
	Certifications   string `json:"certfication,omitempty"`
	Skills           string `json:"skills,omitempty"`
	Projects         string `json:"projects,omitempty"`
	SelectedLanguage string `json:"selected_language,omitempty"`
	Agent            string `json:"agent,omitempty"`
	JobID            string `json:"job_id,omitempty"`
	WebhookURL       string `json:"webhook_url,omitempty"`
}

// UpsertCandidateInput is the input for the candidate upsert endpoint.
type UpsertCandidateInput struct {
	Body CandidateRequest
}

// UpsertCandidateOutput is the output for the candidate upsert endpoint.
type UpsertCandidateOutput struct {
	Body struct {
		Status      string `json:"status"`
		Message     string `json:"message"`
		RedirectURL string `json:"redirect_url"`
	}
}

// DeleteCandidatesInput is the input for the bulk candidate delete endpoint.
type DeleteCandidatesInput struct {
	Body struct {
		Array []struct {
			BatchID string `json:"batch_id"`
		} `json:"array" minItems:"1" doc:"Batch IDs to delete"`
	}
}

// DeleteCandidatesOutput is the output for the bulk candidate delete endpoint.
type DeleteCandidatesOutput struct {
	Body struct {
		Status           string   `json:"status"`
		DeletedBatchIDs  []string `json:"deleted_batch_ids"`
		NotFoundBatchIDs []string `json:"not_found_batch_ids"`
	}
}

// Register registers the candidate routes with the API.
func (h *CandidateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "upsertCandidate",
		Method:      "PUT",
		Path:        "/api/v1/candidates",
		Summary:     "Upsert candidate data",
		Description: "Creates or updates a candidate batch record and returns the portal redirect URL",
		Tags:        []string{"Candidates"},
	}, h.Upsert)

	huma.Register(api, huma.Operation{
		OperationID: "deleteCandidates",
		Method:      "DELETE",
		Path:        "/api/v1/candidates",
		Summary:     "Delete candidate data",
		Description: "Deletes candidate batch records by batch ID",
		Tags:        []string{"Candidates"},
	}, h.Delete)
}

// Upsert creates or updates the candidate record keyed by batch ID.
func (h *CandidateHandler) Upsert(ctx context.Context, input *UpsertCandidateInput) (*UpsertCandidateOutput, error) {
	record := &models.CandidateBatch{
		BatchID:          input.Body.BatchID,
		StudentName:      input.Body.StudentName,
		Education:        input.Body.Education,
		Experience:       input.Body.Experience,
		Certifications:   input.Body.Certifications,
		Skills:           input.Body.Skills,
		Projects:         input.Body.Projects,
		SelectedLanguage: input.Body.SelectedLanguage,
		Agent:            input.Body.Agent,
		JobID:            input.Body.JobID,
		WebhookURL:       input.Body.WebhookURL,
	}

	if err := h.batches.Upsert(ctx, record); err != nil {
		return nil, huma.Error500InternalServerError("failed to store candidate data", err)
	}

	resp := &UpsertCandidateOutput{}
	resp.Body.Status = "success"
	resp.Body.Message = "candidate data saved"
	resp.Body.RedirectURL = fmt.Sprintf("%s/?batch_id=%s&job_id=%s",
		h.portalBaseURL, url.QueryEscape(record.BatchID), url.QueryEscape(record.JobID))
	return resp, nil
}

// Delete removes candidate records for each requested batch ID, reporting
// which IDs existed and which did not.
func (h *CandidateHandler) Delete(ctx context.Context, input *DeleteCandidatesInput) (*DeleteCandidatesOutput, error) {
	deleted := []string{}
	notFound := []string{}

	for _, item := range input.Body.Array {
		if item.BatchID == "" {
			continue
		}
		count, err := h.batches.DeleteByBatchID(ctx, item.BatchID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to delete candidate data", err)
		}
		if count > 0 {
			deleted = append(deleted, item.BatchID)
		} else {
			notFound = append(notFound, item.BatchID)
		}
	}

	resp := &DeleteCandidatesOutput{}
	resp.Body.Status = "success"
	resp.Body.DeletedBatchIDs = deleted
	resp.Body.NotFoundBatchIDs = notFound
	return resp, nil
}
