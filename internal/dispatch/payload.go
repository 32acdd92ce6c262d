package dispatch

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/repository"
)

// Proctoring category labels. The downstream consumer matches on these exact
// strings, including the "proctering" spelling in the JSON field names, so
// they must not be normalized.
const (
	proctorTabSwitch      = "Tab Switch"
	proctorFullscreen     = "Exited Full Screen"
	proctorMultipleFaces  = "Multiple Face Detection"
	proctorCellphone      = "cellphone"
	proctorDualMonitor    = "Dual monitor"
	proctorNoFaceDetected = "no face detected"
)

// SkillEntry is one skill record in the report.
type SkillEntry struct {
	SkillTitle string `json:"skill_title"`
}

// RecordingLink is one published recording reference.
type RecordingLink struct {
	ID   string `json:"id"`
	Link string `json:"link"`
}

// ProctoringEntry is one proctoring counter in the report.
type ProctoringEntry struct {
	Title string `json:"proctering_title"`
	Count int64  `json:"proctering_count"`
}

// EvaluationReport is the payload delivered to the external report endpoint.
// It is built fresh for each delivery attempt and has no identity of its own.
type EvaluationReport struct {
	ServerURL      string            `json:"server_url"`
	BatchID        string            `json:"batch_id"`
	SessionID      string            `json:"openai_id"`
	IsAgent        string            `json:"is_agent"`
	Links          []RecordingLink   `json:"links"`
	Skills         []SkillEntry      `json:"skill"`
	FocusSkills    []SkillEntry      `json:"focus_skill"`
	ProctoringData []ProctoringEntry `json:"proctoring_data"`
}

// ReportInputs carries the source facts an EvaluationReport is built from.
type ReportInputs struct {
	SessionID       string
	BatchID         string
	WebhookURL      string
	CameraURL       string
	TechnicalSkills string
	FocusSkills     string
	Counts          repository.ProctorCounts
	Frames          repository.FrameAggregates
}

// BuildReport assembles the delivery payload. Each call generates a fresh
// correlation ID for the recording link. The dual-monitor and no-face
// categories are always reported as zero; nothing upstream measures them yet.
func BuildReport(in ReportInputs) *EvaluationReport {
	return &EvaluationReport{
		ServerURL: in.WebhookURL,
		BatchID:   in.BatchID,
		SessionID: in.SessionID,
		IsAgent:   "1",
		Links: []RecordingLink{
			{ID: uuid.NewString(), Link: in.CameraURL},
		},
		Skills:      splitSkills(in.TechnicalSkills),
		FocusSkills: splitSkills(in.FocusSkills),
		ProctoringData: []ProctoringEntry{
			{Title: proctorTabSwitch, Count: int64(in.Counts.TabSwitches)},
			{Title: proctorFullscreen, Count: int64(in.Counts.FullscreenExits)},
			{Title: proctorMultipleFaces, Count: in.Frames.MultiPersonFrames},
			{Title: proctorCellphone, Count: in.Frames.CellPhoneFrames},
			{Title: proctorDualMonitor, Count: 0},
			{Title: proctorNoFaceDetected, Count: 0},
		},
	}
}

// splitSkills expands a comma-separated skill string into discrete records,
// dropping empty segments.
func splitSkills(raw string) []SkillEntry {
	entries := []SkillEntry{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		entries = append(entries, SkillEntry{SkillTitle: part})
	}
	return entries
}
