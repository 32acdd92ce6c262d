// Package dispatch delivers evaluation reports for finished interview
// sessions to an external endpoint and tracks delivery state per session.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/httpclient"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/models"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/repository"
)

// Config holds dispatcher settings.
type Config struct {
	// ReportURL is the endpoint evaluation reports are POSTed to.
	ReportURL string

	// CooldownMin/CooldownMax bound the randomized sleep between cycles.
	// Each cycle draws a fresh delay so dispatchers never align into a
	// fixed cadence with other periodic jobs.
	CooldownMin time.Duration
	CooldownMax time.Duration
}

// Repositories bundles the data access the dispatcher reads per cycle.
type Repositories struct {
	Evaluations EvaluationReader
	Sessions    repository.SessionBatchRepository
	Batches     repository.CandidateBatchRepository
	Jobs        repository.JobPostingRepository
	Proctoring  repository.ProctoringRepository
}

// EvaluationReader is the evaluation access the dispatcher needs.
type EvaluationReader interface {
	GetBySessionID(ctx context.Context, sessionID string) (*models.Evaluation, error)
	GetOldestPending(ctx context.Context) (*models.Evaluation, error)
	UpdateStatus(ctx context.Context, sessionID string, status models.EvaluationStatus) error
}

// Dispatcher runs the periodic delivery loop. One cycle selects at most one
// pending session, so outbound calls to the report endpoint stay serialized.
type Dispatcher struct {
	mu sync.Mutex

	cfg    Config
	repos  Repositories
	tokens TokenProvider
	client *httpclient.Client
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher. The client is used for report delivery;
// token fetches go through the TokenProvider.
func NewDispatcher(cfg Config, repos Repositories, tokens TokenProvider, client *httpclient.Client) *Dispatcher {
	return &Dispatcher{
		cfg:    cfg,
		repos:  repos,
		tokens: tokens,
		client: client,
		logger: slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (d *Dispatcher) WithLogger(logger *slog.Logger) *Dispatcher {
	d.logger = logger
	return d
}

// Start begins the delivery loop.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctx != nil {
		return fmt.Errorf("dispatcher already started")
	}
	d.ctx, d.cancel = context.WithCancel(ctx)

	d.wg.Add(1)
	go d.loop()

	d.logger.Info("evaluation dispatcher started",
		slog.String("report_url", d.cfg.ReportURL),
	)
	return nil
}

// Stop cancels the loop and waits for it to exit.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()

	d.wg.Wait()
	d.logger.Info("evaluation dispatcher stopped")
}

func (d *Dispatcher) loop() {
	defer d.wg.Done()

	for {
		if err := d.RunCycle(d.ctx); err != nil {
			d.logger.Error("dispatch cycle failed", slog.String("error", err.Error()))
		}

		delay := d.cooldown()
		d.logger.Debug("dispatch cooldown", slog.Duration("delay", delay))

		timer := time.NewTimer(delay)
		select {
		case <-d.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// cooldown draws a uniformly random delay from [CooldownMin, CooldownMax].
func (d *Dispatcher) cooldown() time.Duration {
	span := d.cfg.CooldownMax - d.cfg.CooldownMin
	if span <= 0 {
		return d.cfg.CooldownMin
	}
	return d.cfg.CooldownMin + rand.N(span+1)
}

// RunCycle executes one dispatch cycle: select the oldest pending session,
// gather its report data, deliver, and record the outcome. A session that
// cannot be resolved yet is left PENDING and retried on a later cycle.
// Exported so a cycle can be triggered directly.
func (d *Dispatcher) RunCycle(ctx context.Context) error {
	pending, err := d.repos.Evaluations.GetOldestPending(ctx)
	if err != nil {
		return fmt.Errorf("selecting pending evaluation: %w", err)
	}
	if pending == nil {
		d.logger.Debug("no pending evaluations")
		return nil
	}

	logger := d.logger.With(slog.String("session_id", pending.SessionID))
	logger.Info("dispatching evaluation report")

	// Re-check under the freshest read; the status field is the only guard
	// against a concurrent writer having claimed this session.
	current, err := d.repos.Evaluations.GetBySessionID(ctx, pending.SessionID)
	if err != nil {
		return fmt.Errorf("re-reading evaluation: %w", err)
	}
	if current == nil || !current.IsPending() {
		logger.Info("session no longer pending, skipping")
		return nil
	}

	link, err := d.repos.Sessions.GetBySessionID(ctx, pending.SessionID)
	if err != nil {
		return fmt.Errorf("resolving session batch: %w", err)
	}
	if link == nil || link.BatchID == "" {
		logger.Warn("no batch mapping for session, retrying next cycle")
		return nil
	}

	inputs, ok, err := d.gatherReportInputs(ctx, current, link.BatchID, logger)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	report := BuildReport(inputs)

	token, err := d.tokens.Token(ctx)
	if err != nil {
		// Delivery still proceeds unauthenticated; the endpoint decides.
		logger.Warn("token fetch failed, delivering without credential",
			slog.String("error", err.Error()))
		token = ""
	}

	status, err := d.deliver(ctx, report, token)
	if err != nil {
		return fmt.Errorf("delivering report: %w", err)
	}

	if err := d.repos.Evaluations.UpdateStatus(ctx, pending.SessionID, status); err != nil {
		return fmt.Errorf("updating evaluation status: %w", err)
	}

	logger.Info("evaluation report dispatched", slog.String("status", string(status)))
	return nil
}

// gatherReportInputs resolves the cross-entity facts the report is built
// from. The second return is false when a required fact is missing and the
// cycle should be abandoned without a status change.
func (d *Dispatcher) gatherReportInputs(ctx context.Context, eval *models.Evaluation, batchID string, logger *slog.Logger) (ReportInputs, bool, error) {
	batch, err := d.repos.Batches.GetByBatchID(ctx, batchID)
	if err != nil {
		return ReportInputs{}, false, fmt.Errorf("resolving candidate batch: %w", err)
	}
	if batch == nil || batch.JobID == "" {
		logger.Warn("no job mapping for batch, retrying next cycle",
			slog.String("batch_id", batchID))
		return ReportInputs{}, false, nil
	}

	job, err := d.repos.Jobs.GetByJobID(ctx, batch.JobID)
	if err != nil {
		return ReportInputs{}, false, fmt.Errorf("resolving job posting: %w", err)
	}

	if eval.CameraURL == "" {
		logger.Warn("no camera recording published yet, retrying next cycle")
		return ReportInputs{}, false, nil
	}

	counts, err := d.repos.Proctoring.LatestCounts(ctx, eval.SessionID)
	if err != nil {
		return ReportInputs{}, false, fmt.Errorf("reading proctor counts: %w", err)
	}
	frames, err := d.repos.Proctoring.Aggregates(ctx, eval.SessionID)
	if err != nil {
		return ReportInputs{}, false, fmt.Errorf("reading frame aggregates: %w", err)
	}

	inputs := ReportInputs{
		SessionID: eval.SessionID,
		BatchID:   batchID,
		CameraURL: eval.CameraURL,
		Counts:    counts,
		Frames:    frames,
	}
	if job != nil {
		inputs.WebhookURL = job.WebhookURL
		inputs.TechnicalSkills = job.TechnicalSkills
		inputs.FocusSkills = job.FocusSkills
	}
	return inputs, true, nil
}

// deliver POSTs the report and maps the HTTP outcome to a delivery status.
func (d *Dispatcher) deliver(ctx context.Context, report *EvaluationReport, token string) (models.EvaluationStatus, error) {
	body, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.ReportURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// The report gets exactly one attempt per cycle. Every final status
	// code, including 5xx, must reach the mapping below; status-based
	// retries would turn a rejection into a transport error and leave the
	// session PENDING forever.
	resp, err := d.client.Do(req, httpclient.WithoutStatusRetry())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated:
		return models.EvaluationStatusProcessing, nil
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return models.EvaluationStatusOneTimeSend, nil
	default:
		// Only a plain 200 lands here.
		return models.EvaluationStatusFailed, nil
	}
}
