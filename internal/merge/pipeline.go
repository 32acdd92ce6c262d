package merge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/observability"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/repository"
)

// Stream-type folder tags; these flow into object keys and must stay stable
// for downstream consumers.
const (
	ScreenFolderType = "screen_uploads"
	CameraFolderType = "Camera_uploads"
)

// screenDirSuffix distinguishes a session's screen-capture directory from
// its camera directory.
const screenDirSuffix = "_screen"

// ObjectUploader publishes a merged file and returns its public URL. On
// success the local file is removed as part of the upload contract.
type ObjectUploader interface {
	Upload(ctx context.Context, localPath, sessionID, streamFolder string) (string, error)
}

// PipelineConfig holds the directory layout and wait policy for the
// request-triggered merge path.
type PipelineConfig struct {
	// CameraRoot is the root of per-session camera upload directories.
	CameraRoot string
	// ScreenRoot is the root of per-session screen upload directories.
	ScreenRoot string
	// FolderWaitAttempts bounds the poll for a late upload directory.
	FolderWaitAttempts int
	// FolderWaitDelay is the delay between polls.
	FolderWaitDelay time.Duration
}

// Pipeline runs the full merge-upload-persist workflow for one session:
// both streams are merged, published, and whichever URLs were obtained are
// recorded on the session's evaluation row.
type Pipeline struct {
	cfg      PipelineConfig
	orch     *Orchestrator
	uploader ObjectUploader
	evals    repository.EvaluationRepository
	logger   *slog.Logger
}

// NewPipeline creates a merge pipeline.
func NewPipeline(cfg PipelineConfig, orch *Orchestrator, uploader ObjectUploader, evals repository.EvaluationRepository) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		orch:     orch,
		uploader: uploader,
		evals:    evals,
		logger:   slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (p *Pipeline) WithLogger(logger *slog.Logger) *Pipeline {
	p.logger = logger
	return p
}

// Process merges and publishes both streams for a session. Stream failures
// are independent: a session may end up with only one of the two URLs. If
// neither stream produced a URL, no database write occurs.
func (p *Pipeline) Process(ctx context.Context, sessionID string) error {
	logger := observability.WithSession(p.logger, sessionID)

	done := observability.TimedOperation(ctx, logger, "merge_session")
	defer done()

	streams := []struct {
		inputDir   string
		folderType string
	}{
		{filepath.Join(p.cfg.ScreenRoot, sessionID+screenDirSuffix), ScreenFolderType},
		{filepath.Join(p.cfg.CameraRoot, sessionID), CameraFolderType},
	}

	var screenURL, cameraURL string

	for _, stream := range streams {
		url, err := p.processStream(ctx, sessionID, stream.inputDir, stream.folderType)
		if err != nil {
			observability.WithError(logger, err).Warn("stream not merged",
				slog.String("folder_type", stream.folderType),
			)
			continue
		}

		switch stream.folderType {
		case ScreenFolderType:
			screenURL = url
		case CameraFolderType:
			cameraURL = url
		}
	}

	if screenURL == "" && cameraURL == "" {
		logger.Info("no merged streams to record")
		return nil
	}

	if err := p.evals.SetUploadURLs(ctx, sessionID, screenURL, cameraURL); err != nil {
		return fmt.Errorf("recording upload URLs for session %s: %w", sessionID, err)
	}

	logger.Info("recorded merged stream URLs",
		slog.Bool("screen", screenURL != ""),
		slog.Bool("camera", cameraURL != ""),
	)
	return nil
}

// processStream merges and uploads one stream directory.
func (p *Pipeline) processStream(ctx context.Context, sessionID, inputDir, folderType string) (string, error) {
	if err := p.waitForFolder(ctx, inputDir); err != nil {
		return "", err
	}

	outputPath := filepath.Join(inputDir, fmt.Sprintf("final_%s.mp4", sessionID))

	msg, err := p.orch.Merge(ctx, inputDir, outputPath)
	if err != nil {
		return "", err
	}
	p.logger.Info("stream merged",
		slog.String("folder_type", folderType),
		slog.String("result", msg),
	)

	url, err := p.uploader.Upload(ctx, outputPath, sessionID, folderType)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", outputPath, err)
	}
	return url, nil
}

// waitForFolder polls for the upload directory, tolerating late-arriving
// upload completion.
func (p *Pipeline) waitForFolder(ctx context.Context, dir string) error {
	for attempt := 1; attempt <= p.cfg.FolderWaitAttempts; attempt++ {
		if _, err := os.Stat(dir); err == nil {
			return nil
		}

		if attempt == p.cfg.FolderWaitAttempts {
			break
		}

		p.logger.Debug("waiting for upload folder",
			slog.String("dir", dir),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", p.cfg.FolderWaitAttempts),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.cfg.FolderWaitDelay):
		}
	}
	return fmt.Errorf("%w: %s", ErrFolderNotReady, dir)
}
