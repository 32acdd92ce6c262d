package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// sessionDirPrefix marks per-session upload directories in the scan root.
const sessionDirPrefix = "user_"

// Watchdog periodically scans the upload root for completed-but-unmerged
// session directories and merges them. It backstops the request-triggered
// path: a directory whose marker exists but whose merged output does not is
// picked up on the next scan.
type Watchdog struct {
	mu sync.Mutex

	uploadRoot string
	outputRoot string
	orch       *Orchestrator
	schedule   cron.Schedule
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatchdog creates a watchdog scanning uploadRoot on the given
// seconds-precision cron expression, writing merged output under outputRoot.
func NewWatchdog(uploadRoot, outputRoot, cronExpr string, orch *Orchestrator) (*Watchdog, error) {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parsing watchdog cron expression %q: %w", cronExpr, err)
	}

	return &Watchdog{
		uploadRoot: uploadRoot,
		outputRoot: outputRoot,
		orch:       orch,
		schedule:   schedule,
		logger:     slog.Default(),
	}, nil
}

// WithLogger sets a custom logger.
func (w *Watchdog) WithLogger(logger *slog.Logger) *Watchdog {
	w.logger = logger
	return w
}

// Start begins the scan loop.
func (w *Watchdog) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ctx != nil {
		return fmt.Errorf("watchdog already started")
	}
	w.ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.loop()

	w.logger.Info("merge watchdog started",
		slog.String("upload_root", w.uploadRoot),
		slog.String("output_root", w.outputRoot),
	)
	return nil
}

// Stop cancels the loop and waits for it to exit.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()

	w.wg.Wait()
	w.logger.Info("merge watchdog stopped")
}

func (w *Watchdog) loop() {
	defer w.wg.Done()

	for {
		next := w.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-w.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			w.Scan(w.ctx)
		}
	}
}

// Scan runs one watchdog pass. Exported so a scan can be triggered directly.
// Any single-directory failure is logged and does not stop the pass.
func (w *Watchdog) Scan(ctx context.Context) {
	entries, err := os.ReadDir(w.uploadRoot)
	if err != nil {
		w.logger.Warn("reading upload root", slog.String("error", err.Error()))
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), sessionDirPrefix) {
			continue
		}

		inputDir := filepath.Join(w.uploadRoot, entry.Name())
		outputPath := filepath.Join(w.outputRoot, entry.Name()+"_merged.mp4")

		if !w.readyToMerge(inputDir, outputPath) {
			continue
		}

		msg, err := w.orch.Merge(ctx, inputDir, outputPath)
		switch {
		case errors.Is(err, ErrNoChunks):
			w.logger.Info("no chunks yet", slog.String("dir", inputDir))
		case err != nil:
			w.logger.Error("merge failed",
				slog.String("dir", inputDir),
				slog.String("error", err.Error()),
			)
		default:
			w.logger.Info("merge completed", slog.String("result", msg))
		}
	}
}

// readyToMerge applies the scan precondition: the completion marker exists
// and the merged output does not. The output-absence check makes rescans
// no-ops; it does not protect against two concurrent watchdog instances.
func (w *Watchdog) readyToMerge(inputDir, outputPath string) bool {
	if _, err := os.Stat(filepath.Join(inputDir, MarkerFileName)); err != nil {
		return false
	}
	if _, err := os.Stat(outputPath); err == nil {
		return false
	}
	return true
}
