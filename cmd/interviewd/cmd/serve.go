package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/config"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/database"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/dispatch"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/ffmpeg"
	internalhttp "github.com/Utkarsh-shift/ai-interview-backend/internal/http"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/http/handlers"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/httpclient"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/merge"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/observability"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/repository"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/storage"
	"github.com/Utkarsh-shift/ai-interview-backend/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interviewd server",
	Long: `Start the interviewd HTTP server and background loops.

The server provides:
- REST API for triggering merges and managing candidate and job records
- Watchdog that picks up completed-but-unmerged session uploads
- Evaluation report delivery loop
- Health check endpoint and OpenAPI documentation at /docs`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "host to bind to (overrides config)")
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
}

// applyFlagOverrides lets explicitly-set CLI flags win over config and
// environment values.
func applyFlagOverrides(cfg *config.Config, flags, persistent *pflag.FlagSet) {
	if flags.Changed("host") {
		cfg.Server.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Server.Port, _ = flags.GetInt("port")
	}
	if persistent.Changed("log-level") {
		cfg.Logging.Level, _ = persistent.GetString("log-level")
	}
	if persistent.Changed("log-format") {
		cfg.Logging.Format, _ = persistent.GetString("log-format")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlagOverrides(cfg, cmd.Flags(), rootCmd.PersistentFlags())

	logger := observability.NewLogger(cfg.Logging)
	observability.SetDefault(logger)

	db, err := database.New(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	// Repositories
	evalRepo := repository.NewEvaluationRepository(db.DB)
	sessionRepo := repository.NewSessionBatchRepository(db.DB)
	batchRepo := repository.NewCandidateBatchRepository(db.DB)
	jobRepo := repository.NewJobPostingRepository(db.DB)
	proctorRepo := repository.NewProctoringRepository(db.DB)

	// Merge pipeline
	binaries, err := ffmpeg.DetectBinaries(cfg.FFmpeg)
	if err != nil {
		return fmt.Errorf("locating ffmpeg binaries: %w", err)
	}

	runner := ffmpeg.NewExecRunner()
	orchestrator := merge.NewOrchestrator(
		ffmpeg.NewProber(binaries.FFprobe, runner),
		ffmpeg.NewNormalizer(binaries.FFmpeg, runner),
		ffmpeg.NewConcatenator(binaries.FFmpeg, runner),
	).WithLogger(observability.WithComponent(logger, "merge"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	uploader, err := storage.NewS3Uploader(ctx, cfg.Upload, logger)
	if err != nil {
		return fmt.Errorf("initializing uploader: %w", err)
	}

	pipeline := merge.NewPipeline(merge.PipelineConfig{
		CameraRoot:         cfg.Storage.CameraPath(),
		ScreenRoot:         cfg.Storage.ScreenPath(),
		FolderWaitAttempts: cfg.Merge.FolderWaitAttempts,
		FolderWaitDelay:    cfg.Merge.FolderWaitDelay,
	}, orchestrator, uploader, evalRepo).
		WithLogger(observability.WithComponent(logger, "pipeline"))

	pool := merge.NewPool(cfg.Merge.Workers, cfg.Merge.QueueSize).
		WithLogger(observability.WithComponent(logger, "pool"))
	if err := pool.Start(ctx); err != nil {
		return fmt.Errorf("starting merge pool: %w", err)
	}
	defer pool.Stop()

	watchdog, err := merge.NewWatchdog(cfg.Storage.CameraPath(), cfg.Storage.OutputPath(), cfg.Merge.WatchdogCron, orchestrator)
	if err != nil {
		return fmt.Errorf("initializing watchdog: %w", err)
	}
	watchdog.WithLogger(observability.WithComponent(logger, "watchdog"))
	if err := watchdog.Start(ctx); err != nil {
		return fmt.Errorf("starting watchdog: %w", err)
	}
	defer watchdog.Stop()

	// Report delivery
	clientCfg := httpclient.DefaultConfig()
	clientCfg.Timeout = cfg.Dispatch.HTTPTimeout
	clientCfg.Logger = observability.WithComponent(logger, "httpclient")
	client := httpclient.New(clientCfg)

	tokens := dispatch.NewTokenClient(client, cfg.Dispatch.TokenURL, cfg.Dispatch.Username, cfg.Dispatch.Password)

	dispatcher := dispatch.NewDispatcher(dispatch.Config{
		ReportURL:   cfg.Dispatch.ReportURL,
		CooldownMin: cfg.Dispatch.CooldownMin,
		CooldownMax: cfg.Dispatch.CooldownMax,
	}, dispatch.Repositories{
		Evaluations: evalRepo,
		Sessions:    sessionRepo,
		Batches:     batchRepo,
		Jobs:        jobRepo,
		Proctoring:  proctorRepo,
	}, tokens, client).
		WithLogger(observability.WithComponent(logger, "dispatch"))
	if err := dispatcher.Start(ctx); err != nil {
		return fmt.Errorf("starting dispatcher: %w", err)
	}
	defer dispatcher.Stop()

	// HTTP API
	server := internalhttp.NewServer(cfg.Server, logger, version.Version)

	healthHandler := handlers.NewHealthHandler(version.Version).WithDB(db)
	healthHandler.Register(server.API())

	mergeHandler := handlers.NewMergeHandler(pool, pipeline, observability.WithComponent(logger, "http"))
	mergeHandler.Register(server.API())

	batchHandler := handlers.NewBatchHandler(batchRepo)
	batchHandler.Register(server.API())

	candidateHandler := handlers.NewCandidateHandler(batchRepo, cfg.Server.PortalBaseURL)
	candidateHandler.Register(server.API())

	jobHandler := handlers.NewJobHandler(jobRepo)
	jobHandler.Register(server.API())

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		cancel()
	}()

	logger.Info("starting interviewd server",
		slog.String("address", cfg.Server.Address()),
		slog.String("version", version.Version),
	)

	return server.ListenAndServe(ctx)
}
