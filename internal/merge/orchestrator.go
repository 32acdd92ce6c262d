package merge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// AudioProber decides whether a chunk carries an audio stream.
type AudioProber interface {
	HasAudio(ctx context.Context, path string) bool
}

// Normalizer re-encodes a chunk to the common merge format.
type Normalizer interface {
	Normalize(ctx context.Context, chunkPath, outputPath string) error
}

// Concatenator joins normalized chunks into one output file.
type Concatenator interface {
	Concat(ctx context.Context, inputs []string, audio bool, outputPath string) error
}

// Orchestrator runs one merge job end to end: resolve the chunk set,
// normalize every chunk, concatenate, and clean up.
type Orchestrator struct {
	prober AudioProber
	norm   Normalizer
	concat Concatenator
	logger *slog.Logger
}

// NewOrchestrator creates a merge orchestrator.
func NewOrchestrator(prober AudioProber, norm Normalizer, concat Concatenator) *Orchestrator {
	return &Orchestrator{
		prober: prober,
		norm:   norm,
		concat: concat,
		logger: slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (o *Orchestrator) WithLogger(logger *slog.Logger) *Orchestrator {
	o.logger = logger
	return o
}

// Merge merges the chunk set in inputDir into outputPath. On success all
// original chunks and the completion marker are removed and a message naming
// the output path is returned.
//
// Failure semantics: a normalization failure aborts immediately and leaves
// any already-written temp files in place (the next watchdog pass overwrites
// them, ffmpeg runs with -y). A concatenation failure removes the temp files
// but keeps the original chunks and marker so the job can be inspected and
// retried.
func (o *Orchestrator) Merge(ctx context.Context, inputDir, outputPath string) (string, error) {
	chunks, err := ResolveChunkSet(inputDir)
	if err != nil {
		return "", err
	}

	o.logger.Info("merging chunk set",
		slog.String("input_dir", inputDir),
		slog.String("output", outputPath),
		slog.Int("chunks", len(chunks)),
	)

	// Audio presence is decided from the first chunk and applied to the
	// whole job; recorder output is uniform per stream.
	audio := o.prober.HasAudio(ctx, chunks[0])

	normalized := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		normPath := filepath.Join(inputDir, fmt.Sprintf("norm_%d.mp4", i))
		if err := o.norm.Normalize(ctx, chunk, normPath); err != nil {
			return "", err
		}
		normalized = append(normalized, normPath)
	}

	concatErr := o.concat.Concat(ctx, normalized, audio, outputPath)

	// Temp files go regardless of the concat outcome.
	for _, file := range normalized {
		if err := os.Remove(file); err != nil {
			o.logger.Warn("removing normalized temp file",
				slog.String("file", file),
				slog.String("error", err.Error()),
			)
		}
	}

	if concatErr != nil {
		return "", concatErr
	}

	for _, chunk := range chunks {
		if err := os.Remove(chunk); err != nil {
			o.logger.Warn("removing original chunk",
				slog.String("file", chunk),
				slog.String("error", err.Error()),
			)
		}
	}

	marker := filepath.Join(inputDir, MarkerFileName)
	if _, err := os.Stat(marker); err == nil {
		if err := os.Remove(marker); err != nil {
			o.logger.Warn("removing completion marker",
				slog.String("file", marker),
				slog.String("error", err.Error()),
			)
		}
	}

	return fmt.Sprintf("merged successfully to %s", outputPath), nil
}
