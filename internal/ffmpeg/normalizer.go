package ffmpeg

import (
	"context"
	"path/filepath"
)

// Normalization target: every chunk is re-encoded to the same resolution,
// frame rate, codec, and pixel format so the concat filter never sees
// heterogeneous inputs.
const (
	normalizeFilter = "scale=1600:900,fps=15"
	videoCodec      = "libx264"
	pixelFormat     = "yuv420p"
	encodePreset    = "ultrafast"
)

// Normalizer re-encodes chunks to the common merge format.
type Normalizer struct {
	ffmpegPath string
	runner     CommandRunner
}

// NewNormalizer creates a new chunk normalizer.
func NewNormalizer(ffmpegPath string, runner CommandRunner) *Normalizer {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Normalizer{ffmpegPath: ffmpegPath, runner: runner}
}

// Normalize re-encodes one chunk to outputPath. A non-zero tool exit aborts
// the whole merge job via NormalizationError.
func (n *Normalizer) Normalize(ctx context.Context, chunkPath, outputPath string) error {
	args := []string{
		"-y", "-i", chunkPath,
		"-vf", normalizeFilter,
		"-c:v", videoCodec,
		"-pix_fmt", pixelFormat,
		"-preset", encodePreset,
		outputPath,
	}

	stderr, err := n.runner.Run(ctx, n.ffmpegPath, args...)
	if err != nil {
		return &NormalizationError{
			Chunk:  filepath.Base(chunkPath),
			Stderr: string(stderr),
		}
	}
	return nil
}
