// Package ffmpeg provides FFmpeg/FFprobe binary detection and the external
// transcode invocations used by the chunk-merge pipeline.
package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/config"
)

// Binaries holds resolved paths to the external tools.
type Binaries struct {
	FFmpeg  string
	FFprobe string
}

// DetectBinaries resolves the ffmpeg and ffprobe binaries. Explicit paths in
// the configuration win; otherwise the current directory and PATH are
// searched.
func DetectBinaries(cfg config.FFmpegConfig) (Binaries, error) {
	ffmpegPath, err := findBinary("ffmpeg", cfg.BinaryPath)
	if err != nil {
		return Binaries{}, err
	}
	ffprobePath, err := findBinary("ffprobe", cfg.ProbePath)
	if err != nil {
		return Binaries{}, err
	}
	return Binaries{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

// findBinary searches for an executable binary by name.
// Search order:
//  1. Explicit configured path (if non-empty)
//  2. ./name (current directory, useful for development)
//  3. name on PATH (via exec.LookPath)
func findBinary(name, configured string) (string, error) {
	if configured != "" {
		if isExecutable(configured) {
			return configured, nil
		}
		return "", fmt.Errorf("configured %s path %q is not executable", name, configured)
	}

	localPath := "./" + name
	if isExecutable(localPath) {
		return localPath, nil
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("binary %s not found", name)
}

// isExecutable checks if a file exists and is executable by the current user.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}
