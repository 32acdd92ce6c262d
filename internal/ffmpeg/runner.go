package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner abstracts external tool execution so pipeline logic can be
// tested without a real ffmpeg installation.
type CommandRunner interface {
	// Run executes the command, discarding stdout and returning captured
	// stderr along with the exit error, if any.
	Run(ctx context.Context, name string, args ...string) (stderr []byte, err error)
	// Output executes the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

var _ CommandRunner = (*ExecRunner)(nil)

// NewExecRunner creates a CommandRunner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and captures stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// Output executes the command and returns its stdout.
func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
