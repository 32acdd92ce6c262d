package ffmpeg

import "fmt"

// NormalizationError indicates the normalize invocation for one chunk
// returned a non-zero exit status. The whole merge job is aborted.
type NormalizationError struct {
	Chunk  string
	Stderr string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("failed to normalize %s: %s", e.Chunk, e.Stderr)
}

// ConcatError indicates the concatenation invocation returned a non-zero
// exit status.
type ConcatError struct {
	Stderr string
}

func (e *ConcatError) Error() string {
	return fmt.Sprintf("concatenation failed: %s", e.Stderr)
}
