package merge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Utkarsh-shift/ai-interview-backend/internal/ffmpeg"
)

// fakeProber returns a fixed audio-presence answer and records the probed path.
type fakeProber struct {
	audio  bool
	probed string
}

func (f *fakeProber) HasAudio(ctx context.Context, path string) bool {
	f.probed = path
	return f.audio
}

// fakeNormalizer writes the temp file like the real tool would, optionally
// failing on a specific source chunk.
type fakeNormalizer struct {
	order  []string
	failOn string
}

func (f *fakeNormalizer) Normalize(ctx context.Context, chunkPath, outputPath string) error {
	if f.failOn != "" && filepath.Base(chunkPath) == f.failOn {
		return &ffmpeg.NormalizationError{Chunk: filepath.Base(chunkPath), Stderr: "encode error"}
	}
	f.order = append(f.order, filepath.Base(chunkPath))
	return os.WriteFile(outputPath, []byte("norm"), 0o644)
}

// fakeConcat writes the output file on success and records the invocation.
type fakeConcat struct {
	fail   bool
	inputs []string
	audio  bool
}

func (f *fakeConcat) Concat(ctx context.Context, inputs []string, audio bool, outputPath string) error {
	f.inputs = inputs
	f.audio = audio
	if f.fail {
		return &ffmpeg.ConcatError{Stderr: "concat error"}
	}
	return os.WriteFile(outputPath, []byte("merged"), 0o644)
}

func setupChunkDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		writeFile(t, dir, name)
	}
	return dir
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

func TestOrchestrator_Merge_Success(t *testing.T) {
	// Chunks deliberately created out of order, plus the marker.
	dir := setupChunkDir(t, "chunk0.mp4", "chunk2.mp4", "chunk1.mp4", "done.txt")
	out := filepath.Join(t.TempDir(), "user_42_merged.mp4")

	prober := &fakeProber{audio: false}
	norm := &fakeNormalizer{}
	concat := &fakeConcat{}
	orch := NewOrchestrator(prober, norm, concat)

	msg, err := orch.Merge(context.Background(), dir, out)
	require.NoError(t, err)
	assert.Contains(t, msg, out)

	// Ascending order, audio decided from the first chunk.
	assert.Equal(t, []string{"chunk0.mp4", "chunk1.mp4", "chunk2.mp4"}, norm.order)
	assert.Equal(t, filepath.Join(dir, "chunk0.mp4"), prober.probed)
	assert.False(t, concat.audio)

	// Originals, temps, and marker are all gone; only the output remains.
	assert.Empty(t, listDir(t, dir))
	_, statErr := os.Stat(out)
	assert.NoError(t, statErr)
}

func TestOrchestrator_Merge_AudioFlagFlowsToConcat(t *testing.T) {
	dir := setupChunkDir(t, "chunk0.mp4", "chunk1.mp4")
	out := filepath.Join(t.TempDir(), "merged.mp4")

	concat := &fakeConcat{}
	orch := NewOrchestrator(&fakeProber{audio: true}, &fakeNormalizer{}, concat)

	_, err := orch.Merge(context.Background(), dir, out)
	require.NoError(t, err)
	assert.True(t, concat.audio)
	assert.Len(t, concat.inputs, 2)
}

func TestOrchestrator_Merge_NoChunks(t *testing.T) {
	dir := setupChunkDir(t, "done.txt")
	out := filepath.Join(t.TempDir(), "merged.mp4")

	orch := NewOrchestrator(&fakeProber{}, &fakeNormalizer{}, &fakeConcat{})

	_, err := orch.Merge(context.Background(), dir, out)
	assert.ErrorIs(t, err, ErrNoChunks)

	// Filesystem untouched.
	assert.Equal(t, []string{"done.txt"}, listDir(t, dir))
}

func TestOrchestrator_Merge_NormalizationFailure(t *testing.T) {
	dir := setupChunkDir(t, "chunk0.mp4", "chunk1.mp4", "chunk2.mp4", "done.txt")
	out := filepath.Join(t.TempDir(), "merged.mp4")

	norm := &fakeNormalizer{failOn: "chunk2.mp4"}
	orch := NewOrchestrator(&fakeProber{}, norm, &fakeConcat{})

	_, err := orch.Merge(context.Background(), dir, out)
	require.Error(t, err)

	var normErr *ffmpeg.NormalizationError
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, "chunk2.mp4", normErr.Chunk)

	// Originals and marker survive the failure. The temps produced before
	// the failing chunk are left behind; the next pass overwrites them.
	remaining := listDir(t, dir)
	assert.Contains(t, remaining, "chunk0.mp4")
	assert.Contains(t, remaining, "chunk1.mp4")
	assert.Contains(t, remaining, "chunk2.mp4")
	assert.Contains(t, remaining, "done.txt")
	assert.Contains(t, remaining, "norm_0.mp4")
	assert.Contains(t, remaining, "norm_1.mp4")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestOrchestrator_Merge_ConcatFailure(t *testing.T) {
	dir := setupChunkDir(t, "chunk0.mp4", "chunk1.mp4", "done.txt")
	out := filepath.Join(t.TempDir(), "merged.mp4")

	orch := NewOrchestrator(&fakeProber{}, &fakeNormalizer{}, &fakeConcat{fail: true})

	_, err := orch.Merge(context.Background(), dir, out)
	require.Error(t, err)

	var concatErr *ffmpeg.ConcatError
	require.ErrorAs(t, err, &concatErr)

	// Temps deleted, originals and marker retained for inspection/retry.
	assert.ElementsMatch(t, []string{"chunk0.mp4", "chunk1.mp4", "done.txt"}, listDir(t, dir))
}

func TestOrchestrator_Merge_NoMarkerIsFine(t *testing.T) {
	dir := setupChunkDir(t, "chunk0.mp4")
	out := filepath.Join(t.TempDir(), "merged.mp4")

	orch := NewOrchestrator(&fakeProber{}, &fakeNormalizer{}, &fakeConcat{})

	_, err := orch.Merge(context.Background(), dir, out)
	require.NoError(t, err)
	assert.Empty(t, listDir(t, dir))
}
