package ffmpeg

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and plays back scripted results.
type fakeRunner struct {
	calls   [][]string
	runErr  error
	stderr  []byte
	output  []byte
	outErr  error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.stderr, f.runErr
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.outErr
}

func TestBuildFilterGraph(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		audio bool
		want  string
	}{
		{"single silent", 1, false, "[0:v:0]concat=n=1:v=1:a=0[outv]"},
		{"single with audio", 1, true, "[0:v:0][0:a:0]concat=n=1:v=1:a=1[outv][outa]"},
		{"three silent", 3, false, "[0:v:0][1:v:0][2:v:0]concat=n=3:v=1:a=0[outv]"},
		{"two with audio", 2, true, "[0:v:0][0:a:0][1:v:0][1:a:0]concat=n=2:v=1:a=1[outv][outa]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildFilterGraph(tt.n, tt.audio))
		})
	}
}

func TestBuildConcatArgs(t *testing.T) {
	args := buildConcatArgs([]string{"norm_0.mp4", "norm_1.mp4"}, false, "out.mp4")

	assert.Equal(t, []string{
		"-i", "norm_0.mp4",
		"-i", "norm_1.mp4",
		"-filter_complex", "[0:v:0][1:v:0]concat=n=2:v=1:a=0[outv]",
		"-map", "[outv]",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-r", "30",
		"-y",
		"out.mp4",
	}, args)
}

func TestBuildConcatArgs_Audio(t *testing.T) {
	args := buildConcatArgs([]string{"a.mp4"}, true, "out.mp4")
	assert.Contains(t, args, "[outa]")

	// [outa] must be mapped right after [outv].
	for i, arg := range args {
		if arg == "[outv]" {
			require.Greater(t, len(args), i+2)
			assert.Equal(t, "-map", args[i+1])
			assert.Equal(t, "[outa]", args[i+2])
		}
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	runner := &fakeRunner{}
	n := NewNormalizer("/usr/bin/ffmpeg", runner)

	require.NoError(t, n.Normalize(context.Background(), "/in/chunk3.mp4", "/in/norm_3.mp4"))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"/usr/bin/ffmpeg",
		"-y", "-i", "/in/chunk3.mp4",
		"-vf", "scale=1600:900,fps=15",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-preset", "ultrafast",
		"/in/norm_3.mp4",
	}, runner.calls[0])
}

func TestNormalizer_Normalize_Error(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("exit status 1"), stderr: []byte("bad input")}
	n := NewNormalizer("ffmpeg", runner)

	err := n.Normalize(context.Background(), "/in/chunk3.mp4", "/in/norm_3.mp4")
	require.Error(t, err)

	var normErr *NormalizationError
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, "chunk3.mp4", normErr.Chunk)
	assert.Equal(t, "bad input", normErr.Stderr)
	assert.Contains(t, err.Error(), "chunk3.mp4")
}

func TestConcatenator_Concat_Error(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("exit status 1"), stderr: []byte("filter mismatch")}
	c := NewConcatenator("ffmpeg", runner)

	err := c.Concat(context.Background(), []string{"a.mp4", "b.mp4"}, true, "out.mp4")
	require.Error(t, err)

	var concatErr *ConcatError
	require.ErrorAs(t, err, &concatErr)
	assert.Equal(t, "filter mismatch", concatErr.Stderr)
}

func TestProber_HasAudio(t *testing.T) {
	runner := &fakeRunner{output: []byte(`{"streams":[{"index":0,"codec_type":"video"},{"index":1,"codec_type":"audio"}]}`)}
	p := NewProber("ffprobe", runner)

	assert.True(t, p.HasAudio(context.Background(), "chunk0.mp4"))

	runner.output = []byte(`{"streams":[{"index":0,"codec_type":"video"}]}`)
	assert.False(t, p.HasAudio(context.Background(), "chunk0.mp4"))
}

func TestProber_HasAudio_ProbeFailure(t *testing.T) {
	// An unreadable container is treated as silent, not as an error.
	runner := &fakeRunner{outErr: errors.New("exit status 1")}
	p := NewProber("ffprobe", runner)

	assert.False(t, p.HasAudio(context.Background(), "broken.mp4"))
}
