package ffmpeg

import (
	"context"
	"fmt"
	"strings"
)

// outputFrameRate is the fixed frame rate of the merged recording.
const outputFrameRate = "30"

// Concatenator joins normalized chunks into a single output file with one
// external tool invocation.
type Concatenator struct {
	ffmpegPath string
	runner     CommandRunner
}

// NewConcatenator creates a new chunk concatenator.
func NewConcatenator(ffmpegPath string, runner CommandRunner) *Concatenator {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Concatenator{ffmpegPath: ffmpegPath, runner: runner}
}

// Concat merges the normalized inputs, in order, into outputPath. The audio
// flag selects whether each input's audio stream participates in the filter
// graph; it must reflect the inputs uniformly.
func (c *Concatenator) Concat(ctx context.Context, inputs []string, audio bool, outputPath string) error {
	args := buildConcatArgs(inputs, audio, outputPath)

	stderr, err := c.runner.Run(ctx, c.ffmpegPath, args...)
	if err != nil {
		return &ConcatError{Stderr: string(stderr)}
	}
	return nil
}

// buildConcatArgs assembles the full ffmpeg argument list for one merge.
func buildConcatArgs(inputs []string, audio bool, outputPath string) []string {
	args := make([]string, 0, 2*len(inputs)+16)
	for _, input := range inputs {
		args = append(args, "-i", input)
	}

	args = append(args, "-filter_complex", buildFilterGraph(len(inputs), audio))
	args = append(args, "-map", "[outv]")
	if audio {
		args = append(args, "-map", "[outa]")
	}

	args = append(args,
		"-c:v", videoCodec,
		"-pix_fmt", pixelFormat,
		"-r", outputFrameRate,
		"-y",
		outputPath,
	)
	return args
}

// buildFilterGraph constructs the concat filter expression for n inputs,
// e.g. "[0:v:0][0:a:0][1:v:0][1:a:0]concat=n=2:v=1:a=1[outv][outa]".
func buildFilterGraph(n int, audio bool) string {
	var sb strings.Builder
	for idx := 0; idx < n; idx++ {
		if audio {
			fmt.Fprintf(&sb, "[%d:v:0][%d:a:0]", idx, idx)
		} else {
			fmt.Fprintf(&sb, "[%d:v:0]", idx)
		}
	}

	fmt.Fprintf(&sb, "concat=n=%d:v=1", n)
	if audio {
		sb.WriteString(":a=1[outv][outa]")
	} else {
		sb.WriteString(":a=0[outv]")
	}
	return sb.String()
}
