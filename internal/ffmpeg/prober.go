package ffmpeg

import (
	"context"
	"encoding/json"
	"time"
)

// ProbeResult contains the ffprobe output fields the pipeline needs.
type ProbeResult struct {
	Streams []ProbeStream `json:"streams"`
}

// ProbeStream contains per-stream information.
type ProbeStream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"` // video, audio, subtitle, data
}

// Prober inspects media containers via ffprobe.
type Prober struct {
	ffprobePath string
	runner      CommandRunner
	timeout     time.Duration
}

// NewProber creates a new media prober.
func NewProber(ffprobePath string, runner CommandRunner) *Prober {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Prober{
		ffprobePath: ffprobePath,
		runner:      runner,
		timeout:     30 * time.Second,
	}
}

// WithTimeout sets the probe timeout.
func (p *Prober) WithTimeout(timeout time.Duration) *Prober {
	p.timeout = timeout
	return p
}

// Probe probes a media file and returns stream information.
func (p *Prober) Probe(ctx context.Context, path string) (*ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	output, err := p.runner.Output(ctx, p.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		path,
	)
	if err != nil {
		return nil, err
	}

	var result ProbeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HasAudio reports whether the container has at least one audio stream.
// Unreadable containers are treated as silent.
func (p *Prober) HasAudio(ctx context.Context, path string) bool {
	result, err := p.Probe(ctx, path)
	if err != nil {
		return false
	}
	for _, stream := range result.Streams {
		if stream.CodecType == "audio" {
			return true
		}
	}
	return false
}
