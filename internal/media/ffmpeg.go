package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Processor shells out to ffmpeg/ffprobe for the container-level work the
// pipeline treats as opaque: audio extraction, remuxing, duration probing.
type Processor struct {
	ffmpeg  string
	ffprobe string
}

func NewProcessor() (*Processor, error) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("media: ffmpeg not found in PATH: %w", err)
	}
	ffprobe, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, fmt.Errorf("media: ffprobe not found in PATH: %w", err)
	}
	return &Processor{ffmpeg: ffmpeg, ffprobe: ffprobe}, nil
}

// ExtractAudio pulls a 16 kHz mono loudness-normalized WAV out of the
// uploaded video or audio file.
func (p *Processor) ExtractAudio(ctx context.Context, inputPath, outputPath string) error {
	args := extractAudioArgs(inputPath, outputPath)
	if err := p.run(ctx, p.ffmpeg, args); err != nil {
		return err
	}
	info, err := os.Stat(outputPath)
	if err != nil {
		return fmt.Errorf("media: extracted audio missing: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("media: extracted audio is empty: %s", outputPath)
	}
	return nil
}

// NormalizeContainer remuxes without re-encoding, moving the moov atom up
// front so the file is seekable while streaming.
func (p *Processor) NormalizeContainer(ctx context.Context, inputPath, outputPath string) error {
	return p.run(ctx, p.ffmpeg, normalizeContainerArgs(inputPath, outputPath))
}

// Duration probes the media duration in seconds. Probe failures yield zero
// rather than an error: downstream WPM math treats zero duration as "no
// rate available".
func (p *Processor) Duration(ctx context.Context, path string) float64 {
	cmd := exec.CommandContext(ctx, p.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

func (p *Processor) run(ctx context.Context, bin string, args []string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("media: %s: %w: %s", bin, err, lastLine(stderr.String()))
	}
	return nil
}

func extractAudioArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-af", "loudnorm=I=-16:TP=-1.5:LRA=11",
		outputPath,
	}
}

func normalizeContainerArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-c", "copy",
		"-movflags", "+faststart",
		outputPath,
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
