package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Local runs a whisper.cpp-style CLI against a model file on disk. Chosen
// over the cloud backend when a local model path is configured.
type Local struct {
	binary    string
	modelPath string
}

func NewLocal(binary, modelPath string) (*Local, error) {
	if binary == "" {
		binary = "whisper-cli"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("transcribe: %s not found in PATH: %w", binary, err)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("transcribe: model %s: %w", modelPath, err)
	}
	return &Local{binary: binary, modelPath: modelPath}, nil
}

func (l *Local) Transcribe(ctx context.Context, audioPath string) (string, error) {
	// --no-timestamps keeps stdout as plain text only.
	cmd := exec.CommandContext(ctx, l.binary,
		"--model", l.modelPath,
		"--language", "en",
		"--prompt", contextPrompt,
		"--no-timestamps",
		"--file", audioPath,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("transcribe: %s: %w: %s", l.binary, err, strings.TrimSpace(stderr.String()))
	}
	return strings.Join(strings.Fields(stdout.String()), " "), nil
}
