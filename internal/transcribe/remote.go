package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Remote transcribes through an OpenAI-compatible audio endpoint (Groq's
// hosted whisper in the reference deployment).
type Remote struct {
	baseURL string
	model   string
	apiKey  string
	c       *http.Client
}

func NewRemote(baseURL, model, apiKey string) *Remote {
	return &Remote{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		c:       &http.Client{Timeout: 120 * time.Second},
	}
}

type transcriptionResp struct {
	Text string `json:"text"`
}

func (r *Remote) Transcribe(ctx context.Context, audioPath string) (string, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer fd.Close()
	if _, err := io.Copy(fw, fd); err != nil {
		return "", err
	}
	for k, v := range map[string]string{
		"model":       r.model,
		"language":    "en",
		"prompt":      contextPrompt,
		"temperature": "0",
	} {
		if err := w.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/audio/transcriptions", &b)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcribe %s: %s", resp.Status, string(body))
	}

	var out transcriptionResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("transcribe decode: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
