package speech

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
	"time"
)

// AnalyzerClient is the HTTP-backed PauseDetector. It uploads the audio to
// an external acoustic-analysis service and reads back the pause count.
type AnalyzerClient struct {
	baseURL string
	c       *http.Client
}

func NewAnalyzerClient(baseURL string) *AnalyzerClient {
	return &AnalyzerClient{baseURL: baseURL, c: &http.Client{Timeout: 60 * time.Second}}
}

type pauseResp struct {
	LongPauses int `json:"long_pauses"`
}

func (a *AnalyzerClient) CountLongPauses(ctx context.Context, audioPath string) (int, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return 0, err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return 0, err
	}
	defer fd.Close()
	if _, err := io.Copy(fw, fd); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/pauses", &b)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := a.c.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("analyzer %s: %s", resp.Status, string(body))
	}

	var out pauseResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("analyzer decode: %w", err)
	}
	if out.LongPauses < 0 {
		return 0, fmt.Errorf("analyzer returned negative pause count %d", out.LongPauses)
	}
	return out.LongPauses, nil
}
