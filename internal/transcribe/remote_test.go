package transcribe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func wavFixture(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "answer.wav")
	if err := os.WriteFile(p, []byte("RIFF....WAVE"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRemoteTranscribe(t *testing.T) {
	var gotAuth, gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("file part missing: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "  I used transfer learning.  "})
	}))
	defer srv.Close()

	tr := NewRemote(srv.URL, "whisper-large-v3-turbo", "gsk_test")
	text, err := tr.Transcribe(context.Background(), wavFixture(t))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "I used transfer learning." {
		t.Errorf("text = %q", text)
	}
	if gotAuth != "Bearer gsk_test" {
		t.Errorf("auth = %q", gotAuth)
	}
	if gotModel != "whisper-large-v3-turbo" {
		t.Errorf("model = %q", gotModel)
	}
}

func TestRemoteTranscribeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tr := NewRemote(srv.URL, "whisper-large-v3-turbo", "gsk_test")
	if _, err := tr.Transcribe(context.Background(), wavFixture(t)); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestRemoteTranscribeEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"text": ""})
	}))
	defer srv.Close()

	tr := NewRemote(srv.URL, "whisper-large-v3-turbo", "gsk_test")
	text, err := tr.Transcribe(context.Background(), wavFixture(t))
	if err != nil {
		t.Fatalf("empty transcript must not error: %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}
