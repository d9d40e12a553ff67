package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type singleBlobStore struct {
	key  string
	data string
}

func (s *singleBlobStore) Put(key string, r io.Reader) (string, error) { return key, nil }

func (s *singleBlobStore) Get(key string) (io.ReadCloser, error) {
	if key != s.key {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(strings.NewReader(s.data)), nil
}

func (s *singleBlobStore) PathOf(key string) (string, error) { return "/blobs/" + key, nil }

func TestMediaPlaybackContentType(t *testing.T) {
	bs := &singleBlobStore{key: "sessions/s1/q1/answer.mp4", data: "video bytes"}
	router := chi.NewRouter()
	router.Route("/media", func(mr chi.Router) { MountMedia(mr, bs) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/sessions/s1/q1/answer.mp4", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "video/mp4" {
		t.Errorf("Content-Type = %q, want video/mp4", ct)
	}
	if rec.Body.String() != "video bytes" {
		t.Errorf("body = %q", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/sessions/s1/q1/missing.bin", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestMediaContentTypeFallback(t *testing.T) {
	cases := map[string]string{
		"a/b/answer.webm": "video/webm",
		"a/b/answer.wav":  "audio/wav",
		"a/b/answer.bin":  "application/octet-stream",
		"a/b/answer":      "application/octet-stream",
	}
	for key, want := range cases {
		if got := mediaContentType(key); got != want {
			t.Errorf("mediaContentType(%q) = %q, want %q", key, got, want)
		}
	}
}
