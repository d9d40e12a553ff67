package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Abdur1603/ai-interview-assessment/internal/storage"
)

// MountMedia exposes stored answer media for review playback.
func MountMedia(r chi.Router, bs storage.BlobStore) {
	// GET /media/*  -> returns the blob at whatever follows /media/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		key = strings.TrimPrefix(key, "/")
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found: "+err.Error(), http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", mediaContentType(key))
		_, _ = io.Copy(w, rc)
	})
}

// mediaContentType maps the stored key's extension to a playable type.
// Uploads keep their original extension, so this covers what browsers
// record and what assessors upload.
func mediaContentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}
