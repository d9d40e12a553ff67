package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Abdur1603/ai-interview-assessment/internal/assess"
	auth "github.com/Abdur1603/ai-interview-assessment/internal/auth/middleware"
	"github.com/Abdur1603/ai-interview-assessment/internal/report"
	"github.com/Abdur1603/ai-interview-assessment/internal/rubric"
	"github.com/Abdur1603/ai-interview-assessment/internal/session"
	"github.com/Abdur1603/ai-interview-assessment/internal/storage"
	syncx "github.com/Abdur1603/ai-interview-assessment/internal/sync"
)

// Analyzer is the slice of the assessment service the handlers need.
type Analyzer interface {
	AnalyzeAnswer(ctx context.Context, agg *session.Aggregator, sessionID string, questionID int, mediaPath string) (session.QuestionResult, error)
	FinalizeSession(ctx context.Context, agg *session.Aggregator, sessionID string) (report.FinalReport, string, error)
	ExpectedQuestions() []int
	RecordReset(ctx context.Context, sessionID, actor string)
}

// EventReader lists the recorded pipeline events of one session.
type EventReader interface {
	ListByKey(ctx context.Context, key string) ([]syncx.Event, error)
}

// POST /sessions
func CreateSessionHandler(reg *session.Registry, svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := reg.Create()
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"session_id":         id,
			"expected_questions": svc.ExpectedQuestions(),
		})
	}
}

// GET /sessions/{sessionID}
func GetSessionHandler(reg *session.Registry, svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agg, err := reg.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		expected := svc.ExpectedQuestions()
		results := agg.Results()
		graded := make([]int, 0, len(results))
		for _, res := range results {
			graded = append(graded, res.QuestionID)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"graded":   graded,
			"missing":  agg.Missing(expected),
			"complete": agg.IsComplete(expected),
			"results":  results,
		})
	}
}

// DELETE /sessions/{sessionID}
func ResetSessionHandler(reg *session.Registry, svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		if err := reg.Delete(sessionID); err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		svc.RecordReset(r.Context(), sessionID, auth.SubjectFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /sessions/{sessionID}/events
// Event history survives a reset; the log is keyed by session id, not by
// the live registry entry.
func SessionEventsHandler(events EventReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := events.ListByKey(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if list == nil {
			list = []syncx.Event{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

// POST /sessions/{sessionID}/questions/{questionID}/answer
// Multipart upload of the recorded answer; runs the full analyze pipeline
// and responds with the stored per-question result.
func AnalyzeAnswerHandler(reg *session.Registry, svc Analyzer, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		questionID, err := strconv.Atoi(chi.URLParam(r, "questionID"))
		if err != nil {
			http.Error(w, "questionID must be an integer", http.StatusBadRequest)
			return
		}

		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		ext := strings.ToLower(filepath.Ext(hdr.Filename))
		if ext == "" {
			ext = ".mp4"
		}
		key := fmt.Sprintf("sessions/%s/q%d/answer%s", sessionID, questionID, ext)

		agg, release, err := reg.Acquire(sessionID)
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		defer release()

		if _, err := bs.Put(key, f); err != nil {
			http.Error(w, "store upload: "+err.Error(), http.StatusInternalServerError)
			return
		}
		mediaPath, err := bs.PathOf(key)
		if err != nil {
			http.Error(w, "resolve upload: "+err.Error(), http.StatusInternalServerError)
			return
		}

		result, err := svc.AnalyzeAnswer(r.Context(), agg, sessionID, questionID, mediaPath)
		if err != nil {
			status := http.StatusInternalServerError
			var nf *rubric.NotFoundError
			if errors.As(err, &nf) {
				status = http.StatusNotFound
			}
			http.Error(w, "analyze: "+err.Error(), status)
			return
		}
		_ = json.NewEncoder(w).Encode(result)
	}
}

// GET /sessions/{sessionID}/report
// The completeness gate answers 409 with the missing question ids; a
// complete session produces the final report (body is the exact exported
// document; the archive location rides in the Location header).
func GenerateReportHandler(reg *session.Registry, svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "sessionID")
		agg, release, err := reg.Acquire(sessionID)
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		defer release()

		rep, reportID, err := svc.FinalizeSession(r.Context(), agg, sessionID)
		if err != nil {
			var inc *assess.IncompleteSessionError
			if errors.As(err, &inc) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"error":   "session incomplete",
					"missing": inc.Missing,
				})
				return
			}
			http.Error(w, "report: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if reportID != "" {
			w.Header().Set("Location", "/reports/"+reportID)
		}
		_ = json.NewEncoder(w).Encode(rep)
	}
}
