package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abdur1603/ai-interview-assessment/internal/store"
)

// ReportReader is the read side of the report archive.
type ReportReader interface {
	Get(ctx context.Context, id string) (store.ArchivedReport, error)
	List(ctx context.Context) ([]store.ArchivedReport, error)
}

// GET /reports
func ListReportsHandler(archive ReportReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := archive.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		if list == nil {
			list = []store.ArchivedReport{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

// GET /reports/{reportID}
func GetReportHandler(archive ReportReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := archive.Get(r.Context(), chi.URLParam(r, "reportID"))
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rep)
	}
}
