package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Abdur1603/ai-interview-assessment/internal/report"
)

var ErrNotFound = errors.New("report not found")

// ArchivedReport is one exported final report plus archive metadata.
type ArchivedReport struct {
	ID        string             `json:"id"`
	SessionID string             `json:"session_id"`
	Report    report.FinalReport `json:"report"`
	CreatedAt int64              `json:"created_at"`
}

// ReportArchive persists exported final reports. Live session state never
// touches the database; only the output artifact does.
type ReportArchive struct{ db *sql.DB }

func NewReportArchive(db *sql.DB) *ReportArchive { return &ReportArchive{db: db} }

// Save writes one exported report and returns its archive id.
func (a *ReportArchive) Save(ctx context.Context, sessionID string, r report.FinalReport) (string, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("store: marshal report: %w", err)
	}
	id := uuid.NewString()
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO reports (id, session_id, decision, payload_json, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		id, sessionID, r.Decision, string(payload), time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("store: save report: %w", err)
	}
	return id, nil
}

// Get loads one archived report by id.
func (a *ReportArchive) Get(ctx context.Context, id string) (ArchivedReport, error) {
	var (
		out     ArchivedReport
		payload string
	)
	err := a.db.QueryRowContext(ctx,
		`SELECT id, session_id, payload_json, created_at FROM reports WHERE id = $1`, id).
		Scan(&out.ID, &out.SessionID, &payload, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ArchivedReport{}, ErrNotFound
	}
	if err != nil {
		return ArchivedReport{}, fmt.Errorf("store: get report: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &out.Report); err != nil {
		return ArchivedReport{}, fmt.Errorf("store: decode report %s: %w", id, err)
	}
	return out, nil
}

// List returns archive metadata for every stored report, newest first.
func (a *ReportArchive) List(ctx context.Context) ([]ArchivedReport, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, session_id, payload_json, created_at FROM reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: list reports: %w", err)
	}
	defer rows.Close()

	var out []ArchivedReport
	for rows.Next() {
		var (
			r       ArchivedReport
			payload string
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &payload, &r.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payload), &r.Report); err != nil {
			return nil, fmt.Errorf("store: decode report %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
