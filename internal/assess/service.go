package assess

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Abdur1603/ai-interview-assessment/internal/report"
	"github.com/Abdur1603/ai-interview-assessment/internal/rubric"
	"github.com/Abdur1603/ai-interview-assessment/internal/session"
	"github.com/Abdur1603/ai-interview-assessment/internal/speech"
	syncx "github.com/Abdur1603/ai-interview-assessment/internal/sync"
	"github.com/Abdur1603/ai-interview-assessment/internal/transcribe"
)

// AudioExtractor is the opaque media boundary: remux an upload for
// streaming playback, pull a normalized WAV out of it, probe its duration.
type AudioExtractor interface {
	NormalizeContainer(ctx context.Context, inputPath, outputPath string) error
	ExtractAudio(ctx context.Context, inputPath, outputPath string) error
	Duration(ctx context.Context, path string) float64
}

// Grader is the rubric-grounded scoring boundary. Both operations absorb
// their own failures and always return usable values.
type Grader interface {
	GradeQuestion(ctx context.Context, questionID int, transcript string, wpm float64) (int, string)
	SummarizeSession(ctx context.Context, results []session.QuestionResult) string
}

// ReportArchive persists the exported report artifact.
type ReportArchive interface {
	Save(ctx context.Context, sessionID string, r report.FinalReport) (string, error)
}

// EventRecorder appends pipeline events; nil disables recording.
type EventRecorder interface {
	Append(ctx context.Context, e syncx.Event) error
}

// IncompleteSessionError is the completeness gate: report generation is
// unavailable, not failed, until every expected question is graded.
type IncompleteSessionError struct{ Missing []int }

func (e *IncompleteSessionError) Error() string {
	return fmt.Sprintf("session incomplete: questions %v not graded", e.Missing)
}

// Service runs the per-question analyze pipeline (extract, transcribe,
// measure, grade, store) and the session finalization (summarize, report,
// archive). One pipeline is in flight per session at a time.
type Service struct {
	extractor    AudioExtractor
	stt          transcribe.Transcriber
	pauses       speech.PauseDetector
	grader       Grader
	rubrics      rubric.Store
	archive      ReportArchive
	events       EventRecorder
	projectScore float64
	log          *logrus.Logger
}

func NewService(extractor AudioExtractor, stt transcribe.Transcriber, pauses speech.PauseDetector,
	g Grader, rubrics rubric.Store, archive ReportArchive, events EventRecorder,
	projectScore float64, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		extractor:    extractor,
		stt:          stt,
		pauses:       pauses,
		grader:       g,
		rubrics:      rubrics,
		archive:      archive,
		events:       events,
		projectScore: projectScore,
		log:          log,
	}
}

// AnalyzeAnswer processes one uploaded answer end to end and stores the
// result in the session, replacing any previous grade for the question.
// A transcription failure degrades to an empty transcript; only the media
// step can fail the operation outright.
func (s *Service) AnalyzeAnswer(ctx context.Context, agg *session.Aggregator, sessionID string, questionID int, mediaPath string) (session.QuestionResult, error) {
	if _, err := s.rubrics.Get(questionID); err != nil {
		return session.QuestionResult{}, err
	}

	workDir, err := os.MkdirTemp("", "review-answer-*")
	if err != nil {
		return session.QuestionResult{}, fmt.Errorf("assess: workdir: %w", err)
	}
	defer os.RemoveAll(workDir)

	s.remuxForPlayback(ctx, sessionID, questionID, mediaPath)

	audioPath := filepath.Join(workDir, "answer.wav")
	s.log.WithFields(logrus.Fields{"session": sessionID, "question": questionID}).Info("extracting audio")
	if err := s.extractor.ExtractAudio(ctx, mediaPath, audioPath); err != nil {
		return session.QuestionResult{}, err
	}
	duration := s.extractor.Duration(ctx, audioPath)

	s.log.WithFields(logrus.Fields{"session": sessionID, "question": questionID}).Info("transcribing")
	transcript, err := s.stt.Transcribe(ctx, audioPath)
	if err != nil {
		// The grader still produces a valid (low) score for an empty
		// transcript; the failure stays visible in the logs.
		s.log.WithFields(logrus.Fields{"session": sessionID, "question": questionID, "error": err}).Warn("transcription failed, grading empty transcript")
		transcript = ""
	}

	metrics := speech.Compute(ctx, s.pauses, transcript, audioPath, duration, s.log)

	s.log.WithFields(logrus.Fields{"session": sessionID, "question": questionID, "wpm": metrics.WPM}).Info("grading")
	score, reason := s.grader.GradeQuestion(ctx, questionID, transcript, metrics.WPM)

	result := session.QuestionResult{
		QuestionID: questionID,
		Score:      score,
		Reason:     reason,
		Transcript: transcript,
		Metrics:    metrics,
	}
	agg.AddOrReplace(result)
	s.record(ctx, syncx.EventAnswerGraded, sessionID, map[string]interface{}{"question_id": questionID, "score": score})
	return result, nil
}

// remuxForPlayback rewrites the stored upload with the moov atom up front
// so review playback can stream it. Failure keeps the original file;
// analysis does not depend on the remux.
func (s *Service) remuxForPlayback(ctx context.Context, sessionID string, questionID int, mediaPath string) {
	tmp := filepath.Join(filepath.Dir(mediaPath), "remux"+filepath.Ext(mediaPath))
	if err := s.extractor.NormalizeContainer(ctx, mediaPath, tmp); err != nil {
		s.log.WithFields(logrus.Fields{"session": sessionID, "question": questionID, "error": err}).Warn("faststart remux failed, keeping original upload")
		_ = os.Remove(tmp)
		return
	}
	if err := os.Rename(tmp, mediaPath); err != nil {
		s.log.WithFields(logrus.Fields{"session": sessionID, "question": questionID, "error": err}).Warn("replacing upload with remuxed copy failed")
		_ = os.Remove(tmp)
	}
}

// FinalizeSession enforces the completeness gate, asks the grader for the
// overall summary, generates the weighted report, and archives it. Returns
// the archive id alongside the report.
func (s *Service) FinalizeSession(ctx context.Context, agg *session.Aggregator, sessionID string) (report.FinalReport, string, error) {
	expected := s.rubrics.IDs()
	if missing := agg.Missing(expected); len(missing) > 0 {
		return report.FinalReport{}, "", &IncompleteSessionError{Missing: missing}
	}

	results := agg.Results()
	s.log.WithField("session", sessionID).Info("generating overall summary")
	summary := s.grader.SummarizeSession(ctx, results)

	rep := report.Generate(results, len(expected), s.projectScore, summary, time.Now())

	archiveID := ""
	if s.archive != nil {
		id, err := s.archive.Save(ctx, sessionID, rep)
		if err != nil {
			return report.FinalReport{}, "", err
		}
		archiveID = id
	}
	s.record(ctx, syncx.EventReportGenerated, sessionID, map[string]interface{}{"decision": rep.Decision, "report_id": archiveID})
	return rep, archiveID, nil
}

// ExpectedQuestions exposes the configured question ids for progress views.
func (s *Service) ExpectedQuestions() []int { return s.rubrics.IDs() }

// RecordReset notes a session teardown and who requested it.
func (s *Service) RecordReset(ctx context.Context, sessionID, actor string) {
	s.record(ctx, syncx.EventSessionReset, sessionID, map[string]interface{}{"by": actor})
}

func (s *Service) record(ctx context.Context, typ, key string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	payload, _ := json.Marshal(data)
	if err := s.events.Append(ctx, syncx.Event{Type: typ, Key: key, DataJSON: string(payload)}); err != nil {
		s.log.WithFields(logrus.Fields{"event": typ, "error": err}).Warn("event append failed")
	}
}
