package grader

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Abdur1603/ai-interview-assessment/internal/rubric"
	"github.com/Abdur1603/ai-interview-assessment/internal/session"
)

const (
	defaultReason  = "No analysis provided."
	summaryFailure = "Summary generation failed."
)

// JSONCaller is the failover call protocol: one logical call that either
// yields a parsed JSON object or an aggregated failure.
type JSONCaller interface {
	CallJSON(ctx context.Context, system, user string) (map[string]interface{}, error)
}

// Grader turns transcripts into rubric scores through the reasoning
// service. Grading never returns an error past this boundary: a failed
// grade is a visible zero-score result, not an exception.
type Grader struct {
	rubrics rubric.Store
	llm     JSONCaller
	log     *logrus.Logger
}

func New(rubrics rubric.Store, llm JSONCaller, log *logrus.Logger) *Grader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Grader{rubrics: rubrics, llm: llm, log: log}
}

// GradeQuestion scores one transcript against the question's rubric. The
// transcript may be empty; the rubric still produces a (low) score. A JSON
// response missing 'score' or 'reason' falls back to defaults rather than
// failing; scores outside 0..4 are clamped to keep the report scale intact.
func (g *Grader) GradeQuestion(ctx context.Context, questionID int, transcript string, wpm float64) (int, string) {
	entry, err := g.rubrics.Get(questionID)
	if err != nil {
		return 0, fmt.Sprintf("System Error: %v", err)
	}

	obj, err := g.llm.CallJSON(ctx, gradingSystemPrompt, gradingUserPrompt(entry, transcript, wpm))
	if err != nil {
		g.log.WithFields(logrus.Fields{"question": questionID, "error": err}).Error("grading call failed")
		return 0, fmt.Sprintf("System Error: %v", err)
	}

	score := clampScore(intField(obj, "score", 0))
	reason := stringField(obj, "reason", defaultReason)
	return score, reason
}

// SummarizeSession condenses the per-question grading notes into one
// flowing overall paragraph. Failure yields a fallback string, never an
// error.
func (g *Grader) SummarizeSession(ctx context.Context, results []session.QuestionResult) string {
	obj, err := g.llm.CallJSON(ctx, summarySystemPrompt, summaryUserPrompt(results))
	if err != nil {
		g.log.WithField("error", err).Error("summary call failed")
		return fmt.Sprintf("Failed to generate summary: %v", err)
	}
	return stringField(obj, "overall_summary", summaryFailure)
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 4 {
		return 4
	}
	return n
}

func intField(obj map[string]interface{}, key string, def int) int {
	v, ok := obj[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return def
	}
}

func stringField(obj map[string]interface{}, key string, def string) string {
	v, ok := obj[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}
