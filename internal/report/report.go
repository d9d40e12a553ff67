package report

import (
	"fmt"
	"time"

	"github.com/Abdur1603/ai-interview-assessment/internal/session"
)

// Decision values are part of the exported report schema; the spelling is
// frozen.
const (
	DecisionPassed     = "PASSED"
	DecisionNeedReview = "NEED_REVIEW"
)

const (
	maxQuestionScore = 4
	passThreshold    = 70.0
	timeLayout       = "2006-01-02 15:04:05"
)

// FinalReport is the durable output artifact. Field names and the decision
// enum are a compatibility surface; do not rename.
type FinalReport struct {
	Decision     string          `json:"decision"`
	Scores       Scores          `json:"scores"`
	PerQuestion  []QuestionScore `json:"per_question"`
	OverallNotes string          `json:"overall_notes"`
	GeneratedAt  string          `json:"generated_at"`
}

type Scores struct {
	Project   float64 `json:"project"`
	Interview float64 `json:"interview"`
	Total     float64 `json:"total"`
}

type QuestionScore struct {
	ID     int    `json:"id"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Generate computes the weighted final report from a complete result set.
// expectedN is the number of expected questions, which the denominator uses
// even if the caller passed fewer results; the completeness gate lives in
// the session layer, not here. Pure value construction, deterministic for a
// fixed clock.
func Generate(results []session.QuestionResult, expectedN int, projectScore float64, overallNotes string, now time.Time) FinalReport {
	rawSum := 0
	for _, r := range results {
		rawSum += r.Score
	}

	interview := 0.0
	if expectedN > 0 {
		interview = float64(rawSum) / float64(maxQuestionScore*expectedN) * 100
	}
	total := projectScore*0.5 + interview*0.5

	decision := DecisionNeedReview
	if interview >= passThreshold {
		decision = DecisionPassed
	}

	notes := overallNotes
	if notes == "" {
		notes = fmt.Sprintf("Candidate achieved %.1f%% in interview session.", interview)
	}

	perQuestion := make([]QuestionScore, 0, len(results))
	for _, r := range results {
		perQuestion = append(perQuestion, QuestionScore{ID: r.QuestionID, Score: r.Score, Reason: r.Reason})
	}

	return FinalReport{
		Decision:     decision,
		Scores:       Scores{Project: projectScore, Interview: interview, Total: total},
		PerQuestion:  perQuestion,
		OverallNotes: notes,
		GeneratedAt:  now.Format(timeLayout),
	}
}
