package grader

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Abdur1603/ai-interview-assessment/internal/rubric"
	"github.com/Abdur1603/ai-interview-assessment/internal/session"
)

type fakeLLM struct {
	obj        map[string]interface{}
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeLLM) CallJSON(ctx context.Context, system, user string) (map[string]interface{}, error) {
	f.lastSystem, f.lastUser = system, user
	return f.obj, f.err
}

func testStore(t *testing.T) rubric.Store {
	t.Helper()
	s, err := rubric.NewStore([]rubric.Entry{
		{QuestionID: 1, Question: "Explain dropout.", CriteriaText: "- Score 4: detailed\n- Score 0: none"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestGradeQuestionReturnsParsedFields(t *testing.T) {
	llm := &fakeLLM{obj: map[string]interface{}{"score": float64(3), "reason": "mentions masking but not scaling"}}
	g := New(testStore(t), llm, quietLogger())

	score, reason := g.GradeQuestion(context.Background(), 1, "dropout zeroes activations", 120)
	if score != 3 {
		t.Errorf("score = %d, want 3", score)
	}
	if reason != "mentions masking but not scaling" {
		t.Errorf("reason = %q", reason)
	}
	if !strings.Contains(llm.lastUser, "Explain dropout.") {
		t.Error("question text missing from prompt")
	}
	if !strings.Contains(llm.lastUser, "Score 4: detailed") {
		t.Error("criteria text missing from prompt")
	}
	if !strings.Contains(llm.lastUser, "120.0 WPM") {
		t.Error("speaking rate missing from prompt")
	}
}

func TestGradeQuestionDefaultsForPartialJSON(t *testing.T) {
	g := New(testStore(t), &fakeLLM{obj: map[string]interface{}{}}, quietLogger())
	score, reason := g.GradeQuestion(context.Background(), 1, "answer", 90)
	if score != 0 {
		t.Errorf("score = %d, want default 0", score)
	}
	if reason != "No analysis provided." {
		t.Errorf("reason = %q, want default", reason)
	}
}

func TestGradeQuestionClampsOutOfRangeScore(t *testing.T) {
	g := New(testStore(t), &fakeLLM{obj: map[string]interface{}{"score": float64(7), "reason": "over-enthusiastic model"}}, quietLogger())
	score, _ := g.GradeQuestion(context.Background(), 1, "answer", 90)
	if score != 4 {
		t.Errorf("score = %d, want clamped 4", score)
	}
}

func TestGradeQuestionNeverRaises(t *testing.T) {
	g := New(testStore(t), &fakeLLM{err: errors.New("all credentials failed")}, quietLogger())
	score, reason := g.GradeQuestion(context.Background(), 1, "answer", 90)
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	if !strings.HasPrefix(reason, "System Error: ") {
		t.Errorf("reason = %q, want System Error prefix", reason)
	}
}

func TestGradeQuestionUnknownQuestion(t *testing.T) {
	g := New(testStore(t), &fakeLLM{}, quietLogger())
	score, reason := g.GradeQuestion(context.Background(), 9, "answer", 90)
	if score != 0 || !strings.HasPrefix(reason, "System Error: ") {
		t.Errorf("got (%d, %q), want zero score with System Error reason", score, reason)
	}
}

func TestGradeQuestionAcceptsEmptyTranscript(t *testing.T) {
	llm := &fakeLLM{obj: map[string]interface{}{"score": float64(0), "reason": "no relevant answer"}}
	g := New(testStore(t), llm, quietLogger())
	score, reason := g.GradeQuestion(context.Background(), 1, "", 0)
	if score != 0 || reason != "no relevant answer" {
		t.Errorf("got (%d, %q)", score, reason)
	}
}

func TestSummarizeSession(t *testing.T) {
	results := []session.QuestionResult{
		{QuestionID: 1, Score: 3, Reason: "solid basics"},
		{QuestionID: 2, Score: 2, Reason: "shallow on transfer learning"},
	}

	llm := &fakeLLM{obj: map[string]interface{}{"overall_summary": "The candidate demonstrated solid basics."}}
	g := New(testStore(t), llm, quietLogger())
	if got := g.SummarizeSession(context.Background(), results); got != "The candidate demonstrated solid basics." {
		t.Errorf("summary = %q", got)
	}
	if !strings.Contains(llm.lastUser, "Question 1 Score (3/4): solid basics") {
		t.Errorf("context blob malformed: %q", llm.lastUser)
	}
	if !strings.Contains(llm.lastUser, "Question 2 Score (2/4): shallow on transfer learning") {
		t.Errorf("context blob malformed: %q", llm.lastUser)
	}
}

func TestSummarizeSessionFallbacks(t *testing.T) {
	g := New(testStore(t), &fakeLLM{obj: map[string]interface{}{}}, quietLogger())
	if got := g.SummarizeSession(context.Background(), nil); got != "Summary generation failed." {
		t.Errorf("summary = %q, want field-missing fallback", got)
	}

	g = New(testStore(t), &fakeLLM{err: errors.New("exhausted")}, quietLogger())
	if got := g.SummarizeSession(context.Background(), nil); !strings.HasPrefix(got, "Failed to generate summary: ") {
		t.Errorf("summary = %q, want failure fallback", got)
	}
}
