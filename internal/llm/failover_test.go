package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
)

type fakeCaller struct {
	content string
	err     error
	calls   int
}

func (f *fakeCaller) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	return f.content, f.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestFailoverRequiresCredentials(t *testing.T) {
	if _, err := NewFailover(nil, quietLogger()); err == nil {
		t.Fatal("expected error for empty credential list")
	}
}

func TestFailoverSkipsFailedCredentialsInOrder(t *testing.T) {
	dead := &fakeCaller{err: errors.New("quota exceeded")}
	garbled := &fakeCaller{content: "I am not JSON"}
	good := &fakeCaller{content: `{"score": 3, "reason": "solid answer"}`}
	never := &fakeCaller{content: `{"score": 0}`}

	f, err := NewFailover([]Caller{dead, garbled, good, never}, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	obj, err := f.CallJSON(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("CallJSON: %v", err)
	}
	if got := obj["score"].(float64); got != 3 {
		t.Errorf("score = %v, want 3", got)
	}
	if dead.calls != 1 || garbled.calls != 1 || good.calls != 1 {
		t.Errorf("each credential must be tried exactly once: %d %d %d", dead.calls, garbled.calls, good.calls)
	}
	if never.calls != 0 {
		t.Errorf("credential after the successful one was called %d times", never.calls)
	}
}

func TestFailoverExhaustionCarriesLastError(t *testing.T) {
	first := &fakeCaller{err: errors.New("auth failed")}
	second := &fakeCaller{err: errors.New("rate limited")}

	f, _ := NewFailover([]Caller{first, second}, quietLogger())
	_, err := f.CallJSON(context.Background(), "sys", "user")
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	var ex *ExhaustedError
	if !errors.As(err, &ex) {
		t.Fatalf("error type = %T, want *ExhaustedError", err)
	}
	if ex.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", ex.Attempts)
	}
	if ex.Last == nil || ex.Last.Error() != "rate limited" {
		t.Errorf("last error = %v, want rate limited", ex.Last)
	}
}

func TestDecodeObjectStripsMarkdownFences(t *testing.T) {
	obj, err := decodeObject("```json\n{\"overall_summary\": \"ok\"}\n```")
	if err != nil {
		t.Fatalf("decodeObject: %v", err)
	}
	if obj["overall_summary"] != "ok" {
		t.Errorf("overall_summary = %v", obj["overall_summary"])
	}
}
