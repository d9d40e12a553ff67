package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// ExhaustedError reports that every configured credential failed for one
// logical call. It carries the last observed cause.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("llm: all %d credentials failed, last error: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// Failover runs one chat call against an ordered list of callers. Each
// caller is tried at most once, strictly in configured order; a transport
// failure or a non-JSON body advances to the next caller. There is no
// backoff: each caller is a distinct quota pool.
type Failover struct {
	callers []Caller
	log     *logrus.Logger
}

func NewFailover(callers []Caller, log *logrus.Logger) (*Failover, error) {
	if len(callers) == 0 {
		return nil, fmt.Errorf("llm: no credentials configured")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Failover{callers: callers, log: log}, nil
}

// CallJSON returns the first syntactically valid JSON object produced by a
// caller, or an ExhaustedError once the list runs out. Missing fields inside
// a valid object are the caller's concern, not failover's.
func (f *Failover) CallJSON(ctx context.Context, system, user string) (map[string]interface{}, error) {
	var last error
	for i, c := range f.callers {
		content, err := c.Complete(ctx, system, user)
		if err != nil {
			last = err
			f.log.WithFields(logrus.Fields{"credential": i, "error": err}).Warn("llm call failed, trying next credential")
			continue
		}
		obj, err := decodeObject(content)
		if err != nil {
			last = err
			f.log.WithFields(logrus.Fields{"credential": i, "error": err}).Warn("llm returned non-JSON body, trying next credential")
			continue
		}
		return obj, nil
	}
	return nil, &ExhaustedError{Attempts: len(f.callers), Last: last}
}

// decodeObject parses the message content as a JSON object, tolerating the
// markdown code fences some models wrap strict-JSON output in.
func decodeObject(content string) (map[string]interface{}, error) {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("llm: response is not a JSON object: %w", err)
	}
	return obj, nil
}
