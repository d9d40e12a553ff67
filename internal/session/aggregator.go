package session

import (
	"sort"
	"sync"

	"github.com/Abdur1603/ai-interview-assessment/internal/speech"
)

// QuestionResult is one graded answer. Re-grading the same question
// replaces the previous result; the aggregator owns uniqueness, not the
// grader.
type QuestionResult struct {
	QuestionID int            `json:"id"`
	Score      int            `json:"score"`
	Reason     string         `json:"reason"`
	Transcript string         `json:"transcript"`
	Metrics    speech.Metrics `json:"metrics"`
}

// Aggregator holds the per-question results of one candidate session,
// keyed by question id and kept sorted for display. Reads are safe while
// a write is in flight; the Registry serializes writers so at most one
// analyze/report operation mutates a session at a time.
type Aggregator struct {
	mu      sync.RWMutex
	results []QuestionResult
}

func NewAggregator() *Aggregator { return &Aggregator{} }

// AddOrReplace removes any result with the same question id and inserts
// the new one in a single step, keeping ascending id order.
func (a *Aggregator) AddOrReplace(r QuestionResult) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]QuestionResult, 0, len(a.results)+1)
	for _, existing := range a.results {
		if existing.QuestionID != r.QuestionID {
			out = append(out, existing)
		}
	}
	out = append(out, r)
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	a.results = out
}

// Reset drops every stored result.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	a.results = nil
	a.mu.Unlock()
}

// Results returns a copy of the stored results in ascending question order.
func (a *Aggregator) Results() []QuestionResult {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]QuestionResult, len(a.results))
	copy(out, a.results)
	return out
}

// IsComplete reports whether every expected question id has a result.
func (a *Aggregator) IsComplete(expected []int) bool {
	return len(a.Missing(expected)) == 0
}

// Missing returns the expected ids without a stored result, ascending.
func (a *Aggregator) Missing(expected []int) []int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	have := make(map[int]bool, len(a.results))
	for _, r := range a.results {
		have[r.QuestionID] = true
	}
	missing := make([]int, 0)
	for _, id := range expected {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	sort.Ints(missing)
	return missing
}
