package rubric

import (
	"fmt"
	"sort"
)

// Entry is one interview question together with the criteria text the
// grader grounds its scoring on. Entries are immutable after load.
type Entry struct {
	QuestionID   int    `yaml:"id" json:"id"`
	Question     string `yaml:"question" json:"question"`
	CriteriaText string `yaml:"criteria_text" json:"criteria_text"`
}

type NotFoundError struct{ QuestionID int }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rubric: question %d not configured", e.QuestionID)
}

// Store resolves question ids to rubric entries. Read-only.
type Store interface {
	Get(questionID int) (Entry, error)
	// IDs returns every configured question id in ascending order. The
	// session completeness gate treats this as the expected set.
	IDs() []int
}

type staticStore struct {
	entries map[int]Entry
	ids     []int
}

// NewStore builds a Store from a set of entries. The store carries however
// many entries it is given; nothing assumes exactly five.
func NewStore(entries []Entry) (Store, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("rubric: no entries configured")
	}
	m := make(map[int]Entry, len(entries))
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		if e.QuestionID <= 0 {
			return nil, fmt.Errorf("rubric: invalid question id %d", e.QuestionID)
		}
		if _, dup := m[e.QuestionID]; dup {
			return nil, fmt.Errorf("rubric: duplicate question id %d", e.QuestionID)
		}
		if e.Question == "" {
			return nil, fmt.Errorf("rubric: question %d has empty text", e.QuestionID)
		}
		if e.CriteriaText == "" {
			return nil, fmt.Errorf("rubric: question %d has empty criteria", e.QuestionID)
		}
		m[e.QuestionID] = e
		ids = append(ids, e.QuestionID)
	}
	sort.Ints(ids)
	return &staticStore{entries: m, ids: ids}, nil
}

func (s *staticStore) Get(questionID int) (Entry, error) {
	e, ok := s.entries[questionID]
	if !ok {
		return Entry{}, &NotFoundError{QuestionID: questionID}
	}
	return e, nil
}

func (s *staticStore) IDs() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}
