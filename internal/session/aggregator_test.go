package session

import (
	"reflect"
	"testing"
)

func TestAddOrReplaceKeepsOneResultPerQuestion(t *testing.T) {
	a := NewAggregator()
	a.AddOrReplace(QuestionResult{QuestionID: 2, Score: 1, Reason: "first pass"})
	a.AddOrReplace(QuestionResult{QuestionID: 2, Score: 4, Reason: "regraded"})

	got := a.Results()
	if len(got) != 1 {
		t.Fatalf("results = %d entries, want 1", len(got))
	}
	if got[0].Score != 4 || got[0].Reason != "regraded" {
		t.Errorf("second grade not retained: %+v", got[0])
	}
}

func TestResultsSortedByQuestionID(t *testing.T) {
	a := NewAggregator()
	for _, id := range []int{4, 1, 5, 3, 2} {
		a.AddOrReplace(QuestionResult{QuestionID: id})
	}
	got := a.Results()
	for i, r := range got {
		if r.QuestionID != i+1 {
			t.Fatalf("position %d holds question %d", i, r.QuestionID)
		}
	}
}

func TestCompletenessGate(t *testing.T) {
	expected := []int{1, 2, 3, 4, 5}
	a := NewAggregator()

	if a.IsComplete(expected) {
		t.Fatal("empty session reported complete")
	}
	for _, id := range []int{1, 3, 5} {
		a.AddOrReplace(QuestionResult{QuestionID: id})
	}
	if a.IsComplete(expected) {
		t.Fatal("partial session reported complete")
	}
	if got := a.Missing(expected); !reflect.DeepEqual(got, []int{2, 4}) {
		t.Errorf("Missing = %v, want [2 4]", got)
	}
	for _, id := range []int{2, 4} {
		a.AddOrReplace(QuestionResult{QuestionID: id})
	}
	if !a.IsComplete(expected) {
		t.Fatal("full session reported incomplete")
	}
	if got := a.Missing(expected); len(got) != 0 {
		t.Errorf("Missing = %v, want empty", got)
	}
}

func TestResetClearsResults(t *testing.T) {
	a := NewAggregator()
	a.AddOrReplace(QuestionResult{QuestionID: 1, Score: 3})
	a.Reset()
	if len(a.Results()) != 0 {
		t.Error("results survived reset")
	}
}

func TestRegistryIsolation(t *testing.T) {
	r := NewRegistry()
	one := r.Create()
	two := r.Create()
	if one == two {
		t.Fatal("duplicate session ids")
	}

	aggOne, err := r.Get(one)
	if err != nil {
		t.Fatal(err)
	}
	aggOne.AddOrReplace(QuestionResult{QuestionID: 1, Score: 4})

	aggTwo, _ := r.Get(two)
	if len(aggTwo.Results()) != 0 {
		t.Error("results leaked across sessions")
	}

	if err := r.Delete(one); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(one); err != ErrNotFound {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestRegistryAcquireRelease(t *testing.T) {
	r := NewRegistry()
	id := r.Create()

	agg, release, err := r.Acquire(id)
	if err != nil {
		t.Fatal(err)
	}
	agg.AddOrReplace(QuestionResult{QuestionID: 1, Score: 2})
	release()

	// Same aggregator on re-acquire.
	again, release, err := r.Acquire(id)
	if err != nil {
		t.Fatal(err)
	}
	defer release()
	if got := again.Results(); len(got) != 1 || got[0].Score != 2 {
		t.Errorf("results after re-acquire = %+v", got)
	}

	if _, _, err := r.Acquire("nope"); err != ErrNotFound {
		t.Errorf("Acquire(unknown) = %v, want ErrNotFound", err)
	}
}

// Progress polls via Get run while an analyze mutates the session under
// Acquire; both must be safe under the race detector.
func TestProgressReadsDuringWrite(t *testing.T) {
	r := NewRegistry()
	id := r.Create()
	expected := []int{1, 2, 3, 4, 5}

	agg, release, err := r.Acquire(id)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			agg.AddOrReplace(QuestionResult{QuestionID: i%5 + 1, Score: i % 5})
		}
	}()

	reader, err := r.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 500; i++ {
		for _, res := range reader.Results() {
			if res.QuestionID < 1 || res.QuestionID > 5 {
				t.Errorf("torn read: question %d", res.QuestionID)
			}
		}
		if got := len(reader.Missing(expected)); got > len(expected) {
			t.Errorf("missing = %d ids", got)
		}
	}
	<-done
	release()
}
