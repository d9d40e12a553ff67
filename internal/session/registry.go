package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Registry hands out isolated aggregators, one per candidate session. The
// aggregator guards its own state, so progress reads via Get are safe at
// any time; the registry serializes writers so that at most one
// analyze/report operation runs per session at a time.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	agg *Aggregator
	op  sync.Mutex // serializes analyze and report generation
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]*entry{}}
}

// Create opens a new empty session and returns its id.
func (r *Registry) Create() string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &entry{agg: NewAggregator()}
	r.mu.Unlock()
	return id
}

// Get returns the aggregator for read-only progress views.
func (r *Registry) Get(id string) (*Aggregator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e.agg, nil
}

// Acquire returns the aggregator with its writer lock held; the caller
// must invoke release when the operation finishes.
func (r *Registry) Acquire(id string) (agg *Aggregator, release func(), err error) {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, ErrNotFound
	}
	e.op.Lock()
	return e.agg, e.op.Unlock, nil
}

// Delete resets and removes a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return ErrNotFound
	}
	e.agg.Reset()
	delete(r.sessions, id)
	return nil
}
