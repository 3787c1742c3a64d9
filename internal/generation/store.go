package generation

import (
	"fmt"
	"sync"

	"reelforge/internal/model"
)

// RecordStore is the in-memory source of truth for generation records.
// Records are retained for listing until process restart; nothing is ever
// physically deleted. All mutation happens under the store lock so a reader
// never observes a status without its matching result or error field.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]*model.Generation
}

// NewRecordStore creates an empty record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]*model.Generation),
	}
}

// clone returns a copy of g safe to hand to callers. The Parameters map is
// copied so callers cannot mutate stored state.
func clone(g *model.Generation) *model.Generation {
	c := *g
	if g.Parameters != nil {
		c.Parameters = make(map[string]any, len(g.Parameters))
		for k, v := range g.Parameters {
			c.Parameters[k] = v
		}
	}
	return &c
}

// Insert adds a new record. It fails with ErrDuplicateID if the id is
// already present.
func (s *RecordStore) Insert(g *model.Generation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[g.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, g.ID)
	}
	s.records[g.ID] = clone(g)
	return nil
}

// Get returns a copy of the record with the given id, or ErrNotFound.
func (s *RecordStore) Get(id string) (*model.Generation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(g), nil
}

// List returns a snapshot of all records, in no particular order.
func (s *RecordStore) List() []*model.Generation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Generation, 0, len(s.records))
	for _, g := range s.records {
		out = append(out, clone(g))
	}
	return out
}

// Len returns the number of stored records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Transition moves a record to the given non-terminal-result status if the
// lifecycle state machine allows it. It fails with ErrNotFound for unknown
// ids and ErrInvalidTransition when the record's current status does not
// permit the move, which is how a late executor write against a cancelled
// record becomes a no-op.
func (s *RecordStore) Transition(id, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if !model.ValidTransition(g.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, g.Status, to)
	}
	g.Status = to
	return nil
}

// Complete marks a processing record completed and sets its result URL in
// the same critical section, so no reader sees one without the other.
func (s *RecordStore) Complete(id, resultURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if !model.ValidTransition(g.Status, model.StatusCompleted) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, g.Status, model.StatusCompleted)
	}
	g.Status = model.StatusCompleted
	g.ResultURL = resultURL
	return nil
}

// Fail marks a processing record failed and records the error message.
func (s *RecordStore) Fail(id, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if !model.ValidTransition(g.Status, model.StatusFailed) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, g.Status, model.StatusFailed)
	}
	g.Status = model.StatusFailed
	g.ErrorMessage = message
	return nil
}

// Cancel moves a record to cancelled from any non-terminal status.
func (s *RecordStore) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	if !model.ValidTransition(g.Status, model.StatusCancelled) {
		return fmt.Errorf("%w: cannot cancel %s generation", ErrInvalidTransition, g.Status)
	}
	g.Status = model.StatusCancelled
	return nil
}
