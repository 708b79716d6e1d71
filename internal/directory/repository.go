package directory

import (
	"context"
	"sync"
)

// Repository defines the storage contract for therapist records. GetByID
// returns (nil, nil) when the id does not exist; absence is a normal outcome
// for callers, not an error.
type Repository interface {
	Put(ctx context.Context, t *Therapist) error
	GetByID(ctx context.Context, id string) (*Therapist, error)
	ScanAll(ctx context.Context) ([]*Therapist, error)
	UpdateFields(ctx context.Context, id string, fields map[string]string) error
	DeleteByID(ctx context.Context, id string) error
}

// InMemoryRepository is a Repository backed by a map, for tests and local
// runs without DynamoDB.
type InMemoryRepository struct {
	mu         sync.RWMutex
	therapists map[string]Therapist
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{therapists: make(map[string]Therapist)}
}

// Put stores or replaces a therapist record.
func (r *InMemoryRepository) Put(ctx context.Context, t *Therapist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.therapists[t.ID] = *t
	return nil
}

// GetByID retrieves a therapist, returning nil when absent.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Therapist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.therapists[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// ScanAll returns every stored therapist.
func (r *InMemoryRepository) ScanAll(ctx context.Context) ([]*Therapist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Therapist, 0, len(r.therapists))
	for _, t := range r.therapists {
		copied := t
		out = append(out, &copied)
	}
	return out, nil
}

// UpdateFields applies the supplied fields to an existing record. Unknown ids
// are a no-op, matching delete-if-exists storage semantics.
func (r *InMemoryRepository) UpdateFields(ctx context.Context, id string, fields map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.therapists[id]
	if !ok {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "name":
			t.Name = value
		case "email":
			t.Email = value
		case "phone":
			t.Phone = value
		}
	}
	r.therapists[id] = t
	return nil
}

// DeleteByID removes a record if present. Deleting a missing id is not an
// error.
func (r *InMemoryRepository) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.therapists, id)
	return nil
}

var _ Repository = (*InMemoryRepository)(nil)
