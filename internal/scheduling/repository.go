package scheduling

import (
	"context"
	"sync"
)

// Repository defines the storage contract for appointment and check-in
// records. Records are immutable once written.
type Repository interface {
	Put(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	QueryByTherapistAndDate(ctx context.Context, therapistID, date string) ([]*Appointment, error)
}

// InMemoryRepository is a Repository backed by maps, for tests and local
// runs without DynamoDB.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[string]Appointment
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string]Appointment)}
}

// Put stores a record.
func (r *InMemoryRepository) Put(ctx context.Context, a *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[a.ID] = *a
	return nil
}

// GetByID retrieves a record, returning nil when absent.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// QueryByTherapistAndDate returns every record for the therapist on the
// given date. Check-in records carry no date and are never returned here.
func (r *InMemoryRepository) QueryByTherapistAndDate(ctx context.Context, therapistID, date string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Appointment
	for _, a := range r.records {
		if a.TherapistID == therapistID && a.Date == date {
			copied := a
			out = append(out, &copied)
		}
	}
	return out, nil
}

var _ Repository = (*InMemoryRepository)(nil)
