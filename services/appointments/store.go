package appointments

import (
	"context"
	"sync"

	"nataliestudio/models"
)

// Store keeps a snapshot of the local appointment collection so a restarted
// or replicated console starts from the last known state.
type Store interface {
	Load(ctx context.Context) ([]models.Appointment, bool, error)
	Save(ctx context.Context, appts []models.Appointment) error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu    sync.RWMutex
	appts []models.Appointment
	saved bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]models.Appointment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return nil, false, nil
	}
	return append([]models.Appointment(nil), s.appts...), true, nil
}

func (s *MemoryStore) Save(_ context.Context, appts []models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appts = append([]models.Appointment(nil), appts...)
	s.saved = true
	return nil
}
