package store

import (
	"context"
	"sync"
)

// Logical record keys. Each key holds one JSON document covering the
// whole collection; every mutation rewrites the record wholesale.
const (
	KeyAppointments = "appointments"
	KeyServices     = "services"
	KeyGallery      = "gallery"
	KeyHours        = "hours"
	KeyBrand        = "brand"
	KeyAdmins       = "authorized_admins"
)

// Store is the persistence collaborator for named records. Get reports
// ok=false for a key that was never written. No multi-key transaction
// is offered or assumed.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.records[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	return cp, true, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.records[key] = cp
	return nil
}
