package trial

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-memory map. Intended for tests
// and local development.
type MemoryStore struct {
	mu     sync.Mutex
	states map[uuid.UUID]State
}

// NewMemoryStore returns an empty in-memory trial store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[uuid.UUID]State)}
}

func (m *MemoryStore) GetTrial(_ context.Context, userID uuid.UUID) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[userID], nil
}

// WriteTrial performs the conditional write under a single lock, matching
// the atomicity a SQL UPDATE ... WHERE guard provides.
func (m *MemoryStore) WriteTrial(_ context.Context, userID uuid.UUID, expectedPriorUsed bool, s State) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.states[userID].Used != expectedPriorUsed {
		return false, nil
	}
	m.states[userID] = s
	return true, nil
}

// Seed sets a user's trial state directly, bypassing the guard. Test helper.
func (m *MemoryStore) Seed(userID uuid.UUID, s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = s
}
