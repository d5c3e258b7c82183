package usage

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/pkg/plan"
)

// MemoryLedger implements Ledger with an in-memory map. Intended for
// tests and local development. Call counts are tracked so tests can
// observe whether the unlimited fast path really skips the ledger.
type MemoryLedger struct {
	mu     sync.Mutex
	counts map[string]int64

	reads int64
	adds  int64
}

// NewMemoryLedger returns an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{counts: make(map[string]int64)}
}

func ledgerKey(userID uuid.UUID, feature plan.Feature, period Period) string {
	return fmt.Sprintf("%s:%s:%s", userID, feature, period)
}

func (m *MemoryLedger) ReadCount(_ context.Context, userID uuid.UUID, feature plan.Feature, period Period) (int64, error) {
	atomic.AddInt64(&m.reads, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[ledgerKey(userID, feature, period)], nil
}

func (m *MemoryLedger) AtomicAdd(_ context.Context, userID uuid.UUID, feature plan.Feature, period Period, amount int64) (int64, error) {
	atomic.AddInt64(&m.adds, 1)
	m.mu.Lock()
	defer m.mu.Unlock()

	key := ledgerKey(userID, feature, period)
	m.counts[key] += amount
	return m.counts[key], nil
}

// Calls returns the total number of ledger operations performed.
func (m *MemoryLedger) Calls() int64 {
	return atomic.LoadInt64(&m.reads) + atomic.LoadInt64(&m.adds)
}
