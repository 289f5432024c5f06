package lotcode

import (
	"context"
	"sync"
	"time"
)

// MockGenerator is a test implementation of Generator.
// It allocates per-day sequences in memory.
type MockGenerator struct {
	NextLotCodeFunc func(ctx context.Context, day time.Time) (string, error)

	mu   sync.Mutex
	seqs map[string]int64
}

// NextLotCode implements Generator.
func (m *MockGenerator) NextLotCode(ctx context.Context, day time.Time) (string, error) {
	if m.NextLotCodeFunc != nil {
		return m.NextLotCodeFunc(ctx, day)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seqs == nil {
		m.seqs = make(map[string]int64)
	}
	key := DayPrefix(day)
	m.seqs[key]++
	return Format(day, m.seqs[key]), nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
