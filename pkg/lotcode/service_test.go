package lotcode

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seqs == nil {
		m.seqs = make(map[string]int64)
	}
	key, _ := args[0].(string)
	m.seqs[key]++
	return &mockRow{val: m.seqs[key]}
}

var lotCodePattern = regexp.MustCompile(`^\d{8}-\d{3}$`)

func TestNextLotCode_Sequential(t *testing.T) {
	svc := New(&mockQuerier{})
	ctx := context.Background()
	day := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	want := []string{"20260831-001", "20260831-002", "20260831-003"}
	for i, w := range want {
		got, err := svc.NextLotCode(ctx, day)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("call %d: expected %s, got %s", i, w, got)
		}
		if !lotCodePattern.MatchString(got) {
			t.Errorf("call %d: %s does not match lot code pattern", i, got)
		}
	}
}

func TestNextLotCode_SequencesAreIndependentPerDay(t *testing.T) {
	svc := New(&mockQuerier{})
	ctx := context.Background()

	monday := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	tuesday := time.Date(2026, 9, 1, 0, 1, 0, 0, time.UTC)

	first, err := svc.NextLotCode(ctx, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.NextLotCode(ctx, tuesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != "20260831-001" {
		t.Errorf("expected 20260831-001, got %s", first)
	}
	if second != "20260901-001" {
		t.Errorf("expected the next day to restart at 001, got %s", second)
	}
}

func TestNextLotCode_ConcurrentAllocationsAreDistinct(t *testing.T) {
	svc := New(&mockQuerier{})
	ctx := context.Background()
	day := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	const n = 50
	codes := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := svc.NextLotCode(ctx, day)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[string]bool, n)
	for code := range codes {
		if seen[code] {
			t.Fatalf("duplicate lot code allocated: %s", code)
		}
		seen[code] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d distinct codes, got %d", n, len(seen))
	}
}

func TestNextLotCode_Uninitialized(t *testing.T) {
	var svc *Service
	if _, err := svc.NextLotCode(context.Background(), time.Now()); err == nil {
		t.Error("expected error from uninitialized service")
	}
}
