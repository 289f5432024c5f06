package production

import (
	"context"
	"testing"
	"time"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/core/lotcode"
	"creamery/internal/core/types"
	"creamery/internal/domain"
	"creamery/internal/domain/ledger"
)

// Mock objects

type mockRepository struct {
	batches map[id.ID]*Batch
	byLot   map[string]id.ID

	createFunc func(ctx context.Context, doc *Batch) error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		batches: make(map[id.ID]*Batch),
		byLot:   make(map[string]id.ID),
	}
}

func (m *mockRepository) Create(ctx context.Context, doc *Batch) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, doc); err != nil {
			return err
		}
	}
	if _, taken := m.byLot[doc.LotCode]; taken {
		return apperror.NewDuplicate("production batch", "lot_code", doc.LotCode)
	}
	cp := *doc
	m.batches[doc.ID] = &cp
	m.byLot[doc.LotCode] = doc.ID
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, docID id.ID) (*Batch, error) {
	doc, ok := m.batches[docID]
	if !ok {
		return nil, apperror.NewNotFound("production batch", docID)
	}
	cp := *doc
	return &cp, nil
}

func (m *mockRepository) GetByLotCode(ctx context.Context, code string) (*Batch, error) {
	docID, ok := m.byLot[code]
	if !ok {
		return nil, apperror.NewNotFound("production batch", code)
	}
	return m.GetByID(ctx, docID)
}

func (m *mockRepository) Update(ctx context.Context, doc *Batch) error {
	cp := *doc
	m.batches[doc.ID] = &cp
	return nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Batch], error) {
	return domain.ListResult[*Batch]{}, nil
}

var _ Repository = (*mockRepository)(nil)

type adjustCall struct {
	itemID     id.ID
	locationID id.ID
	delta      types.Quantity
}

type mockStock struct {
	calls      []adjustCall
	adjustFunc func(ctx context.Context, rec ledger.Recorder, itemID, locationID id.ID, delta types.Quantity) (types.Quantity, error)
}

func (m *mockStock) AdjustQuantity(ctx context.Context, rec ledger.Recorder, itemID, locationID id.ID, delta types.Quantity) (types.Quantity, error) {
	if m.adjustFunc != nil {
		return m.adjustFunc(ctx, rec, itemID, locationID, delta)
	}
	m.calls = append(m.calls, adjustCall{itemID, locationID, delta})
	return delta, nil
}

type mockChecker struct {
	exists bool
}

func (m *mockChecker) Exists(ctx context.Context, _ id.ID) (bool, error) {
	return m.exists, nil
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *mockRepository, stock *mockStock, cfg Config) *Service {
	return NewService(
		repo,
		&lotcode.MockGenerator{},
		stock,
		&mockChecker{exists: true},
		&mockChecker{exists: true},
		&mockTxManager{},
		cfg,
	)
}

func TestCreateBatch_AssignsLotCodeAndCreditsStock(t *testing.T) {
	repo := newMockRepository()
	stock := &mockStock{}
	svc := newTestService(repo, stock, DefaultConfig())

	doc := newTestBatch()
	if err := svc.CreateBatch(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCode := lotcode.Format(doc.StartedAt, 1)
	if doc.LotCode != wantCode {
		t.Errorf("expected lot code %s, got %s", wantCode, doc.LotCode)
	}
	if len(stock.calls) != 1 {
		t.Fatalf("expected 1 stock credit, got %d", len(stock.calls))
	}
	if stock.calls[0].delta != doc.QuantityMade {
		t.Errorf("expected credit %s, got %s", doc.QuantityMade, stock.calls[0].delta)
	}
	if stock.calls[0].locationID != doc.LocationID {
		t.Errorf("credited wrong location: %s", stock.calls[0].locationID)
	}
}

func TestCreateBatch_SequentialLotCodesSameDay(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockStock{}, DefaultConfig())

	first := newTestBatch()
	second := newTestBatch()
	if err := svc.CreateBatch(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.CreateBatch(context.Background(), second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.LotCode == second.LotCode {
		t.Fatalf("lot codes must be unique, both got %s", first.LotCode)
	}
	if second.LotCode != lotcode.Format(second.StartedAt, 2) {
		t.Errorf("expected second batch to take sequence 002, got %s", second.LotCode)
	}
}

func TestCreateBatch_RetriesLotCodeCollision(t *testing.T) {
	repo := newMockRepository()
	attempts := 0
	repo.createFunc = func(ctx context.Context, doc *Batch) error {
		attempts++
		if attempts == 1 {
			return apperror.NewDuplicate("production batch", "lot_code", doc.LotCode)
		}
		return nil
	}
	svc := newTestService(repo, &mockStock{}, DefaultConfig())

	doc := newTestBatch()
	if err := svc.CreateBatch(context.Background(), doc); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 create attempts, got %d", attempts)
	}
}

func TestCreateBatch_RetriesExhausted(t *testing.T) {
	repo := newMockRepository()
	repo.createFunc = func(ctx context.Context, doc *Batch) error {
		return apperror.NewDuplicate("production batch", "lot_code", doc.LotCode)
	}
	svc := newTestService(repo, &mockStock{}, DefaultConfig())

	err := svc.CreateBatch(context.Background(), newTestBatch())
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeConflict {
		t.Fatalf("expected conflict after exhausted retries, got %v", err)
	}
}

func TestCreateBatch_UnknownItem(t *testing.T) {
	svc := NewService(
		newMockRepository(),
		&lotcode.MockGenerator{},
		&mockStock{},
		&mockChecker{exists: false},
		&mockChecker{exists: true},
		&mockTxManager{},
		DefaultConfig(),
	)

	err := svc.CreateBatch(context.Background(), newTestBatch())
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRunOutBatch_DebitsStock(t *testing.T) {
	repo := newMockRepository()
	stock := &mockStock{}
	svc := newTestService(repo, stock, DefaultConfig())

	doc := newTestBatch()
	if err := svc.CreateBatch(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CompleteBatch(context.Background(), doc.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := svc.RunOutBatch(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusRunOut {
		t.Errorf("expected RUN_OUT, got %s", out.Status)
	}

	last := stock.calls[len(stock.calls)-1]
	if last.delta != doc.QuantityMade.Neg() {
		t.Errorf("expected debit %s, got %s", doc.QuantityMade.Neg(), last.delta)
	}
}

func TestRunOutBatch_InProgressRejected(t *testing.T) {
	repo := newMockRepository()
	stock := &mockStock{}
	svc := newTestService(repo, stock, DefaultConfig())

	doc := newTestBatch()
	if err := svc.CreateBatch(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	credits := len(stock.calls)

	_, err := svc.RunOutBatch(context.Background(), doc.ID)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInvalidState {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if len(stock.calls) != credits {
		t.Error("failed run out must not touch stock")
	}
}

func TestDiscardBatch_DefaultKeepsStock(t *testing.T) {
	repo := newMockRepository()
	stock := &mockStock{}
	svc := newTestService(repo, stock, DefaultConfig())

	doc := newTestBatch()
	if err := svc.CreateBatch(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	credits := len(stock.calls)

	out, err := svc.DiscardBatch(context.Background(), doc.ID, "freezer failure", time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusDiscarded {
		t.Errorf("expected DISCARDED, got %s", out.Status)
	}
	if len(stock.calls) != credits {
		t.Error("discard must not touch stock with reversal disabled")
	}
}

func TestDiscardBatch_ReversesStockWhenConfigured(t *testing.T) {
	repo := newMockRepository()
	stock := &mockStock{}
	cfg := DefaultConfig()
	cfg.ReverseStockOnDiscard = true
	svc := newTestService(repo, stock, cfg)

	doc := newTestBatch()
	if err := svc.CreateBatch(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.DiscardBatch(context.Background(), doc.ID, "freezer failure", time.Time{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := stock.calls[len(stock.calls)-1]
	if last.delta != doc.QuantityMade.Neg() {
		t.Errorf("expected reversal %s, got %s", doc.QuantityMade.Neg(), last.delta)
	}
}

func TestGetByLotCode(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockStock{}, DefaultConfig())

	doc := newTestBatch()
	if err := svc.CreateBatch(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetByLotCode(context.Background(), doc.LotCode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != doc.ID {
		t.Errorf("expected batch %s, got %s", doc.ID, got.ID)
	}

	if _, err := svc.GetByLotCode(context.Background(), "20990101-001"); !apperror.IsNotFound(err) {
		t.Errorf("expected not found for unknown lot code, got %v", err)
	}
}
