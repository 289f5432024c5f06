package ledger

import (
	"context"
	"testing"

	"creamery/internal/core/apperror"
	"creamery/internal/core/entity"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
)

// mockRepository implements Repository with overridable funcs.
type mockRepository struct {
	getEntryFunc        func(ctx context.Context, itemID, locationID id.ID) (entity.StockEntry, error)
	applyCountFunc      func(ctx context.Context, itemID, locationID id.ID, quantity types.Quantity) error
	applyDeltaFunc      func(ctx context.Context, itemID, locationID id.ID, delta types.Quantity) (types.Quantity, error)
	createMovementsFunc func(ctx context.Context, movements []entity.StockMovement) error

	movements []entity.StockMovement
}

func (m *mockRepository) GetEntry(ctx context.Context, itemID, locationID id.ID) (entity.StockEntry, error) {
	if m.getEntryFunc != nil {
		return m.getEntryFunc(ctx, itemID, locationID)
	}
	return entity.StockEntry{}, apperror.NewNotFound("stock entry", itemID)
}

func (m *mockRepository) GetEntriesByLocation(ctx context.Context, locationID id.ID, filter EntryFilter) ([]entity.StockEntry, error) {
	return nil, nil
}

func (m *mockRepository) GetEntriesByItem(ctx context.Context, itemID id.ID) ([]entity.StockEntry, error) {
	return nil, nil
}

func (m *mockRepository) ApplyCount(ctx context.Context, itemID, locationID id.ID, quantity types.Quantity) error {
	if m.applyCountFunc != nil {
		return m.applyCountFunc(ctx, itemID, locationID, quantity)
	}
	return nil
}

func (m *mockRepository) ApplyDelta(ctx context.Context, itemID, locationID id.ID, delta types.Quantity) (types.Quantity, error) {
	if m.applyDeltaFunc != nil {
		return m.applyDeltaFunc(ctx, itemID, locationID, delta)
	}
	return delta, nil
}

func (m *mockRepository) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	if m.createMovementsFunc != nil {
		return m.createMovementsFunc(ctx, movements)
	}
	m.movements = append(m.movements, movements...)
	return nil
}

func (m *mockRepository) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	return m.movements, nil
}

func (m *mockRepository) GetMovementHistory(ctx context.Context, itemID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return m.movements, nil
}

func (m *mockRepository) GetBelowPar(ctx context.Context) ([]ParShortage, error) {
	return nil, nil
}

var _ Repository = (*mockRepository)(nil)

func testRecorder() Recorder {
	return Recorder{ID: id.New(), Type: RecorderTypeInventorySession}
}

func TestGetQuantity_MissingEntryReadsZero(t *testing.T) {
	svc := NewService(&mockRepository{})

	qty, err := svc.GetQuantity(context.Background(), id.New(), id.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !qty.IsZero() {
		t.Errorf("expected zero quantity for missing entry, got %s", qty)
	}
}

func TestSetQuantity_JournalsCountMovement(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo)

	itemID, locationID := id.New(), id.New()
	rec := testRecorder()
	qty := types.NewQuantityFromFloat64(12.5)

	if err := svc.SetQuantity(context.Background(), rec, itemID, locationID, qty); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.movements) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(repo.movements))
	}
	m := repo.movements[0]
	if m.RecordType != entity.RecordTypeCount {
		t.Errorf("expected count movement, got %s", m.RecordType)
	}
	if m.Quantity != qty {
		t.Errorf("expected quantity %s, got %s", qty, m.Quantity)
	}
	if m.RecorderID != rec.ID || m.RecorderType != rec.Type {
		t.Errorf("movement recorder mismatch: %+v", m)
	}
}

func TestSetQuantity_NegativeRejected(t *testing.T) {
	svc := NewService(&mockRepository{})

	err := svc.SetQuantity(context.Background(), testRecorder(), id.New(), id.New(), types.NewQuantityFromFloat64(-1))
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdjustQuantity_PositiveJournalsReceipt(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo)

	delta := types.NewQuantityFromFloat64(3)
	newQty, err := svc.AdjustQuantity(context.Background(), testRecorder(), id.New(), id.New(), delta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newQty != delta {
		t.Errorf("expected new quantity %s, got %s", delta, newQty)
	}

	if len(repo.movements) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(repo.movements))
	}
	if repo.movements[0].RecordType != entity.RecordTypeReceipt {
		t.Errorf("expected receipt movement, got %s", repo.movements[0].RecordType)
	}
}

func TestAdjustQuantity_NegativeJournalsExpenseWithAbsoluteQuantity(t *testing.T) {
	repo := &mockRepository{
		applyDeltaFunc: func(ctx context.Context, itemID, locationID id.ID, delta types.Quantity) (types.Quantity, error) {
			return types.NewQuantityFromFloat64(7), nil
		},
	}
	svc := NewService(repo)

	delta := types.NewQuantityFromFloat64(-3)
	if _, err := svc.AdjustQuantity(context.Background(), testRecorder(), id.New(), id.New(), delta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.movements) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(repo.movements))
	}
	m := repo.movements[0]
	if m.RecordType != entity.RecordTypeExpense {
		t.Errorf("expected expense movement, got %s", m.RecordType)
	}
	if m.Quantity != delta.Abs() {
		t.Errorf("expected journaled quantity %s, got %s", delta.Abs(), m.Quantity)
	}
}

func TestAdjustQuantity_InsufficientStockPropagates(t *testing.T) {
	itemID := id.New()
	repo := &mockRepository{
		applyDeltaFunc: func(ctx context.Context, _, _ id.ID, delta types.Quantity) (types.Quantity, error) {
			return 0, apperror.NewInsufficientStock(itemID.String(), delta.Abs().Float64(), 1)
		},
		createMovementsFunc: func(ctx context.Context, movements []entity.StockMovement) error {
			t.Error("no movement must be journaled on insufficient stock")
			return nil
		},
	}
	svc := NewService(repo)

	_, err := svc.AdjustQuantity(context.Background(), testRecorder(), itemID, id.New(), types.NewQuantityFromFloat64(-5))
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
}

func TestAdjustQuantity_ZeroDeltaRejected(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.AdjustQuantity(context.Background(), testRecorder(), id.New(), id.New(), 0)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdjustQuantity_MissingRecorderRejected(t *testing.T) {
	svc := NewService(&mockRepository{})

	_, err := svc.AdjustQuantity(context.Background(), Recorder{}, id.New(), id.New(), types.NewQuantityFromFloat64(1))
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
