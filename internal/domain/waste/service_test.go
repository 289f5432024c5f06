package waste

import (
	"context"
	"testing"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
	"creamery/internal/domain"
	"creamery/internal/domain/ledger"
	"creamery/internal/domain/production"
)

// Mock objects

type mockRepository struct {
	events []*Event
}

func (m *mockRepository) Create(ctx context.Context, event *Event) error {
	cp := *event
	m.events = append(m.events, &cp)
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, eventID id.ID) (*Event, error) {
	for _, e := range m.events {
		if e.ID == eventID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("waste event", eventID)
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Event], error) {
	return domain.ListResult[*Event]{}, nil
}

var _ Repository = (*mockRepository)(nil)

type adjustCall struct {
	itemID     id.ID
	locationID id.ID
	delta      types.Quantity
}

type mockStock struct {
	calls []adjustCall
}

func (m *mockStock) AdjustQuantity(ctx context.Context, rec ledger.Recorder, itemID, locationID id.ID, delta types.Quantity) (types.Quantity, error) {
	m.calls = append(m.calls, adjustCall{itemID, locationID, delta})
	return 0, nil
}

type mockBatches struct {
	batches map[id.ID]*production.Batch
}

func (m *mockBatches) GetByID(ctx context.Context, docID id.ID) (*production.Batch, error) {
	if b, ok := m.batches[docID]; ok {
		return b, nil
	}
	return nil, apperror.NewNotFound("production batch", docID)
}

type mockLocations struct {
	exists bool
}

func (m *mockLocations) Exists(ctx context.Context, locationID id.ID) (bool, error) {
	return m.exists, nil
}

type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func seedBatch(status production.Status) *production.Batch {
	b := production.NewBatch(id.New(), id.New(), id.New(), types.NewQuantityFromFloat64(20), "tub", "")
	b.Status = status
	return b
}

func newTestService(repo *mockRepository, stock *mockStock, batches map[id.ID]*production.Batch) *Service {
	return NewService(repo, stock, &mockBatches{batches: batches}, &mockLocations{exists: true}, &mockTxManager{})
}

func validInput() RecordInput {
	locID := id.New()
	return RecordInput{
		ItemID:     id.New(),
		LocationID: &locID,
		Quantity:   types.NewQuantityFromFloat64(2),
		Unit:       "tub",
		Reason:     ReasonSpoilage,
		RecordedBy: id.New(),
	}
}

func TestRecord_DebitsStock(t *testing.T) {
	repo := &mockRepository{}
	stock := &mockStock{}
	svc := newTestService(repo, stock, nil)

	in := validInput()
	event, err := svc.Record(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 persisted event, got %d", len(repo.events))
	}
	if len(stock.calls) != 1 {
		t.Fatalf("expected 1 stock debit, got %d", len(stock.calls))
	}
	if stock.calls[0].delta != in.Quantity.Neg() {
		t.Errorf("expected debit %s, got %s", in.Quantity.Neg(), stock.calls[0].delta)
	}
	if event.LocationID != *in.LocationID {
		t.Errorf("expected location %s, got %s", *in.LocationID, event.LocationID)
	}
}

func TestRecord_BatchResolvesItemAndLocation(t *testing.T) {
	batch := seedBatch(production.StatusCompleted)
	stock := &mockStock{}
	svc := newTestService(&mockRepository{}, stock, map[id.ID]*production.Batch{batch.ID: batch})

	in := validInput()
	in.BatchID = &batch.ID
	in.ItemID = id.Nil()
	in.LocationID = nil

	event, err := svc.Record(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if event.ItemID != batch.ItemID || event.LocationID != batch.LocationID {
		t.Errorf("event must take item and location from the batch: %+v", event)
	}
	if stock.calls[0].itemID != batch.ItemID || stock.calls[0].locationID != batch.LocationID {
		t.Errorf("stock debited with wrong dimensions: %+v", stock.calls[0])
	}
}

func TestRecord_RunOutBatchRejected(t *testing.T) {
	batch := seedBatch(production.StatusRunOut)
	stock := &mockStock{}
	svc := newTestService(&mockRepository{}, stock, map[id.ID]*production.Batch{batch.ID: batch})

	in := validInput()
	in.BatchID = &batch.ID
	in.ItemID = id.Nil()
	in.LocationID = nil

	_, err := svc.Record(context.Background(), in)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInvalidState {
		t.Fatalf("expected invalid state error, got %v", err)
	}
	if appErr.Message != "cannot record waste for run out batch" {
		t.Errorf("unexpected message: %q", appErr.Message)
	}
	if len(stock.calls) != 0 {
		t.Error("rejected waste must not touch stock")
	}
}

func TestRecord_BatchItemMismatch(t *testing.T) {
	batch := seedBatch(production.StatusCompleted)
	svc := newTestService(&mockRepository{}, &mockStock{}, map[id.ID]*production.Batch{batch.ID: batch})

	in := validInput()
	in.BatchID = &batch.ID
	in.LocationID = nil

	_, err := svc.Record(context.Background(), in)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecord_MissingLocationWithoutBatch(t *testing.T) {
	svc := newTestService(&mockRepository{}, &mockStock{}, nil)

	in := validInput()
	in.LocationID = nil

	_, err := svc.Record(context.Background(), in)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecord_UnknownBatch(t *testing.T) {
	svc := newTestService(&mockRepository{}, &mockStock{}, nil)

	in := validInput()
	missing := id.New()
	in.BatchID = &missing
	in.LocationID = nil
	in.ItemID = id.Nil()

	_, err := svc.Record(context.Background(), in)
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRecord_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RecordInput)
	}{
		{"zero quantity", func(in *RecordInput) { in.Quantity = 0 }},
		{"negative quantity", func(in *RecordInput) { in.Quantity = types.NewQuantityFromFloat64(-1) }},
		{"empty unit", func(in *RecordInput) { in.Unit = "" }},
		{"unknown reason", func(in *RecordInput) { in.Reason = Reason("MELTED") }},
		{"missing recorded_by", func(in *RecordInput) { in.RecordedBy = id.Nil() }},
		{"missing item", func(in *RecordInput) { in.ItemID = id.Nil() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockRepository{}, &mockStock{}, nil)
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Record(context.Background(), in)
			appErr, ok := apperror.AsAppError(err)
			if !ok || appErr.Code != apperror.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
