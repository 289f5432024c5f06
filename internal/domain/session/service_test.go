package session

import (
	"context"
	"errors"
	"testing"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
	"creamery/internal/domain"
	"creamery/internal/domain/ledger"
)

// Mock objects

type mockRepository struct {
	sessions map[id.ID]*Session
	lines    map[id.ID][]Line

	updateFunc func(ctx context.Context, doc *Session) error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		sessions: make(map[id.ID]*Session),
		lines:    make(map[id.ID][]Line),
	}
}

func (m *mockRepository) Create(ctx context.Context, doc *Session) error {
	cp := *doc
	m.sessions[doc.ID] = &cp
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, docID id.ID) (*Session, error) {
	doc, ok := m.sessions[docID]
	if !ok {
		return nil, apperror.NewNotFound("inventory session", docID)
	}
	cp := *doc
	return &cp, nil
}

func (m *mockRepository) Update(ctx context.Context, doc *Session) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, doc)
	}
	cp := *doc
	m.sessions[doc.ID] = &cp
	return nil
}

func (m *mockRepository) AppendLine(ctx context.Context, docID id.ID, line Line) error {
	m.lines[docID] = append(m.lines[docID], line)
	return nil
}

func (m *mockRepository) GetLines(ctx context.Context, docID id.ID) ([]Line, error) {
	return m.lines[docID], nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Session], error) {
	return domain.ListResult[*Session]{}, nil
}

var _ Repository = (*mockRepository)(nil)

type setCall struct {
	itemID     id.ID
	locationID id.ID
	quantity   types.Quantity
}

type mockStock struct {
	calls   []setCall
	setFunc func(ctx context.Context, rec ledger.Recorder, itemID, locationID id.ID, quantity types.Quantity) error
}

func (m *mockStock) SetQuantity(ctx context.Context, rec ledger.Recorder, itemID, locationID id.ID, quantity types.Quantity) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, rec, itemID, locationID, quantity)
	}
	m.calls = append(m.calls, setCall{itemID, locationID, quantity})
	return nil
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

func newTestService(repo *mockRepository, stock *mockStock) *Service {
	return NewService(repo, stock, &mockLocations{exists: true}, &mockTxManager{})
}

func seedDraft(t *testing.T, repo *mockRepository, lines ...LineInput) *Session {
	t.Helper()
	doc := NewSession(id.New(), id.New(), "")
	for _, in := range lines {
		line, err := doc.AddLine(in)
		if err != nil {
			t.Fatalf("seed line: %v", err)
		}
		repo.lines[doc.ID] = append(repo.lines[doc.ID], line)
	}
	repo.sessions[doc.ID] = doc
	return doc
}

func TestCreate_UnknownLocation(t *testing.T) {
	svc := NewService(newMockRepository(), &mockStock{}, &mockLocations{exists: false}, &mockTxManager{})

	_, err := svc.Create(context.Background(), id.New(), id.New(), "")
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestAddLine_PersistsHeaderAndLine(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockStock{})
	doc := seedDraft(t, repo)

	line, err := svc.AddLine(context.Background(), doc.ID, validLineInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.lines[doc.ID]) != 1 {
		t.Fatalf("expected 1 persisted line, got %d", len(repo.lines[doc.ID]))
	}
	if repo.sessions[doc.ID].Version != doc.Version+1 {
		t.Errorf("header version must be bumped on line append")
	}
	if line.LineNo != 1 {
		t.Errorf("expected line_no 1, got %d", line.LineNo)
	}
}

func TestClose_AppliesEveryLineInRecordingOrder(t *testing.T) {
	repo := newMockRepository()
	stock := &mockStock{}
	svc := newTestService(repo, stock)

	itemID := id.New()
	first := validLineInput()
	first.ItemID = itemID
	first.CountedQuantity = types.NewQuantityFromFloat64(3)
	second := validLineInput()
	second.ItemID = itemID
	second.CountedQuantity = types.NewQuantityFromFloat64(5)

	doc := seedDraft(t, repo, first, second)

	closed, err := svc.Close(context.Background(), doc.ID, id.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if closed.Status != StatusClosed {
		t.Errorf("expected CLOSED, got %s", closed.Status)
	}
	if len(stock.calls) != 2 {
		t.Fatalf("expected one ledger write per line, got %d", len(stock.calls))
	}
	// Recording order means the later count lands last and wins.
	if stock.calls[0].quantity != first.CountedQuantity || stock.calls[1].quantity != second.CountedQuantity {
		t.Errorf("lines applied out of order: %+v", stock.calls)
	}
	for _, call := range stock.calls {
		if call.locationID != doc.LocationID {
			t.Errorf("line applied to wrong location: %s", call.locationID)
		}
	}
}

func TestClose_LedgerFailureAborts(t *testing.T) {
	repo := newMockRepository()
	boom := errors.New("ledger down")
	stock := &mockStock{
		setFunc: func(ctx context.Context, rec ledger.Recorder, itemID, locationID id.ID, quantity types.Quantity) error {
			return boom
		},
	}
	svc := newTestService(repo, stock)
	doc := seedDraft(t, repo, validLineInput())

	_, err := svc.Close(context.Background(), doc.ID, id.New())
	if !errors.Is(err, boom) {
		t.Fatalf("expected ledger error to propagate, got %v", err)
	}
}

func TestClose_ConcurrentCloseConflicts(t *testing.T) {
	repo := newMockRepository()
	repo.updateFunc = func(ctx context.Context, doc *Session) error {
		return apperror.NewConcurrentModification("inventory session", doc.ID)
	}
	svc := newTestService(repo, &mockStock{})
	doc := seedDraft(t, repo, validLineInput())

	_, err := svc.Close(context.Background(), doc.ID, id.New())
	if !apperror.IsConcurrentModification(err) {
		t.Fatalf("expected concurrent modification error, got %v", err)
	}
}

func TestClose_AlreadyClosedSession(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockStock{})
	doc := seedDraft(t, repo, validLineInput())

	if _, err := svc.Close(context.Background(), doc.ID, id.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Close(context.Background(), doc.ID, id.New())
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInvalidState {
		t.Fatalf("expected invalid state error, got %v", err)
	}
}
