package session

import (
	"context"
	"testing"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
)

func validLineInput() LineInput {
	return LineInput{
		ItemID:          id.New(),
		CountedQuantity: types.NewQuantityFromFloat64(4),
		Unit:            "tub",
		CountedBy:       id.New(),
	}
}

func TestNewSession_StartsDraft(t *testing.T) {
	doc := NewSession(id.New(), id.New(), "evening count")

	if doc.Status != StatusDraft {
		t.Errorf("expected DRAFT, got %s", doc.Status)
	}
	if err := doc.Validate(context.Background()); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
	if len(doc.Lines) != 0 {
		t.Errorf("expected no lines, got %d", len(doc.Lines))
	}
}

func TestAddLine_AppendsWithoutDedupe(t *testing.T) {
	doc := NewSession(id.New(), id.New(), "")
	itemID := id.New()

	in := validLineInput()
	in.ItemID = itemID
	if _, err := doc.AddLine(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in.CountedQuantity = types.NewQuantityFromFloat64(7)
	if _, err := doc.AddLine(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Lines) != 2 {
		t.Fatalf("expected 2 lines for the same item, got %d", len(doc.Lines))
	}
	if doc.Lines[0].LineNo != 1 || doc.Lines[1].LineNo != 2 {
		t.Errorf("line numbers must be sequential: %d, %d", doc.Lines[0].LineNo, doc.Lines[1].LineNo)
	}
}

func TestAddLine_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LineInput)
	}{
		{"missing item", func(in *LineInput) { in.ItemID = id.Nil() }},
		{"negative quantity", func(in *LineInput) { in.CountedQuantity = types.NewQuantityFromFloat64(-1) }},
		{"empty unit", func(in *LineInput) { in.Unit = "" }},
		{"missing counted_by", func(in *LineInput) { in.CountedBy = id.Nil() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewSession(id.New(), id.New(), "")
			in := validLineInput()
			tt.mutate(&in)

			_, err := doc.AddLine(in)
			appErr, ok := apperror.AsAppError(err)
			if !ok || appErr.Code != apperror.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAddLine_ClosedSessionRejected(t *testing.T) {
	doc := NewSession(id.New(), id.New(), "")
	if _, err := doc.AddLine(validLineInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := doc.Close(id.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := doc.AddLine(validLineInput())
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInvalidState {
		t.Fatalf("expected invalid state error, got %v", err)
	}
}

func TestClose_Transition(t *testing.T) {
	doc := NewSession(id.New(), id.New(), "")
	if _, err := doc.AddLine(validLineInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	closedBy := id.New()
	if err := doc.Close(closedBy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Status != StatusClosed {
		t.Errorf("expected CLOSED, got %s", doc.Status)
	}
	if doc.ClosedAt == nil || doc.ClosedBy == nil || *doc.ClosedBy != closedBy {
		t.Errorf("close metadata not recorded: %+v", doc)
	}
}

func TestClose_AlreadyClosed(t *testing.T) {
	doc := NewSession(id.New(), id.New(), "")
	if _, err := doc.AddLine(validLineInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := doc.Close(id.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := doc.Close(id.New())
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInvalidState {
		t.Fatalf("expected invalid state error, got %v", err)
	}
}

func TestClose_EmptySessionRejected(t *testing.T) {
	doc := NewSession(id.New(), id.New(), "")

	err := doc.Close(id.New())
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if doc.Status != StatusDraft {
		t.Errorf("failed close must not change status, got %s", doc.Status)
	}
}
