package production

import (
	"context"
	"testing"
	"time"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
)

func newTestBatch() *Batch {
	return NewBatch(id.New(), id.New(), id.New(), types.NewQuantityFromFloat64(20), "tub", "")
}

func TestNewBatch_StartsInProgress(t *testing.T) {
	b := newTestBatch()

	if b.Status != StatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", b.Status)
	}
	if err := b.Validate(context.Background()); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Batch)
	}{
		{"missing item", func(b *Batch) { b.ItemID = id.Nil() }},
		{"missing location", func(b *Batch) { b.LocationID = id.Nil() }},
		{"missing made_by", func(b *Batch) { b.MadeBy = id.Nil() }},
		{"zero quantity", func(b *Batch) { b.QuantityMade = 0 }},
		{"negative quantity", func(b *Batch) { b.QuantityMade = types.NewQuantityFromFloat64(-1) }},
		{"empty unit", func(b *Batch) { b.Unit = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBatch()
			tt.mutate(b)

			err := b.Validate(context.Background())
			appErr, ok := apperror.AsAppError(err)
			if !ok || appErr.Code != apperror.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestTransitions(t *testing.T) {
	advance := map[Status]func(*Batch) error{
		StatusCompleted: func(b *Batch) error { return b.Complete() },
		StatusRunOut: func(b *Batch) error {
			if err := b.Complete(); err != nil {
				return err
			}
			return b.RunOut()
		},
		StatusDiscarded: func(b *Batch) error { return b.Discard("qa fail", time.Time{}) },
	}

	tests := []struct {
		name    string
		from    Status
		apply   func(*Batch) error
		wantOK  bool
		wantEnd Status
	}{
		{"complete in progress", StatusInProgress, (*Batch).Complete, true, StatusCompleted},
		{"complete twice", StatusCompleted, (*Batch).Complete, false, StatusCompleted},
		{"complete run out", StatusRunOut, (*Batch).Complete, false, StatusRunOut},
		{"complete discarded", StatusDiscarded, (*Batch).Complete, false, StatusDiscarded},

		{"run out completed", StatusCompleted, (*Batch).RunOut, true, StatusRunOut},
		{"run out in progress", StatusInProgress, (*Batch).RunOut, false, StatusInProgress},
		{"run out twice", StatusRunOut, (*Batch).RunOut, false, StatusRunOut},
		{"run out discarded", StatusDiscarded, (*Batch).RunOut, false, StatusDiscarded},

		{"discard in progress", StatusInProgress, func(b *Batch) error { return b.Discard("spill", time.Time{}) }, true, StatusDiscarded},
		{"discard completed", StatusCompleted, func(b *Batch) error { return b.Discard("spill", time.Time{}) }, true, StatusDiscarded},
		{"discard run out", StatusRunOut, func(b *Batch) error { return b.Discard("spill", time.Time{}) }, false, StatusRunOut},
		{"discard twice", StatusDiscarded, func(b *Batch) error { return b.Discard("spill", time.Time{}) }, false, StatusDiscarded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBatch()
			if tt.from != StatusInProgress {
				if err := advance[tt.from](b); err != nil {
					t.Fatalf("advance to %s: %v", tt.from, err)
				}
			}

			err := tt.apply(b)
			if tt.wantOK && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.wantOK {
				appErr, ok := apperror.AsAppError(err)
				if !ok || appErr.Code != apperror.CodeInvalidState {
					t.Fatalf("expected invalid state error, got %v", err)
				}
			}
			if b.Status != tt.wantEnd {
				t.Errorf("expected status %s, got %s", tt.wantEnd, b.Status)
			}
		})
	}
}

func TestComplete_RecordsFinishedAt(t *testing.T) {
	b := newTestBatch()
	if err := b.Complete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.FinishedAt == nil {
		t.Error("finished_at must be set on completion")
	}
}

func TestDiscard_RecordsReasonAndDate(t *testing.T) {
	b := newTestBatch()
	when := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)

	if err := b.Discard("freezer failure", when); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.DiscardReason != "freezer failure" {
		t.Errorf("reason not recorded: %q", b.DiscardReason)
	}
	if b.DiscardedAt == nil || !b.DiscardedAt.Equal(when) {
		t.Errorf("discard date not recorded: %v", b.DiscardedAt)
	}
}

func TestDiscard_EmptyReasonRejected(t *testing.T) {
	b := newTestBatch()

	err := b.Discard("", time.Time{})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
