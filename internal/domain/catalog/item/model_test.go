package item

import (
	"context"
	"testing"

	"creamery/internal/core/apperror"
	"creamery/internal/core/types"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Item)
		wantErr bool
	}{
		{"valid", func(i *Item) {}, false},
		{"with levels", func(i *Item) {
			i.MinStockLevel = types.NewQuantityFromFloat64(2)
			i.ParStockLevel = types.NewQuantityFromFloat64(6)
		}, false},
		{"empty name", func(i *Item) { i.Name = "" }, true},
		{"empty unit", func(i *Item) { i.Unit = "" }, true},
		{"negative min", func(i *Item) { i.MinStockLevel = types.NewQuantityFromFloat64(-1) }, true},
		{"negative par", func(i *Item) { i.ParStockLevel = types.NewQuantityFromFloat64(-1) }, true},
		{"par below min", func(i *Item) {
			i.MinStockLevel = types.NewQuantityFromFloat64(6)
			i.ParStockLevel = types.NewQuantityFromFloat64(2)
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewItem("Vanilla Base", "tub")
			tt.mutate(it)

			err := it.Validate(context.Background())
			if tt.wantErr {
				appErr, ok := apperror.AsAppError(err)
				if !ok || appErr.Code != apperror.CodeValidation {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
