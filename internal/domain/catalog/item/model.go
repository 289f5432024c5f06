// Package item provides the item catalog: everything the facility counts,
// produces or wastes.
package item

import (
	"context"

	"creamery/internal/core/apperror"
	"creamery/internal/core/entity"
	"creamery/internal/core/types"
)

// Item represents a stockable product or ingredient.
type Item struct {
	entity.BaseCatalog

	Name string `db:"name" json:"name"`

	// Unit is the counting unit (tub, pan, tray, kg)
	Unit string `db:"unit" json:"unit"`

	// MinStockLevel triggers shortage alerts
	MinStockLevel types.Quantity `db:"min_stock_level" json:"minStockLevel"`

	// ParStockLevel is the target quantity to keep on hand
	ParStockLevel types.Quantity `db:"par_stock_level" json:"parStockLevel"`

	Supplier string `db:"supplier" json:"supplier,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`
}

// NewItem creates a new active item.
func NewItem(name, unit string) *Item {
	return &Item{
		BaseCatalog: entity.NewBaseCatalog(),
		Name:        name,
		Unit:        unit,
		IsActive:    true,
	}
}

// Validate implements entity.Validatable.
func (i *Item) Validate(ctx context.Context) error {
	if i.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if i.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	if i.MinStockLevel.IsNegative() {
		return apperror.NewValidation("min stock level must not be negative").
			WithDetail("field", "minStockLevel")
	}
	if i.ParStockLevel.IsNegative() {
		return apperror.NewValidation("par stock level must not be negative").
			WithDetail("field", "parStockLevel")
	}
	if !i.ParStockLevel.IsZero() && i.ParStockLevel < i.MinStockLevel {
		return apperror.NewValidation("par stock level must not be below min stock level").
			WithDetail("field", "parStockLevel")
	}
	return nil
}
