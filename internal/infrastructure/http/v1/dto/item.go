package dto

import (
	"creamery/internal/core/types"
	"creamery/internal/domain/catalog/item"
)

// --- Request DTOs ---

// CreateItemRequest for item creation.
type CreateItemRequest struct {
	Name          string          `json:"name" binding:"required"`
	Unit          string          `json:"unit" binding:"required"`
	MinStockLevel *types.Quantity `json:"minStockLevel,omitempty"`
	ParStockLevel *types.Quantity `json:"parStockLevel,omitempty"`
	Supplier      string          `json:"supplier,omitempty"`
}

// ToEntity converts the request to a new item.
func (r *CreateItemRequest) ToEntity() *item.Item {
	it := item.NewItem(r.Name, r.Unit)
	if r.MinStockLevel != nil {
		it.MinStockLevel = *r.MinStockLevel
	}
	if r.ParStockLevel != nil {
		it.ParStockLevel = *r.ParStockLevel
	}
	it.Supplier = r.Supplier
	return it
}

// UpdateItemRequest for item updates. Nil fields are left unchanged.
type UpdateItemRequest struct {
	Name          *string         `json:"name,omitempty"`
	Unit          *string         `json:"unit,omitempty"`
	MinStockLevel *types.Quantity `json:"minStockLevel,omitempty"`
	ParStockLevel *types.Quantity `json:"parStockLevel,omitempty"`
	Supplier      *string         `json:"supplier,omitempty"`
	IsActive      *bool           `json:"isActive,omitempty"`
}

// ApplyTo applies non-nil fields to the item.
func (r *UpdateItemRequest) ApplyTo(it *item.Item) {
	if r.Name != nil {
		it.Name = *r.Name
	}
	if r.Unit != nil {
		it.Unit = *r.Unit
	}
	if r.MinStockLevel != nil {
		it.MinStockLevel = *r.MinStockLevel
	}
	if r.ParStockLevel != nil {
		it.ParStockLevel = *r.ParStockLevel
	}
	if r.Supplier != nil {
		it.Supplier = *r.Supplier
	}
	if r.IsActive != nil {
		it.IsActive = *r.IsActive
	}
}

// --- Response DTOs ---

// ItemResponse contains item details.
type ItemResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Unit          string         `json:"unit"`
	MinStockLevel types.Quantity `json:"minStockLevel"`
	ParStockLevel types.Quantity `json:"parStockLevel"`
	Supplier      string         `json:"supplier,omitempty"`
	IsActive      bool           `json:"isActive"`
	Version       int            `json:"version"`
}

// FromItem creates ItemResponse from domain item.
func FromItem(it *item.Item) *ItemResponse {
	return &ItemResponse{
		ID:            it.ID.String(),
		Name:          it.Name,
		Unit:          it.Unit,
		MinStockLevel: it.MinStockLevel,
		ParStockLevel: it.ParStockLevel,
		Supplier:      it.Supplier,
		IsActive:      it.IsActive,
		Version:       it.Version,
	}
}

// FromItems converts a slice of items.
func FromItems(items []*item.Item) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, FromItem(it))
	}
	return out
}
