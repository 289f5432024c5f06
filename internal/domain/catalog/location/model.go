// Package location provides the location catalog: the physical places stock
// lives in (shop counters, kitchens, cold storage).
package location

import (
	"context"

	"creamery/internal/core/apperror"
	"creamery/internal/core/entity"
	"creamery/internal/core/id"
)

// Type defines the location category.
type Type string

const (
	TypeShop    Type = "SHOP"
	TypeKitchen Type = "KITCHEN"
	TypeStorage Type = "STORAGE"
)

// Location represents a physical stock location.
type Location struct {
	entity.BaseCatalog

	Name string `db:"name" json:"name"`
	Type Type   `db:"type" json:"type"`

	// ParentID groups locations (e.g. freezers within a shop)
	ParentID *id.ID `db:"parent_id" json:"parentId,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`
}

// NewLocation creates a new active location.
func NewLocation(name string, locType Type) *Location {
	return &Location{
		BaseCatalog: entity.NewBaseCatalog(),
		Name:        name,
		Type:        locType,
		IsActive:    true,
	}
}

// Validate implements entity.Validatable.
func (l *Location) Validate(ctx context.Context) error {
	if l.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !isValidType(l.Type) {
		return apperror.NewValidation("invalid location type").
			WithDetail("field", "type").
			WithDetail("value", string(l.Type))
	}
	return nil
}

func isValidType(t Type) bool {
	switch t {
	case TypeShop, TypeKitchen, TypeStorage:
		return true
	}
	return false
}
