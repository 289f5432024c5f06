// Package ledger provides the stock ledger register.
package ledger

import (
	"context"
	"time"

	"creamery/internal/core/entity"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
)

// Repository defines operations for the stock ledger.
//
// Mutations (ApplyCount, ApplyDelta) must be atomic per (item, location) key:
// the implementation resolves concurrent writers at the database level, never
// with an application-wide lock.
type Repository interface {
	// Entry operations

	// GetEntry returns the current entry for item+location.
	// Returns a NotFound error when no entry exists yet.
	GetEntry(ctx context.Context, itemID, locationID id.ID) (entity.StockEntry, error)

	// GetEntriesByLocation returns entries for a location
	GetEntriesByLocation(ctx context.Context, locationID id.ID, filter EntryFilter) ([]entity.StockEntry, error)

	// GetEntriesByItem returns entries across all locations for an item
	GetEntriesByItem(ctx context.Context, itemID id.ID) ([]entity.StockEntry, error)

	// ApplyCount overwrites the entry quantity with a counted value,
	// creating the entry if it does not exist
	ApplyCount(ctx context.Context, itemID, locationID id.ID, quantity types.Quantity) error

	// ApplyDelta adds delta to the entry quantity and returns the new value.
	// A negative delta that would drive the quantity below zero must fail
	// with an insufficient-stock error and leave the entry untouched.
	ApplyDelta(ctx context.Context, itemID, locationID id.ID, delta types.Quantity) (types.Quantity, error)

	// Movement journal

	// CreateMovements batch inserts journal rows
	CreateMovements(ctx context.Context, movements []entity.StockMovement) error

	// GetMovementsByRecorder retrieves all movements recorded by one document
	GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error)

	// GetMovementHistory returns movement history for an item
	GetMovementHistory(ctx context.Context, itemID id.ID, filter MovementFilter) ([]entity.StockMovement, error)

	// Reporting

	// GetBelowPar returns items whose total stock across locations is below
	// their par level (joined against the item catalog)
	GetBelowPar(ctx context.Context) ([]ParShortage, error)
}

// ParShortage is one row of the below-par report.
type ParShortage struct {
	ItemID        id.ID          `db:"item_id" json:"itemId"`
	ItemName      string         `db:"item_name" json:"itemName"`
	Unit          string         `db:"unit" json:"unit"`
	MinStockLevel types.Quantity `db:"min_stock_level" json:"minStockLevel"`
	ParStockLevel types.Quantity `db:"par_stock_level" json:"parStockLevel"`
	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`
}

// EntryFilter for filtering entry queries.
type EntryFilter struct {
	ItemIDs     []id.ID
	ExcludeZero bool
}

// MovementFilter for filtering movement history.
type MovementFilter struct {
	LocationID *id.ID
	RecordType *entity.RecordType
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}
