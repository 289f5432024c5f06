package entity

import (
	"time"

	"creamery/internal/core/id"
	"creamery/internal/core/types"
)

// RecordType defines movement direction in the stock journal.
type RecordType string

const (
	// RecordTypeReceipt increases stock
	RecordTypeReceipt RecordType = "receipt"
	// RecordTypeExpense decreases stock
	RecordTypeExpense RecordType = "expense"
	// RecordTypeCount overwrites stock with a physically counted value
	RecordTypeCount RecordType = "count"
)

// StockMovement is one immutable row in the stock journal. Every mutation of
// the ledger appends a movement recording who caused it (the recorder) and in
// which direction the quantity moved. Movements are never updated.
type StockMovement struct {
	// LineID is unique identifier for this movement line (UUIDv7)
	LineID id.ID `db:"line_id" json:"lineId"`

	// RecorderID is the entity that caused this movement
	// (session, production batch or waste event id)
	RecorderID id.ID `db:"recorder_id" json:"recorderId"`

	// RecorderType is the recorder kind (e.g. "InventorySession", "ProductionBatch", "WasteEvent")
	RecorderType string `db:"recorder_type" json:"recorderType"`

	// RecordType: receipt, expense or count
	RecordType RecordType `db:"record_type" json:"recordType"`

	// Dimensions
	ItemID     id.ID `db:"item_id" json:"itemId"`
	LocationID id.ID `db:"location_id" json:"locationId"`

	// Quantity moved (always non-negative; direction comes from RecordType).
	// For count records this is the new absolute quantity.
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// CreatedAt is when the movement was recorded
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewStockMovement creates a new stock movement with generated LineID.
func NewStockMovement(
	recorderID id.ID,
	recorderType string,
	recordType RecordType,
	itemID, locationID id.ID,
	quantity types.Quantity,
) StockMovement {
	return StockMovement{
		LineID:       id.New(),
		RecorderID:   recorderID,
		RecorderType: recorderType,
		RecordType:   recordType,
		ItemID:       itemID,
		LocationID:   locationID,
		Quantity:     quantity,
		CreatedAt:    time.Now().UTC(),
	}
}

// StockEntry is the authoritative current quantity for one (item, location)
// pair. Created lazily on first write, never deleted; zero is a valid resting
// state. At most one entry exists per key.
type StockEntry struct {
	// Dimensions (composite key)
	ItemID     id.ID `db:"item_id" json:"itemId"`
	LocationID id.ID `db:"location_id" json:"locationId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`

	LastUpdated time.Time `db:"last_updated" json:"lastUpdated"`
}
