package dto

import (
	"time"

	"creamery/internal/core/entity"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
	"creamery/internal/domain/ledger"
)

// --- Request DTOs ---

// AdjustStockRequest for a manual stock adjustment.
type AdjustStockRequest struct {
	ItemID     string         `json:"itemId" binding:"required,uuid"`
	LocationID string         `json:"locationId" binding:"required,uuid"`
	Delta      types.Quantity `json:"delta"`
}

// MovementHistoryRequest for listing an item's movement history.
type MovementHistoryRequest struct {
	LocationID string     `form:"locationId" binding:"omitempty,uuid"`
	RecordType string     `form:"recordType" binding:"omitempty,oneof=receipt expense count"`
	FromDate   *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"toDate" time_format:"2006-01-02"`
	Limit      int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset     int        `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts the request to a domain filter.
func (r *MovementHistoryRequest) ToFilter() ledger.MovementFilter {
	filter := ledger.MovementFilter{
		FromDate: r.FromDate,
		ToDate:   r.ToDate,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
	if r.LocationID != "" {
		locID := id.MustParse(r.LocationID)
		filter.LocationID = &locID
	}
	if r.RecordType != "" {
		recordType := entity.RecordType(r.RecordType)
		filter.RecordType = &recordType
	}
	return filter
}

// --- Response DTOs ---

// AdjustStockResponse contains the quantity after a manual adjustment.
type AdjustStockResponse struct {
	ItemID      string         `json:"itemId"`
	LocationID  string         `json:"locationId"`
	NewQuantity types.Quantity `json:"newQuantity"`
}

// StockEntryResponse contains one ledger entry.
type StockEntryResponse struct {
	ItemID      string         `json:"itemId"`
	LocationID  string         `json:"locationId"`
	Quantity    types.Quantity `json:"quantity"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// FromStockEntry creates StockEntryResponse from a ledger entry.
func FromStockEntry(e entity.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ItemID:      e.ItemID.String(),
		LocationID:  e.LocationID.String(),
		Quantity:    e.Quantity,
		LastUpdated: e.LastUpdated,
	}
}

// FromStockEntries converts a slice of entries.
func FromStockEntries(entries []entity.StockEntry) []StockEntryResponse {
	out := make([]StockEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromStockEntry(e))
	}
	return out
}

// AvailabilityResponse contains the total quantity of an item across
// all locations.
type AvailabilityResponse struct {
	ItemID   string         `json:"itemId"`
	Quantity types.Quantity `json:"quantity"`
}

// MovementResponse contains one journal row.
type MovementResponse struct {
	LineID       string         `json:"lineId"`
	RecorderID   string         `json:"recorderId"`
	RecorderType string         `json:"recorderType"`
	RecordType   string         `json:"recordType"`
	ItemID       string         `json:"itemId"`
	LocationID   string         `json:"locationId"`
	Quantity     types.Quantity `json:"quantity"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// FromMovement creates MovementResponse from a journal row.
func FromMovement(m entity.StockMovement) MovementResponse {
	return MovementResponse{
		LineID:       m.LineID.String(),
		RecorderID:   m.RecorderID.String(),
		RecorderType: m.RecorderType,
		RecordType:   string(m.RecordType),
		ItemID:       m.ItemID.String(),
		LocationID:   m.LocationID.String(),
		Quantity:     m.Quantity,
		CreatedAt:    m.CreatedAt,
	}
}

// FromMovements converts a slice of journal rows.
func FromMovements(movements []entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, FromMovement(m))
	}
	return out
}

// ParShortageResponse contains one item below its par level.
type ParShortageResponse struct {
	ItemID        string         `json:"itemId"`
	ItemName      string         `json:"itemName"`
	Unit          string         `json:"unit"`
	MinStockLevel types.Quantity `json:"minStockLevel"`
	ParStockLevel types.Quantity `json:"parStockLevel"`
	TotalQuantity types.Quantity `json:"totalQuantity"`
}

// FromParShortage creates ParShortageResponse from a shortage row.
func FromParShortage(s ledger.ParShortage) ParShortageResponse {
	return ParShortageResponse{
		ItemID:        s.ItemID.String(),
		ItemName:      s.ItemName,
		Unit:          s.Unit,
		MinStockLevel: s.MinStockLevel,
		ParStockLevel: s.ParStockLevel,
		TotalQuantity: s.TotalQuantity,
	}
}

// FromParShortages converts a slice of shortage rows.
func FromParShortages(shortages []ledger.ParShortage) []ParShortageResponse {
	out := make([]ParShortageResponse, 0, len(shortages))
	for _, s := range shortages {
		out = append(out, FromParShortage(s))
	}
	return out
}
