package dto

import (
	"time"

	"creamery/internal/core/id"
	"creamery/internal/core/types"
	"creamery/internal/domain/waste"
)

// --- Request DTOs ---

// RecordWasteRequest records a waste event. Either a batch id or an explicit
// item and location must be given; with a batch the item and location default
// to the batch's.
type RecordWasteRequest struct {
	BatchID    string         `json:"batchId,omitempty" binding:"omitempty,uuid"`
	ItemID     string         `json:"itemId,omitempty" binding:"omitempty,uuid"`
	LocationID string         `json:"locationId,omitempty" binding:"omitempty,uuid"`
	Quantity   types.Quantity `json:"quantity"`
	Unit       string         `json:"unit" binding:"required"`
	Reason     string         `json:"reason" binding:"required,oneof=SPOILAGE TEMP_EXCURSION QA_FAIL ACCIDENT OTHER"`
	Notes      string         `json:"notes,omitempty"`
}

// ToInput converts the request to a domain record input.
func (r *RecordWasteRequest) ToInput(recordedBy id.ID) (waste.RecordInput, error) {
	in := waste.RecordInput{
		Quantity:   r.Quantity,
		Unit:       r.Unit,
		Reason:     waste.Reason(r.Reason),
		Notes:      r.Notes,
		RecordedBy: recordedBy,
	}
	if r.BatchID != "" {
		batchID, err := parseID(r.BatchID, "batchId")
		if err != nil {
			return waste.RecordInput{}, err
		}
		in.BatchID = &batchID
	}
	if r.ItemID != "" {
		itemID, err := parseID(r.ItemID, "itemId")
		if err != nil {
			return waste.RecordInput{}, err
		}
		in.ItemID = itemID
	}
	if r.LocationID != "" {
		locID, err := parseID(r.LocationID, "locationId")
		if err != nil {
			return waste.RecordInput{}, err
		}
		in.LocationID = &locID
	}
	return in, nil
}

// ListWasteRequest for listing waste events.
type ListWasteRequest struct {
	ListRequest

	BatchID    string     `form:"batchId" binding:"omitempty,uuid"`
	ItemID     string     `form:"itemId" binding:"omitempty,uuid"`
	LocationID string     `form:"locationId" binding:"omitempty,uuid"`
	Reason     string     `form:"reason" binding:"omitempty,oneof=SPOILAGE TEMP_EXCURSION QA_FAIL ACCIDENT OTHER"`
	FromDate   *time.Time `form:"fromDate" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"toDate" time_format:"2006-01-02"`
}

// ToFilter converts the request to a domain filter.
func (r *ListWasteRequest) ToFilter() waste.ListFilter {
	filter := waste.ListFilter{ListFilter: r.ListRequest.ToFilter()}
	if r.BatchID != "" {
		batchID := id.MustParse(r.BatchID)
		filter.BatchID = &batchID
	}
	if r.ItemID != "" {
		itemID := id.MustParse(r.ItemID)
		filter.ItemID = &itemID
	}
	if r.LocationID != "" {
		locID := id.MustParse(r.LocationID)
		filter.LocationID = &locID
	}
	if r.Reason != "" {
		reason := waste.Reason(r.Reason)
		filter.Reason = &reason
	}
	filter.FromDate = r.FromDate
	filter.ToDate = r.ToDate
	return filter
}

// --- Response DTOs ---

// WasteEventResponse contains waste event details.
type WasteEventResponse struct {
	ID         string         `json:"id"`
	BatchID    string         `json:"batchId,omitempty"`
	ItemID     string         `json:"itemId"`
	LocationID string         `json:"locationId"`
	Quantity   types.Quantity `json:"quantity"`
	Unit       string         `json:"unit"`
	Reason     string         `json:"reason"`
	Notes      string         `json:"notes,omitempty"`
	RecordedBy string         `json:"recordedBy"`
	RecordedAt time.Time      `json:"recordedAt"`
}

// FromWasteEvent creates WasteEventResponse from domain event.
func FromWasteEvent(e *waste.Event) *WasteEventResponse {
	resp := &WasteEventResponse{
		ID:         e.ID.String(),
		ItemID:     e.ItemID.String(),
		LocationID: e.LocationID.String(),
		Quantity:   e.Quantity,
		Unit:       e.Unit,
		Reason:     string(e.Reason),
		Notes:      e.Notes,
		RecordedBy: e.RecordedBy.String(),
		RecordedAt: e.RecordedAt,
	}
	if e.BatchID != nil {
		resp.BatchID = e.BatchID.String()
	}
	return resp
}

// FromWasteEvents converts a slice of events.
func FromWasteEvents(events []*waste.Event) []*WasteEventResponse {
	out := make([]*WasteEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, FromWasteEvent(e))
	}
	return out
}
