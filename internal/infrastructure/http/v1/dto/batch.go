package dto

import (
	"time"

	"creamery/internal/core/id"
	"creamery/internal/core/types"
	"creamery/internal/domain/production"
)

// --- Request DTOs ---

// CreateBatchRequest starts a new production batch.
type CreateBatchRequest struct {
	ItemID       string         `json:"itemId" binding:"required,uuid"`
	LocationID   string         `json:"locationId" binding:"required,uuid"`
	QuantityMade types.Quantity `json:"quantityMade"`
	Unit         string         `json:"unit" binding:"required"`
	Notes        string         `json:"notes,omitempty"`
}

// ToEntity converts the request to a new batch.
func (r *CreateBatchRequest) ToEntity(madeBy id.ID) (*production.Batch, error) {
	itemID, err := parseID(r.ItemID, "itemId")
	if err != nil {
		return nil, err
	}
	locationID, err := parseID(r.LocationID, "locationId")
	if err != nil {
		return nil, err
	}
	return production.NewBatch(itemID, locationID, madeBy, r.QuantityMade, r.Unit, r.Notes), nil
}

// DiscardBatchRequest removes a batch from circulation.
type DiscardBatchRequest struct {
	Reason      string     `json:"reason" binding:"required"`
	DiscardedAt *time.Time `json:"discardedAt,omitempty"`
}

// ListBatchesRequest for listing batches.
type ListBatchesRequest struct {
	ListRequest

	ItemID     string     `form:"itemId" binding:"omitempty,uuid"`
	LocationID string     `form:"locationId" binding:"omitempty,uuid"`
	Status     string     `form:"status" binding:"omitempty,oneof=IN_PROGRESS COMPLETED RUN_OUT DISCARDED"`
	MadeFrom   *time.Time `form:"madeFrom" time_format:"2006-01-02"`
	MadeTo     *time.Time `form:"madeTo" time_format:"2006-01-02"`
}

// ToFilter converts the request to a domain filter.
func (r *ListBatchesRequest) ToFilter() production.ListFilter {
	filter := production.ListFilter{ListFilter: r.ListRequest.ToFilter()}
	if r.ItemID != "" {
		itemID := id.MustParse(r.ItemID)
		filter.ItemID = &itemID
	}
	if r.LocationID != "" {
		locID := id.MustParse(r.LocationID)
		filter.LocationID = &locID
	}
	if r.Status != "" {
		status := production.Status(r.Status)
		filter.Status = &status
	}
	filter.MadeFrom = r.MadeFrom
	filter.MadeTo = r.MadeTo
	return filter
}

// --- Response DTOs ---

// BatchResponse contains batch details.
type BatchResponse struct {
	ID            string         `json:"id"`
	LotCode       string         `json:"lotCode"`
	ItemID        string         `json:"itemId"`
	LocationID    string         `json:"locationId"`
	QuantityMade  types.Quantity `json:"quantityMade"`
	Unit          string         `json:"unit"`
	Status        string         `json:"status"`
	MadeBy        string         `json:"madeBy"`
	StartedAt     time.Time      `json:"startedAt"`
	FinishedAt    *time.Time     `json:"finishedAt,omitempty"`
	RunOutAt      *time.Time     `json:"runOutAt,omitempty"`
	DiscardedAt   *time.Time     `json:"discardedAt,omitempty"`
	DiscardReason string         `json:"discardReason,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Version       int            `json:"version"`
}

// FromBatch creates BatchResponse from domain batch.
func FromBatch(b *production.Batch) *BatchResponse {
	return &BatchResponse{
		ID:            b.ID.String(),
		LotCode:       b.LotCode,
		ItemID:        b.ItemID.String(),
		LocationID:    b.LocationID.String(),
		QuantityMade:  b.QuantityMade,
		Unit:          b.Unit,
		Status:        string(b.Status),
		MadeBy:        b.MadeBy.String(),
		StartedAt:     b.StartedAt,
		FinishedAt:    b.FinishedAt,
		RunOutAt:      b.RunOutAt,
		DiscardedAt:   b.DiscardedAt,
		DiscardReason: b.DiscardReason,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		Version:       b.Version,
	}
}

// FromBatches converts a slice of batches.
func FromBatches(batches []*production.Batch) []*BatchResponse {
	out := make([]*BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, FromBatch(b))
	}
	return out
}
