// Package production provides the production batch document.
package production

import (
	"context"
	"fmt"
	"time"

	"creamery/internal/core/apperror"
	"creamery/internal/core/entity"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
)

// Status represents the lifecycle state of a production batch.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusRunOut     Status = "RUN_OUT"
	StatusDiscarded  Status = "DISCARDED"
)

// Batch represents one production run of an item, identified by its lot code.
type Batch struct {
	entity.BaseDocument

	LotCode string `db:"lot_code" json:"lotCode"`

	ItemID     id.ID `db:"item_id" json:"itemId"`
	LocationID id.ID `db:"location_id" json:"locationId"`

	QuantityMade types.Quantity `db:"quantity_made" json:"quantityMade"`
	Unit         string         `db:"unit" json:"unit"`

	Status Status `db:"status" json:"status"`

	MadeBy    id.ID     `db:"made_by" json:"madeBy"`
	StartedAt time.Time `db:"started_at" json:"startedAt"`

	FinishedAt *time.Time `db:"finished_at" json:"finishedAt,omitempty"`
	RunOutAt   *time.Time `db:"run_out_at" json:"runOutAt,omitempty"`

	DiscardedAt   *time.Time `db:"discarded_at" json:"discardedAt,omitempty"`
	DiscardReason string     `db:"discard_reason" json:"discardReason,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewBatch creates a new in-progress batch. The lot code is assigned by the
// service from the daily sequence.
func NewBatch(itemID, locationID, madeBy id.ID, quantityMade types.Quantity, unit, notes string) *Batch {
	return &Batch{
		BaseDocument: entity.NewBaseDocument(),
		ItemID:       itemID,
		LocationID:   locationID,
		QuantityMade: quantityMade,
		Unit:         unit,
		Status:       StatusInProgress,
		MadeBy:       madeBy,
		StartedAt:    time.Now().UTC(),
		Notes:        notes,
	}
}

// Validate implements entity.Validatable.
func (b *Batch) Validate(ctx context.Context) error {
	if id.IsNil(b.ItemID) {
		return apperror.NewValidation("item is required").
			WithDetail("field", "itemId")
	}
	if id.IsNil(b.LocationID) {
		return apperror.NewValidation("storage location is required").
			WithDetail("field", "locationId")
	}
	if id.IsNil(b.MadeBy) {
		return apperror.NewValidation("made_by is required").
			WithDetail("field", "madeBy")
	}
	if !b.QuantityMade.IsPositive() {
		return apperror.NewValidation("quantity made must be positive").
			WithDetail("field", "quantityMade")
	}
	if b.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	return nil
}

// Complete marks production finished. Completing never touches stock: the
// made quantity was credited when the batch was created.
func (b *Batch) Complete() error {
	switch b.Status {
	case StatusInProgress:
		now := time.Now().UTC()
		b.Status = StatusCompleted
		b.FinishedAt = &now
		return nil
	case StatusCompleted:
		return apperror.NewInvalidState("batch is already completed")
	case StatusRunOut:
		return apperror.NewInvalidState("cannot complete a run out batch")
	case StatusDiscarded:
		return apperror.NewInvalidState("cannot complete a discarded batch")
	default:
		return apperror.NewInternal(fmt.Errorf("unknown batch status %q", b.Status))
	}
}

// RunOut marks a completed batch as fully consumed.
func (b *Batch) RunOut() error {
	switch b.Status {
	case StatusCompleted:
		now := time.Now().UTC()
		b.Status = StatusRunOut
		b.RunOutAt = &now
		return nil
	case StatusInProgress:
		return apperror.NewInvalidState("batch must be completed before running out")
	case StatusRunOut:
		return apperror.NewInvalidState("batch is already run out")
	case StatusDiscarded:
		return apperror.NewInvalidState("cannot run out a discarded batch")
	default:
		return apperror.NewInternal(fmt.Errorf("unknown batch status %q", b.Status))
	}
}

// Discard removes a batch from circulation, recording why and when.
func (b *Batch) Discard(reason string, discardedAt time.Time) error {
	if reason == "" {
		return apperror.NewValidation("discard reason is required").
			WithDetail("field", "reason")
	}

	switch b.Status {
	case StatusInProgress, StatusCompleted:
		if discardedAt.IsZero() {
			discardedAt = time.Now().UTC()
		}
		b.Status = StatusDiscarded
		b.DiscardedAt = &discardedAt
		b.DiscardReason = reason
		return nil
	case StatusRunOut:
		return apperror.NewInvalidState("cannot discard a run out batch")
	case StatusDiscarded:
		return apperror.NewInvalidState("batch is already discarded")
	default:
		return apperror.NewInternal(fmt.Errorf("unknown batch status %q", b.Status))
	}
}
