// Package waste provides append-only waste accounting.
package waste

import (
	"context"
	"time"

	"creamery/internal/core/apperror"
	"creamery/internal/core/entity"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
)

// Reason classifies why product was wasted.
type Reason string

const (
	ReasonSpoilage      Reason = "SPOILAGE"
	ReasonTempExcursion Reason = "TEMP_EXCURSION"
	ReasonQAFail        Reason = "QA_FAIL"
	ReasonAccident      Reason = "ACCIDENT"
	ReasonOther         Reason = "OTHER"
)

// Valid reports whether the reason is a known value.
func (r Reason) Valid() bool {
	switch r {
	case ReasonSpoilage, ReasonTempExcursion, ReasonQAFail, ReasonAccident, ReasonOther:
		return true
	}
	return false
}

// Event is one recorded waste occurrence. Events are append-only: there is
// no update or delete, corrections are new events.
type Event struct {
	entity.BaseDocument

	// BatchID links the waste to a production batch when known
	BatchID *id.ID `db:"batch_id" json:"batchId,omitempty"`

	ItemID     id.ID `db:"item_id" json:"itemId"`
	LocationID id.ID `db:"location_id" json:"locationId"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`
	Unit     string         `db:"unit" json:"unit"`

	Reason Reason `db:"reason" json:"reason"`
	Notes  string `db:"notes" json:"notes,omitempty"`

	RecordedBy id.ID     `db:"recorded_by" json:"recordedBy"`
	RecordedAt time.Time `db:"recorded_at" json:"recordedAt"`
}

// Validate implements entity.Validatable.
func (e *Event) Validate(ctx context.Context) error {
	if id.IsNil(e.ItemID) {
		return apperror.NewValidation("item is required").
			WithDetail("field", "itemId")
	}
	if id.IsNil(e.LocationID) {
		return apperror.NewValidation("location is required").
			WithDetail("field", "locationId")
	}
	if !e.Quantity.IsPositive() {
		return apperror.NewValidation("waste quantity must be positive").
			WithDetail("field", "quantity")
	}
	if e.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	if !e.Reason.Valid() {
		return apperror.NewValidation("unknown waste reason").
			WithDetail("reason", string(e.Reason))
	}
	if id.IsNil(e.RecordedBy) {
		return apperror.NewValidation("recorded_by is required").
			WithDetail("field", "recordedBy")
	}
	return nil
}
