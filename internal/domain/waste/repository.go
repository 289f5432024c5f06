package waste

import (
	"context"
	"time"

	"creamery/internal/core/id"
	"creamery/internal/domain"
)

// Repository defines persistence operations for waste events.
// The journal is append-only: no update, no delete.
type Repository interface {
	// Create inserts a waste event
	Create(ctx context.Context, event *Event) error

	// GetByID retrieves an event
	GetByID(ctx context.Context, eventID id.ID) (*Event, error)

	// List retrieves events with filtering and pagination
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Event], error)
}

// ListFilter for filtering waste events.
type ListFilter struct {
	domain.ListFilter

	BatchID    *id.ID
	ItemID     *id.ID
	LocationID *id.ID
	Reason     *Reason
	FromDate   *time.Time
	ToDate     *time.Time
}
