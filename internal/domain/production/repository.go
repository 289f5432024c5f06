package production

import (
	"context"
	"time"

	"creamery/internal/core/id"
	"creamery/internal/domain"
)

// Repository defines persistence operations for production batches.
type Repository interface {
	// Create inserts a batch. Must fail with a duplicate error when the
	// lot code is already taken (unique constraint backstop).
	Create(ctx context.Context, doc *Batch) error

	// GetByID retrieves a batch
	GetByID(ctx context.Context, docID id.ID) (*Batch, error)

	// GetByLotCode retrieves a batch by its lot code
	GetByLotCode(ctx context.Context, lotCode string) (*Batch, error)

	// Update modifies a batch with optimistic version check
	Update(ctx context.Context, doc *Batch) error

	// List retrieves batches with filtering and pagination
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Batch], error)
}

// ListFilter for filtering batches.
type ListFilter struct {
	domain.ListFilter

	ItemID     *id.ID
	LocationID *id.ID
	Status     *Status
	MadeFrom   *time.Time
	MadeTo     *time.Time
}
