package session

import (
	"context"

	"creamery/internal/core/id"
	"creamery/internal/domain"
)

// Repository defines persistence operations for inventory sessions.
type Repository interface {
	// Create inserts the session header
	Create(ctx context.Context, doc *Session) error

	// GetByID retrieves the session header (without lines)
	GetByID(ctx context.Context, docID id.ID) (*Session, error)

	// Update modifies the header with optimistic version check
	Update(ctx context.Context, doc *Session) error

	// AppendLine inserts one count line. Lines are never updated or deleted.
	AppendLine(ctx context.Context, docID id.ID, line Line) error

	// GetLines returns lines in recording order (line_no ascending)
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)

	// List retrieves sessions with filtering and pagination
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Session], error)
}

// ListFilter extends the common filter with session dimensions.
type ListFilter struct {
	domain.ListFilter

	LocationID *id.ID
	Status     *Status
}
