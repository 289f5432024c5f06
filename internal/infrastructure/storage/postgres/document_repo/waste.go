package document_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"creamery/internal/domain"
	"creamery/internal/domain/waste"
	"creamery/internal/infrastructure/storage/postgres"
)

const wasteEventsTable = "waste_events"

// WasteRepo implements waste.Repository. Events are append-only, so the
// embedded Update is never called for this document type.
type WasteRepo struct {
	*BaseDocumentRepo[*waste.Event]
}

// NewWasteRepo creates a new waste event repository.
func NewWasteRepo(txManager *postgres.TxManager) *WasteRepo {
	return &WasteRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*waste.Event](
			txManager,
			wasteEventsTable,
			postgres.ExtractDBColumns[waste.Event](),
			func() *waste.Event { return &waste.Event{} },
		),
	}
}

// List retrieves waste events with filtering and pagination.
func (r *WasteRepo) List(ctx context.Context, filter waste.ListFilter) (domain.ListResult[*waste.Event], error) {
	q := r.baseSelect()

	if filter.BatchID != nil {
		q = q.Where(squirrel.Eq{"batch_id": *filter.BatchID})
	}
	if filter.ItemID != nil {
		q = q.Where(squirrel.Eq{"item_id": *filter.ItemID})
	}
	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.Reason != nil {
		q = q.Where(squirrel.Eq{"reason": *filter.Reason})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"recorded_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"recorded_at": *filter.ToDate})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"notes": "%" + filter.Search + "%"})
	}

	return r.listPage(ctx, q, filter.ListFilter, "recorded_at DESC")
}

var _ waste.Repository = (*WasteRepo)(nil)
