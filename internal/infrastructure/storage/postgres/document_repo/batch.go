package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"creamery/internal/core/apperror"
	"creamery/internal/domain"
	"creamery/internal/domain/production"
	"creamery/internal/infrastructure/storage/postgres"
)

const batchesTable = "production_batches"

// BatchRepo implements production.Repository.
//
// The production_batches table carries a unique index on lot_code. Create
// surfaces a violation as a duplicate error so the service can retry with
// the next sequence value.
type BatchRepo struct {
	*BaseDocumentRepo[*production.Batch]
}

// NewBatchRepo creates a new production batch repository.
func NewBatchRepo(txManager *postgres.TxManager) *BatchRepo {
	return &BatchRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*production.Batch](
			txManager,
			batchesTable,
			postgres.ExtractDBColumns[production.Batch](),
			func() *production.Batch { return &production.Batch{} },
		),
	}
}

// GetByLotCode retrieves a batch by its lot code.
func (r *BatchRepo) GetByLotCode(ctx context.Context, lotCode string) (*production.Batch, error) {
	entity := &production.Batch{}
	q := r.baseSelect().
		Where(squirrel.Eq{"lot_code": lotCode})

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(batchesTable, lotCode)
		}
		return entity, fmt.Errorf("get by lot code: %w", err)
	}

	return entity, nil
}

// List retrieves batches with filtering and pagination.
func (r *BatchRepo) List(ctx context.Context, filter production.ListFilter) (domain.ListResult[*production.Batch], error) {
	q := r.baseSelect()

	if filter.ItemID != nil {
		q = q.Where(squirrel.Eq{"item_id": *filter.ItemID})
	}
	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.MadeFrom != nil {
		q = q.Where(squirrel.GtOrEq{"started_at": *filter.MadeFrom})
	}
	if filter.MadeTo != nil {
		q = q.Where(squirrel.LtOrEq{"started_at": *filter.MadeTo})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"lot_code": "%" + filter.Search + "%"})
	}

	return r.listPage(ctx, q, filter.ListFilter, "started_at DESC")
}

var _ production.Repository = (*BatchRepo)(nil)
