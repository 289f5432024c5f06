// Package ledger_repo provides the PostgreSQL implementation of the stock ledger.
package ledger_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"creamery/internal/core/apperror"
	"creamery/internal/core/entity"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
	"creamery/internal/domain/ledger"
	"creamery/internal/infrastructure/storage/postgres"
)

const (
	stockEntriesTable   = "stock_entries"
	stockMovementsTable = "stock_movements"
)

// LedgerRepo implements ledger.Repository.
//
// Mutations are single SQL statements, so concurrent writers to the same
// (item, location) key are serialized by the database row lock and never
// observe each other's half-applied state.
type LedgerRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewLedgerRepo creates a new stock ledger repository.
func NewLedgerRepo(txManager *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetEntry returns the current entry for item+location.
func (r *LedgerRepo) GetEntry(ctx context.Context, itemID, locationID id.ID) (entity.StockEntry, error) {
	var entry entity.StockEntry

	q := r.builder.Select("item_id", "location_id", "quantity", "last_updated").
		From(stockEntriesTable).
		Where(squirrel.Eq{
			"item_id":     itemID,
			"location_id": locationID,
		}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entry, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &entry, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entry, apperror.NewNotFound("stock entry", fmt.Sprintf("%s@%s", itemID, locationID))
		}
		return entry, fmt.Errorf("get entry: %w", err)
	}

	return entry, nil
}

// GetEntriesByLocation returns entries for a location.
func (r *LedgerRepo) GetEntriesByLocation(ctx context.Context, locationID id.ID, filter ledger.EntryFilter) ([]entity.StockEntry, error) {
	q := r.builder.Select("item_id", "location_id", "quantity", "last_updated").
		From(stockEntriesTable).
		Where(squirrel.Eq{"location_id": locationID})

	if filter.ExcludeZero {
		q = q.Where(squirrel.NotEq{"quantity": int64(0)})
	}
	if len(filter.ItemIDs) > 0 {
		q = q.Where(squirrel.Eq{"item_id": filter.ItemIDs})
	}

	q = q.OrderBy("item_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []entity.StockEntry
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	return entries, nil
}

// GetEntriesByItem returns entries across all locations for an item.
func (r *LedgerRepo) GetEntriesByItem(ctx context.Context, itemID id.ID) ([]entity.StockEntry, error) {
	q := r.builder.Select("item_id", "location_id", "quantity", "last_updated").
		From(stockEntriesTable).
		Where(squirrel.Eq{"item_id": itemID}).
		OrderBy("location_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []entity.StockEntry
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	return entries, nil
}

// ApplyCount overwrites the entry quantity in one upsert.
func (r *LedgerRepo) ApplyCount(ctx context.Context, itemID, locationID id.ID, quantity types.Quantity) error {
	sql := `
		INSERT INTO stock_entries (item_id, location_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, last_updated = EXCLUDED.last_updated
	`

	querier := r.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql, itemID, locationID, quantity.Int64Scaled(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("apply count: %w", err)
	}

	return nil
}

// ApplyDelta adds delta to the entry quantity and returns the new value.
//
// Negative deltas run as a guarded UPDATE: the WHERE clause rejects a result
// below zero, and zero affected rows (missing entry included) is reported as
// insufficient stock without modifying anything.
func (r *LedgerRepo) ApplyDelta(ctx context.Context, itemID, locationID id.ID, delta types.Quantity) (types.Quantity, error) {
	querier := r.txManager.GetQuerier(ctx)
	now := time.Now().UTC()

	if delta.IsNegative() {
		sql := `
			UPDATE stock_entries
			SET quantity = quantity + $3, last_updated = $4
			WHERE item_id = $1 AND location_id = $2 AND quantity + $3 >= 0
			RETURNING quantity
		`
		var newScaled int64
		err := querier.QueryRow(ctx, sql, itemID, locationID, delta.Int64Scaled(), now).Scan(&newScaled)
		if err != nil {
			if pgxscan.NotFound(err) {
				available, availErr := r.availableQuantity(ctx, itemID, locationID)
				if availErr != nil {
					return 0, availErr
				}
				return 0, apperror.NewInsufficientStock(itemID.String(), delta.Abs().Float64(), available.Float64())
			}
			return 0, fmt.Errorf("apply delta: %w", err)
		}
		return types.NewQuantityFromInt64Scaled(newScaled), nil
	}

	sql := `
		INSERT INTO stock_entries (item_id, location_id, quantity, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id, location_id)
		DO UPDATE SET quantity = stock_entries.quantity + EXCLUDED.quantity, last_updated = EXCLUDED.last_updated
		RETURNING quantity
	`
	var newScaled int64
	err := querier.QueryRow(ctx, sql, itemID, locationID, delta.Int64Scaled(), now).Scan(&newScaled)
	if err != nil {
		return 0, fmt.Errorf("apply delta: %w", err)
	}

	return types.NewQuantityFromInt64Scaled(newScaled), nil
}

func (r *LedgerRepo) availableQuantity(ctx context.Context, itemID, locationID id.ID) (types.Quantity, error) {
	entry, err := r.GetEntry(ctx, itemID, locationID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return entry.Quantity, nil
}

// CreateMovements batch inserts journal rows.
func (r *LedgerRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	q := r.builder.Insert(stockMovementsTable).Columns(
		"line_id", "recorder_id", "recorder_type", "record_type",
		"item_id", "location_id", "quantity", "created_at",
	)

	for _, m := range movements {
		q = q.Values(
			m.LineID, m.RecorderID, m.RecorderType, m.RecordType,
			m.ItemID, m.LocationID, m.Quantity, m.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	return nil
}

// GetMovementsByRecorder retrieves movements for a document.
func (r *LedgerRepo) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	q := r.builder.Select(
		"line_id", "recorder_id", "recorder_type", "record_type",
		"item_id", "location_id", "quantity", "created_at",
	).From(stockMovementsTable).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

// GetMovementHistory returns movement history for an item.
func (r *LedgerRepo) GetMovementHistory(ctx context.Context, itemID id.ID, filter ledger.MovementFilter) ([]entity.StockMovement, error) {
	q := r.builder.Select(
		"line_id", "recorder_id", "recorder_type", "record_type",
		"item_id", "location_id", "quantity", "created_at",
	).From(stockMovementsTable).
		Where(squirrel.Eq{"item_id": itemID})

	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.RecordType != nil {
		q = q.Where(squirrel.Eq{"record_type": *filter.RecordType})
	}
	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.FromDate})
	}
	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.ToDate})
	}

	q = q.OrderBy("created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	return movements, nil
}

// GetBelowPar returns items whose total stock is below their par level.
func (r *LedgerRepo) GetBelowPar(ctx context.Context) ([]ledger.ParShortage, error) {
	sql := `
		SELECT i.id AS item_id,
		       i.name AS item_name,
		       i.unit,
		       i.min_stock_level,
		       i.par_stock_level,
		       COALESCE(SUM(e.quantity), 0) AS total_quantity
		FROM items i
		LEFT JOIN stock_entries e ON e.item_id = i.id
		WHERE i.is_active AND i.par_stock_level > 0
		GROUP BY i.id, i.name, i.unit, i.min_stock_level, i.par_stock_level
		HAVING COALESCE(SUM(e.quantity), 0) < i.par_stock_level
		ORDER BY i.name
	`

	var rows []ledger.ParShortage
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql); err != nil {
		return nil, fmt.Errorf("select below par: %w", err)
	}

	return rows, nil
}

// Ensure interface compliance.
var _ ledger.Repository = (*LedgerRepo)(nil)
