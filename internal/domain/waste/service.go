package waste

import (
	"context"
	"fmt"
	"time"

	"creamery/internal/core/apperror"
	"creamery/internal/core/entity"
	"creamery/internal/core/id"
	"creamery/internal/core/tx"
	"creamery/internal/core/types"
	"creamery/internal/domain"
	"creamery/internal/domain/ledger"
	"creamery/internal/domain/production"
	"creamery/pkg/logger"
)

// StockAdjuster is the slice of the ledger service waste accounting needs.
type StockAdjuster interface {
	AdjustQuantity(ctx context.Context, rec ledger.Recorder, itemID, locationID id.ID, delta types.Quantity) (types.Quantity, error)
}

// BatchReader looks up production batches for batch-linked waste.
type BatchReader interface {
	GetByID(ctx context.Context, docID id.ID) (*production.Batch, error)
}

// LocationChecker validates location references against the catalog.
type LocationChecker interface {
	Exists(ctx context.Context, locationID id.ID) (bool, error)
}

// RecordInput carries the fields of a new waste event.
type RecordInput struct {
	// BatchID is optional; when set, the item and location come from the batch
	BatchID *id.ID

	ItemID id.ID
	// LocationID is required when no batch is given
	LocationID *id.ID

	Quantity   types.Quantity
	Unit       string
	Reason     Reason
	Notes      string
	RecordedBy id.ID
}

// Service provides business operations for waste accounting.
type Service struct {
	repo      Repository
	stock     StockAdjuster
	batches   BatchReader
	locations LocationChecker
	txManager tx.Manager
}

// NewService creates a new waste service.
func NewService(repo Repository, stock StockAdjuster, batches BatchReader, locations LocationChecker, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		stock:     stock,
		batches:   batches,
		locations: locations,
		txManager: txManager,
	}
}

// Record persists a waste event and debits the wasted quantity from the
// ledger in one transaction.
//
// Batch-linked waste resolves item and location from the batch; a batch that
// has already run out has no stock left to waste against and is rejected.
// Unlinked waste must name its location explicitly.
func (s *Service) Record(ctx context.Context, in RecordInput) (*Event, error) {
	event := &Event{
		BaseDocument: entity.NewBaseDocument(),
		BatchID:      in.BatchID,
		ItemID:       in.ItemID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		Reason:       in.Reason,
		Notes:        in.Notes,
		RecordedBy:   in.RecordedBy,
		RecordedAt:   time.Now().UTC(),
	}

	if in.BatchID != nil {
		batch, err := s.batches.GetByID(ctx, *in.BatchID)
		if err != nil {
			return nil, err
		}
		if batch.Status == production.StatusRunOut {
			return nil, apperror.NewInvalidState("cannot record waste for run out batch")
		}
		if !id.IsNil(in.ItemID) && in.ItemID != batch.ItemID {
			return nil, apperror.NewValidation("item does not match the batch item").
				WithDetail("batch_item_id", batch.ItemID)
		}
		event.ItemID = batch.ItemID
		event.LocationID = batch.LocationID
	} else {
		if in.LocationID == nil || id.IsNil(*in.LocationID) {
			return nil, apperror.NewValidation("location is required for waste without a batch").
				WithDetail("field", "locationId")
		}
		exists, err := s.locations.Exists(ctx, *in.LocationID)
		if err != nil {
			return nil, fmt.Errorf("check location: %w", err)
		}
		if !exists {
			return nil, apperror.NewNotFound("location", *in.LocationID)
		}
		event.LocationID = *in.LocationID
	}

	if err := event.Validate(ctx); err != nil {
		return nil, err
	}

	rec := ledger.Recorder{ID: event.ID, Type: ledger.RecorderTypeWasteEvent}
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, event); err != nil {
			return fmt.Errorf("create waste event: %w", err)
		}
		if _, err := s.stock.AdjustQuantity(ctx, rec, event.ItemID, event.LocationID, event.Quantity.Neg()); err != nil {
			return fmt.Errorf("debit stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "waste recorded",
		"id", event.ID,
		"item_id", event.ItemID,
		"location_id", event.LocationID,
		"quantity", event.Quantity,
		"reason", event.Reason,
	)
	return event, nil
}

// GetByID retrieves a waste event.
func (s *Service) GetByID(ctx context.Context, eventID id.ID) (*Event, error) {
	return s.repo.GetByID(ctx, eventID)
}

// ListByBatch returns waste events linked to a batch.
func (s *Service) ListByBatch(ctx context.Context, batchID id.ID, filter domain.ListFilter) (domain.ListResult[*Event], error) {
	if id.IsNil(batchID) {
		return domain.ListResult[*Event]{}, apperror.NewValidation("batch_id is required")
	}
	return s.repo.List(ctx, ListFilter{ListFilter: filter, BatchID: &batchID})
}

// ListByItem returns waste events for an item.
func (s *Service) ListByItem(ctx context.Context, itemID id.ID, filter domain.ListFilter) (domain.ListResult[*Event], error) {
	if id.IsNil(itemID) {
		return domain.ListResult[*Event]{}, apperror.NewValidation("item_id is required")
	}
	return s.repo.List(ctx, ListFilter{ListFilter: filter, ItemID: &itemID})
}

// List retrieves waste events with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Event], error) {
	return s.repo.List(ctx, filter)
}
