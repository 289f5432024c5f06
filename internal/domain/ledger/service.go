// Package ledger provides the stock ledger service.
package ledger

import (
	"context"
	"fmt"

	"creamery/internal/core/apperror"
	"creamery/internal/core/entity"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
	"creamery/pkg/logger"
)

// Recorder types written to the movement journal.
const (
	RecorderTypeInventorySession = "InventorySession"
	RecorderTypeProductionBatch  = "ProductionBatch"
	RecorderTypeWasteEvent       = "WasteEvent"
	RecorderTypeManual           = "ManualAdjustment"
)

// Recorder identifies the document that caused a ledger mutation.
type Recorder struct {
	ID   id.ID
	Type string
}

// Service provides business operations for the stock ledger.
// Transactions are managed by the caller: document services invoke these
// methods inside their own tx scope so that ledger writes commit or roll
// back together with the document.
type Service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// GetQuantity returns the current quantity for item+location.
// A key that was never written reads as zero.
func (s *Service) GetQuantity(ctx context.Context, itemID, locationID id.ID) (types.Quantity, error) {
	entry, err := s.repo.GetEntry(ctx, itemID, locationID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("get entry: %w", err)
	}
	return entry.Quantity, nil
}

// SetQuantity overwrites the quantity for item+location with a counted value
// and journals a count movement. Used by inventory session close.
func (s *Service) SetQuantity(ctx context.Context, rec Recorder, itemID, locationID id.ID, quantity types.Quantity) error {
	if err := validateRecorder(rec); err != nil {
		return err
	}
	if err := validateKey(itemID, locationID); err != nil {
		return err
	}
	if quantity.IsNegative() {
		return apperror.NewValidation("quantity must not be negative")
	}

	if err := s.repo.ApplyCount(ctx, itemID, locationID, quantity); err != nil {
		return fmt.Errorf("apply count: %w", err)
	}

	movement := entity.NewStockMovement(rec.ID, rec.Type, entity.RecordTypeCount, itemID, locationID, quantity)
	if err := s.repo.CreateMovements(ctx, []entity.StockMovement{movement}); err != nil {
		return fmt.Errorf("create count movement: %w", err)
	}

	logger.Info(ctx, "stock quantity set",
		"item_id", itemID,
		"location_id", locationID,
		"quantity", quantity,
		"recorder_id", rec.ID,
	)

	return nil
}

// AdjustQuantity adds delta to the quantity for item+location and journals a
// receipt or expense movement. A delta that would drive the quantity below
// zero fails with an insufficient-stock error and changes nothing.
func (s *Service) AdjustQuantity(ctx context.Context, rec Recorder, itemID, locationID id.ID, delta types.Quantity) (types.Quantity, error) {
	if err := validateRecorder(rec); err != nil {
		return 0, err
	}
	if err := validateKey(itemID, locationID); err != nil {
		return 0, err
	}
	if delta.IsZero() {
		return 0, apperror.NewValidation("delta must not be zero")
	}

	newQty, err := s.repo.ApplyDelta(ctx, itemID, locationID, delta)
	if err != nil {
		return 0, fmt.Errorf("apply delta: %w", err)
	}

	recordType := entity.RecordTypeReceipt
	if delta.IsNegative() {
		recordType = entity.RecordTypeExpense
	}
	movement := entity.NewStockMovement(rec.ID, rec.Type, recordType, itemID, locationID, delta.Abs())
	if err := s.repo.CreateMovements(ctx, []entity.StockMovement{movement}); err != nil {
		return 0, fmt.Errorf("create movement: %w", err)
	}

	logger.Info(ctx, "stock quantity adjusted",
		"item_id", itemID,
		"location_id", locationID,
		"delta", delta,
		"new_quantity", newQty,
		"recorder_id", rec.ID,
	)

	return newQty, nil
}

// GetLocationStock returns all entries with stock at a location.
func (s *Service) GetLocationStock(ctx context.Context, locationID id.ID) ([]entity.StockEntry, error) {
	if id.IsNil(locationID) {
		return nil, apperror.NewValidation("location_id is required")
	}
	return s.repo.GetEntriesByLocation(ctx, locationID, EntryFilter{})
}

// GetItemStock returns per-location entries for an item.
func (s *Service) GetItemStock(ctx context.Context, itemID id.ID) ([]entity.StockEntry, error) {
	if id.IsNil(itemID) {
		return nil, apperror.NewValidation("item_id is required")
	}
	return s.repo.GetEntriesByItem(ctx, itemID)
}

// GetItemAvailability returns total quantity across locations.
func (s *Service) GetItemAvailability(ctx context.Context, itemID id.ID) (types.Quantity, error) {
	entries, err := s.GetItemStock(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("get item stock: %w", err)
	}

	var total types.Quantity
	for _, e := range entries {
		total += e.Quantity
	}

	return total, nil
}

// GetBelowPar returns items running below their par stock level.
func (s *Service) GetBelowPar(ctx context.Context) ([]ParShortage, error) {
	return s.repo.GetBelowPar(ctx)
}

// GetMovementsByRecorder returns every movement posted by one document.
func (s *Service) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	if id.IsNil(recorderID) {
		return nil, apperror.NewValidation("recorder_id is required")
	}
	return s.repo.GetMovementsByRecorder(ctx, recorderID)
}

// GetMovementHistory returns the journal for an item.
func (s *Service) GetMovementHistory(ctx context.Context, itemID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	if id.IsNil(itemID) {
		return nil, apperror.NewValidation("item_id is required")
	}
	return s.repo.GetMovementHistory(ctx, itemID, filter)
}

func validateRecorder(rec Recorder) error {
	if id.IsNil(rec.ID) {
		return apperror.NewValidation("recorder id is required")
	}
	if rec.Type == "" {
		return apperror.NewValidation("recorder type is required")
	}
	return nil
}

func validateKey(itemID, locationID id.ID) error {
	if id.IsNil(itemID) {
		return apperror.NewValidation("item_id is required")
	}
	if id.IsNil(locationID) {
		return apperror.NewValidation("location_id is required")
	}
	return nil
}
