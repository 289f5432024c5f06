package production

import (
	"context"
	"fmt"
	"time"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/core/lotcode"
	"creamery/internal/core/tx"
	"creamery/internal/core/types"
	"creamery/internal/domain"
	"creamery/internal/domain/ledger"
	"creamery/pkg/logger"
)

// StockAdjuster is the slice of the ledger service the batch engine needs.
type StockAdjuster interface {
	AdjustQuantity(ctx context.Context, rec ledger.Recorder, itemID, locationID id.ID, delta types.Quantity) (types.Quantity, error)
}

// ItemChecker validates item references against the catalog.
type ItemChecker interface {
	Exists(ctx context.Context, itemID id.ID) (bool, error)
}

// LocationChecker validates location references against the catalog.
type LocationChecker interface {
	Exists(ctx context.Context, locationID id.ID) (bool, error)
}

// Service provides business operations for production batches.
type Service struct {
	repo      Repository
	lots      lotcode.Generator
	stock     StockAdjuster
	items     ItemChecker
	locations LocationChecker
	txManager tx.Manager
	cfg       Config
}

// NewService creates a new production batch service.
func NewService(
	repo Repository,
	lots lotcode.Generator,
	stock StockAdjuster,
	items ItemChecker,
	locations LocationChecker,
	txManager tx.Manager,
	cfg Config,
) *Service {
	if cfg.LotCodeRetries <= 0 {
		cfg.LotCodeRetries = DefaultConfig().LotCodeRetries
	}
	return &Service{
		repo:      repo,
		lots:      lots,
		stock:     stock,
		items:     items,
		locations: locations,
		txManager: txManager,
		cfg:       cfg,
	}
}

// CreateBatch starts a production run: it allocates a lot code from the daily
// sequence, persists the batch and credits the made quantity to the storage
// location, all in one transaction.
//
// The unique constraint on lot_code is the backstop against sequence races;
// a collision rolls the transaction back and the whole allocation is retried
// a bounded number of times before giving up with a conflict error.
func (s *Service) CreateBatch(ctx context.Context, doc *Batch) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.checkRefs(ctx, doc.ItemID, doc.LocationID); err != nil {
		return err
	}

	rec := ledger.Recorder{ID: doc.ID, Type: ledger.RecorderTypeProductionBatch}

	var lastErr error
	for attempt := 0; attempt < s.cfg.LotCodeRetries; attempt++ {
		err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
			code, err := s.lots.NextLotCode(ctx, doc.StartedAt)
			if err != nil {
				return fmt.Errorf("next lot code: %w", err)
			}
			doc.LotCode = code

			if err := s.repo.Create(ctx, doc); err != nil {
				return fmt.Errorf("create batch: %w", err)
			}

			if _, err := s.stock.AdjustQuantity(ctx, rec, doc.ItemID, doc.LocationID, doc.QuantityMade); err != nil {
				return fmt.Errorf("credit stock: %w", err)
			}
			return nil
		})
		if err == nil {
			logger.Info(ctx, "production batch created",
				"id", doc.ID,
				"lot_code", doc.LotCode,
				"item_id", doc.ItemID,
				"quantity_made", doc.QuantityMade,
			)
			return nil
		}

		if !isDuplicateLotCode(err) {
			return err
		}
		lastErr = err
		logger.Warn(ctx, "lot code collision, retrying",
			"lot_code", doc.LotCode,
			"attempt", attempt+1,
		)
	}

	return apperror.NewConflict("could not allocate a unique lot code").WithCause(lastErr)
}

// CompleteBatch marks production finished. No ledger effect.
func (s *Service) CompleteBatch(ctx context.Context, docID id.ID) (*Batch, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := doc.Complete(); err != nil {
		return nil, err
	}

	doc.Touch()
	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("update batch: %w", err)
	}

	logger.Info(ctx, "production batch completed", "id", doc.ID, "lot_code", doc.LotCode)
	return doc, nil
}

// RunOutBatch marks a completed batch as fully consumed and removes the made
// quantity from the storage location, in one transaction.
func (s *Service) RunOutBatch(ctx context.Context, docID id.ID) (*Batch, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := doc.RunOut(); err != nil {
		return nil, err
	}

	doc.Touch()
	rec := ledger.Recorder{ID: doc.ID, Type: ledger.RecorderTypeProductionBatch}
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update batch: %w", err)
		}
		if _, err := s.stock.AdjustQuantity(ctx, rec, doc.ItemID, doc.LocationID, doc.QuantityMade.Neg()); err != nil {
			return fmt.Errorf("debit stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "production batch run out", "id", doc.ID, "lot_code", doc.LotCode)
	return doc, nil
}

// DiscardBatch removes a batch from circulation. Stock reversal is a
// configuration choice; without it the discard only changes batch state and
// any stock effect is recorded separately as waste.
func (s *Service) DiscardBatch(ctx context.Context, docID id.ID, reason string, discardedAt time.Time) (*Batch, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := doc.Discard(reason, discardedAt); err != nil {
		return nil, err
	}

	doc.Touch()
	rec := ledger.Recorder{ID: doc.ID, Type: ledger.RecorderTypeProductionBatch}
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update batch: %w", err)
		}
		if s.cfg.ReverseStockOnDiscard {
			if _, err := s.stock.AdjustQuantity(ctx, rec, doc.ItemID, doc.LocationID, doc.QuantityMade.Neg()); err != nil {
				return fmt.Errorf("reverse stock: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "production batch discarded",
		"id", doc.ID,
		"lot_code", doc.LotCode,
		"reason", reason,
	)
	return doc, nil
}

// GetByID retrieves a batch.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Batch, error) {
	return s.repo.GetByID(ctx, docID)
}

// GetByLotCode retrieves a batch by its lot code.
func (s *Service) GetByLotCode(ctx context.Context, code string) (*Batch, error) {
	if code == "" {
		return nil, apperror.NewValidation("lot code is required")
	}
	return s.repo.GetByLotCode(ctx, code)
}

// List retrieves batches with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Batch], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) checkRefs(ctx context.Context, itemID, locationID id.ID) error {
	exists, err := s.items.Exists(ctx, itemID)
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return apperror.NewNotFound("item", itemID)
	}

	exists, err = s.locations.Exists(ctx, locationID)
	if err != nil {
		return fmt.Errorf("check location: %w", err)
	}
	if !exists {
		return apperror.NewNotFound("location", locationID)
	}
	return nil
}

func isDuplicateLotCode(err error) bool {
	appErr, ok := apperror.AsAppError(err)
	return ok && appErr.Code == apperror.CodeDuplicate
}
