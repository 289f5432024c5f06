package session

import (
	"context"
	"fmt"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/core/tx"
	"creamery/internal/core/types"
	"creamery/internal/domain"
	"creamery/internal/domain/ledger"
	"creamery/pkg/logger"
)

// StockWriter is the slice of the ledger service the session engine needs.
type StockWriter interface {
	SetQuantity(ctx context.Context, rec ledger.Recorder, itemID, locationID id.ID, quantity types.Quantity) error
}

// LocationChecker validates location references against the catalog.
type LocationChecker interface {
	Exists(ctx context.Context, locationID id.ID) (bool, error)
}

// Service provides business operations for inventory sessions.
type Service struct {
	repo      Repository
	stock     StockWriter
	locations LocationChecker
	txManager tx.Manager
}

// NewService creates a new session service.
func NewService(repo Repository, stock StockWriter, locations LocationChecker, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		stock:     stock,
		locations: locations,
		txManager: txManager,
	}
}

// Create opens a new draft session at a location.
func (s *Service) Create(ctx context.Context, locationID, startedBy id.ID, notes string) (*Session, error) {
	doc := NewSession(locationID, startedBy, notes)
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}

	exists, err := s.locations.Exists(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("check location: %w", err)
	}
	if !exists {
		return nil, apperror.NewNotFound("location", locationID)
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	logger.Info(ctx, "inventory session created",
		"id", doc.ID,
		"location_id", locationID,
		"started_by", startedBy,
	)
	return doc, nil
}

// GetByID retrieves a session with its lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Session, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// AddLine appends a count line to a draft session.
func (s *Service) AddLine(ctx context.Context, docID id.ID, in LineInput) (Line, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return Line{}, err
	}

	line, err := doc.AddLine(in)
	if err != nil {
		return Line{}, err
	}

	doc.Touch()
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		if err := s.repo.AppendLine(ctx, docID, line); err != nil {
			return fmt.Errorf("append line: %w", err)
		}
		return nil
	})
	if err != nil {
		return Line{}, err
	}

	logger.Info(ctx, "session line recorded",
		"session_id", docID,
		"item_id", line.ItemID,
		"counted_quantity", line.CountedQuantity,
		"line_no", line.LineNo,
	)
	return line, nil
}

// Close finalizes a session: the status transition and one ledger overwrite
// per line commit in a single transaction, so a session is either fully
// applied or not at all. Lines are applied in recording order, which makes
// the latest count win when an item appears more than once.
//
// The optimistic version check on the header update turns a concurrent close
// into a conflict instead of a double application.
func (s *Service) Close(ctx context.Context, docID, closedBy id.ID) (*Session, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := doc.Close(closedBy); err != nil {
		return nil, err
	}

	doc.Touch()
	rec := ledger.Recorder{ID: doc.ID, Type: ledger.RecorderTypeInventorySession}
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		for _, line := range doc.Lines {
			if err := s.stock.SetQuantity(ctx, rec, line.ItemID, doc.LocationID, line.CountedQuantity); err != nil {
				return fmt.Errorf("apply line %d: %w", line.LineNo, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "inventory session closed",
		"id", doc.ID,
		"location_id", doc.LocationID,
		"lines", len(doc.Lines),
		"closed_by", closedBy,
	)
	return doc, nil
}

// List retrieves sessions with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Session], error) {
	return s.repo.List(ctx, filter)
}
