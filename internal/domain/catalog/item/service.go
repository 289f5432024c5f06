package item

import (
	"context"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/domain"
	"creamery/pkg/logger"
)

// Repository defines persistence operations for the item catalog.
type Repository interface {
	domain.CatalogRepository[*Item]
}

// Service provides business logic for the item catalog.
type Service struct {
	repo Repository
}

// NewService creates a new item service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a new item.
func (s *Service) Create(ctx context.Context, it *Item) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return err
	}

	logger.Info(ctx, "item created", "id", it.ID, "name", it.Name)
	return nil
}

// GetByID retrieves an item.
func (s *Service) GetByID(ctx context.Context, itemID id.ID) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

// Update modifies an item with optimistic locking.
func (s *Service) Update(ctx context.Context, it *Item) error {
	if err := it.Validate(ctx); err != nil {
		return err
	}
	it.Touch()
	return s.repo.Update(ctx, it)
}

// Deactivate takes an item out of use without deleting its history.
func (s *Service) Deactivate(ctx context.Context, itemID id.ID) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsActive {
		return nil, apperror.NewInvalidState("item is already inactive")
	}

	it.IsActive = false
	it.Touch()
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// List retrieves items with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Item], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks item existence (used by the production and waste engines).
func (s *Service) Exists(ctx context.Context, itemID id.ID) (bool, error) {
	return s.repo.Exists(ctx, itemID)
}
