package location

import (
	"context"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/domain"
	"creamery/pkg/logger"
)

// Repository defines persistence operations for the location catalog.
type Repository interface {
	domain.CatalogRepository[*Location]
}

// Service provides business logic for the location catalog.
type Service struct {
	repo Repository
}

// NewService creates a new location service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a new location.
func (s *Service) Create(ctx context.Context, loc *Location) error {
	if err := loc.Validate(ctx); err != nil {
		return err
	}
	if loc.ParentID != nil {
		exists, err := s.repo.Exists(ctx, *loc.ParentID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NewNotFound("location", *loc.ParentID)
		}
	}
	if err := s.repo.Create(ctx, loc); err != nil {
		return err
	}

	logger.Info(ctx, "location created", "id", loc.ID, "name", loc.Name, "type", loc.Type)
	return nil
}

// GetByID retrieves a location.
func (s *Service) GetByID(ctx context.Context, locationID id.ID) (*Location, error) {
	return s.repo.GetByID(ctx, locationID)
}

// Update modifies a location with optimistic locking.
func (s *Service) Update(ctx context.Context, loc *Location) error {
	if err := loc.Validate(ctx); err != nil {
		return err
	}
	loc.Touch()
	return s.repo.Update(ctx, loc)
}

// Deactivate takes a location out of use. Ledger entries keep their history.
func (s *Service) Deactivate(ctx context.Context, locationID id.ID) (*Location, error) {
	loc, err := s.repo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if !loc.IsActive {
		return nil, apperror.NewInvalidState("location is already inactive")
	}

	loc.IsActive = false
	loc.Touch()
	if err := s.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// List retrieves locations with filtering.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Location], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks location existence (used by the session, production and
// waste engines).
func (s *Service) Exists(ctx context.Context, locationID id.ID) (bool, error) {
	return s.repo.Exists(ctx, locationID)
}
