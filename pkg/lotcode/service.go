// Package lotcode provides the database-backed lot code sequence.
package lotcode

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	corelot "creamery/internal/core/lotcode"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service allocates per-day lot sequences with a single UPSERT ... RETURNING
// statement. The database serializes concurrent allocations for the same day,
// so sequence numbers are gapless under sequential creation and never
// duplicated under concurrent creation.
type Service struct {
	querier Querier
}

// New creates a new lot code service.
func New(querier Querier) *Service {
	return &Service{querier: querier}
}

// NextLotCode returns the next `YYYYMMDD-NNN` code for the given day.
func (s *Service) NextLotCode(ctx context.Context, day time.Time) (string, error) {
	if s == nil || s.querier == nil {
		return "", fmt.Errorf("lotcode service is not initialized")
	}

	dayKey := corelot.DayPrefix(day)

	var seq int64
	err := s.querier.QueryRow(ctx, `
        INSERT INTO lot_sequences (day_key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (day_key) DO UPDATE SET current_val = lot_sequences.current_val + 1
        RETURNING current_val
	`, dayKey).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("next lot sequence: %w", err)
	}

	return corelot.Format(day, seq), nil
}

// Ensure interface compliance.
var _ corelot.Generator = (*Service)(nil)
