package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"creamery/internal/core/id"
	"creamery/internal/domain"
	"creamery/internal/domain/session"
	"creamery/internal/infrastructure/storage/postgres"
)

const (
	sessionsTable     = "inventory_sessions"
	sessionLinesTable = "inventory_session_lines"
)

// SessionRepo implements session.Repository.
type SessionRepo struct {
	*BaseDocumentRepo[*session.Session]
}

// NewSessionRepo creates a new inventory session repository.
func NewSessionRepo(txManager *postgres.TxManager) *SessionRepo {
	return &SessionRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*session.Session](
			txManager,
			sessionsTable,
			postgres.ExtractDBColumns[session.Session](),
			func() *session.Session { return &session.Session{} },
		),
	}
}

// AppendLine inserts one count line. Lines are append-only.
func (r *SessionRepo) AppendLine(ctx context.Context, docID id.ID, line session.Line) error {
	q := r.Builder().
		Insert(sessionLinesTable).
		Columns(
			"line_id", "session_id", "line_no", "item_id",
			"counted_quantity", "unit", "note", "photo_url",
			"counted_by", "counted_at",
		).
		Values(
			line.LineID, docID, line.LineNo, line.ItemID,
			line.CountedQuantity, line.Unit, line.Note, line.PhotoURL,
			line.CountedBy, line.CountedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert line: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert line: %w", err)
	}

	return nil
}

// GetLines returns lines in recording order.
func (r *SessionRepo) GetLines(ctx context.Context, docID id.ID) ([]session.Line, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "item_id",
			"counted_quantity", "unit", "note", "photo_url",
			"counted_by", "counted_at",
		).
		From(sessionLinesTable).
		Where(squirrel.Eq{"session_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []session.Line
	if err := pgxscan.Select(ctx, r.querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// List retrieves sessions with filtering and pagination.
func (r *SessionRepo) List(ctx context.Context, filter session.ListFilter) (domain.ListResult[*session.Session], error) {
	q := r.baseSelect()

	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"notes": "%" + filter.Search + "%"})
	}

	return r.listPage(ctx, q, filter.ListFilter, "created_at DESC")
}

var _ session.Repository = (*SessionRepo)(nil)
