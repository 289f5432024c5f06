// Package session provides the inventory counting session document.
package session

import (
	"context"
	"time"

	"creamery/internal/core/apperror"
	"creamery/internal/core/entity"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
)

// Status represents the lifecycle state of an inventory session.
type Status string

const (
	StatusDraft  Status = "DRAFT"
	StatusClosed Status = "CLOSED"
)

// Session represents one counting round at a location.
// Lines are append-only while the session is DRAFT; closing is terminal.
type Session struct {
	entity.BaseDocument

	LocationID id.ID  `db:"location_id" json:"locationId"`
	Status     Status `db:"status" json:"status"`
	StartedBy  id.ID  `db:"started_by" json:"startedBy"`
	Notes      string `db:"notes" json:"notes,omitempty"`

	ClosedAt *time.Time `db:"closed_at" json:"closedAt,omitempty"`
	ClosedBy *id.ID     `db:"closed_by" json:"closedBy,omitempty"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is a single recorded count. Lines are never edited or deduplicated;
// when the same item is counted twice, the later line wins at close time.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ItemID          id.ID          `db:"item_id" json:"itemId"`
	CountedQuantity types.Quantity `db:"counted_quantity" json:"countedQuantity"`
	Unit            string         `db:"unit" json:"unit"`

	Note     string `db:"note" json:"note,omitempty"`
	PhotoURL string `db:"photo_url" json:"photoUrl,omitempty"`

	CountedBy id.ID     `db:"counted_by" json:"countedBy"`
	CountedAt time.Time `db:"counted_at" json:"countedAt"`
}

// LineInput carries the fields of a new count line.
type LineInput struct {
	ItemID          id.ID
	CountedQuantity types.Quantity
	Unit            string
	Note            string
	PhotoURL        string
	CountedBy       id.ID
}

// NewSession creates a new draft session.
func NewSession(locationID, startedBy id.ID, notes string) *Session {
	return &Session{
		BaseDocument: entity.NewBaseDocument(),
		LocationID:   locationID,
		Status:       StatusDraft,
		StartedBy:    startedBy,
		Notes:        notes,
		Lines:        make([]Line, 0),
	}
}

// Validate implements entity.Validatable.
func (s *Session) Validate(ctx context.Context) error {
	if id.IsNil(s.LocationID) {
		return apperror.NewValidation("location is required").
			WithDetail("field", "locationId")
	}
	if id.IsNil(s.StartedBy) {
		return apperror.NewValidation("started_by is required").
			WithDetail("field", "startedBy")
	}
	if s.Status != StatusDraft && s.Status != StatusClosed {
		return apperror.NewValidation("unknown session status").
			WithDetail("status", string(s.Status))
	}
	return nil
}

// AddLine appends a count line. Only draft sessions accept lines.
func (s *Session) AddLine(in LineInput) (Line, error) {
	if s.Status != StatusDraft {
		return Line{}, apperror.NewInvalidState("cannot add lines to a closed session")
	}
	if id.IsNil(in.ItemID) {
		return Line{}, apperror.NewValidation("item is required").
			WithDetail("field", "itemId")
	}
	if in.CountedQuantity.IsNegative() {
		return Line{}, apperror.NewValidation("counted quantity must not be negative").
			WithDetail("field", "countedQuantity")
	}
	if in.Unit == "" {
		return Line{}, apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	if id.IsNil(in.CountedBy) {
		return Line{}, apperror.NewValidation("counted_by is required").
			WithDetail("field", "countedBy")
	}

	line := Line{
		LineID:          id.New(),
		LineNo:          len(s.Lines) + 1,
		ItemID:          in.ItemID,
		CountedQuantity: in.CountedQuantity,
		Unit:            in.Unit,
		Note:            in.Note,
		PhotoURL:        in.PhotoURL,
		CountedBy:       in.CountedBy,
		CountedAt:       time.Now().UTC(),
	}
	s.Lines = append(s.Lines, line)
	return line, nil
}

// Close transitions the session to CLOSED. Closing twice is an invalid state;
// closing without any recorded counts is a validation error.
func (s *Session) Close(closedBy id.ID) error {
	if s.Status == StatusClosed {
		return apperror.NewInvalidState("session is already closed")
	}
	if len(s.Lines) == 0 {
		return apperror.NewValidation("cannot close a session with no recorded counts")
	}
	if id.IsNil(closedBy) {
		return apperror.NewValidation("closed_by is required").
			WithDetail("field", "closedBy")
	}

	now := time.Now().UTC()
	s.Status = StatusClosed
	s.ClosedAt = &now
	s.ClosedBy = &closedBy
	return nil
}
