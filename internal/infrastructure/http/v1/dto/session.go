package dto

import (
	"time"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
	"creamery/internal/domain/session"
)

// --- Request DTOs ---

// CreateSessionRequest starts a new counting session.
type CreateSessionRequest struct {
	LocationID string `json:"locationId" binding:"required,uuid"`
	Notes      string `json:"notes,omitempty"`
}

// AddLineRequest records one count line.
type AddLineRequest struct {
	ItemID          string         `json:"itemId" binding:"required,uuid"`
	CountedQuantity types.Quantity `json:"countedQuantity"`
	Unit            string         `json:"unit" binding:"required"`
	Note            string         `json:"note,omitempty"`
	PhotoURL        string         `json:"photoUrl,omitempty"`
}

// ToInput converts the request to a domain line input.
func (r *AddLineRequest) ToInput(countedBy id.ID) (session.LineInput, error) {
	itemID, err := id.Parse(r.ItemID)
	if err != nil {
		return session.LineInput{}, apperror.NewValidation("invalid item id").
			WithDetail("field", "itemId")
	}
	return session.LineInput{
		ItemID:          itemID,
		CountedQuantity: r.CountedQuantity,
		Unit:            r.Unit,
		Note:            r.Note,
		PhotoURL:        r.PhotoURL,
		CountedBy:       countedBy,
	}, nil
}

// ListSessionsRequest for listing sessions.
type ListSessionsRequest struct {
	ListRequest

	LocationID string `form:"locationId" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=DRAFT CLOSED"`
}

// ToFilter converts the request to a domain filter.
func (r *ListSessionsRequest) ToFilter() session.ListFilter {
	filter := session.ListFilter{ListFilter: r.ListRequest.ToFilter()}
	if r.LocationID != "" {
		locID := id.MustParse(r.LocationID)
		filter.LocationID = &locID
	}
	if r.Status != "" {
		status := session.Status(r.Status)
		filter.Status = &status
	}
	return filter
}

// --- Response DTOs ---

// LineResponse contains one count line.
type LineResponse struct {
	LineID          string         `json:"lineId"`
	LineNo          int            `json:"lineNo"`
	ItemID          string         `json:"itemId"`
	CountedQuantity types.Quantity `json:"countedQuantity"`
	Unit            string         `json:"unit"`
	Note            string         `json:"note,omitempty"`
	PhotoURL        string         `json:"photoUrl,omitempty"`
	CountedBy       string         `json:"countedBy"`
	CountedAt       time.Time      `json:"countedAt"`
}

// FromLine creates LineResponse from a domain line.
func FromLine(line session.Line) LineResponse {
	return LineResponse{
		LineID:          line.LineID.String(),
		LineNo:          line.LineNo,
		ItemID:          line.ItemID.String(),
		CountedQuantity: line.CountedQuantity,
		Unit:            line.Unit,
		Note:            line.Note,
		PhotoURL:        line.PhotoURL,
		CountedBy:       line.CountedBy.String(),
		CountedAt:       line.CountedAt,
	}
}

// SessionResponse contains session details with lines.
type SessionResponse struct {
	ID         string         `json:"id"`
	LocationID string         `json:"locationId"`
	Status     string         `json:"status"`
	StartedBy  string         `json:"startedBy"`
	Notes      string         `json:"notes,omitempty"`
	ClosedAt   *time.Time     `json:"closedAt,omitempty"`
	ClosedBy   string         `json:"closedBy,omitempty"`
	Lines      []LineResponse `json:"lines"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Version    int            `json:"version"`
}

// FromSession creates SessionResponse from domain session.
func FromSession(s *session.Session) *SessionResponse {
	resp := &SessionResponse{
		ID:         s.ID.String(),
		LocationID: s.LocationID.String(),
		Status:     string(s.Status),
		StartedBy:  s.StartedBy.String(),
		Notes:      s.Notes,
		ClosedAt:   s.ClosedAt,
		Lines:      make([]LineResponse, 0, len(s.Lines)),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		Version:    s.Version,
	}
	if s.ClosedBy != nil {
		resp.ClosedBy = s.ClosedBy.String()
	}
	for _, line := range s.Lines {
		resp.Lines = append(resp.Lines, FromLine(line))
	}
	return resp
}

// FromSessions converts a slice of sessions.
func FromSessions(sessions []*session.Session) []*SessionResponse {
	out := make([]*SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, FromSession(s))
	}
	return out
}
