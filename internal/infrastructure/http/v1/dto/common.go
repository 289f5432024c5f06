// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/domain"
)

// parseID parses a request id field, converting failures to validation errors.
func parseID(value, field string) (id.ID, error) {
	parsed, err := id.Parse(value)
	if err != nil {
		return id.Nil(), apperror.NewValidation("invalid "+field).
			WithDetail("field", field)
	}
	return parsed, nil
}

// --- List Request ---

// ListRequest contains common list query parameters.
type ListRequest struct {
	Search  string `form:"search"`
	OrderBy string `form:"orderBy"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts the request to a domain filter with defaults applied.
// OrderBy is passed through as-is: each repository falls back to its own
// default ordering when it is empty.
func (r *ListRequest) ToFilter() domain.ListFilter {
	filter := domain.DefaultListFilter()
	filter.Search = r.Search
	filter.OrderBy = r.OrderBy
	if r.Limit > 0 {
		filter.Limit = r.Limit
	}
	if r.Offset > 0 {
		filter.Offset = r.Offset
	}
	return filter
}

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// NewListResponse builds a ListResponse from a domain list result.
func NewListResponse[T any](result domain.ListResult[T], items any) ListResponse {
	return ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
