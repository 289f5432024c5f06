package dto

import (
	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/domain/catalog/location"
)

// --- Request DTOs ---

// CreateLocationRequest for location creation.
type CreateLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=SHOP KITCHEN STORAGE"`
	ParentID string `json:"parentId,omitempty"`
}

// ToEntity converts the request to a new location.
func (r *CreateLocationRequest) ToEntity() (*location.Location, error) {
	loc := location.NewLocation(r.Name, location.Type(r.Type))
	if r.ParentID != "" {
		parentID, err := id.Parse(r.ParentID)
		if err != nil {
			return nil, apperror.NewValidation("invalid parent location id").
				WithDetail("field", "parentId")
		}
		loc.ParentID = &parentID
	}
	return loc, nil
}

// UpdateLocationRequest for location updates. Nil fields are left unchanged.
type UpdateLocationRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ApplyTo applies non-nil fields to the location.
func (r *UpdateLocationRequest) ApplyTo(loc *location.Location) {
	if r.Name != nil {
		loc.Name = *r.Name
	}
	if r.Type != nil {
		loc.Type = location.Type(*r.Type)
	}
	if r.IsActive != nil {
		loc.IsActive = *r.IsActive
	}
}

// --- Response DTOs ---

// LocationResponse contains location details.
type LocationResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId,omitempty"`
	IsActive bool   `json:"isActive"`
	Version  int    `json:"version"`
}

// FromLocation creates LocationResponse from domain location.
func FromLocation(loc *location.Location) *LocationResponse {
	resp := &LocationResponse{
		ID:       loc.ID.String(),
		Name:     loc.Name,
		Type:     string(loc.Type),
		IsActive: loc.IsActive,
		Version:  loc.Version,
	}
	if loc.ParentID != nil {
		resp.ParentID = loc.ParentID.String()
	}
	return resp
}

// FromLocations converts a slice of locations.
func FromLocations(locations []*location.Location) []*LocationResponse {
	out := make([]*LocationResponse, 0, len(locations))
	for _, loc := range locations {
		out = append(out, FromLocation(loc))
	}
	return out
}
