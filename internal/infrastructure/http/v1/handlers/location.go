package handlers

import (
	"github.com/gin-gonic/gin"

	"creamery/internal/domain/catalog/location"
	"creamery/internal/infrastructure/http/v1/dto"
	"creamery/internal/infrastructure/storage/postgres"
)

// LocationHandler handles HTTP requests for the location catalog.
type LocationHandler struct {
	*BaseHandler
	service *location.Service
	audit   *postgres.AuditService
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(base *BaseHandler, service *location.Service, audit *postgres.AuditService) *LocationHandler {
	return &LocationHandler{BaseHandler: base, service: service, audit: audit}
}

// Create handles POST /catalog/locations.
func (h *LocationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	loc, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, loc); err != nil {
		h.Error(c, err)
		return
	}

	logAudit(c, h.audit, "location", loc.ID, postgres.AuditActionCreate, map[string]any{"name": loc.Name})
	h.Created(c, loc.ID)
}

// Get handles GET /catalog/locations/:id.
func (h *LocationHandler) Get(c *gin.Context) {
	locID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	loc, err := h.service.GetByID(c.Request.Context(), locID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromLocation(loc))
}

// Update handles PUT /catalog/locations/:id.
func (h *LocationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	locID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	loc, err := h.service.GetByID(ctx, locID)
	if err != nil {
		h.Error(c, err)
		return
	}

	before := *loc
	req.ApplyTo(loc)

	if err := h.service.Update(ctx, loc); err != nil {
		h.Error(c, err)
		return
	}

	logAudit(c, h.audit, "location", loc.ID, postgres.AuditActionUpdate,
		postgres.Diff(postgres.StructToMap(before), postgres.StructToMap(*loc)))
	h.OK(c, dto.FromLocation(loc))
}

// Deactivate handles DELETE /catalog/locations/:id.
// Locations are never removed, only deactivated.
func (h *LocationHandler) Deactivate(c *gin.Context) {
	locID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if _, err := h.service.Deactivate(c.Request.Context(), locID); err != nil {
		h.Error(c, err)
		return
	}

	logAudit(c, h.audit, "location", locID, postgres.AuditActionStatus, map[string]any{"is_active": false})
	h.NoContent(c)
}

// List handles GET /catalog/locations.
func (h *LocationHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, dto.FromLocations(result.Items)))
}
