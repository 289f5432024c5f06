package handlers

import (
	"github.com/gin-gonic/gin"

	"creamery/internal/domain/catalog/item"
	"creamery/internal/infrastructure/http/v1/dto"
	"creamery/internal/infrastructure/storage/postgres"
)

// ItemHandler handles HTTP requests for the item catalog.
type ItemHandler struct {
	*BaseHandler
	service *item.Service
	audit   *postgres.AuditService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service *item.Service, audit *postgres.AuditService) *ItemHandler {
	return &ItemHandler{BaseHandler: base, service: service, audit: audit}
}

// Create handles POST /catalog/items.
func (h *ItemHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it := req.ToEntity()
	if err := h.service.Create(ctx, it); err != nil {
		h.Error(c, err)
		return
	}

	logAudit(c, h.audit, "item", it.ID, postgres.AuditActionCreate, map[string]any{"name": it.Name})
	h.Created(c, it.ID)
}

// Get handles GET /catalog/items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	it, err := h.service.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(it))
}

// Update handles PUT /catalog/items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it, err := h.service.GetByID(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	before := *it
	req.ApplyTo(it)

	if err := h.service.Update(ctx, it); err != nil {
		h.Error(c, err)
		return
	}

	logAudit(c, h.audit, "item", it.ID, postgres.AuditActionUpdate,
		postgres.Diff(postgres.StructToMap(before), postgres.StructToMap(*it)))
	h.OK(c, dto.FromItem(it))
}

// Deactivate handles DELETE /catalog/items/:id.
// Items are never removed, only deactivated.
func (h *ItemHandler) Deactivate(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if _, err := h.service.Deactivate(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}

	logAudit(c, h.audit, "item", itemID, postgres.AuditActionStatus, map[string]any{"is_active": false})
	h.NoContent(c)
}

// List handles GET /catalog/items.
func (h *ItemHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, dto.FromItems(result.Items)))
}
