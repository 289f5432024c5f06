package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/domain/session"
	"creamery/internal/infrastructure/http/v1/dto"
	"creamery/internal/infrastructure/storage/postgres"
)

// SessionHandler handles HTTP requests for inventory sessions.
type SessionHandler struct {
	*BaseHandler
	service *session.Service
	audit   *postgres.AuditService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(base *BaseHandler, service *session.Service, audit *postgres.AuditService) *SessionHandler {
	return &SessionHandler{BaseHandler: base, service: service, audit: audit}
}

// Create handles POST /inventory/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateSessionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	startedBy, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	locationID, err := id.Parse(req.LocationID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid location id").WithDetail("field", "locationId"))
		return
	}

	doc, err := h.service.Create(ctx, locationID, startedBy, req.Notes)
	if err != nil {
		h.Error(c, err)
		return
	}

	logAudit(c, h.audit, "inventory_session", doc.ID, postgres.AuditActionCreate,
		map[string]any{"location_id": locationID.String()})
	c.JSON(http.StatusCreated, dto.FromSession(doc))
}

// Get handles GET /inventory/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSession(doc))
}

// AddLine handles POST /inventory/sessions/:id/lines.
func (h *SessionHandler) AddLine(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.AddLineRequest
	if !h.BindJSON(c, &req) {
		return
	}

	countedBy, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	in, err := req.ToInput(countedBy)
	if err != nil {
		h.Error(c, err)
		return
	}

	line, err := h.service.AddLine(ctx, docID, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromLine(line))
}

// Close handles POST /inventory/sessions/:id/close.
// Applies all counted quantities to the stock ledger in one transaction.
func (h *SessionHandler) Close(c *gin.Context) {
	ctx := c.Request.Context()

	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	closedBy, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	doc, err := h.service.Close(ctx, docID, closedBy)
	if err != nil {
		h.Error(c, err)
		return
	}

	logAudit(c, h.audit, "inventory_session", doc.ID, postgres.AuditActionClose,
		map[string]any{"lines": len(doc.Lines)})
	h.OK(c, dto.FromSession(doc))
}

// List handles GET /inventory/sessions.
func (h *SessionHandler) List(c *gin.Context) {
	var req dto.ListSessionsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, dto.FromSessions(result.Items)))
}
