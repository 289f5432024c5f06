package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creamery/internal/domain"
	"creamery/internal/domain/waste"
	"creamery/internal/infrastructure/http/v1/dto"
	"creamery/internal/infrastructure/storage/postgres"
)

// WasteHandler handles HTTP requests for waste accounting.
type WasteHandler struct {
	*BaseHandler
	service *waste.Service
	audit   *postgres.AuditService
}

// NewWasteHandler creates a new waste handler.
func NewWasteHandler(base *BaseHandler, service *waste.Service, audit *postgres.AuditService) *WasteHandler {
	return &WasteHandler{BaseHandler: base, service: service, audit: audit}
}

// Record handles POST /production/waste.
// Debits the wasted quantity from stock in the same transaction.
func (h *WasteHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordWasteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	recordedBy, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	in, err := req.ToInput(recordedBy)
	if err != nil {
		h.Error(c, err)
		return
	}

	event, err := h.service.Record(ctx, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	logAudit(c, h.audit, "waste_event", event.ID, postgres.AuditActionCreate,
		map[string]any{"reason": string(event.Reason), "quantity": event.Quantity.String()})
	c.JSON(http.StatusCreated, dto.FromWasteEvent(event))
}

// Get handles GET /production/waste/:id.
func (h *WasteHandler) Get(c *gin.Context) {
	eventID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	event, err := h.service.GetByID(c.Request.Context(), eventID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromWasteEvent(event))
}

// ListByBatch handles GET /production/batches/:id/waste.
func (h *WasteHandler) ListByBatch(c *gin.Context) {
	batchID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	filter := domain.DefaultListFilter()
	filter.OrderBy = ""
	filter.Limit = h.ParseIntQuery(c, "limit", filter.Limit)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.ListByBatch(c.Request.Context(), batchID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, dto.FromWasteEvents(result.Items)))
}

// List handles GET /production/waste.
func (h *WasteHandler) List(c *gin.Context) {
	var req dto.ListWasteRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, dto.FromWasteEvents(result.Items)))
}
