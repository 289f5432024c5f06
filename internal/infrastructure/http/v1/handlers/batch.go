package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"creamery/internal/domain/production"
	"creamery/internal/infrastructure/http/v1/dto"
	"creamery/internal/infrastructure/storage/postgres"
)

// BatchHandler handles HTTP requests for production batches.
type BatchHandler struct {
	*BaseHandler
	service *production.Service
	audit   *postgres.AuditService
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(base *BaseHandler, service *production.Service, audit *postgres.AuditService) *BatchHandler {
	return &BatchHandler{BaseHandler: base, service: service, audit: audit}
}

// Create handles POST /production/batches.
// Assigns a lot code and credits the made quantity to stock.
func (h *BatchHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	madeBy, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	batch, err := req.ToEntity(madeBy)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.CreateBatch(ctx, batch); err != nil {
		h.Error(c, err)
		return
	}

	logAudit(c, h.audit, "production_batch", batch.ID, postgres.AuditActionCreate,
		map[string]any{"lot_code": batch.LotCode})
	c.JSON(http.StatusCreated, dto.FromBatch(batch))
}

// Get handles GET /production/batches/:id.
func (h *BatchHandler) Get(c *gin.Context) {
	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	batch, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromBatch(batch))
}

// GetByLotCode handles GET /production/batches/lot/:lotCode.
func (h *BatchHandler) GetByLotCode(c *gin.Context) {
	batch, err := h.service.GetByLotCode(c.Request.Context(), c.Param("lotCode"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromBatch(batch))
}

// Complete handles POST /production/batches/:id/complete.
func (h *BatchHandler) Complete(c *gin.Context) {
	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	batch, err := h.service.CompleteBatch(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.logStatusChange(c, batch)
	h.OK(c, dto.FromBatch(batch))
}

// RunOut handles POST /production/batches/:id/run-out.
func (h *BatchHandler) RunOut(c *gin.Context) {
	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	batch, err := h.service.RunOutBatch(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.logStatusChange(c, batch)
	h.OK(c, dto.FromBatch(batch))
}

// Discard handles POST /production/batches/:id/discard.
func (h *BatchHandler) Discard(c *gin.Context) {
	docID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.DiscardBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var discardedAt time.Time
	if req.DiscardedAt != nil {
		discardedAt = *req.DiscardedAt
	}

	batch, err := h.service.DiscardBatch(c.Request.Context(), docID, req.Reason, discardedAt)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.logStatusChange(c, batch)
	h.OK(c, dto.FromBatch(batch))
}

// List handles GET /production/batches.
func (h *BatchHandler) List(c *gin.Context) {
	var req dto.ListBatchesRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.service.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(result, dto.FromBatches(result.Items)))
}

func (h *BatchHandler) logStatusChange(c *gin.Context, batch *production.Batch) {
	logAudit(c, h.audit, "production_batch", batch.ID, postgres.AuditActionStatus,
		map[string]any{"status": string(batch.Status)})
}
