package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"creamery/internal/core/apperror"
	"creamery/internal/core/id"
	"creamery/internal/core/types"
	"creamery/internal/domain/ledger"
	"creamery/internal/infrastructure/http/v1/dto"
	"creamery/internal/infrastructure/storage/postgres"
)

// StockHandler handles HTTP requests for the stock ledger.
type StockHandler struct {
	*BaseHandler
	service   *ledger.Service
	txManager *postgres.TxManager
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *ledger.Service, txManager *postgres.TxManager) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service, txManager: txManager}
}

// GetLocationStock handles GET /stock/locations/:id.
func (h *StockHandler) GetLocationStock(c *gin.Context) {
	locID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	entries, err := h.service.GetLocationStock(c.Request.Context(), locID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockEntries(entries))
}

// GetItemStock handles GET /stock/items/:id.
func (h *StockHandler) GetItemStock(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	entries, err := h.service.GetItemStock(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockEntries(entries))
}

// GetAvailability handles GET /stock/items/:id/availability.
// Returns the item's total quantity across all locations.
func (h *StockHandler) GetAvailability(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	total, err := h.service.GetItemAvailability(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AvailabilityResponse{
		ItemID:   itemID.String(),
		Quantity: total,
	})
}

// GetBelowPar handles GET /stock/below-par.
func (h *StockHandler) GetBelowPar(c *gin.Context) {
	shortages, err := h.service.GetBelowPar(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromParShortages(shortages))
}

// GetMovementHistory handles GET /stock/items/:id/movements.
func (h *StockHandler) GetMovementHistory(c *gin.Context) {
	itemID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.MovementHistoryRequest
	if !h.BindQuery(c, &req) {
		return
	}

	movements, err := h.service.GetMovementHistory(c.Request.Context(), itemID, req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromMovements(movements))
}

// GetRecorderMovements handles GET /stock/movements/recorder/:id.
// Lists every movement a single document (session, batch, waste event or
// manual correction) posted to the ledger.
func (h *StockHandler) GetRecorderMovements(c *gin.Context) {
	recorderID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	movements, err := h.service.GetMovementsByRecorder(c.Request.Context(), recorderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromMovements(movements))
}

// Adjust handles POST /stock/adjust.
// Manual correction outside of any document; journaled with the calling user
// as recorder. The delta and its movement commit in one transaction.
func (h *StockHandler) Adjust(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	itemID, err := id.Parse(req.ItemID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid item id").WithDetail("field", "itemId"))
		return
	}
	locID, err := id.Parse(req.LocationID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid location id").WithDetail("field", "locationId"))
		return
	}

	rec := ledger.Recorder{ID: userID, Type: ledger.RecorderTypeManual}

	var newQty types.Quantity
	err = h.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		newQty, txErr = h.service.AdjustQuantity(txCtx, rec, itemID, locID, req.Delta)
		return txErr
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AdjustStockResponse{
		ItemID:      itemID.String(),
		LocationID:  locID.String(),
		NewQuantity: newQty,
	})
}
