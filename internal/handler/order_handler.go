package handler

import (
	"github.com/gin-gonic/gin"

	"vatledger/internal/service"
)

// OrderHandler handles per-order VAT endpoints.
type OrderHandler struct {
	orderService        service.OrderService
	confirmationService service.ConfirmationService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService service.OrderService, confirmationService service.ConfirmationService) *OrderHandler {
	return &OrderHandler{orderService: orderService, confirmationService: confirmationService}
}

// VAT handles GET /api/v1/orders/:id/vat
// @Summary      Order VAT breakdown
// @Description  The order's VAT, whether it was taken from checkout or recomputed, and per-line detail when recomputed
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse{data=vat.OrderVAT}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Security     BearerAuth
// @Router       /orders/{id}/vat [get]
func (h *OrderHandler) VAT(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ov, err := h.orderService.VATBreakdown(c.Request.Context(), tenantID, orderID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ov)
}

// SendConfirmation handles POST /api/v1/orders/:id/confirmation
// @Summary      Email order confirmation
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Security     BearerAuth
// @Router       /orders/{id}/confirmation [post]
func (h *OrderHandler) SendConfirmation(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.confirmationService.SendOrderConfirmation(c.Request.Context(), tenantID, orderID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "confirmation sent"})
}
