package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swairua/invoicing-software-sub001/internal/application/dto"
	"github.com/swairua/invoicing-software-sub001/internal/application/lifecycle"
)

// PaymentHandler exposes payment recording and the inventory audit trail.
type PaymentHandler struct {
	svc *lifecycle.Service
}

// NewPaymentHandler builds the handler.
func NewPaymentHandler(svc *lifecycle.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Record applies a payment against an invoice.
// POST /api/invoices/:id/payments
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	payment, err := h.svc.RecordPayment(c.Context(), c.Params("id"), in.Amount, in.Method, in.Reference)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPaymentResponse(payment))
}

// ListByInvoice returns the payments against an invoice.
// GET /api/invoices/:id/payments
func (h *PaymentHandler) ListByInvoice(c *fiber.Ctx) error {
	payments, err := h.svc.ListPayments(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, dto.NewPaymentResponse(p))
	}
	return c.JSON(out)
}

// StockMovements returns the inventory audit trail, optionally filtered by
// ?product_id=.
// GET /api/stock-movements
func (h *PaymentHandler) StockMovements(c *fiber.Ctx) error {
	movements, err := h.svc.GetStockMovements(c.Context(), c.Query("product_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.NewStockMovementResponse(m))
	}
	return c.JSON(out)
}
