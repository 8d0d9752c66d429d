package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swairua/invoicing-software-sub001/internal/application/dto"
	"github.com/swairua/invoicing-software-sub001/internal/application/lifecycle"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

// DocumentHandler exposes the document lifecycle operations.
type DocumentHandler struct {
	svc *lifecycle.Service
}

// NewDocumentHandler builds the handler.
func NewDocumentHandler(svc *lifecycle.Service) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// CreateQuotation creates a draft quotation.
// POST /api/quotations
func (h *DocumentHandler) CreateQuotation(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	doc, err := h.svc.CreateQuotation(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDocumentResponse(doc))
}

// Transition changes a document's status.
// POST /api/documents/:kind/:id/status
func (h *DocumentHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	kind := entity.DocumentKind(c.Params("kind"))
	doc, err := h.svc.TransitionStatus(c.Context(), c.Params("id"), kind, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewDocumentResponse(doc))
}

// ConvertQuotationToProforma converts an accepted quotation.
// POST /api/quotations/:id/convert/proforma
func (h *DocumentHandler) ConvertQuotationToProforma(c *fiber.Ctx) error {
	doc, err := h.svc.ConvertQuotationToProforma(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDocumentResponse(doc))
}

// ConvertQuotationToInvoice converts an accepted quotation directly.
// POST /api/quotations/:id/convert/invoice
func (h *DocumentHandler) ConvertQuotationToInvoice(c *fiber.Ctx) error {
	doc, err := h.svc.ConvertQuotationToInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDocumentResponse(doc))
}

// ConvertProformaToInvoice converts a sent proforma.
// POST /api/proformas/:id/convert/invoice
func (h *DocumentHandler) ConvertProformaToInvoice(c *fiber.Ctx) error {
	doc, err := h.svc.ConvertProformaToInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDocumentResponse(doc))
}

// IssueCreditNote creates a draft credit note.
// POST /api/credit-notes
func (h *DocumentHandler) IssueCreditNote(c *fiber.Ctx) error {
	var in dto.IssueCreditNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	doc, err := h.svc.IssueCreditNote(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDocumentResponse(doc))
}

// UpdateEtims advances an invoice's tax submission sub-state.
// POST /api/invoices/:id/etims
func (h *DocumentHandler) UpdateEtims(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	doc, err := h.svc.UpdateEtimsStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewDocumentResponse(doc))
}

// GetByID returns one document.
// GET /api/documents/:kind/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	kind := entity.DocumentKind(c.Params("kind"))
	doc, err := h.svc.GetDocument(c.Context(), c.Params("id"), kind)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewDocumentResponse(doc))
}

// List returns documents of a kind, optionally filtered by ?status=.
// GET /api/documents/:kind
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	kind := entity.DocumentKind(c.Params("kind"))
	docs, err := h.svc.ListDocuments(c.Context(), kind, c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.NewDocumentResponse(d))
	}
	return c.JSON(out)
}
