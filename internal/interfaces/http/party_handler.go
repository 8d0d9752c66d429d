package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/swairua/invoicing-software-sub001/internal/application/dto"
	"github.com/swairua/invoicing-software-sub001/internal/application/lifecycle"
)

// PartyHandler exposes the customer/product read-model endpoints.
type PartyHandler struct {
	svc *lifecycle.Service
}

// NewPartyHandler builds the handler.
func NewPartyHandler(svc *lifecycle.Service) *PartyHandler {
	return &PartyHandler{svc: svc}
}

// CreateCustomer registers a customer.
// POST /api/customers
func (h *PartyHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	customer, err := h.svc.CreateCustomer(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// ListCustomers returns all customers.
// GET /api/customers
func (h *PartyHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.svc.ListCustomers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customers)
}

// GetCustomer returns one customer.
// GET /api/customers/:id
func (h *PartyHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.svc.GetCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// CreateProduct registers a product; an opening stock is posted as an "in"
// movement.
// POST /api/products
func (h *PartyHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	product, err := h.svc.CreateProduct(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// ListProducts returns all products.
// GET /api/products
func (h *PartyHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.svc.ListProducts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// GetProduct returns one product.
// GET /api/products/:id
func (h *PartyHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.svc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}
