package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/swairua/invoicing-software-sub001/internal/application/lifecycle"
	"github.com/swairua/invoicing-software-sub001/internal/application/simulation"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Lifecycle *lifecycle.Service
	Driver    *simulation.Driver
	AppCtx    context.Context
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Customers and products
	partyHandler := NewPartyHandler(deps.Lifecycle)
	customers := api.Group("/customers")
	customers.Post("/", partyHandler.CreateCustomer)
	customers.Get("/", partyHandler.ListCustomers)
	customers.Get("/:id", partyHandler.GetCustomer)

	products := api.Group("/products")
	products.Post("/", partyHandler.CreateProduct)
	products.Get("/", partyHandler.ListProducts)
	products.Get("/:id", partyHandler.GetProduct)

	// Documents (quotations, proformas, invoices, credit notes)
	documentHandler := NewDocumentHandler(deps.Lifecycle)
	api.Post("/quotations", documentHandler.CreateQuotation)
	api.Post("/quotations/:id/convert/proforma", documentHandler.ConvertQuotationToProforma)
	api.Post("/quotations/:id/convert/invoice", documentHandler.ConvertQuotationToInvoice)
	api.Post("/proformas/:id/convert/invoice", documentHandler.ConvertProformaToInvoice)
	api.Post("/credit-notes", documentHandler.IssueCreditNote)
	api.Post("/invoices/:id/etims", documentHandler.UpdateEtims)
	api.Post("/documents/:kind/:id/status", documentHandler.Transition)
	api.Get("/documents/:kind", documentHandler.List)
	api.Get("/documents/:kind/:id", documentHandler.GetByID)

	// Payments and stock
	paymentHandler := NewPaymentHandler(deps.Lifecycle)
	api.Post("/invoices/:id/payments", paymentHandler.Record)
	api.Get("/invoices/:id/payments", paymentHandler.ListByInvoice)
	api.Get("/stock-movements", paymentHandler.StockMovements)

	// Demo driver
	if deps.Driver != nil {
		simHandler := NewSimulationHandler(deps.Driver, deps.AppCtx)
		sim := api.Group("/simulation")
		sim.Get("/", simHandler.Status)
		sim.Post("/start", simHandler.Start)
		sim.Post("/stop", simHandler.Stop)
	}
}
