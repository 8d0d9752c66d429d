package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/swairua/invoicing-software-sub001/internal/application/simulation"
)

// SimulationHandler controls the demo driver.
type SimulationHandler struct {
	driver *simulation.Driver
	ctx    context.Context
}

// NewSimulationHandler builds the handler. ctx bounds the driver's
// lifetime (process context).
func NewSimulationHandler(driver *simulation.Driver, ctx context.Context) *SimulationHandler {
	return &SimulationHandler{driver: driver, ctx: ctx}
}

// Start launches the driver.
// POST /api/simulation/start
func (h *SimulationHandler) Start(c *fiber.Ctx) error {
	h.driver.Start(h.ctx)
	return c.JSON(fiber.Map{"running": true})
}

// Stop halts the driver.
// POST /api/simulation/stop
func (h *SimulationHandler) Stop(c *fiber.Ctx) error {
	h.driver.Stop()
	return c.JSON(fiber.Map{"running": false})
}

// Status reports whether the driver is running.
// GET /api/simulation
func (h *SimulationHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"running": h.driver.Running()})
}
