package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contrib-fyi/server/internal/models"
	"github.com/contrib-fyi/server/internal/service"
)

// FilterHandler wires HTTP → FilterService.
type FilterHandler struct {
	svc service.FilterService
}

// NewFilterHandler returns a handler instance.
func NewFilterHandler(svc service.FilterService) *FilterHandler {
	return &FilterHandler{svc: svc}
}

// Register mounts the saved-filter routes on the given router group.
func (h *FilterHandler) Register(r fiber.Router) {
	r.Get("/filters", h.get)
	r.Put("/filters", h.put)
	r.Delete("/filters", h.reset)
}

// get handles GET /filters
func (h *FilterHandler) get(c *fiber.Ctx) error {
	filters, err := h.svc.GetFilters(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(filters)
}

// put handles PUT /filters with a filter-set body.
func (h *FilterHandler) put(c *fiber.Ctx) error {
	var filters models.SearchFilters
	if err := c.BodyParser(&filters); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid filter set")
	}

	if err := h.svc.SaveFilters(c.UserContext(), filters); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// reset handles DELETE /filters
func (h *FilterHandler) reset(c *fiber.Ctx) error {
	if err := h.svc.ResetFilters(c.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
