package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contrib-fyi/server/internal/models"
	"github.com/contrib-fyi/server/internal/service"
)

// HistoryHandler wires HTTP → HistoryService.
type HistoryHandler struct {
	svc service.HistoryService
}

// NewHistoryHandler returns a handler instance.
func NewHistoryHandler(svc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// Register mounts the history routes on the given router group.
func (h *HistoryHandler) Register(r fiber.Router) {
	r.Get("/history", h.list)
	r.Post("/history", h.add)
	r.Delete("/history", h.clear)
}

// list handles GET /history
func (h *HistoryHandler) list(c *fiber.Ctx) error {
	entries, err := h.svc.ListHistory(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(entries)
}

// add handles POST /history with an issue snapshot body.
func (h *HistoryHandler) add(c *fiber.Ctx) error {
	var snapshot models.IssueSnapshot
	if err := c.BodyParser(&snapshot); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid issue snapshot")
	}
	if snapshot.ID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "issue id is required")
	}

	if err := h.svc.AddToHistory(c.UserContext(), snapshot); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusCreated)
}

// clear handles DELETE /history
func (h *HistoryHandler) clear(c *fiber.Ctx) error {
	if err := h.svc.ClearHistory(c.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
