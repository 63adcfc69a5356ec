package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/contrib-fyi/server/internal/models"
	"github.com/contrib-fyi/server/internal/service"
)

// PickHandler wires HTTP → PickService.
type PickHandler struct {
	svc service.PickService
}

// NewPickHandler returns a handler instance.
func NewPickHandler(svc service.PickService) *PickHandler {
	return &PickHandler{svc: svc}
}

// Register mounts the pick routes on the given router group.
func (h *PickHandler) Register(r fiber.Router) {
	r.Get("/picks", h.list)
	r.Post("/picks", h.add)
	r.Get("/picks/:id", h.isPicked)
	r.Delete("/picks/:id", h.remove)
}

// list handles GET /picks
func (h *PickHandler) list(c *fiber.Ctx) error {
	picks, err := h.svc.ListPicks(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(picks)
}

// add handles POST /picks with an issue snapshot body.
func (h *PickHandler) add(c *fiber.Ctx) error {
	var snapshot models.IssueSnapshot
	if err := c.BodyParser(&snapshot); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid issue snapshot")
	}
	if snapshot.ID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "issue id is required")
	}

	if err := h.svc.AddPick(c.UserContext(), snapshot); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusCreated)
}

// isPicked handles GET /picks/:id
func (h *PickHandler) isPicked(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "issue id must be an integer")
	}

	picked, err := h.svc.IsPicked(c.UserContext(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"picked": picked})
}

// remove handles DELETE /picks/:id
func (h *PickHandler) remove(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "issue id must be an integer")
	}

	if err := h.svc.RemovePick(c.UserContext(), id); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
