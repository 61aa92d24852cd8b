package handler

import (
	"go-inventory-catalog/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) GetInventories(c *fiber.Ctx) error {
	inventory, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err, "Server error while fetching inventory")
	}
	return c.JSON(inventory)
}

func (h *InventoryHandler) GetInventory(c *fiber.Ctx) error {
	id, err := paramID(c, "inventory")
	if err != nil {
		return respondError(c, err, "")
	}
	inventory, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Server error while fetching inventory")
	}
	return c.JSON(inventory)
}

func (h *InventoryHandler) CreateInventory(c *fiber.Ctx) error {
	var req service.CreateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	inventory, err := h.service.Create(c.UserContext(), &req, principal(c))
	if err != nil {
		return respondError(c, err, "Server error while creating inventory")
	}
	return c.Status(fiber.StatusCreated).JSON(inventory)
}

func (h *InventoryHandler) UpdateInventory(c *fiber.Ctx) error {
	id, err := paramID(c, "inventory")
	if err != nil {
		return respondError(c, err, "")
	}
	var req service.UpdateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	inventory, err := h.service.Update(c.UserContext(), id, &req, principal(c))
	if err != nil {
		return respondError(c, err, "Server error while updating inventory")
	}
	return c.JSON(inventory)
}

func (h *InventoryHandler) DeleteInventory(c *fiber.Ctx) error {
	id, err := paramID(c, "inventory")
	if err != nil {
		return respondError(c, err, "")
	}
	if err := h.service.Delete(c.UserContext(), id, principal(c)); err != nil {
		return respondError(c, err, "Server error while deleting inventory")
	}
	return c.JSON(fiber.Map{"message": "Inventory deleted successfully"})
}
