package handler

import (
	"go-inventory-catalog/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

// GetCategories lists categories sorted by name
// GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err, "Server error while fetching categories")
	}
	return c.JSON(categories)
}

// GetCategory returns the category with the products referencing it
// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "category")
	if err != nil {
		return respondError(c, err, "")
	}
	category, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Server error while fetching category")
	}
	return c.JSON(category)
}

// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	category, err := h.service.Create(c.UserContext(), &req, principal(c))
	if err != nil {
		return respondError(c, err, "Server error while creating category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "category")
	if err != nil {
		return respondError(c, err, "")
	}
	var req service.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	category, err := h.service.Update(c.UserContext(), id, &req, principal(c))
	if err != nil {
		return respondError(c, err, "Server error while updating category")
	}
	return c.JSON(category)
}

// DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "category")
	if err != nil {
		return respondError(c, err, "")
	}
	if err := h.service.Delete(c.UserContext(), id, principal(c)); err != nil {
		return respondError(c, err, "Server error while deleting category")
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
